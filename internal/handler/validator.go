package handler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// Validator wraps the validator instance
type Validator struct {
	validate *validator.Validate
}

// Global validator instance
var validate *Validator

// InitValidator initializes the global validator
func InitValidator() {
	v := validator.New()

	// display tiers and catalog rarity names
	_ = v.RegisterValidation("tier", validateTier)
	v.RegisterStructValidation(validateBattleOutcome, domain.BattleOutcome{})

	validate = &Validator{validate: v}
}

// GetValidator returns the global validator instance
func GetValidator() *Validator {
	if validate == nil {
		InitValidator()
	}
	return validate
}

// ValidateStruct validates a struct using tags
func (v *Validator) ValidateStruct(s interface{}) error {
	return v.validate.Struct(s)
}

// FormatValidationError formats validation errors into a user-friendly map
// keyed by the lower-cased field name
func FormatValidationError(err error) map[string]string {
	if err == nil {
		return nil
	}

	errs := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errs["error"] = "Invalid request format"
		return errs
	}

	for _, e := range validationErrors {
		field := strings.ToLower(e.Field())
		switch e.Tag() {
		case "required":
			errs[field] = "This field is required"
		case "tier":
			errs[field] = "Unknown tier"
		case "oneof":
			errs[field] = fmt.Sprintf("Must be one of: %s", e.Param())
		case "max":
			errs[field] = fmt.Sprintf("Must be at most %s", e.Param())
		case "min":
			errs[field] = fmt.Sprintf("Must be at least %s", e.Param())
		case "gt", "gte":
			errs[field] = "Must not be negative"
		case "player_index":
			errs[field] = "Roll points at a player that is not seated"
		default:
			errs[field] = "Invalid value"
		}
	}

	return errs
}

var knownTiers = map[domain.Tier]bool{
	domain.TierGray:  true,
	domain.TierGreen: true,
	domain.TierBlue:  true,
	domain.TierRed:   true,
	domain.TierGold:  true,
}

func validateTier(fl validator.FieldLevel) bool {
	raw := fl.Field().String()
	if raw == "" {
		return true
	}
	return knownTiers[domain.NormalizeTier(raw)]
}

// validateBattleOutcome rejects rolls that reference a player slot the battle
// does not seat
func validateBattleOutcome(sl validator.StructLevel) {
	b := sl.Current().Interface().(domain.BattleOutcome)
	for ri, round := range b.Rounds {
		for ki, roll := range round.Rolls {
			if roll.PlayerIndex >= len(b.PlayerTeams) {
				sl.ReportError(roll.PlayerIndex, fmt.Sprintf("rounds[%d].rolls[%d].player_index", ri, ki),
					"PlayerIndex", "player_index", "")
			}
		}
	}
}
