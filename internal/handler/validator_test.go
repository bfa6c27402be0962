package handler

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

func TestValidateSpinOutcome(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		spin    domain.SpinOutcome
		wantErr map[string]string
	}{
		{"valid", domain.SpinOutcome{ItemName: "Rock", Tier: domain.TierGray}, nil},
		{"catalog alias", domain.SpinOutcome{ItemName: "Rock", Tier: "Legendary"}, nil},
		{"missing item", domain.SpinOutcome{Tier: domain.TierGray}, map[string]string{"itemname": "This field is required"}},
		{"unknown tier", domain.SpinOutcome{ItemName: "Rock", Tier: "plaid"}, map[string]string{"tier": "Unknown tier"}},
		{"negative payout", domain.SpinOutcome{ItemName: "Rock", Tier: domain.TierRed, Payout: -1}, map[string]string{"payout": "Must not be negative"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.spin)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, FormatValidationError(err))
		})
	}
}

func TestValidateBattleOutcome(t *testing.T) {
	b := domain.BattleOutcome{
		PlayerTeams: []int{0, 1},
		Rounds: []domain.Round{{Rolls: []domain.Roll{
			{PlayerIndex: 0, ItemName: "Rock", Tier: domain.TierGray},
			{PlayerIndex: 2, ItemName: "Rock", Tier: domain.TierGray},
		}}},
	}
	err := GetValidator().ValidateStruct(b)
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err), "rounds[0].rolls[1].player_index")

	b.Rounds[0].Rolls[1].PlayerIndex = 1
	assert.NoError(t, GetValidator().ValidateStruct(b))

	b.Rule = "highest"
	err = GetValidator().ValidateStruct(b)
	require.Error(t, err)
	assert.Contains(t, FormatValidationError(err)["rule"], "Must be one of")
}

func TestFormatValidationError_NotValidation(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": "Invalid request format"}, FormatValidationError(errors.New("boom")))
}
