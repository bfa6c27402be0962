package domain

import "strings"

// Tier is the rarity classification of an item, ordered from common to legendary.
// Values are the colour keys the front end styles with.
type Tier string

const (
	TierGray  Tier = "gray"
	TierGreen Tier = "green"
	TierBlue  Tier = "blue"
	TierRed   Tier = "red"
	TierGold  Tier = "gold"
)

// catalogTierAliases maps catalog rarity names onto display tiers
var catalogTierAliases = map[string]Tier{
	"common":    TierGray,
	"uncommon":  TierGreen,
	"rare":      TierBlue,
	"epic":      TierRed,
	"legendary": TierGold,
}

// NormalizeTier lower-cases a raw tier and resolves catalog aliases.
// An empty tier is treated as common.
func NormalizeTier(raw string) Tier {
	lower := strings.ToLower(strings.TrimSpace(raw))
	if lower == "" {
		return TierGray
	}
	if t, ok := catalogTierAliases[lower]; ok {
		return t
	}
	return Tier(lower)
}

// IsRare reports whether the tier is one of the top two tiers (red, gold).
// Rare landings trigger the tease cycle.
func (t Tier) IsRare() bool {
	n := NormalizeTier(string(t))
	return n == TierRed || n == TierGold
}

// Rank orders tiers from 0 (gray) to 4 (gold). Unknown tiers rank as gray.
func (t Tier) Rank() int {
	switch NormalizeTier(string(t)) {
	case TierGreen:
		return 1
	case TierBlue:
		return 2
	case TierRed:
		return 3
	case TierGold:
		return 4
	default:
		return 0
	}
}
