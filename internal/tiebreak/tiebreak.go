// Package tiebreak runs the sudden-death draw between tied teams on a reel
// with the tease disabled.
package tiebreak

import (
	"math/rand"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// PickWinner draws one team uniformly at random.
func PickWinner(teams []int, rnd *rand.Rand) (int, error) {
	if len(teams) == 0 {
		return 0, domain.ErrNoTeams
	}
	return teams[rnd.Intn(len(teams))], nil
}

// TiedTeams returns the teams sharing the best total under the battle rule:
// the lowest total for less, the highest otherwise. Terminal battles compare
// only the final round's rolls. A battle with nothing scored treats every team
// as tied.
func TiedTeams(outcome *domain.BattleOutcome, scores []int64, lastRolls []domain.Roll) []int {
	teams := outcome.DistinctTeams()
	rule := outcome.EffectiveRule()

	totals := make(map[int]int64, len(teams))
	if rule == domain.RuleTerminal {
		if len(lastRolls) == 0 {
			return teams
		}
		for _, roll := range lastRolls {
			if roll.PlayerIndex >= 0 && roll.PlayerIndex < len(outcome.PlayerTeams) {
				totals[outcome.PlayerTeams[roll.PlayerIndex]] += roll.ItemValue
			}
		}
	} else {
		if len(scores) == 0 {
			return teams
		}
		for i, team := range outcome.PlayerTeams {
			if i < len(scores) {
				totals[team] += scores[i]
			}
		}
	}

	less := rule == domain.RuleLess
	var best int64
	for i, team := range teams {
		v := totals[team]
		if i == 0 || (less && v < best) || (!less && v > best) {
			best = v
		}
	}

	var tied []int
	for _, team := range teams {
		if totals[team] == best {
			tied = append(tied, team)
		}
	}
	return tied
}

// Pool is the synthetic one-item-per-team pool the tiebreak reel draws from
func Pool(teams []int) []domain.PoolItem {
	pool := make([]domain.PoolItem, 0, len(teams))
	for _, team := range teams {
		pool = append(pool, domain.PoolItem{
			Name:   domain.TeamInfo(team).Name,
			Tier:   domain.TierGold,
			Image:  TrophyIcon,
			Weight: poolWeight,
		})
	}
	return pool
}

// Outcome is the reel landing for a winning team
func Outcome(team int) domain.SpinOutcome {
	return domain.SpinOutcome{
		ItemName: domain.TeamInfo(team).Name,
		Tier:     domain.TierGold,
		ItemIcon: TrophyIcon,
		IsGolden: true,
	}
}
