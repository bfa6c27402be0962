// Package odds computes live win-probability distributions for jackpot battles.
// Everything here is a pure function of running battle state.
package odds

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// Input is the running state odds are derived from
type Input struct {
	Rule              domain.Rule
	Scores            []int64       // running score per player slot
	LastRoundRolls    []domain.Roll // rolls of the most recent round, for terminal
	PlayerTeams       []int         // team id per player slot
	FinalRoundStopped bool          // every lane of the final round has stopped
}

// TeamOdds is one team's share of the distribution
type TeamOdds struct {
	TeamID  int     `json:"team_id"`
	Weight  float64 `json:"weight"`
	Percent float64 `json:"percent"`
}

// Distribution lists team odds in first-seen team order
type Distribution []TeamOdds

// Percent returns the share of a team, or 0 when the team is absent.
func (d Distribution) Percent(teamID int) float64 {
	for _, t := range d {
		if t.TeamID == teamID {
			return t.Percent
		}
	}
	return 0
}

// Total sums the percentages, which is 100 for any non-empty distribution.
func (d Distribution) Total() float64 {
	total := 0.0
	for _, t := range d {
		total += t.Percent
	}
	return total
}

func (in Input) score(i int) int64 {
	if i < len(in.Scores) {
		return in.Scores[i]
	}
	return 0
}

func (in Input) allZero() bool {
	for i := range in.PlayerTeams {
		if in.score(i) != 0 {
			return false
		}
	}
	return true
}

// lastRoundValues indexes the last round's roll values by player slot
func (in Input) lastRoundValues() []float64 {
	values := make([]float64, len(in.PlayerTeams))
	for _, r := range in.LastRoundRolls {
		if r.PlayerIndex >= 0 && r.PlayerIndex < len(values) {
			values[r.PlayerIndex] += float64(r.ItemValue)
		}
	}
	return values
}

// playerWeights returns the raw per-slot weights under the battle rule
func (in Input) playerWeights() []float64 {
	n := len(in.PlayerTeams)
	weights := make([]float64, n)
	switch in.Rule {
	case domain.RuleTerminal:
		copy(weights, in.lastRoundValues())
	case domain.RuleLess:
		for i := range weights {
			s := in.score(i)
			if s < 1 {
				s = 1
			}
			weights[i] = 1 / float64(s)
		}
	default:
		for i := range weights {
			weights[i] = float64(in.score(i))
		}
	}
	return weights
}

func aggregate(playerTeams []int, weights []float64) Distribution {
	var dist Distribution
	index := make(map[int]int)
	for i, team := range playerTeams {
		pos, ok := index[team]
		if !ok {
			pos = len(dist)
			index[team] = pos
			dist = append(dist, TeamOdds{TeamID: team})
		}
		dist[pos].Weight += weights[i]
	}
	return dist
}

func normalize(dist Distribution, even bool) Distribution {
	if len(dist) == 0 {
		return dist
	}
	total := 0.0
	for _, t := range dist {
		total += t.Weight
	}
	for i := range dist {
		if even || total <= 0 {
			dist[i].Percent = 100 / float64(len(dist))
			continue
		}
		dist[i].Percent = dist[i].Weight / total * 100
	}
	return dist
}

// Calculate returns the per-team win probability. The second result is false
// when no odds should be shown yet: for terminal battles until the final round
// has fully stopped, and for battles without players.
func Calculate(in Input) (Distribution, bool) {
	if len(in.PlayerTeams) == 0 {
		return nil, false
	}
	if in.Rule == domain.RuleTerminal && !in.FinalRoundStopped {
		return nil, false
	}
	even := in.Rule == domain.RuleLess && in.allZero()
	return normalize(aggregate(in.PlayerTeams, in.playerWeights()), even), true
}

// TeamWeights returns the raw per-team jackpot weights. When every player
// weight is zero each player counts 1, so teams weigh by head count.
func TeamWeights(in Input) Distribution {
	weights := in.playerWeights()
	zero := true
	for _, w := range weights {
		if w != 0 {
			zero = false
			break
		}
	}
	if zero {
		for i := range weights {
			weights[i] = 1
		}
	}
	return normalize(aggregate(in.PlayerTeams, weights), false)
}

// PlayerOdds returns the per-lane badge percentages. A lane's share is taken
// against every lane rather than per team.
func PlayerOdds(in Input) ([]float64, bool) {
	n := len(in.PlayerTeams)
	if n == 0 {
		return nil, false
	}
	if in.Rule == domain.RuleTerminal && !in.FinalRoundStopped {
		return nil, false
	}

	weights := in.playerWeights()
	even := in.Rule == domain.RuleLess && in.allZero()
	total := 0.0
	for _, w := range weights {
		total += w
	}

	out := make([]float64, n)
	for i := range out {
		if even || total <= 0 {
			out[i] = 100 / float64(n)
			continue
		}
		out[i] = weights[i] / total * 100
	}
	return out, true
}

// Format renders a percentage with one decimal, e.g. "75.0%".
func Format(pct float64) string {
	return decimal.NewFromFloat(pct).StringFixed(1) + "%"
}
