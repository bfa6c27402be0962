// Package outcome loads the authoritative battle and spin records that
// playback replays. Nothing here decides a result.
package outcome

import (
	"context"
	"sort"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

// Provider returns immutable outcomes by id. Missing records are reported as
// domain.ErrBattleNotFound or domain.ErrSpinNotFound.
type Provider interface {
	Battle(ctx context.Context, id int64) (*domain.BattleOutcome, error)
	Spin(ctx context.Context, id int64) (*domain.SpinOutcome, error)
}

// FromHistoryRows rebuilds a battle from its flattened history rows. Rows are
// grouped by round and slot; player teams and per-team totals are derived.
func FromHistoryRows(rows []domain.HistoryRow) (*domain.BattleOutcome, error) {
	if len(rows) == 0 {
		return nil, domain.ErrBattleNotFound
	}

	sorted := make([]domain.HistoryRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].RoundIndex != sorted[j].RoundIndex {
			return sorted[i].RoundIndex < sorted[j].RoundIndex
		}
		return sorted[i].PlayerIndex < sorted[j].PlayerIndex
	})

	first := sorted[0]
	out := &domain.BattleOutcome{
		BattleID:       first.BattleID,
		WinnerTeamID:   first.WinnerTeamID,
		TotalPot:       first.TotalPot,
		IsDraw:         first.IsDraw,
		Rule:           first.Rule,
		Mode:           first.Mode,
		JackpotEnabled: first.JackpotEnabled,
		CompletedAt:    first.CreatedAt,
	}

	// rounds keep their recorded index; a gap stays as an empty round so
	// playback stops there instead of shifting later rounds down
	maxRound := -1
	for _, row := range sorted {
		if row.RoundIndex > maxRound {
			maxRound = row.RoundIndex
		}
	}
	if maxRound < 0 {
		return nil, domain.ErrMissingData
	}
	out.Rounds = make([]domain.Round, maxRound+1)
	out.Boxes = make([]string, maxRound+1)

	teamOf := make(map[int]int)
	maxPlayer := 0
	for _, row := range sorted {
		if row.RoundIndex < 0 {
			continue
		}
		teamOf[row.PlayerIndex] = row.TeamIndex
		if row.PlayerIndex > maxPlayer {
			maxPlayer = row.PlayerIndex
		}

		pos := row.RoundIndex
		if out.Rounds[pos].BoxName == "" {
			out.Rounds[pos].BoxName = row.BoxName
			out.Boxes[pos] = row.BoxName
		}

		roll := domain.Roll{
			PlayerIndex: row.PlayerIndex,
			ItemName:    row.ItemName,
			ItemValue:   row.ItemValue,
			Tier:        domain.NormalizeTier(row.ItemTier),
			UserID:      row.UserID,
		}
		if row.ItemID != 0 {
			id := row.ItemID
			roll.ItemID = &id
		}
		out.Rounds[pos].Rolls = append(out.Rounds[pos].Rolls, roll)
	}

	out.PlayerTeams = make([]int, maxPlayer+1)
	maxTeam := 0
	for i := range out.PlayerTeams {
		out.PlayerTeams[i] = teamOf[i]
		if teamOf[i] > maxTeam {
			maxTeam = teamOf[i]
		}
	}

	out.TeamScores = make([]int64, maxTeam+1)
	for _, row := range sorted {
		if row.TeamIndex >= 0 && row.TeamIndex <= maxTeam {
			out.TeamScores[row.TeamIndex] += row.ItemValue
		}
	}
	return out, nil
}
