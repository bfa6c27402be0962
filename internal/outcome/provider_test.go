package outcome

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

func historyRow(round, player, team int, box, item string, value int64, tier string) domain.HistoryRow {
	return domain.HistoryRow{
		BattleID:       42,
		CreatedAt:      time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Mode:           domain.Mode2v2,
		Rule:           domain.RuleClassic,
		JackpotEnabled: true,
		TotalPot:       1000,
		WinnerTeamID:   1,
		RoundIndex:     round,
		PlayerIndex:    player,
		TeamIndex:      team,
		BoxName:        box,
		ItemID:         player + 1,
		ItemName:       item,
		ItemValue:      value,
		ItemTier:       tier,
	}
}

func TestFromHistoryRows(t *testing.T) {
	// deliberately out of order
	rows := []domain.HistoryRow{
		historyRow(1, 3, 1, "Deluxe", "Crown", 400, "legendary"),
		historyRow(0, 1, 0, "Starter", "Rock", 10, "common"),
		historyRow(0, 0, 0, "Starter", "Stone", 20, "common"),
		historyRow(1, 0, 0, "Deluxe", "Gem", 30, "epic"),
		historyRow(0, 3, 1, "Starter", "Rock", 10, "common"),
		historyRow(0, 2, 1, "Starter", "Rock", 10, ""),
	}

	out, err := FromHistoryRows(rows)
	require.NoError(t, err)

	assert.Equal(t, int64(42), out.BattleID)
	assert.Equal(t, 1, out.WinnerTeamID)
	assert.Equal(t, int64(1000), out.TotalPot)
	assert.True(t, out.JackpotEnabled)
	assert.Equal(t, domain.Mode2v2, out.Mode)
	assert.Equal(t, []string{"Starter", "Deluxe"}, out.Boxes)
	assert.Equal(t, []int{0, 0, 1, 1}, out.PlayerTeams)
	assert.Equal(t, []int64{60, 420}, out.TeamScores)

	require.Len(t, out.Rounds, 2)
	require.Len(t, out.Rounds[0].Rolls, 4)
	assert.Equal(t, 0, out.Rounds[0].Rolls[0].PlayerIndex)
	assert.Equal(t, "Stone", out.Rounds[0].Rolls[0].ItemName)
	assert.Equal(t, domain.TierGray, out.Rounds[0].Rolls[2].Tier, "empty tier is common")

	require.Len(t, out.Rounds[1].Rolls, 2)
	assert.Equal(t, domain.TierRed, out.Rounds[1].Rolls[0].Tier)
	assert.Equal(t, domain.TierGold, out.Rounds[1].Rolls[1].Tier)
	require.NotNil(t, out.Rounds[1].Rolls[1].ItemID)
	assert.Equal(t, 4, *out.Rounds[1].Rolls[1].ItemID)
}

func TestFromHistoryRows_MissingSlotDefaultsToTeamZero(t *testing.T) {
	rows := []domain.HistoryRow{
		historyRow(0, 0, 0, "A", "Rock", 1, "common"),
		historyRow(0, 2, 1, "A", "Rock", 1, "common"),
	}
	out, err := FromHistoryRows(rows)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 0, 1}, out.PlayerTeams)
}

func TestFromHistoryRows_RoundGapStaysEmpty(t *testing.T) {
	rows := []domain.HistoryRow{
		historyRow(0, 0, 0, "Starter", "Rock", 10, "common"),
		historyRow(0, 1, 1, "Starter", "Rock", 10, "common"),
		historyRow(2, 0, 0, "Deluxe", "Gem", 30, "epic"),
		historyRow(2, 1, 1, "Deluxe", "Gem", 30, "epic"),
	}
	out, err := FromHistoryRows(rows)
	require.NoError(t, err)

	require.Len(t, out.Rounds, 3)
	assert.Equal(t, 3, out.RoundCount())
	assert.Equal(t, []string{"Starter", "", "Deluxe"}, out.Boxes)
	assert.Empty(t, out.Rounds[1].Rolls, "missing round is not filled from later rounds")
	require.Len(t, out.Rounds[2].Rolls, 2)
	assert.Equal(t, "Gem", out.Rounds[2].Rolls[0].ItemName)
}

func TestFromHistoryRows_NoUsableRounds(t *testing.T) {
	rows := []domain.HistoryRow{historyRow(-1, 0, 0, "A", "Rock", 1, "common")}
	_, err := FromHistoryRows(rows)
	assert.ErrorIs(t, err, domain.ErrMissingData)
}

func TestFromHistoryRows_Empty(t *testing.T) {
	_, err := FromHistoryRows(nil)
	assert.ErrorIs(t, err, domain.ErrBattleNotFound)
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	battle := `{"winner_team_id": 1, "total_pot": 800, "player_teams": [0, 1],
		"rounds": [{"box_name": "Starter", "rolls": [
			{"player_index": 0, "item_name": "Rock", "item_value": 300, "tier": "gray"},
			{"player_index": 1, "item_name": "Gem", "item_value": 500, "tier": "red"}]}]}`
	spin := `{"box_name": "Starter", "item_name": "Crown", "payout": 900, "tier": "gold", "is_golden": true}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle-7.json"), []byte(battle), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "spin-3.json"), []byte(spin), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "battle-8.json"), []byte("{"), 0o600))

	p := NewFile(dir)
	ctx := context.Background()

	b, err := p.Battle(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), b.BattleID)
	assert.Equal(t, 2, b.Lanes())
	require.Len(t, b.Rounds, 1)
	assert.Equal(t, int64(500), b.Rounds[0].Rolls[1].ItemValue)

	s, err := p.Spin(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), s.ID)
	assert.True(t, s.IsGolden)
	assert.Equal(t, domain.TierGold, s.Tier)

	_, err = p.Battle(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrBattleNotFound)
	_, err = p.Spin(ctx, 99)
	assert.ErrorIs(t, err, domain.ErrSpinNotFound)

	_, err = p.Battle(ctx, 8)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrContextParseOutcome)
}
