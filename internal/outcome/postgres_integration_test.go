package outcome

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/testing/pgtest"
)

func TestPostgres_Integration(t *testing.T) {
	pool := pgtest.Pool(t)
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO battle_history_v2
			(battle_id, mode, rule, jackpot_enabled, total_pot, winner_team_id, is_draw,
			 round_index, player_index, team_index, user_id, box_name, item_id, item_name, item_value, item_tier, payout)
		VALUES
			(11, '1v1', 'whale', false, 280, 0, false, 0, 0, 0, 'u1', 'Starter', 1, 'Rock', 10, 'common', 280),
			(11, '1v1', 'whale', false, 280, 0, false, 0, 1, 1, 'u2', 'Starter', 2, 'Gem', 50, 'epic', 0),
			(11, '1v1', 'whale', false, 280, 0, false, 1, 1, 1, 'u2', 'Deluxe', NULL, 'Rock', 40, 'common', 0),
			(11, '1v1', 'whale', false, 280, 0, false, 1, 0, 0, 'u1', 'Deluxe', 3, 'Crown', 180, 'legendary', 280);
		INSERT INTO solo_box_history (id, user_id, box_name, item_name, item_value, tier, is_golden)
		VALUES (21, 'u1', 'Starter', 'Crown', 900, 'Legendary', true);
	`)
	require.NoError(t, err)

	p := NewPostgres(pool)

	t.Run("Battle", func(t *testing.T) {
		b, err := p.Battle(ctx, 11)
		require.NoError(t, err)
		assert.Equal(t, domain.RuleWhale, b.Rule)
		assert.Equal(t, []string{"Starter", "Deluxe"}, b.Boxes)
		assert.Equal(t, []int{0, 1}, b.PlayerTeams)
		require.Len(t, b.Rounds, 2)
		assert.Equal(t, "Crown", b.Rounds[1].Rolls[0].ItemName)
		assert.Nil(t, b.Rounds[1].Rolls[1].ItemID)
		assert.Equal(t, []int64{190, 90}, b.TeamScores)
	})

	t.Run("BattleNotFound", func(t *testing.T) {
		_, err := p.Battle(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrBattleNotFound)
	})

	t.Run("Spin", func(t *testing.T) {
		s, err := p.Spin(ctx, 21)
		require.NoError(t, err)
		assert.Equal(t, domain.TierGold, s.Tier)
		assert.Equal(t, int64(900), s.Payout)
		assert.True(t, s.IsGolden)
	})

	t.Run("SpinNotFound", func(t *testing.T) {
		_, err := p.Spin(ctx, 999)
		assert.ErrorIs(t, err, domain.ErrSpinNotFound)
	})
}
