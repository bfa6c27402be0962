package outcome

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
)

const (
	queryBattleHistory = `SELECT battle_id, created_at, mode, rule, jackpot_enabled, total_pot, winner_team_id, is_draw,
		round_index, player_index, team_index, COALESCE(user_id, ''), is_bot, COALESCE(box_id, 0), box_name,
		COALESCE(item_id, 0), item_name, item_value, item_tier, payout
		FROM battle_history_v2 WHERE battle_id = $1 ORDER BY round_index ASC, player_index ASC`
	querySpin = `SELECT id, box_name, item_name, COALESCE(item_value, 0), tier, COALESCE(item_icon, ''), is_golden
		FROM solo_box_history WHERE id = $1`
)

// Postgres reads outcomes from battle_history_v2 and solo_box_history
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a provider over a connection pool
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Battle rebuilds a battle from its history rows
func (p *Postgres) Battle(ctx context.Context, id int64) (*domain.BattleOutcome, error) {
	rows, err := p.db.Query(ctx, queryBattleHistory, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryHistory, err)
	}
	history, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.HistoryRow, error) {
		var h domain.HistoryRow
		var mode, rule string
		err := row.Scan(&h.BattleID, &h.CreatedAt, &mode, &rule, &h.JackpotEnabled, &h.TotalPot,
			&h.WinnerTeamID, &h.IsDraw, &h.RoundIndex, &h.PlayerIndex, &h.TeamIndex, &h.UserID, &h.IsBot,
			&h.BoxID, &h.BoxName, &h.ItemID, &h.ItemName, &h.ItemValue, &h.ItemTier, &h.Payout)
		h.Mode = domain.Mode(mode)
		h.Rule = domain.Rule(rule)
		return h, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryHistory, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrBattleNotFound, id)
	}
	return FromHistoryRows(history)
}

// Spin loads one solo opening
func (p *Postgres) Spin(ctx context.Context, id int64) (*domain.SpinOutcome, error) {
	var s domain.SpinOutcome
	var tier string
	err := p.db.QueryRow(ctx, querySpin, id).
		Scan(&s.ID, &s.BoxName, &s.ItemName, &s.Payout, &tier, &s.ItemIcon, &s.IsGolden)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrSpinNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQuerySpin, err)
	}
	s.Tier = domain.NormalizeTier(tier)
	return &s, nil
}
