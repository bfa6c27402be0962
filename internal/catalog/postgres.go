package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishReveal_Go/internal/domain"
	"github.com/osse101/BrandishReveal_Go/internal/logger"
)

const (
	queryBoxByName = `SELECT box_id, name, price, price_golden, COALESCE(image, '') FROM box_info WHERE name = $1`
	queryBoxes     = `SELECT box_id, name, price, price_golden, COALESCE(image, '') FROM box_info ORDER BY price ASC, name ASC`
	queryBoxItems  = `SELECT item_id, COALESCE(item_name, ''), COALESCE(item_value, 0), COALESCE(tier, ''), COALESCE(image, '')
		FROM box_items WHERE box_id = $1`
	queryBoxOdds = `SELECT tier, odds_raw, odds_golden FROM box_odds WHERE box_id = $1`

	upsertBox = `INSERT INTO box_info (name, price, price_golden, image) VALUES ($1, $2, $3, NULLIF($4, ''))
		ON CONFLICT (name) DO UPDATE SET price = EXCLUDED.price, price_golden = EXCLUDED.price_golden, image = EXCLUDED.image
		RETURNING box_id`
	deleteBoxItems = `DELETE FROM box_items WHERE box_id = $1`
	deleteBoxOdds  = `DELETE FROM box_odds WHERE box_id = $1`
	insertBoxItem  = `INSERT INTO box_items (box_id, item_name, item_value, tier, image) VALUES ($1, $2, $3, $4, NULLIF($5, ''))`
	insertBoxOdds  = `INSERT INTO box_odds (box_id, tier, odds_raw, odds_golden) VALUES ($1, $2, $3, $4)`
)

// Postgres reads pools from the box_info, box_items and box_odds tables
type Postgres struct {
	db *pgxpool.Pool
}

// NewPostgres creates a catalog over a connection pool
func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// Pool builds the weighted pool of a box
func (p *Postgres) Pool(ctx context.Context, boxName string) ([]domain.PoolItem, error) {
	var box Box
	err := p.db.QueryRow(ctx, queryBoxByName, boxName).
		Scan(&box.ID, &box.Name, &box.Price, &box.PriceGolden, &box.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBoxNotFound, boxName)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryBox, err)
	}

	rows, err := p.db.Query(ctx, queryBoxItems, box.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryItems, err)
	}
	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ItemRow, error) {
		var it ItemRow
		err := row.Scan(&it.ItemID, &it.Name, &it.Value, &it.Tier, &it.Image)
		return it, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryItems, err)
	}

	rows, err = p.db.Query(ctx, queryBoxOdds, box.ID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryOdds, err)
	}
	odds, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (TierOdds, error) {
		var o TierOdds
		err := row.Scan(&o.Tier, &o.Raw, &o.Golden)
		return o, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextQueryOdds, err)
	}

	pool := BuildPool(items, odds)
	logger.FromContext(ctx).Debug(LogMsgPoolBuilt, "box", boxName, "items", len(pool))
	return pool, nil
}

// Boxes lists every box by ascending price
func (p *Postgres) Boxes(ctx context.Context) ([]Box, error) {
	rows, err := p.db.Query(ctx, queryBoxes)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListBoxes, err)
	}
	boxes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Box, error) {
		var b Box
		err := row.Scan(&b.ID, &b.Name, &b.Price, &b.PriceGolden, &b.Image)
		return b, err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrContextListBoxes, err)
	}
	return boxes, nil
}

// SyncResult counts what a catalog sync wrote
type SyncResult struct {
	Boxes int
	Items int
	Odds  int
}

// Sync writes every box of a catalog file into the database in one
// transaction. Boxes are matched by name; their items and odds are replaced.
// Boxes missing from the file are left alone.
func (p *Postgres) Sync(ctx context.Context, f *File) (SyncResult, error) {
	var res SyncResult
	tx, err := p.db.Begin(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", ErrContextSyncBegin, err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, b := range f.entries {
		var boxID int
		if err := tx.QueryRow(ctx, upsertBox, b.Name, b.Price, b.PriceGolden, b.Image).Scan(&boxID); err != nil {
			return res, fmt.Errorf("%s %q: %w", ErrContextSyncBox, b.Name, err)
		}

		batch := &pgx.Batch{}
		batch.Queue(deleteBoxItems, boxID)
		batch.Queue(deleteBoxOdds, boxID)
		for _, it := range b.Items {
			batch.Queue(insertBoxItem, boxID, it.Name, it.Value, it.Tier, it.Image)
		}
		for _, o := range b.Odds {
			batch.Queue(insertBoxOdds, boxID, o.Tier, o.Raw, o.Golden)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return res, fmt.Errorf("%s %q: %w", ErrContextSyncBox, b.Name, err)
		}

		res.Boxes++
		res.Items += len(b.Items)
		res.Odds += len(b.Odds)
	}

	if err := tx.Commit(ctx); err != nil {
		return res, fmt.Errorf("%s: %w", ErrContextSyncCommit, err)
	}
	logger.FromContext(ctx).Info(LogMsgCatalogSynced, "boxes", res.Boxes, "items", res.Items, "odds", res.Odds)
	return res, nil
}
