package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/BrandishReveal_Go/internal/catalog"
	"github.com/osse101/BrandishReveal_Go/internal/validation"
)

// CatalogSyncer writes a parsed catalog file into storage
type CatalogSyncer interface {
	Sync(ctx context.Context, f *catalog.File) (catalog.SyncResult, error)
}

// SyncCatalog loads and validates the catalog file at path and writes it to
// the database.
// Boxes are matched by name; their items and odds are replaced.
func SyncCatalog(ctx context.Context, syncer CatalogSyncer, path string) (catalog.SyncResult, error) {
	slog.Info(LogMsgSyncingCatalog, "path", path)

	f, err := catalog.LoadFile(path)
	if err != nil {
		return catalog.SyncResult{}, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalogSync, err)
	}
	if err := validation.NewSchemaValidator().ValidateFile(path, validation.SchemaCatalog); err != nil {
		return catalog.SyncResult{}, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, err)
	}

	res, err := syncer.Sync(ctx, f)
	if err != nil {
		return catalog.SyncResult{}, fmt.Errorf("%s: %w", ErrMsgFailedSyncCatalog, err)
	}

	if res.Boxes == 0 {
		slog.Info(LogMsgCatalogUnchanged)
		return res, nil
	}
	slog.Info(LogMsgCatalogSynced,
		"boxes", res.Boxes,
		"items", res.Items,
		"odds", res.Odds)
	return res, nil
}
