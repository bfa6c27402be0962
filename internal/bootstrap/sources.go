package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/BrandishReveal_Go/internal/catalog"
	"github.com/osse101/BrandishReveal_Go/internal/config"
	"github.com/osse101/BrandishReveal_Go/internal/database"
	"github.com/osse101/BrandishReveal_Go/internal/outcome"
	"github.com/osse101/BrandishReveal_Go/internal/validation"
)

const emptyCatalog = `{"boxes": []}`

// BoxCatalog is a catalog that can also list its boxes
type BoxCatalog interface {
	catalog.ItemCatalog
	Boxes(ctx context.Context) ([]catalog.Box, error)
}

// Sources holds where catalogs and outcomes come from. DB is nil in file mode.
type Sources struct {
	DB       *pgxpool.Pool
	Boxes    BoxCatalog
	Catalog  *catalog.Cached
	Outcomes outcome.Provider
}

// InitializeSources connects to the database when one is configured and
// falls back on the catalog file and outcome directory otherwise. Stored
// outcomes are wrapped in a poller so a battle that is still settling is
// waited for.
func InitializeSources(ctx context.Context, cfg *config.Config) (*Sources, error) {
	var (
		src = &Sources{}
		raw outcome.Provider
	)

	if cfg.HasDatabase() {
		db, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxIdle, cfg.DBMaxLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDatabase, err)
		}
		if err := database.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrateDatabase, err)
		}

		pg := catalog.NewPostgres(db)
		if cfg.CatalogSync {
			if _, err := SyncCatalog(ctx, pg, cfg.CatalogPath); err != nil {
				db.Close()
				return nil, err
			}
		}

		src.DB = db
		src.Boxes = pg
		raw = outcome.NewPostgres(db)
		slog.Info(LogMsgUsingDatabaseSources, "db_host", cfg.DBHost, "db_name", cfg.DBName)
	} else {
		f, err := catalog.LoadFile(cfg.CatalogPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// reels still spin, on Mystery filler
			f, err = catalog.ParseFile([]byte(emptyCatalog))
		case err == nil:
			if verr := validation.NewSchemaValidator().ValidateFile(cfg.CatalogPath, validation.SchemaCatalog); verr != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgInvalidCatalog, verr)
			}
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedLoadCatalog, err)
		}
		src.Boxes = f
		raw = outcome.NewFile(cfg.OutcomesDir)
		slog.Info(LogMsgUsingFileSources, "catalog", cfg.CatalogPath, "outcomes", cfg.OutcomesDir)
	}

	src.Catalog = catalog.NewCached(src.Boxes, cfg.CatalogCacheSize, cfg.CatalogCacheTTL)
	src.Outcomes = outcome.NewPoller(raw, cfg.PollInterval, cfg.PollTimeout)
	return src, nil
}
