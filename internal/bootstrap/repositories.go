package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo84716/ro-data/internal/config"
	"github.com/neo84716/ro-data/internal/database"
	"github.com/neo84716/ro-data/internal/database/memory"
	"github.com/neo84716/ro-data/internal/database/postgres"
	"github.com/neo84716/ro-data/internal/database/sqlite"
	"github.com/neo84716/ro-data/internal/repository"
)

// RecordStore is the migrated tracking record repository plus its release function
type RecordStore struct {
	Records repository.TrackingRecord
	Close   func() error
}

// OpenRecordStore connects to the configured driver and applies migrations
func OpenRecordStore(ctx context.Context, cfg *config.Config) (*RecordStore, error) {
	switch cfg.DBDriver {
	case database.DriverSQLite:
		db, err := database.OpenSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenRecordStore, err)
		}
		if err := database.Migrate(ctx, db, database.DriverSQLite); err != nil {
			db.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenRecordStore, err)
		}
		slog.Info(LogMsgRecordStoreReady, "driver", cfg.DBDriver, "path", cfg.SQLitePath)
		return &RecordStore{Records: sqlite.NewTrackingRepository(db), Close: db.Close}, nil

	case database.DriverMemory:
		slog.Info(LogMsgRecordStoreReady, "driver", cfg.DBDriver)
		return &RecordStore{
			Records: memory.NewTrackingRepository(),
			Close:   func() error { return nil },
		}, nil

	case database.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), cfg.DBMaxConns, cfg.DBMaxConnIdle, cfg.DBMaxConnLife)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenRecordStore, err)
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenRecordStore, err)
		}
		slog.Info(LogMsgRecordStoreReady, "driver", cfg.DBDriver, "host", cfg.DBHost)
		return &RecordStore{
			Records: postgres.NewTrackingRepository(pool),
			Close: func() error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("%s: %s: %q", ErrMsgOpenRecordStore, database.ErrMsgUnsupportedDriver, cfg.DBDriver)
}
