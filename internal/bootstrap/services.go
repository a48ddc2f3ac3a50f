package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/neo84716/ro-data/internal/config"
	"github.com/neo84716/ro-data/internal/draw"
	"github.com/neo84716/ro-data/internal/enchant"
	"github.com/neo84716/ro-data/internal/exptable"
	"github.com/neo84716/ro-data/internal/gacha"
	"github.com/neo84716/ro-data/internal/server"
	"github.com/neo84716/ro-data/internal/tracker"
	"github.com/neo84716/ro-data/internal/utils"
	"github.com/neo84716/ro-data/internal/validation"
)

// NewEngine builds the fixed-percent engine both simulators draw with.
// A non-zero seed makes every run reproducible.
func NewEngine(seed int64) *draw.Engine {
	opts := []draw.Option{draw.WithMode(draw.ModeFixedPercent)}
	if seed != 0 {
		slog.Info(LogMsgSeededEngine, "seed", seed)
		opts = append(opts, draw.WithSource(utils.NewSeededFloat(seed)))
	}
	return draw.NewEngine(opts...)
}

// InitializeServices loads the data files and builds every backend the router needs
func InitializeServices(ctx context.Context, cfg *config.Config, store *RecordStore) (server.Services, error) {
	if err := validateDataFiles(cfg); err != nil {
		return server.Services{}, err
	}

	table, err := exptable.Load(cfg.ExpTablePath)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgLoadExpTable, err)
	}
	if err := table.Check(ctx, cfg.ExpTableStrict); err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgLoadExpTable, err)
	}
	slog.Info(LogMsgExpTableLoaded, "path", cfg.ExpTablePath, "strict", cfg.ExpTableStrict)

	pools, err := gacha.LoadPools(cfg.GachaPoolsPath)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgLoadPools, err)
	}
	slog.Info(LogMsgPoolsLoaded, "count", len(pools))

	profiles, err := enchant.LoadProfiles(cfg.EnchantProfilesPath)
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgLoadProfiles, err)
	}
	slog.Info(LogMsgProfilesLoaded, "count", len(profiles))

	engine := NewEngine(cfg.RandomSeed)

	gachaSvc, err := gacha.NewService(ctx, engine, pools, gacha.Config{
		UnitCost:  cfg.GachaUnitCost,
		ChunkSize: cfg.SeekChunkSize,
		HardCap:   cfg.SeekHardCap,
		CacheSize: cfg.SessionCacheSize,
		TTL:       cfg.SessionTTL,
	})
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgLoadPools, err)
	}

	enchantSvc, err := enchant.NewService(ctx, engine, profiles, enchant.Config{
		ChunkSize: cfg.SeekChunkSize,
		HardCap:   cfg.SeekHardCap,
		CacheSize: cfg.SessionCacheSize,
		TTL:       cfg.SessionTTL,
	})
	if err != nil {
		return server.Services{}, fmt.Errorf("%s: %w", ErrMsgLoadProfiles, err)
	}

	return server.Services{
		Gacha:    gachaSvc,
		Enchant:  enchantSvc,
		Tracker:  tracker.NewService(table, store.Records),
		ExpTable: table,
		Store:    store.Records,
	}, nil
}

// validateDataFiles checks every configured data file against its schema
// before any of them is decoded
func validateDataFiles(cfg *config.Config) error {
	v := validation.NewSchemaValidator()
	files := []struct {
		path, schema, errMsg string
	}{
		{cfg.GachaPoolsPath, validation.SchemaGachaPools, ErrMsgLoadPools},
		{cfg.EnchantProfilesPath, validation.SchemaEnchantProfiles, ErrMsgLoadProfiles},
		{cfg.ExpTablePath, validation.SchemaExpTable, ErrMsgLoadExpTable},
	}
	for _, f := range files {
		if f.path == "" {
			continue
		}
		if err := v.ValidateFile(f.path, f.schema); err != nil {
			return fmt.Errorf("%s: %w", f.errMsg, err)
		}
	}
	return nil
}
