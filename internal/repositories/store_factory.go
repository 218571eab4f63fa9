// Package repositories selects the record store backend from configuration.
package repositories

import (
	"context"
	"fmt"
	"log/slog"

	portsrepo "github.com/SscSPs/finance_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/finance_tracker/internal/platform/config"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/pgsql"
	"github.com/SscSPs/finance_tracker/internal/repositories/database/sqlite"
	"github.com/SscSPs/finance_tracker/internal/repositories/file"
	"github.com/SscSPs/finance_tracker/internal/repositories/memory"
	"github.com/SscSPs/finance_tracker/pkg/database"
)

// NewRecordStore opens the backend named by cfg.StoreBackend. The caller
// owns the returned store and must Close it.
func NewRecordStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RecordStore, error) {
	logger = logger.With(slog.String("store_backend", cfg.StoreBackend))

	switch cfg.StoreBackend {
	case config.BackendFile:
		logger.Info("Using flat file record store", slog.String("data_dir", cfg.DataDir))
		store, err := file.NewStore(cfg.DataDir, cfg.BackupDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open file store: %w", err)
		}
		return store, nil

	case config.BackendSQLite:
		logger.Info("Using SQLite record store", slog.String("path", cfg.SQLitePath))
		store, err := sqlite.NewStore(cfg.SQLitePath, cfg.BackupDir, logger)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		return store, nil

	case config.BackendPostgres:
		if err := pgsql.RunMigrations(cfg.DatabaseURL, logger); err != nil {
			return nil, fmt.Errorf("run postgres migrations: %w", err)
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, fmt.Errorf("connect to postgres: %w", err)
		}
		logger.Info("Using PostgreSQL record store")
		return pgsql.NewRecordRepository(pool, logger), nil

	case config.BackendMemory:
		logger.Warn("Using in-memory record store; data is lost on exit")
		return memory.NewStore(), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
}
