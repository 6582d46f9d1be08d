package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/rezkam/calendar/internal/application/calendar"
	"github.com/rezkam/calendar/internal/config"
	"github.com/rezkam/calendar/internal/infrastructure/persistence/postgres"
	"github.com/rezkam/calendar/internal/infrastructure/persistence/sqlite"
)

// repositoryCloser is what both storage backends provide.
type repositoryCloser interface {
	calendar.Repository
	io.Closer
}

// openStore opens the backend selected by CAL_STORAGE_TYPE and runs its migrations.
func openStore(ctx context.Context, cfg config.StorageConfig) (repositoryCloser, error) {
	switch cfg.Type {
	case config.StorageTypeSQLite:
		store, err := sqlite.NewStore(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		slog.InfoContext(ctx, "storage initialized", "type", cfg.Type, "path", cfg.SQLitePath)
		return store, nil

	case config.StorageTypePostgres:
		store, err := postgres.NewStoreWithConfig(ctx, postgres.DBConfig{
			DSN:             cfg.DSN,
			MaxOpenConns:    cfg.MaxOpenConns,
			MaxIdleConns:    cfg.MaxIdleConns,
			ConnMaxLifetime: time.Duration(cfg.ConnMaxLifetime) * time.Second,
			ConnMaxIdleTime: time.Duration(cfg.ConnMaxIdleTime) * time.Second,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		slog.InfoContext(ctx, "storage initialized", "type", cfg.Type, "url", maskPassword(cfg.DSN))
		return store, nil

	default:
		return nil, fmt.Errorf("unsupported storage type %q", cfg.Type)
	}
}
