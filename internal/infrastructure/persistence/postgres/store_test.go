package postgres_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rezkam/calendar/internal/application/calendar"
	"github.com/rezkam/calendar/internal/config"
	"github.com/rezkam/calendar/internal/infrastructure/persistence/compliance"
	"github.com/rezkam/calendar/internal/infrastructure/persistence/postgres"
)

func TestPostgresStore_Compliance(t *testing.T) {
	cfg, err := config.LoadTestConfig()
	if err != nil {
		t.Skipf("postgres not configured: %v", err)
	}

	ctx := context.Background()
	store, err := postgres.NewPostgresStore(ctx, cfg.DSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	compliance.RunRepositoryComplianceTest(t, func(t *testing.T) calendar.Repository {
		_, err := store.Pool().Exec(ctx, "TRUNCATE TABLE events")
		require.NoError(t, err)
		return store
	})
}
