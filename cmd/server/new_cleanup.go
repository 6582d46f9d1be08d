package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// shutdowner abstracts the telemetry providers so tests can verify cleanup
// order without real exporters.
type shutdowner interface {
	Shutdown(context.Context) error
}

// newCleanup closes the store first, then flushes telemetry so the store's
// final log lines are still exported. Each flush gets its own timeout.
func newCleanup(telemetry shutdowner, store io.Closer, flushTimeout time.Duration) func() {
	return func() {
		if store != nil {
			if err := store.Close(); err != nil {
				slog.Error("failed to close store", slog.String("error", err.Error()))
			}
		}

		if telemetry != nil {
			ctx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			defer cancel()
			if err := telemetry.Shutdown(ctx); err != nil {
				slog.Error("failed to shut down telemetry providers", slog.String("error", err.Error()))
			}
		}
	}
}
