package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rezkam/calendar/internal/application/calendar"
	"github.com/rezkam/calendar/internal/config"
	httpserver "github.com/rezkam/calendar/internal/infrastructure/http"
	"github.com/rezkam/calendar/internal/infrastructure/http/handler"
	"github.com/rezkam/calendar/internal/infrastructure/observability"
	"github.com/rezkam/calendar/internal/recurrence"
)

// telemetryFlushTimeout bounds provider shutdown when the collector is unreachable.
const telemetryFlushTimeout = 5 * time.Second

func main() {
	if err := run(); err != nil {
		// slog may not be configured yet
		fmt.Fprintf(os.Stderr, "failed to run: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	providers, logger, err := observability.Init(ctx, observability.Config{
		Enabled:     cfg.Observability.OTelEnabled,
		ServiceName: cfg.Observability.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("failed to init observability: %w", err)
	}
	slog.SetDefault(logger)

	store, err := openStore(ctx, cfg.Storage)
	if err != nil {
		newCleanup(providers, nil, telemetryFlushTimeout)()
		return err
	}

	cleanup := newCleanup(providers, store, telemetryFlushTimeout)
	defer cleanup()

	horizon, err := cfg.Recurrence.HorizonDate()
	if err != nil {
		return err
	}
	generator := recurrence.NewGenerator(recurrence.NewPolicy(horizon))
	svc := calendar.NewService(store, generator)

	apiHandler, err := handler.NewOpenAPIRouter(svc)
	if err != nil {
		return err
	}

	server := httpserver.NewAPIServer(apiHandler, httpserver.ServerConfig{
		Host:              cfg.HTTP.Host,
		Port:              cfg.HTTP.Port,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MaxBodyBytes:      cfg.HTTP.MaxBodyBytes,
	})

	slog.InfoContext(ctx, "starting calendar service",
		"storage", cfg.Storage.Type,
		"horizon", horizon.String())

	errResult := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errResult <- fmt.Errorf("failed to serve HTTP: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		slog.InfoContext(ctx, "shutting down")

		// ctx is already cancelled; give in-flight requests a fresh window
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "failed to shutdown HTTP server", "error", err)
		}
		return nil
	case err := <-errResult:
		return err
	}
}

// maskPassword masks the password in a connection string for logging.
func maskPassword(connStr string) string {
	u, err := url.Parse(connStr)
	if err != nil {
		return "[REDACTED]"
	}
	if u.User != nil {
		if _, hasPassword := u.User.Password(); hasPassword {
			u.User = url.UserPassword(u.User.Username(), "xxxxxx")
		}
	}
	return u.String()
}
