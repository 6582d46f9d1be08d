package config

import (
	"fmt"
	"time"

	"github.com/rezkam/calendar/internal/env"
)

// ServerConfig holds all configuration for the server binary.
type ServerConfig struct {
	HTTP            HTTPConfig
	Storage         StorageConfig
	Recurrence      RecurrenceConfig
	Observability   ObservabilityConfig
	ShutdownTimeout time.Duration `env:"CAL_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoadServerConfig loads and validates server configuration from environment.
func LoadServerConfig() (*ServerConfig, error) {
	cfg := &ServerConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load server config: %w", err)
	}

	return cfg, nil
}
