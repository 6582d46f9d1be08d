package config

import (
	"fmt"

	"github.com/rezkam/calendar/internal/env"
)

// TestConfig holds configuration for integration tests that need a real database.
type TestConfig struct {
	DSN string `env:"CAL_TEST_DB_DSN"`
}

// Validate requires a DSN so callers can skip when none is configured.
func (c *TestConfig) Validate() error {
	if c.DSN == "" {
		return fmt.Errorf("CAL_TEST_DB_DSN is not set")
	}
	return nil
}

// LoadTestConfig loads and validates test configuration from environment.
func LoadTestConfig() (*TestConfig, error) {
	cfg := &TestConfig{}

	if err := env.Load(cfg); err != nil {
		return nil, fmt.Errorf("failed to load test config: %w", err)
	}

	return cfg, nil
}
