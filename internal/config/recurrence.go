package config

import (
	"fmt"

	"cloud.google.com/go/civil"
)

// RecurrenceConfig holds the recurrence policy shared by generation and validation.
type RecurrenceConfig struct {
	// Horizon is the furthest date (YYYY-MM-DD) any recurrence may reach.
	Horizon string `env:"CAL_RECURRENCE_HORIZON" default:"2025-12-31"`
}

// Validate validates the recurrence configuration.
func (c *RecurrenceConfig) Validate() error {
	if _, err := c.HorizonDate(); err != nil {
		return err
	}
	return nil
}

// HorizonDate returns the parsed horizon.
func (c *RecurrenceConfig) HorizonDate() (civil.Date, error) {
	d, err := civil.ParseDate(c.Horizon)
	if err != nil {
		return civil.Date{}, fmt.Errorf("invalid CAL_RECURRENCE_HORIZON %q: %w", c.Horizon, err)
	}
	return d, nil
}
