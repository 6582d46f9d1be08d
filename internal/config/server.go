package config

import "time"

// HTTPConfig holds HTTP server configuration.
// Zero values are replaced by the HTTP layer's defaults.
type HTTPConfig struct {
	Host              string        `env:"CAL_HTTP_HOST"`
	Port              string        `env:"CAL_HTTP_PORT"`
	ReadTimeout       time.Duration `env:"CAL_HTTP_READ_TIMEOUT"`
	WriteTimeout      time.Duration `env:"CAL_HTTP_WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `env:"CAL_HTTP_IDLE_TIMEOUT"`
	ReadHeaderTimeout time.Duration `env:"CAL_HTTP_READ_HEADER_TIMEOUT"`
	MaxHeaderBytes    int           `env:"CAL_HTTP_MAX_HEADER_BYTES"`
	MaxBodyBytes      int64         `env:"CAL_HTTP_MAX_BODY_BYTES"`
}
