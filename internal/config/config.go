package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds the service settings, all read from the environment.
type Config struct {
	Port             int    `env:"PORT" env-default:"3000" env-description:"HTTP listening port"`
	LogLevel         string `env:"LOG_LEVEL" env-default:"info" env-description:"Log level (debug, info, warn, error)"`
	Env              string `env:"APP_ENV" env-default:"production" env-description:"development enables console log output"`
	CollisionRetries int    `env:"SHORTCODE_RETRIES" env-default:"5" env-description:"Short code collision retries, 0 overwrites on collision"`
}

// NewConfig reads the configuration from environment variables.
func NewConfig() (*Config, error) {
	var cfg Config

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %d", cfg.Port)
	}

	if cfg.CollisionRetries < 0 {
		return nil, fmt.Errorf("invalid SHORTCODE_RETRIES %d", cfg.CollisionRetries)
	}

	return &cfg, nil
}

// ServerAddress returns the listen address for the HTTP server.
func (c *Config) ServerAddress() string {
	return net.JoinHostPort("", strconv.Itoa(c.Port))
}

// Usage describes the environment variables understood by NewConfig.
func Usage() string {
	var cfg Config
	text, err := cleanenv.GetDescription(&cfg, nil)
	if err != nil {
		return ""
	}
	return text
}
