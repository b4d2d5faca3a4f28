// Package config loads runtime settings for the paramform binaries from the
// environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server and CLI settings. Flags override these values.
type Config struct {
	Addr            string        `env:"PARAMFORM_ADDR" envDefault:":8080"`
	BasePath        string        `env:"PARAMFORM_BASE_PATH" envDefault:"/generate"`
	SchemaFile      string        `env:"PARAMFORM_SCHEMA"`
	Title           string        `env:"PARAMFORM_TITLE" envDefault:"Stereogram"`
	LogLevel        string        `env:"PARAMFORM_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"PARAMFORM_LOG_FORMAT" envDefault:"text"`
	ShutdownTimeout time.Duration `env:"PARAMFORM_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

// Load parses the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalise()
}

// LoadFrom parses the supplied environment map instead of the process
// environment.
func LoadFrom(environment map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environment}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalise()
}

func (c Config) normalise() (Config, error) {
	c.BasePath = strings.TrimSpace(c.BasePath)
	if c.BasePath == "" {
		return Config{}, fmt.Errorf("config: PARAMFORM_BASE_PATH must not be empty")
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
		c.LogFormat = strings.ToLower(c.LogFormat)
	default:
		return Config{}, fmt.Errorf("config: unsupported log format %q", c.LogFormat)
	}
	if c.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("config: shutdown timeout must be positive")
	}
	return c, nil
}
