// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds officehub configuration options.
type Config struct {
	// TickRate is the interval between scheduler ticks.
	TickRate time.Duration `env:"OFFICEHUB_TICK_RATE" envDefault:"50ms"`

	// LoadLatency is how many ticks an in-memory scene operation takes.
	LoadLatency int `env:"OFFICEHUB_LOAD_LATENCY" envDefault:"3"`

	// RequiredValues is how many values a player must pick before playing.
	RequiredValues int `env:"OFFICEHUB_REQUIRED_VALUES" envDefault:"3"`

	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed int64 `env:"OFFICEHUB_SEED" envDefault:"0"`

	Telemetry Telemetry
}

// Telemetry configures trace export.
type Telemetry struct {
	Enabled          bool   `env:"OFFICEHUB_OTEL_ENABLED" envDefault:"true"`
	Endpoint         string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	HoneycombAPIKey  string `env:"HONEYCOMB_OFFICEHUB_API_KEY"`
	HoneycombDataset string `env:"HONEYCOMB_OFFICEHUB_DATASET" envDefault:"officehub"`

	// SampleRatio is the fraction of root traces kept, from 0 to 1.
	SampleRatio float64 `env:"OFFICEHUB_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Load reads Config from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if cfg.TickRate <= 0 {
		return Config{}, fmt.Errorf("tick rate must be positive, got %s", cfg.TickRate)
	}
	if cfg.RequiredValues <= 0 {
		return Config{}, fmt.Errorf("required values must be positive, got %d", cfg.RequiredValues)
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables into target.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
