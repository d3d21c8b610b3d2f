// Package config loads portfolio settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by every portfolio command.
// Flags registered by the CLI override these defaults.
type Config struct {
	DataPath string `env:"PORTFOLIO_DATA" envDefault:"data.xlsx"`
	Sheet    string `env:"PORTFOLIO_SHEET"`
	Table    string `env:"PORTFOLIO_TABLE"`
	TopN     int    `env:"PORTFOLIO_TOP_N" envDefault:"10"`
	Addr     string `env:"PORTFOLIO_ADDR" envDefault:":8080"`
	Currency string `env:"PORTFOLIO_CURRENCY" envDefault:"$"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns a Config populated from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
