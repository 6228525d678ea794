// Package config loads and saves the sipcalc TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/theirongolddev/sipcalc/internal/sip"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment overrides, applied on top of the config file.
const (
	EnvMonthly  = "SIPCALC_MONTHLY"
	EnvYears    = "SIPCALC_YEARS"
	EnvCurrency = "SIPCALC_CURRENCY"
	EnvAddr     = "SIPCALC_ADDR"
)

// Config holds all sipcalc configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	Chart      ChartConfig      `toml:"chart"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds the default projection parameters.
type GeneralConfig struct {
	MonthlyContribution float64 `toml:"monthly_contribution"`
	Years               int     `toml:"years"`
	Currency            string  `toml:"currency"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// ChartConfig sizes exported chart images, in pixels.
type ChartConfig struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr           string   `toml:"addr"`
	AllowedOrigins []string `toml:"allowed_origins,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			MonthlyContribution: sip.DefaultContribution,
			Years:               sip.DefaultYears,
			Currency:            "₹",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Chart: ChartConfig{
			Width:  1000,
			Height: 600,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8787",
			AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		},
	}
}

// Dir returns the XDG-compliant config directory.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sipcalc")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sipcalc")
}

// Path returns the full path to the config file.
func Path() string {
	return filepath.Join(Dir(), "config.toml")
}

// LoadFile reads the config file, returning defaults if it doesn't exist.
// Environment overrides are not applied, so the result is safe to modify
// and Save.
func LoadFile() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return DefaultConfig(), fmt.Errorf("parsing config: %w", err)
		}
	case !os.IsNotExist(err):
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

// Load returns the effective configuration: the config file with
// environment overrides applied. Save a LoadFile result instead, or the
// overrides end up on disk.
func Load() (Config, error) {
	cfg, err := LoadFile()
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadDotEnv reads an optional .env file from the working directory into the
// process environment. Variables already set are not overwritten.
func LoadDotEnv() {
	_ = godotenv.Load()
}

// ApplyEnv overlays the SIPCALC_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := strings.TrimSpace(os.Getenv(EnvMonthly)); v != "" {
		m, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvMonthly, v, err)
		}
		cfg.General.MonthlyContribution = m
	}
	if v := strings.TrimSpace(os.Getenv(EnvYears)); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parsing %s=%q: %w", EnvYears, v, err)
		}
		cfg.General.Years = y
	}
	if v := os.Getenv(EnvCurrency); v != "" {
		cfg.General.Currency = v
	}
	if v := os.Getenv(EnvAddr); v != "" {
		cfg.Server.Addr = v
	}
	return nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}
