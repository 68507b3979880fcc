// Package config loads colest settings from a TOML file with an environment
// variable overlay.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

// Config holds all colest configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Appearance AppearanceConfig `toml:"appearance"`
	RPP        RPPConfig        `toml:"rpp"`
	Lifestyle  LifestyleConfig  `toml:"lifestyle"`
	Income     IncomeConfig     `toml:"income"`
	Server     ServerConfig     `toml:"server"`
}

// GeneralConfig holds the defaults used when flags are omitted.
type GeneralConfig struct {
	DefaultState string   `toml:"default_state,omitempty"`
	BasketUSD    *float64 `toml:"basket_usd,omitempty"`  // monthly baseline for `estimate`
	BasketFile   string   `toml:"basket_file,omitempty"` // JSON line-item basket
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// RPPConfig controls the price parity table.
type RPPConfig struct {
	SourceURL     string             `toml:"source_url,omitempty"`
	CacheTTLHours int                `toml:"cache_ttl_hours"`
	Overrides     map[string]float64 `toml:"overrides,omitempty"` // state -> RPP index
}

// CacheTTL returns the cache lifetime as a duration.
func (r RPPConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLHours) * time.Hour
}

// LifestyleConfig holds default selections and multiplier overrides.
type LifestyleConfig struct {
	Defaults  map[string]string             `toml:"defaults,omitempty"`  // category -> tier
	Overrides map[string]map[string]float64 `toml:"overrides,omitempty"` // category -> tier -> multiplier
}

// IncomeConfig holds the defaults for `colest income`.
type IncomeConfig struct {
	SavingsRate float64 `toml:"savings_rate"`
	TaxRate     float64 `toml:"tax_rate"`
	Buffer      float64 `toml:"buffer"`
}

// ServerConfig holds `colest serve` settings.
type ServerConfig struct {
	Addr      string `toml:"addr"`
	LogFormat string `toml:"log_format"` // "auto", "console" or "json"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultState: "New Jersey",
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		RPP: RPPConfig{
			CacheTTLHours: 24,
		},
		Income: IncomeConfig{
			SavingsRate: 0.15,
			TaxRate:     0.22,
			Buffer:      0.05,
		},
		Server: ServerConfig{
			Addr:      "127.0.0.1:8080",
			LogFormat: "auto",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "colest")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "colest")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file and applies COLEST_* environment variables,
// returning defaults if the file doesn't exist.
func Load() (Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if err != nil {
		return cfg, err
	}
	if err := ApplyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LoadFile reads a config file without the environment overlay.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path) //nolint:gosec // path is the user's config file
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	return SaveFile(ConfigPath(), cfg)
}

// SaveFile writes the config to path, creating parent directories.
func SaveFile(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
