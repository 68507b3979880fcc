package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvPrefix prefixes every environment variable colest reads.
const EnvPrefix = "COLEST_"

// envOverlay lists the settings that can come from the environment. Unset
// variables leave the file value untouched.
type envOverlay struct {
	State     *string  `env:"STATE"`
	Basket    *float64 `env:"BASKET"`
	Theme     *string  `env:"THEME"`
	SourceURL *string  `env:"RPP_SOURCE_URL"`
	CacheTTL  *int     `env:"RPP_CACHE_TTL_HOURS"`
	Addr      *string  `env:"ADDR"`
	LogFormat *string  `env:"LOG_FORMAT"`
}

// ApplyEnv overlays COLEST_* environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var o envOverlay
	if err := env.ParseWithOptions(&o, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}

	if o.State != nil {
		cfg.General.DefaultState = *o.State
	}
	if o.Basket != nil {
		v := *o.Basket
		cfg.General.BasketUSD = &v
	}
	if o.Theme != nil {
		cfg.Appearance.Theme = *o.Theme
	}
	if o.SourceURL != nil {
		cfg.RPP.SourceURL = *o.SourceURL
	}
	if o.CacheTTL != nil {
		cfg.RPP.CacheTTLHours = *o.CacheTTL
	}
	if o.Addr != nil {
		cfg.Server.Addr = *o.Addr
	}
	if o.LogFormat != nil {
		cfg.Server.LogFormat = *o.LogFormat
	}
	return nil
}
