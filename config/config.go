// Package config defines process configuration and its loading chain.
//
// The engine's own tunables (time zone, day cap, overtime rules) live in
// labor.Config; this package carries them as flat, serializable settings and
// converts them via Engine().
package config

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath is the SQLite database path; ":memory:" for ephemeral runs.
	DBPath string `koanf:"db_path"`

	// Timezone is the organization's IANA zone; day boundaries for every
	// employee are computed in this single zone.
	Timezone string `koanf:"timezone"`

	// DefaultDayHours caps hours per assignment-day without explicit hours.
	DefaultDayHours float64 `koanf:"default_day_hours"`

	// OvertimeThreshold is the daily overtime threshold in hours.
	// Zero or negative disables overtime splitting.
	OvertimeThreshold float64 `koanf:"overtime_threshold"`

	// OvertimeMultiplier applies to overtime hours; must exceed 1 when
	// a threshold is set.
	OvertimeMultiplier float64 `koanf:"overtime_multiplier"`
}

// Default returns the baseline configuration before file/env overrides.
func Default() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":8080",
		DBPath:             "labor.db",
		Timezone:           "America/New_York",
		DefaultDayHours:    8,
		OvertimeThreshold:  0,
		OvertimeMultiplier: 1.5,
	}
}

// Engine converts the flat settings into the engine's configuration,
// resolving the IANA zone.
func (c *Config) Engine() (labor.Config, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return labor.Config{}, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}

	engine := labor.Config{
		Location:           loc,
		DefaultDayHours:    decimal.NewFromFloat(c.DefaultDayHours),
		OvertimeMultiplier: decimal.NewFromFloat(c.OvertimeMultiplier),
	}
	if c.OvertimeThreshold > 0 {
		threshold := decimal.NewFromFloat(c.OvertimeThreshold)
		engine.OvertimeThreshold = &threshold
	}

	if err := engine.Validate(); err != nil {
		return labor.Config{}, err
	}
	return engine, nil
}
