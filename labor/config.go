package labor

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// ENGINE CONFIGURATION
// =============================================================================

// Config holds the engine's tunables. It is passed explicitly into the
// Driver at construction so multiple configurations can coexist in tests.
type Config struct {
	// Location is the organization's time zone. Day boundaries for every
	// employee are computed in this single zone.
	Location *time.Location

	// DefaultDayHours caps the hours credited to an assignment without
	// explicit hours on any one day.
	DefaultDayHours decimal.Decimal

	// OvertimeThreshold is the daily-hours threshold beyond which hours are
	// paid at the overtime multiplier. nil disables overtime splitting.
	OvertimeThreshold *decimal.Decimal

	// OvertimeMultiplier applies to the resolved rate for overtime hours.
	// Must be > 1 when a threshold is configured.
	OvertimeMultiplier decimal.Decimal
}

// DefaultConfig returns an 8-hour day cap in UTC with overtime disabled.
func DefaultConfig() Config {
	return Config{
		Location:           time.UTC,
		DefaultDayHours:    decimal.NewFromInt(8),
		OvertimeMultiplier: decimal.NewFromFloat(1.5),
	}
}

// Validate checks the configuration for internal consistency.
func (c Config) Validate() error {
	if c.Location == nil {
		return &ConfigError{Field: "Location", Reason: "time zone is required"}
	}
	if !c.DefaultDayHours.IsPositive() {
		return &ConfigError{Field: "DefaultDayHours", Reason: "day cap must be positive"}
	}
	if c.OvertimeThreshold != nil {
		if !c.OvertimeThreshold.IsPositive() {
			return &ConfigError{Field: "OvertimeThreshold", Reason: "threshold must be positive"}
		}
		if c.OvertimeMultiplier.LessThanOrEqual(decimal.NewFromInt(1)) {
			return &ConfigError{Field: "OvertimeMultiplier", Reason: "multiplier must exceed 1"}
		}
	}
	return nil
}

// Overtime builds the splitter described by this configuration.
func (c Config) Overtime() OvertimeSplitter {
	return OvertimeSplitter{
		Threshold:  c.OvertimeThreshold,
		Multiplier: c.OvertimeMultiplier,
	}
}
