package labor

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// OVERTIME SPLITTER
// =============================================================================

// OvertimeSplitter separates a day's hours into regular and overtime buckets.
//
// The split is per (event-day, employee), not a running daily total: two
// 5-hour events on the same day never trigger an 8-hour threshold. This
// mirrors the organization's established payroll treatment.
type OvertimeSplitter struct {
	// Threshold is the regular-hours ceiling per day. nil disables overtime.
	Threshold *decimal.Decimal

	// Multiplier applies to the rate for overtime hours.
	Multiplier decimal.Decimal
}

// HoursSplit is the outcome of splitting one day's hours.
type HoursSplit struct {
	Regular            decimal.Decimal
	Overtime           decimal.Decimal
	RegularMultiplier  decimal.Decimal
	OvertimeMultiplier decimal.Decimal
}

// Split divides hours at the threshold. At-or-below-threshold hours are all
// regular at multiplier 1; the excess is overtime at the configured multiplier.
func (s OvertimeSplitter) Split(hours decimal.Decimal) HoursSplit {
	one := decimal.NewFromInt(1)

	if s.Threshold == nil || hours.LessThanOrEqual(*s.Threshold) {
		return HoursSplit{
			Regular:            hours,
			Overtime:           decimal.Zero,
			RegularMultiplier:  one,
			OvertimeMultiplier: decimal.Zero,
		}
	}

	return HoursSplit{
		Regular:            *s.Threshold,
		Overtime:           hours.Sub(*s.Threshold),
		RegularMultiplier:  one,
		OvertimeMultiplier: s.Multiplier,
	}
}
