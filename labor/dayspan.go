/*
dayspan.go - Time-zone-aware splitting of UTC intervals into day segments

PURPOSE:
  An event spans an arbitrary UTC interval; the ledger is keyed by local
  calendar day. SplitByDay walks the local midnights intersected by the
  interval and emits one (day, hours) segment per day touched.

GUARANTEES:
  - Segments are contiguous, non-overlapping, ordered by day ascending.
  - Segment hours sum to the interval's total elapsed hours.
  - Zero-length overlaps are omitted.

Day boundaries come from zone offset arithmetic at each instant; clock-shift
days in the configured zone are not special-cased.
*/
package labor

import (
	"time"

	"github.com/shopspring/decimal"
)

// DaySegment is a (local day, hours) slice of an event's UTC span.
type DaySegment struct {
	Day   Day
	Hours decimal.Decimal
}

var secondsPerHour = decimal.NewFromInt(3600)

// SplitByDay splits [startUTC, endUTC) into per-day segments in loc.
// Returns nil when the interval is empty or inverted.
func SplitByDay(startUTC, endUTC time.Time, loc *time.Location) []DaySegment {
	if !startUTC.Before(endUTC) {
		return nil
	}

	var segments []DaySegment
	cursor := startUTC
	for cursor.Before(endUTC) {
		day := DayOf(cursor, loc)
		nextMidnight := nextDayStart(cursor, loc)

		segmentEnd := endUTC
		if nextMidnight.Before(segmentEnd) {
			segmentEnd = nextMidnight
		}

		hours := hoursBetween(cursor, segmentEnd)
		if !hours.IsZero() {
			segments = append(segments, DaySegment{Day: day, Hours: hours})
		}
		cursor = nextMidnight
	}
	return segments
}

// DayBoundsUTC returns the UTC instants of the day's local midnight and the
// following local midnight in loc.
func DayBoundsUTC(day Day, loc *time.Location) (start, end time.Time) {
	y, m, d := day.Time.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, loc)
	end = time.Date(y, m, d+1, 0, 0, 0, 0, loc)
	return start.UTC(), end.UTC()
}

// WindowBoundsUTC returns the UTC interval covering [startDay, endDay] as
// local calendar days, end exclusive.
func WindowBoundsUTC(startDay, endDay Day, loc *time.Location) (time.Time, time.Time) {
	start, _ := DayBoundsUTC(startDay, loc)
	_, end := DayBoundsUTC(endDay, loc)
	return start, end
}

func nextDayStart(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, loc)
}

func hoursBetween(from, to time.Time) decimal.Decimal {
	seconds := int64(to.Sub(from) / time.Second)
	return decimal.NewFromInt(seconds).Div(secondsPerHour)
}
