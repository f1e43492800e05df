/*
Package labor implements the daily labor-cost aggregation engine.

PURPOSE:
  Converts raw scheduling data (events, crew assignments) into a day-by-day,
  employee-by-employee labor cost ledger. The engine honors time-zone-correct
  day boundaries, time-versioned pay rates, per-day overtime rules, and
  per-day assignment overrides.

KEY CONCEPTS IN THIS FILE (types.go):
  - Day: A local calendar day, stored as UTC midnight (ledger key component)
  - Event: A scheduled job occurrence with a UTC interval
  - Assignment: A crew member's participation, optionally scoped to one day
  - HourlyRate: An effective-dated entry in an employee's rate history
  - LaborDailyRow: The computed ledger entry, one per (day, event, employee)

DESIGN PRINCIPLES:
  1. Determinism: Row ids are pure functions of (day, event, employee), so a
     rebuild with unchanged inputs reproduces byte-identical rows.
  2. Precision: Uses decimal.Decimal for all hours and currency.
  3. Replaceability: Ledger rows are never updated in place; the driver
     deletes and reinserts a full date window atomically.

SEE ALSO:
  - dayspan.go:  UTC interval -> local day segments
  - rates.go:    Effective-dated rate resolution
  - overtime.go: Regular/overtime hour splitting
  - roster.go:   Base/override assignment merging
  - driver.go:   Window rebuild orchestration
*/
package labor

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EventID string
type EmployeeID string
type AssignmentID string
type JobID string

// =============================================================================
// DAY - Local calendar day, normalized to UTC midnight
// =============================================================================

// Day is a calendar day in the organization's time zone, stored as a UTC
// midnight instant so it can be compared, ordered, and used as a storage key.
type Day struct {
	Time time.Time
}

const dayFormat = "2006-01-02"

func NewDay(year int, month time.Month, day int) Day {
	return Day{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DayOf returns the local calendar day containing the instant t in loc.
func DayOf(t time.Time, loc *time.Location) Day {
	local := t.In(loc)
	return NewDay(local.Year(), local.Month(), local.Day())
}

// ParseDay parses a YYYY-MM-DD string.
func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Day{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", s, err)
	}
	return Day{Time: t.UTC()}, nil
}

func (d Day) String() string    { return d.Time.Format(dayFormat) }
func (d Day) Before(o Day) bool { return d.Time.Before(o.Time) }
func (d Day) After(o Day) bool  { return d.Time.After(o.Time) }
func (d Day) Equal(o Day) bool  { return d.Time.Equal(o.Time) }
func (d Day) AddDays(n int) Day { return Day{Time: d.Time.AddDate(0, 0, n)} }
func (d Day) IsZero() bool      { return d.Time.IsZero() }

func (d Day) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Day) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid day value %s", s)
	}
	parsed, err := ParseDay(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// =============================================================================
// SCHEDULING INPUTS - Read-only snapshots owned by the scheduling subsystem
// =============================================================================

// Event is a scheduled job occurrence. EndsAt is exclusive.
type Event struct {
	ID       EventID
	JobID    JobID
	JobName  string
	Title    string
	StartsAt time.Time // UTC
	EndsAt   time.Time // UTC, exclusive
}

// Degenerate reports whether the event covers no time at all. Such events are
// legitimate no-op scheduling states, not corrupt data.
func (e Event) Degenerate() bool {
	return !e.StartsAt.Before(e.EndsAt)
}

// Assignment is a crew member's participation in an Event.
//
// An assignment with no DayOverride is a "base" assignment applying to every
// day the event spans. An assignment with DayOverride applies only to that
// day and, for that employee on that day, replaces any base assignment.
type Assignment struct {
	ID          AssignmentID
	EventID     EventID
	EmployeeID  EmployeeID
	DayOverride *Day
	Hours       *decimal.Decimal // explicit hours; nil = computed from segment
	Note        string
}

// Employee carries the default hourly rate used only when no versioned
// rate entry applies.
type Employee struct {
	ID          EmployeeID
	Name        string
	DefaultRate *decimal.Decimal
}

// HourlyRate is one entry in an employee's rate history. The most recent
// entry at or before a given day wins.
type HourlyRate struct {
	EmployeeID    EmployeeID
	EffectiveDate Day
	Rate          decimal.Decimal
}

// =============================================================================
// LEDGER OUTPUT
// =============================================================================

// LaborDailyRow is the computed ledger entry: exactly one per
// (day, event, employee) triple with a resolvable rate.
type LaborDailyRow struct {
	ID                 string
	JobID              JobID
	JobName            string
	Day                Day
	EventID            EventID
	EventTitle         string
	EmployeeID         EmployeeID
	EmployeeName       string
	SourceAssignmentID AssignmentID
	Hours              decimal.Decimal
	RegularHours       decimal.Decimal
	OvertimeHours      decimal.Decimal
	Rate               decimal.Decimal
	RegularCost        decimal.Decimal
	OvertimeCost       decimal.Decimal
	TotalCost          decimal.Decimal
	Note               string
}

// RowID builds the deterministic ledger row id. The "{day}-{eventId}-{employeeId}"
// format is a public contract that downstream reporting joins rely on.
func RowID(day Day, eventID EventID, employeeID EmployeeID) string {
	return fmt.Sprintf("%s-%s-%s", day, eventID, employeeID)
}
