/*
store.go - Persistence interfaces consumed by the aggregation driver

PURPOSE:
  The driver reads scheduling data through narrow read-only interfaces and
  writes the ledger through LedgerStore. Implementations:
  - store/sqlite: production SQLite store
  - labor/store:  in-memory store for tests and demos
*/
package labor

import (
	"context"
	"time"
)

// EventStore reads scheduled events.
type EventStore interface {
	// ListOverlapping returns events whose [StartsAt, EndsAt) intersects
	// [startUTC, endUTC).
	ListOverlapping(ctx context.Context, startUTC, endUTC time.Time) ([]Event, error)
}

// AssignmentStore reads crew assignments.
type AssignmentStore interface {
	ListByEvent(ctx context.Context, eventID EventID) ([]Assignment, error)
}

// EmployeeStore reads employee reference data.
type EmployeeStore interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
}

// RateStore reads the versioned rate history.
type RateStore interface {
	ListRates(ctx context.Context) ([]HourlyRate, error)
}

// LedgerStore persists computed labor rows.
//
// ReplaceWindow must atomically delete every row whose day falls in
// [startDay, endDay] and insert the replacement set; on failure the prior
// window contents must remain intact.
type LedgerStore interface {
	ReplaceWindow(ctx context.Context, startDay, endDay Day, rows []LaborDailyRow) error
	ListWindow(ctx context.Context, startDay, endDay Day) ([]LaborDailyRow, error)
}
