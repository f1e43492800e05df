/*
driver.go - Window rebuild orchestration

PURPOSE:
  Rebuild is the engine's single entry point: given a closed [startDate,
  endDate] window it recomputes every labor row for that window and replaces
  the ledger contents atomically.

ALGORITHM:
  1. Validate the window (before any store access).
  2. Snapshot reference data: employees and the versioned rate history.
  3. Fetch events overlapping the window's UTC bounds.
  4. For each event: split its span into local day segments, build the
     effective roster per day, determine hours, resolve the rate, split
     regular/overtime, and emit one row per (day, event, employee).
  5. Delete-and-reinsert the whole window in one store transaction.

FAILURE SEMANTICS:
  - Malformed/inverted windows are rejected as WindowError, no I/O done.
  - Missing rates are not fatal: the (employee, day) pairing is recorded
    once in the result and the row is skipped.
  - Any store error aborts the rebuild; the ledger transaction rolls back,
    so a partial window is never observable.

CONCURRENCY:
  Rebuilds are serialized on a driver-level mutex. The replace is a full
  window overwrite, not a merge, so concurrent overlapping rebuilds would
  race on which replacement wins.
*/
package labor

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"
)

// Stores bundles the persistence dependencies of the driver.
type Stores struct {
	Events      EventStore
	Assignments AssignmentStore
	Employees   EmployeeStore
	Rates       RateStore
	Ledger      LedgerStore
}

// RebuildObserver receives the outcome of each rebuild run. Implemented by
// the metrics package; a nil observer is a no-op.
type RebuildObserver interface {
	ObserveRebuild(elapsed time.Duration, rowsInserted, missingRates int, err error)
}

// Driver orchestrates window rebuilds.
type Driver struct {
	cfg    Config
	stores Stores
	log    *slog.Logger
	obs    RebuildObserver

	// Serializes rebuilds: the ledger replace is a full-window overwrite.
	mu sync.Mutex
}

type DriverOption func(*Driver)

// WithLogger sets the structured logger used by the driver.
func WithLogger(l *slog.Logger) DriverOption {
	return func(d *Driver) { d.log = l }
}

// WithObserver registers a rebuild outcome observer.
func WithObserver(o RebuildObserver) DriverOption {
	return func(d *Driver) { d.obs = o }
}

// NewDriver validates the configuration and builds a driver.
func NewDriver(cfg Config, stores Stores, opts ...DriverOption) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{cfg: cfg, stores: stores, log: slog.Default()}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MissingRate is an (employee, day) pairing with hours worked but no
// resolvable pay rate.
type MissingRate struct {
	EmployeeID EmployeeID `json:"employeeId"`
	Day        Day        `json:"day"`
}

// RebuildResult reports what a rebuild wrote and which pairings it skipped.
type RebuildResult struct {
	RowsInserted int           `json:"rowsInserted"`
	MissingRates []MissingRate `json:"missingRates"`
}

// Rebuild recomputes and atomically replaces the ledger for the closed
// window [startDate, endDate], both YYYY-MM-DD.
func (d *Driver) Rebuild(ctx context.Context, startDate, endDate string) (*RebuildResult, error) {
	startDay, err := ParseDay(startDate)
	if err != nil {
		return nil, &WindowError{StartDate: startDate, EndDate: endDate, Reason: "malformed start date"}
	}
	endDay, err := ParseDay(endDate)
	if err != nil {
		return nil, &WindowError{StartDate: startDate, EndDate: endDate, Reason: "malformed end date"}
	}
	if endDay.Before(startDay) {
		return nil, &WindowError{StartDate: startDate, EndDate: endDate, Reason: "end date precedes start date"}
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	began := time.Now()
	result, err := d.rebuildWindow(ctx, startDay, endDay)
	if d.obs != nil {
		rows, missing := 0, 0
		if result != nil {
			rows, missing = result.RowsInserted, len(result.MissingRates)
		}
		d.obs.ObserveRebuild(time.Since(began), rows, missing, err)
	}
	if err != nil {
		d.log.Error("rebuild failed",
			slog.String("start", startDate), slog.String("end", endDate), slog.Any("error", err))
		return nil, err
	}

	d.log.Info("rebuild complete",
		slog.String("start", startDate), slog.String("end", endDate),
		slog.Int("rows", result.RowsInserted), slog.Int("missing_rates", len(result.MissingRates)),
		slog.Duration("elapsed", time.Since(began)))
	return result, nil
}

func (d *Driver) rebuildWindow(ctx context.Context, startDay, endDay Day) (*RebuildResult, error) {
	windowStartUTC, windowEndUTC := WindowBoundsUTC(startDay, endDay, d.cfg.Location)

	events, err := d.stores.Events.ListOverlapping(ctx, windowStartUTC, windowEndUTC)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}

	// A window with no events is legitimately emptied, not left stale.
	if len(events) == 0 {
		if err := d.stores.Ledger.ReplaceWindow(ctx, startDay, endDay, nil); err != nil {
			return nil, fmt.Errorf("clear ledger window: %w", err)
		}
		return &RebuildResult{RowsInserted: 0, MissingRates: []MissingRate{}}, nil
	}

	// Read-only reference snapshots for the whole run.
	employees, err := d.stores.Employees.ListEmployees(ctx)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	rateHistory, err := d.stores.Rates.ListRates(ctx)
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}

	rates := NewRateTable(employees, rateHistory)
	names := make(map[EmployeeID]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.Name
	}

	sort.Slice(events, func(i, j int) bool { return events[i].ID < events[j].ID })

	var rows []LaborDailyRow
	missing := make(map[MissingRate]struct{})

	for _, event := range events {
		if event.Degenerate() {
			continue
		}

		eventRows, err := d.computeEventRows(ctx, event, startDay, endDay, rates, names, missing)
		if err != nil {
			return nil, err
		}
		rows = append(rows, eventRows...)
	}

	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })

	if err := d.stores.Ledger.ReplaceWindow(ctx, startDay, endDay, rows); err != nil {
		return nil, fmt.Errorf("replace ledger window: %w", err)
	}

	return &RebuildResult{
		RowsInserted: len(rows),
		MissingRates: sortedMissing(missing),
	}, nil
}

func (d *Driver) computeEventRows(
	ctx context.Context,
	event Event,
	startDay, endDay Day,
	rates *RateTable,
	names map[EmployeeID]string,
	missing map[MissingRate]struct{},
) ([]LaborDailyRow, error) {
	assignments, err := d.stores.Assignments.ListByEvent(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list assignments for event %s: %w", event.ID, err)
	}

	splitter := d.cfg.Overtime()

	var rows []LaborDailyRow
	for _, segment := range SplitByDay(event.StartsAt, event.EndsAt, d.cfg.Location) {
		// Clip to the requested window: an event may overhang either edge.
		if segment.Day.Before(startDay) || segment.Day.After(endDay) {
			continue
		}

		roster := EffectiveRoster(assignments, segment.Day)
		for _, employeeID := range sortedEmployeeIDs(roster) {
			assignment := roster[employeeID]

			hours := segment.Hours
			if d.cfg.DefaultDayHours.LessThan(hours) {
				hours = d.cfg.DefaultDayHours
			}
			if assignment.Hours != nil {
				hours = *assignment.Hours
			}
			hours = hours.Round(2)
			if !hours.IsPositive() {
				continue
			}

			rate, ok := rates.Resolve(employeeID, segment.Day)
			if !ok {
				missing[MissingRate{EmployeeID: employeeID, Day: segment.Day}] = struct{}{}
				continue
			}

			split := splitter.Split(hours)
			regularCost := split.Regular.Mul(rate).Round(2)
			overtimeCost := split.Overtime.Mul(rate).Mul(split.OvertimeMultiplier).Round(2)

			rows = append(rows, LaborDailyRow{
				ID:                 RowID(segment.Day, event.ID, employeeID),
				JobID:              event.JobID,
				JobName:            event.JobName,
				Day:                segment.Day,
				EventID:            event.ID,
				EventTitle:         event.Title,
				EmployeeID:         employeeID,
				EmployeeName:       names[employeeID],
				SourceAssignmentID: assignment.ID,
				Hours:              hours,
				RegularHours:       split.Regular,
				OvertimeHours:      split.Overtime,
				Rate:               rate,
				RegularCost:        regularCost,
				OvertimeCost:       overtimeCost,
				TotalCost:          regularCost.Add(overtimeCost),
				Note:               assignment.Note,
			})
		}
	}
	return rows, nil
}

func sortedEmployeeIDs(roster map[EmployeeID]Assignment) []EmployeeID {
	ids := make([]EmployeeID, 0, len(roster))
	for id := range roster {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

func sortedMissing(set map[MissingRate]struct{}) []MissingRate {
	out := make([]MissingRate, 0, len(set))
	for mr := range set {
		out = append(out, mr)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].EmployeeID != out[j].EmployeeID {
			return out[i].EmployeeID < out[j].EmployeeID
		}
		return out[i].Day.Before(out[j].Day)
	})
	return out
}
