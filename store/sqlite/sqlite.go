/*
Package sqlite provides the SQLite-backed implementation of the labor store
interfaces.

PURPOSE:
  Implements every persistence interface the aggregation driver consumes
  (labor.EventStore, AssignmentStore, EmployeeStore, RateStore, LedgerStore)
  plus the reference-data writes the API layer needs. In production the same
  patterns apply to PostgreSQL - only minor SQL dialect differences.

KEY TABLES:
  events:       Scheduled job occurrences (UTC intervals), read-only inputs
  assignments:  Crew participation, optionally scoped to one local day
  employees:    Reference data with optional default hourly rate
  hourly_rates: Effective-dated rate history, one row per (employee, day)
  labor_daily:  The computed ledger; replaced window-at-a-time, never updated

LEDGER DISCIPLINE:
  labor_daily rows are written only through ReplaceWindow: one transaction
  deletes the window and bulk-inserts the replacement set. No UPDATE path
  exists, so a failed rebuild can never leave a partially rewritten window.

DECIMAL COLUMNS:
  Hours, rates, and costs are stored as TEXT holding canonical decimal
  strings, so a rebuild with unchanged inputs is byte-identical.

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging): multiple readers don't
  block, a single writer at a time, better crash recovery.

USAGE:
  store, err := sqlite.New("./data/labor.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

SEE ALSO:
  - labor/store.go:        Interface definitions
  - labor/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

// Store implements all labor storage interfaces using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store at the given path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	-- Scheduled events (read-only inputs to the engine)
	CREATE TABLE IF NOT EXISTS events (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		job_name TEXT NOT NULL DEFAULT '',
		title TEXT NOT NULL,
		starts_at TEXT NOT NULL,
		ends_at TEXT NOT NULL
	);

	-- Overlap queries by UTC interval (hot path for rebuilds)
	CREATE INDEX IF NOT EXISTS idx_events_interval
		ON events(starts_at, ends_at);
	CREATE INDEX IF NOT EXISTS idx_events_job
		ON events(job_id);

	-- Crew assignments; day_override scopes an assignment to one local day
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		event_id TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		day_override TEXT,
		hours TEXT,
		note TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_event
		ON assignments(event_id);

	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		default_rate TEXT
	);

	-- Effective-dated rate history; most-recent-at-or-before-day wins
	CREATE TABLE IF NOT EXISTS hourly_rates (
		employee_id TEXT NOT NULL,
		effective_date TEXT NOT NULL,
		rate TEXT NOT NULL,
		PRIMARY KEY (employee_id, effective_date)
	);

	-- Computed daily labor ledger; replaced window-at-a-time
	CREATE TABLE IF NOT EXISTS labor_daily (
		id TEXT PRIMARY KEY,
		job_id TEXT NOT NULL,
		job_name TEXT NOT NULL,
		day TEXT NOT NULL,
		event_id TEXT NOT NULL,
		event_title TEXT NOT NULL,
		employee_id TEXT NOT NULL,
		employee_name TEXT NOT NULL,
		source_assignment_id TEXT NOT NULL,
		hours TEXT NOT NULL,
		regular_hours TEXT NOT NULL,
		overtime_hours TEXT NOT NULL,
		rate TEXT NOT NULL,
		regular_cost TEXT NOT NULL,
		overtime_cost TEXT NOT NULL,
		total_cost TEXT NOT NULL,
		note TEXT NOT NULL DEFAULT ''
	);

	CREATE INDEX IF NOT EXISTS idx_labor_daily_day
		ON labor_daily(day);
	CREATE INDEX IF NOT EXISTS idx_labor_daily_job_day
		ON labor_daily(job_id, day);
	CREATE INDEX IF NOT EXISTS idx_labor_daily_employee_day
		ON labor_daily(employee_id, day);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EVENT STORE (labor.EventStore interface)
// =============================================================================

// SaveEvent inserts or updates an event.
func (s *Store) SaveEvent(ctx context.Context, e labor.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO events (id, job_id, job_name, title, starts_at, ends_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			job_id = excluded.job_id,
			job_name = excluded.job_name,
			title = excluded.title,
			starts_at = excluded.starts_at,
			ends_at = excluded.ends_at
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.JobID, e.JobName, e.Title,
		e.StartsAt.UTC().Format(time.RFC3339),
		e.EndsAt.UTC().Format(time.RFC3339),
	)
	return err
}

// GetEvent retrieves an event by ID. Returns nil when absent.
func (s *Store) GetEvent(ctx context.Context, id labor.EventID) (*labor.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, job_id, job_name, title, starts_at, ends_at FROM events WHERE id = ?", id)

	e, err := scanEvent(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEvents returns all events ordered by start time.
func (s *Store) ListEvents(ctx context.Context) ([]labor.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryEvents(ctx, `
		SELECT id, job_id, job_name, title, starts_at, ends_at
		FROM events ORDER BY starts_at ASC, id ASC`)
}

// ListOverlapping returns events whose [starts_at, ends_at) intersects
// [startUTC, endUTC). An event that merely touches a window edge does not
// overlap it.
func (s *Store) ListOverlapping(ctx context.Context, startUTC, endUTC time.Time) ([]labor.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, job_id, job_name, title, starts_at, ends_at
		FROM events
		WHERE starts_at < ? AND ends_at > ?
		ORDER BY starts_at ASC, id ASC
	`
	return s.queryEvents(ctx, query,
		endUTC.UTC().Format(time.RFC3339), startUTC.UTC().Format(time.RFC3339))
}

// DeleteEvent removes an event and its assignments.
func (s *Store) DeleteEvent(ctx context.Context, id labor.EventID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM assignments WHERE event_id = ?", id); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) queryEvents(ctx context.Context, query string, args ...any) ([]labor.Event, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []labor.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEvent(r rowScanner) (labor.Event, error) {
	var (
		e                labor.Event
		startsAt, endsAt string
	)
	if err := r.Scan(&e.ID, &e.JobID, &e.JobName, &e.Title, &startsAt, &endsAt); err != nil {
		return e, err
	}
	e.StartsAt, _ = time.Parse(time.RFC3339, startsAt)
	e.EndsAt, _ = time.Parse(time.RFC3339, endsAt)
	return e, nil
}

// =============================================================================
// ASSIGNMENT STORE (labor.AssignmentStore interface)
// =============================================================================

// SaveAssignment inserts or updates an assignment.
func (s *Store) SaveAssignment(ctx context.Context, a labor.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var dayOverride, hours sql.NullString
	if a.DayOverride != nil {
		dayOverride = sql.NullString{String: a.DayOverride.String(), Valid: true}
	}
	if a.Hours != nil {
		hours = sql.NullString{String: a.Hours.String(), Valid: true}
	}

	query := `
		INSERT INTO assignments (id, event_id, employee_id, day_override, hours, note)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			event_id = excluded.event_id,
			employee_id = excluded.employee_id,
			day_override = excluded.day_override,
			hours = excluded.hours,
			note = excluded.note
	`

	_, err := s.db.ExecContext(ctx, query, a.ID, a.EventID, a.EmployeeID, dayOverride, hours, a.Note)
	return err
}

// ListByEvent returns all assignments for an event.
func (s *Store) ListByEvent(ctx context.Context, eventID labor.EventID) ([]labor.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, event_id, employee_id, day_override, hours, note
		FROM assignments
		WHERE event_id = ?
		ORDER BY id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []labor.Assignment
	for rows.Next() {
		var (
			a                  labor.Assignment
			dayOverride, hours sql.NullString
		)
		if err := rows.Scan(&a.ID, &a.EventID, &a.EmployeeID, &dayOverride, &hours, &a.Note); err != nil {
			return nil, err
		}
		if dayOverride.Valid {
			day, err := labor.ParseDay(dayOverride.String)
			if err != nil {
				return nil, fmt.Errorf("assignment %s: %w", a.ID, err)
			}
			a.DayOverride = &day
		}
		if hours.Valid {
			h, err := decimal.NewFromString(hours.String)
			if err != nil {
				return nil, fmt.Errorf("assignment %s: invalid hours: %w", a.ID, err)
			}
			a.Hours = &h
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

// DeleteAssignment removes an assignment.
func (s *Store) DeleteAssignment(ctx context.Context, id labor.AssignmentID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = ?", id)
	return err
}

// =============================================================================
// EMPLOYEE STORE (labor.EmployeeStore interface)
// =============================================================================

// SaveEmployee inserts or updates an employee.
func (s *Store) SaveEmployee(ctx context.Context, emp labor.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var defaultRate sql.NullString
	if emp.DefaultRate != nil {
		defaultRate = sql.NullString{String: emp.DefaultRate.String(), Valid: true}
	}

	query := `
		INSERT INTO employees (id, name, default_rate)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			default_rate = excluded.default_rate
	`

	_, err := s.db.ExecContext(ctx, query, emp.ID, emp.Name, defaultRate)
	return err
}

// GetEmployee retrieves an employee by ID. Returns nil when absent.
func (s *Store) GetEmployee(ctx context.Context, id labor.EmployeeID) (*labor.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		emp         labor.Employee
		defaultRate sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, default_rate FROM employees WHERE id = ?", id,
	).Scan(&emp.ID, &emp.Name, &defaultRate)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if defaultRate.Valid {
		rate, err := decimal.NewFromString(defaultRate.String)
		if err != nil {
			return nil, fmt.Errorf("employee %s: invalid default rate: %w", id, err)
		}
		emp.DefaultRate = &rate
	}
	return &emp, nil
}

// ListEmployees returns all employees ordered by id.
func (s *Store) ListEmployees(ctx context.Context) ([]labor.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, default_rate FROM employees ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []labor.Employee
	for rows.Next() {
		var (
			emp         labor.Employee
			defaultRate sql.NullString
		)
		if err := rows.Scan(&emp.ID, &emp.Name, &defaultRate); err != nil {
			return nil, err
		}
		if defaultRate.Valid {
			rate, err := decimal.NewFromString(defaultRate.String)
			if err != nil {
				return nil, fmt.Errorf("employee %s: invalid default rate: %w", emp.ID, err)
			}
			emp.DefaultRate = &rate
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

// DeleteEmployee removes an employee.
func (s *Store) DeleteEmployee(ctx context.Context, id labor.EmployeeID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	return err
}

// =============================================================================
// RATE STORE (labor.RateStore interface)
// =============================================================================

// SaveRate inserts or updates one effective-dated rate entry.
func (s *Store) SaveRate(ctx context.Context, r labor.HourlyRate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO hourly_rates (employee_id, effective_date, rate)
		VALUES (?, ?, ?)
		ON CONFLICT(employee_id, effective_date) DO UPDATE SET
			rate = excluded.rate
	`

	_, err := s.db.ExecContext(ctx, query, r.EmployeeID, r.EffectiveDate.String(), r.Rate.String())
	return err
}

// ListRates returns the full rate history ordered by employee then date.
func (s *Store) ListRates(ctx context.Context) ([]labor.HourlyRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRates(ctx, `
		SELECT employee_id, effective_date, rate
		FROM hourly_rates
		ORDER BY employee_id ASC, effective_date ASC`)
}

// ListRatesByEmployee returns one employee's rate history ascending by date.
func (s *Store) ListRatesByEmployee(ctx context.Context, employeeID labor.EmployeeID) ([]labor.HourlyRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRates(ctx, `
		SELECT employee_id, effective_date, rate
		FROM hourly_rates
		WHERE employee_id = ?
		ORDER BY effective_date ASC`, employeeID)
}

func (s *Store) queryRates(ctx context.Context, query string, args ...any) ([]labor.HourlyRate, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rates: %w", err)
	}
	defer rows.Close()

	var rates []labor.HourlyRate
	for rows.Next() {
		var (
			r             labor.HourlyRate
			effectiveDate string
			rate          string
		)
		if err := rows.Scan(&r.EmployeeID, &effectiveDate, &rate); err != nil {
			return nil, err
		}
		r.EffectiveDate, err = labor.ParseDay(effectiveDate)
		if err != nil {
			return nil, err
		}
		r.Rate, err = decimal.NewFromString(rate)
		if err != nil {
			return nil, fmt.Errorf("rate for %s at %s: %w", r.EmployeeID, effectiveDate, err)
		}
		rates = append(rates, r)
	}
	return rates, rows.Err()
}

// =============================================================================
// LEDGER STORE (labor.LedgerStore interface)
// =============================================================================

// ReplaceWindow atomically deletes every ledger row whose day falls in
// [startDay, endDay] and bulk-inserts the replacement set. Rolls back in
// full on any failure.
func (s *Store) ReplaceWindow(ctx context.Context, startDay, endDay labor.Day, rows []labor.LaborDailyRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"DELETE FROM labor_daily WHERE day >= ? AND day <= ?",
		startDay.String(), endDay.String())
	if err != nil {
		return fmt.Errorf("failed to delete ledger window: %w", err)
	}

	if len(rows) > 0 {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO labor_daily
			(id, job_id, job_name, day, event_id, event_title, employee_id, employee_name,
			 source_assignment_id, hours, regular_hours, overtime_hours, rate,
			 regular_cost, overtime_cost, total_cost, note)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return fmt.Errorf("failed to prepare ledger insert: %w", err)
		}
		defer stmt.Close()

		for _, row := range rows {
			_, err := stmt.ExecContext(ctx,
				row.ID, row.JobID, row.JobName, row.Day.String(), row.EventID, row.EventTitle,
				row.EmployeeID, row.EmployeeName, row.SourceAssignmentID,
				row.Hours.String(), row.RegularHours.String(), row.OvertimeHours.String(),
				row.Rate.String(), row.RegularCost.String(), row.OvertimeCost.String(),
				row.TotalCost.String(), row.Note,
			)
			if err != nil {
				return fmt.Errorf("failed to insert ledger row %s: %w", row.ID, err)
			}
		}
	}

	return tx.Commit()
}

// ListWindow returns ledger rows for [startDay, endDay] ordered by id.
func (s *Store) ListWindow(ctx context.Context, startDay, endDay labor.Day) ([]labor.LaborDailyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLedger(ctx, `
		SELECT id, job_id, job_name, day, event_id, event_title, employee_id, employee_name,
		       source_assignment_id, hours, regular_hours, overtime_hours, rate,
		       regular_cost, overtime_cost, total_cost, note
		FROM labor_daily
		WHERE day >= ? AND day <= ?
		ORDER BY id ASC`,
		startDay.String(), endDay.String())
}

// ListByJob returns one job's ledger rows for [startDay, endDay].
func (s *Store) ListByJob(ctx context.Context, jobID labor.JobID, startDay, endDay labor.Day) ([]labor.LaborDailyRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryLedger(ctx, `
		SELECT id, job_id, job_name, day, event_id, event_title, employee_id, employee_name,
		       source_assignment_id, hours, regular_hours, overtime_hours, rate,
		       regular_cost, overtime_cost, total_cost, note
		FROM labor_daily
		WHERE job_id = ? AND day >= ? AND day <= ?
		ORDER BY id ASC`,
		jobID, startDay.String(), endDay.String())
}

func (s *Store) queryLedger(ctx context.Context, query string, args ...any) ([]labor.LaborDailyRow, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ledger: %w", err)
	}
	defer rows.Close()

	var out []labor.LaborDailyRow
	for rows.Next() {
		row, err := scanLedgerRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func scanLedgerRow(r rowScanner) (labor.LaborDailyRow, error) {
	var (
		row labor.LaborDailyRow
		day string
		dec [7]string // hours, regular, overtime, rate, regular cost, overtime cost, total
	)

	err := r.Scan(
		&row.ID, &row.JobID, &row.JobName, &day, &row.EventID, &row.EventTitle,
		&row.EmployeeID, &row.EmployeeName, &row.SourceAssignmentID,
		&dec[0], &dec[1], &dec[2], &dec[3], &dec[4], &dec[5], &dec[6], &row.Note,
	)
	if err != nil {
		return row, fmt.Errorf("failed to scan ledger row: %w", err)
	}

	row.Day, err = labor.ParseDay(day)
	if err != nil {
		return row, err
	}

	fields := []*decimal.Decimal{
		&row.Hours, &row.RegularHours, &row.OvertimeHours, &row.Rate,
		&row.RegularCost, &row.OvertimeCost, &row.TotalCost,
	}
	for i, field := range fields {
		*field, err = decimal.NewFromString(dec[i])
		if err != nil {
			return row, fmt.Errorf("ledger row %s: invalid decimal: %w", row.ID, err)
		}
	}
	return row, nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all data (for testing/demo scenarios).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tables := []string{"labor_daily", "assignments", "hourly_rates", "events", "employees"}
	for _, table := range tables {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}

// Stores bundles this store into the driver's dependency set.
func (s *Store) Stores() labor.Stores {
	return labor.Stores{
		Events:      s,
		Assignments: s,
		Employees:   s,
		Rates:       s,
		Ledger:      s,
	}
}
