// Package store provides an in-memory implementation of the labor store
// interfaces for tests and demos.
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

// Memory implements every labor store interface against plain maps.
type Memory struct {
	mu          sync.RWMutex
	events      map[labor.EventID]labor.Event
	assignments map[labor.EventID][]labor.Assignment
	employees   map[labor.EmployeeID]labor.Employee
	rates       []labor.HourlyRate
	ledger      map[string]labor.LaborDailyRow

	// FailNextReplace forces the next ReplaceWindow to fail after clearing
	// nothing, for atomicity tests.
	FailNextReplace error
}

func NewMemory() *Memory {
	return &Memory{
		events:      make(map[labor.EventID]labor.Event),
		assignments: make(map[labor.EventID][]labor.Assignment),
		employees:   make(map[labor.EmployeeID]labor.Employee),
		ledger:      make(map[string]labor.LaborDailyRow),
	}
}

// Seed helpers

func (m *Memory) PutEvent(e labor.Event) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events[e.ID] = e
}

func (m *Memory) PutAssignment(a labor.Assignment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assignments[a.EventID] = append(m.assignments[a.EventID], a)
}

func (m *Memory) PutEmployee(e labor.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.employees[e.ID] = e
}

func (m *Memory) PutRate(r labor.HourlyRate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rates = append(m.rates, r)
}

// labor.EventStore

func (m *Memory) ListOverlapping(_ context.Context, startUTC, endUTC time.Time) ([]labor.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []labor.Event
	for _, e := range m.events {
		if e.StartsAt.Before(endUTC) && startUTC.Before(e.EndsAt) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// labor.AssignmentStore

func (m *Memory) ListByEvent(_ context.Context, eventID labor.EventID) ([]labor.Assignment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]labor.Assignment, len(m.assignments[eventID]))
	copy(out, m.assignments[eventID])
	return out, nil
}

// labor.EmployeeStore

func (m *Memory) ListEmployees(_ context.Context) ([]labor.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]labor.Employee, 0, len(m.employees))
	for _, e := range m.employees {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// labor.RateStore

func (m *Memory) ListRates(_ context.Context) ([]labor.HourlyRate, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]labor.HourlyRate, len(m.rates))
	copy(out, m.rates)
	return out, nil
}

// labor.LedgerStore

// ReplaceWindow deletes every ledger row in [startDay, endDay] and inserts the
// replacement set. All-or-nothing: a forced failure leaves the map untouched.
func (m *Memory) ReplaceWindow(_ context.Context, startDay, endDay labor.Day, rows []labor.LaborDailyRow) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.FailNextReplace; err != nil {
		m.FailNextReplace = nil
		return err
	}

	for id, row := range m.ledger {
		if !row.Day.Before(startDay) && !row.Day.After(endDay) {
			delete(m.ledger, id)
		}
	}
	for _, row := range rows {
		m.ledger[row.ID] = row
	}
	return nil
}

func (m *Memory) ListWindow(_ context.Context, startDay, endDay labor.Day) ([]labor.LaborDailyRow, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []labor.LaborDailyRow
	for _, row := range m.ledger {
		if !row.Day.Before(startDay) && !row.Day.After(endDay) {
			out = append(out, row)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Stores bundles the memory store into the driver's dependency set.
func (m *Memory) Stores() labor.Stores {
	return labor.Stores{
		Events:      m,
		Assignments: m,
		Employees:   m,
		Rates:       m,
		Ledger:      m,
	}
}
