/*
rates.go - Effective-dated hourly rate resolution

PURPOSE:
  An employee's pay rate changes over time. The rate history is a list of
  (effectiveDate, rate) entries; for any given day the most recent entry at
  or before that day wins. Employees without a qualifying history entry fall
  back to their default rate, if one is set.

A RateTable is an immutable snapshot built once per rebuild run. Rate changes
committed after a run started do not retroactively affect that run.
*/
package labor

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RateTable resolves hourly rates from versioned history with default fallback.
type RateTable struct {
	history  map[EmployeeID][]HourlyRate // ascending by EffectiveDate
	defaults map[EmployeeID]decimal.Decimal
}

// NewRateTable builds a snapshot from employee records and rate history rows.
func NewRateTable(employees []Employee, rates []HourlyRate) *RateTable {
	t := &RateTable{
		history:  make(map[EmployeeID][]HourlyRate),
		defaults: make(map[EmployeeID]decimal.Decimal),
	}

	for _, emp := range employees {
		if emp.DefaultRate != nil {
			t.defaults[emp.ID] = *emp.DefaultRate
		}
	}

	for _, r := range rates {
		t.history[r.EmployeeID] = append(t.history[r.EmployeeID], r)
	}
	for id := range t.history {
		entries := t.history[id]
		sort.Slice(entries, func(i, j int) bool {
			return entries[i].EffectiveDate.Before(entries[j].EffectiveDate)
		})
	}

	return t
}

// Resolve returns the effective hourly rate for an employee on a day.
// The second return value is false when neither a qualifying history entry
// nor a default rate exists: a missing-rate condition, not an error.
func (t *RateTable) Resolve(employeeID EmployeeID, day Day) (decimal.Decimal, bool) {
	entries := t.history[employeeID]

	// Last entry with EffectiveDate <= day.
	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].EffectiveDate.After(day)
	})
	if idx > 0 {
		return entries[idx-1].Rate, true
	}

	if rate, ok := t.defaults[employeeID]; ok {
		return rate, true
	}
	return decimal.Zero, false
}
