package labor_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

func baseAssignment(id, employeeID string) labor.Assignment {
	return labor.Assignment{
		ID:         labor.AssignmentID(id),
		EventID:    "evt-1",
		EmployeeID: labor.EmployeeID(employeeID),
	}
}

func overrideAssignment(id, employeeID string, day labor.Day) labor.Assignment {
	a := baseAssignment(id, employeeID)
	a.DayOverride = &day
	return a
}

func TestEffectiveRoster_BaseAppliesEveryDay(t *testing.T) {
	// GIVEN: Two base assignments with no overrides
	// WHEN: Building the roster for an arbitrary day
	// THEN: Both employees appear

	assignments := []labor.Assignment{
		baseAssignment("asg-1", "emp-a"),
		baseAssignment("asg-2", "emp-b"),
	}

	roster := labor.EffectiveRoster(assignments, labor.NewDay(2025, time.March, 13))

	require.Len(t, roster, 2)
	assert.Equal(t, labor.AssignmentID("asg-1"), roster["emp-a"].ID)
	assert.Equal(t, labor.AssignmentID("asg-2"), roster["emp-b"].ID)
}

func TestEffectiveRoster_OverrideReplacesBaseOnItsDayOnly(t *testing.T) {
	// GIVEN: A base assignment for emp-a and a Thursday override for the same employee
	// WHEN: Building rosters for Thursday and Friday
	// THEN: Thursday uses the override, Friday falls back to the base

	thursday := labor.NewDay(2025, time.March, 13)
	friday := thursday.AddDays(1)

	assignments := []labor.Assignment{
		baseAssignment("asg-base", "emp-a"),
		overrideAssignment("asg-override", "emp-a", thursday),
	}

	onThursday := labor.EffectiveRoster(assignments, thursday)
	require.Len(t, onThursday, 1)
	assert.Equal(t, labor.AssignmentID("asg-override"), onThursday["emp-a"].ID)

	onFriday := labor.EffectiveRoster(assignments, friday)
	require.Len(t, onFriday, 1)
	assert.Equal(t, labor.AssignmentID("asg-base"), onFriday["emp-a"].ID)
}

func TestEffectiveRoster_OverrideAddsEmployeeWithoutBase(t *testing.T) {
	// GIVEN: A base crew of emp-a and a Thursday-only override for emp-b
	// WHEN: Building rosters across days
	// THEN: emp-b appears only on Thursday; emp-a stays all week

	thursday := labor.NewDay(2025, time.March, 13)

	assignments := []labor.Assignment{
		baseAssignment("asg-a", "emp-a"),
		overrideAssignment("asg-b", "emp-b", thursday),
	}

	onThursday := labor.EffectiveRoster(assignments, thursday)
	assert.Len(t, onThursday, 2)

	onWednesday := labor.EffectiveRoster(assignments, thursday.AddDays(-1))
	require.Len(t, onWednesday, 1)
	_, hasB := onWednesday["emp-b"]
	assert.False(t, hasB, "day-scoped assignment must not leak to other days")
}

func TestEffectiveRoster_OneRowPerEmployeePerDay(t *testing.T) {
	// GIVEN: Duplicate base assignments for the same employee
	// WHEN: Building the roster
	// THEN: Exactly one entry survives (the later one in input order)

	assignments := []labor.Assignment{
		baseAssignment("asg-first", "emp-a"),
		baseAssignment("asg-second", "emp-a"),
	}

	roster := labor.EffectiveRoster(assignments, labor.NewDay(2025, time.March, 13))

	require.Len(t, roster, 1)
	assert.Equal(t, labor.AssignmentID("asg-second"), roster["emp-a"].ID)
}

func TestEffectiveRoster_NoAssignments(t *testing.T) {
	// GIVEN: An event with no crew
	// WHEN: Building the roster
	// THEN: The roster is empty, not nil-panicking

	roster := labor.EffectiveRoster(nil, labor.NewDay(2025, time.March, 13))
	assert.Empty(t, roster)
}
