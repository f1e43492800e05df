/*
roster.go - Effective crew roster for one event day

PURPOSE:
  An event's crew can differ day by day. Base assignments (no day override)
  apply to every day the event spans; an override assignment scoped to a
  specific day replaces the base assignment for that employee on that day.

The merge is an explicit two-pass overlay so the precedence rule stays
visible and testable: base map first, then overrides replace by employee.
*/
package labor

// EffectiveRoster returns the definitive (employee -> assignment) roster for
// an event on one local day. An employee absent from the map has no labor
// row for that event/day.
func EffectiveRoster(assignments []Assignment, day Day) map[EmployeeID]Assignment {
	roster := make(map[EmployeeID]Assignment)

	// Pass 1: base assignments apply to every day of the event.
	for _, a := range assignments {
		if a.DayOverride == nil {
			roster[a.EmployeeID] = a
		}
	}

	// Pass 2: day-specific overrides replace the base entry outright.
	for _, a := range assignments {
		if a.DayOverride != nil && a.DayOverride.Equal(day) {
			roster[a.EmployeeID] = a
		}
	}

	return roster
}
