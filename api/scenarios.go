/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	construction-operations data for testing and demos. Each scenario creates
	employees, rates, events, and assignments, then rebuilds the ledger so
	the results are immediately visible.

AVAILABLE SCENARIOS:

	highway-crew:   A paving crew across two jobs, including an overnight
	                pour that crosses local midnight
	rate-change:    An operator whose hourly rate changes mid-window, plus a
	                per-day override replacing the base crew on one day
	missing-rate:   A laborer with no rate on file, demonstrating non-fatal
	                missing-rate reporting

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees and rate history
 3. Create events and crew assignments
 4. Rebuild the ledger for the scenario window

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "highway-crew"}

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: LoadScenario, ListScenarios handlers
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "highway-crew",
		Name:        "Highway Crew",
		Description: "Paving crew on two jobs, including an overnight pour crossing midnight",
		Category:    "labor",
	},
	{
		ID:          "rate-change",
		Name:        "Mid-Window Rate Change",
		Description: "Operator rate change mid-week plus a per-day crew override",
		Category:    "labor",
	},
	{
		ID:          "missing-rate",
		Name:        "Missing Rate",
		Description: "Laborer with no rate on file; hours reported without cost",
		Category:    "labor",
	},
}

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ScenarioID string `json:"scenario_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	ctx := r.Context()

	// Reset first
	if err := h.Store.Reset(ctx); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var window [2]string
	var err error
	switch req.ScenarioID {
	case "highway-crew":
		window, err = h.loadHighwayCrewScenario(ctx)
	case "rate-change":
		window, err = h.loadRateChangeScenario(ctx)
	case "missing-rate":
		window, err = h.loadMissingRateScenario(ctx)
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	result, err := h.Driver.Rebuild(ctx, window[0], window[1])
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to rebuild scenario ledger", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "loaded",
		"scenario": req.ScenarioID,
		"start":    window[0],
		"end":      window[1],
		"rebuild":  result,
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

// loadHighwayCrewScenario builds a three-person paving crew working two jobs
// in one week. The Thursday pour runs 20:00 to 04:00 local time, so its
// hours land on two ledger days.
func (h *Handler) loadHighwayCrewScenario(ctx context.Context) ([2]string, error) {
	window := [2]string{"2025-06-02", "2025-06-08"}

	crew := []labor.Employee{
		{ID: "emp-ray", Name: "Ray Delgado"},
		{ID: "emp-tasha", Name: "Tasha Price"},
		{ID: "emp-owen", Name: "Owen Marsh"},
	}
	for _, emp := range crew {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return window, err
		}
	}

	rates := map[labor.EmployeeID]float64{
		"emp-ray":   42.50,
		"emp-tasha": 38.00,
		"emp-owen":  35.25,
	}
	for id, rate := range rates {
		err := h.Store.SaveRate(ctx, labor.HourlyRate{
			EmployeeID:    id,
			EffectiveDate: labor.NewDay(2025, time.January, 1),
			Rate:          decimal.NewFromFloat(rate),
		})
		if err != nil {
			return window, err
		}
	}

	// Monday through Wednesday: regular day shifts on the resurfacing job.
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return window, err
	}
	for i, day := 0, 2; i < 3; i, day = i+1, day+1 {
		event := labor.Event{
			ID:       labor.EventID(fmt.Sprintf("evt-resurface-%d", i+1)),
			JobID:    "job-rt9",
			JobName:  "Route 9 Resurfacing",
			Title:    "Mill and pave",
			StartsAt: time.Date(2025, time.June, day, 7, 0, 0, 0, loc).UTC(),
			EndsAt:   time.Date(2025, time.June, day, 15, 30, 0, 0, loc).UTC(),
		}
		if err := h.Store.SaveEvent(ctx, event); err != nil {
			return window, err
		}
		if err := h.seedCrew(ctx, event.ID, crew); err != nil {
			return window, err
		}
	}

	// Thursday: overnight bridge deck pour, 20:00 to 04:00 local.
	pour := labor.Event{
		ID:       "evt-deck-pour",
		JobID:    "job-bridge-14",
		JobName:  "Bridge 14 Deck Replacement",
		Title:    "Overnight deck pour",
		StartsAt: time.Date(2025, time.June, 5, 20, 0, 0, 0, loc).UTC(),
		EndsAt:   time.Date(2025, time.June, 6, 4, 0, 0, 0, loc).UTC(),
	}
	if err := h.Store.SaveEvent(ctx, pour); err != nil {
		return window, err
	}
	if err := h.seedCrew(ctx, pour.ID, crew); err != nil {
		return window, err
	}

	return window, nil
}

// loadRateChangeScenario gives one operator a raise effective mid-window and
// swaps the crew on one day via a day-scoped assignment override.
func (h *Handler) loadRateChangeScenario(ctx context.Context) ([2]string, error) {
	window := [2]string{"2025-03-10", "2025-03-14"}

	employees := []labor.Employee{
		{ID: "emp-gina", Name: "Gina Kowalski"},
		{ID: "emp-hal", Name: "Hal Brennan"},
	}
	for _, emp := range employees {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return window, err
		}
	}

	// Gina gets a raise effective Wednesday; days before it use the old rate.
	gina := []labor.HourlyRate{
		{EmployeeID: "emp-gina", EffectiveDate: labor.NewDay(2025, time.January, 1), Rate: decimal.NewFromFloat(40)},
		{EmployeeID: "emp-gina", EffectiveDate: labor.NewDay(2025, time.March, 12), Rate: decimal.NewFromFloat(45)},
	}
	for _, rate := range gina {
		if err := h.Store.SaveRate(ctx, rate); err != nil {
			return window, err
		}
	}
	err := h.Store.SaveRate(ctx, labor.HourlyRate{
		EmployeeID:    "emp-hal",
		EffectiveDate: labor.NewDay(2025, time.January, 1),
		Rate:          decimal.NewFromFloat(33.75),
	})
	if err != nil {
		return window, err
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return window, err
	}
	event := labor.Event{
		ID:       "evt-excavation",
		JobID:    "job-sitework",
		JobName:  "Fairview Plaza Sitework",
		Title:    "Excavation",
		StartsAt: time.Date(2025, time.March, 10, 7, 0, 0, 0, loc).UTC(),
		EndsAt:   time.Date(2025, time.March, 14, 16, 0, 0, 0, loc).UTC(),
	}
	if err := h.Store.SaveEvent(ctx, event); err != nil {
		return window, err
	}

	// Gina runs the excavator all week; Hal covers for her on Thursday only.
	base := labor.Assignment{ID: "asg-gina-base", EventID: event.ID, EmployeeID: "emp-gina"}
	if err := h.Store.SaveAssignment(ctx, base); err != nil {
		return window, err
	}
	thursday := labor.NewDay(2025, time.March, 13)
	override := labor.Assignment{
		ID:          "asg-hal-thursday",
		EventID:     event.ID,
		EmployeeID:  "emp-hal",
		DayOverride: &thursday,
		Note:        "Covering for Gina",
	}
	if err := h.Store.SaveAssignment(ctx, override); err != nil {
		return window, err
	}

	return window, nil
}

// loadMissingRateScenario seeds a new hire with no rate history and no
// default rate. Their hours still appear in the ledger with zero cost, and
// the rebuild response lists them under missing_rates.
func (h *Handler) loadMissingRateScenario(ctx context.Context) ([2]string, error) {
	window := [2]string{"2025-09-01", "2025-09-05"}

	employees := []labor.Employee{
		{ID: "emp-vera", Name: "Vera Lindqvist"},
		{ID: "emp-newhire", Name: "Denny Aoki"}, // payroll hasn't set a rate yet
	}
	for _, emp := range employees {
		if err := h.Store.SaveEmployee(ctx, emp); err != nil {
			return window, err
		}
	}
	err := h.Store.SaveRate(ctx, labor.HourlyRate{
		EmployeeID:    "emp-vera",
		EffectiveDate: labor.NewDay(2025, time.January, 1),
		Rate:          decimal.NewFromFloat(36.50),
	})
	if err != nil {
		return window, err
	}

	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		return window, err
	}
	event := labor.Event{
		ID:       "evt-punch-list",
		JobID:    "job-warehouse",
		JobName:  "Eastside Warehouse Fit-Out",
		Title:    "Punch list",
		StartsAt: time.Date(2025, time.September, 2, 8, 0, 0, 0, loc).UTC(),
		EndsAt:   time.Date(2025, time.September, 4, 16, 0, 0, 0, loc).UTC(),
	}
	if err := h.Store.SaveEvent(ctx, event); err != nil {
		return window, err
	}
	if err := h.seedCrew(ctx, event.ID, employees); err != nil {
		return window, err
	}

	return window, nil
}

func (h *Handler) seedCrew(ctx context.Context, eventID labor.EventID, crew []labor.Employee) error {
	for i, emp := range crew {
		assignment := labor.Assignment{
			ID:         labor.AssignmentID(fmt.Sprintf("asg-%s-%d", eventID, i+1)),
			EventID:    eventID,
			EmployeeID: emp.ID,
		}
		if err := h.Store.SaveAssignment(ctx, assignment); err != nil {
			return err
		}
	}
	return nil
}
