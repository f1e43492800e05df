/*
handlers.go - HTTP API handlers for the labor aggregation service

PURPOSE:
  Exposes the aggregation engine via REST. Handles HTTP request/response,
  JSON serialization, and delegates to the driver and store.

ENDPOINTS:
  Labor ledger:
    POST   /api/labor/rebuild          Recompute a date window
    GET    /api/labor                  Ledger rows for a window
    GET    /api/labor/jobs/{jobID}     One job's ledger rows

  Reference data (feeds the engine):
    GET    /api/employees              List employees
    POST   /api/employees              Create employee
    DELETE /api/employees/{id}        Delete employee
    GET    /api/employees/{id}/rates   Rate history
    POST   /api/employees/{id}/rates   Add rate entry
    GET    /api/events                 List events
    POST   /api/events                 Create event
    DELETE /api/events/{id}           Delete event and its assignments
    GET    /api/events/{id}/assignments  List assignments
    POST   /api/events/{id}/assignments  Add assignment
    DELETE /api/assignments/{id}      Delete assignment

  Scenarios:
    GET    /api/scenarios              List demo scenarios
    POST   /api/scenarios/load         Seed a demo dataset
    POST   /api/scenarios/reset        Wipe all data

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, malformed windows, invalid input
  - 404: Resource not found
  - 500: Store or internal errors
*/
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Killswit3h/my-calendar-sub002/labor"
	"github.com/Killswit3h/my-calendar-sub002/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  *sqlite.Store
	Driver *labor.Driver

	log *slog.Logger
}

// NewHandler creates a handler over the store and driver.
func NewHandler(store *sqlite.Store, driver *labor.Driver, log *slog.Logger) *Handler {
	if log == nil {
		log = slog.Default()
	}
	return &Handler{Store: store, Driver: driver, log: log}
}

// =============================================================================
// LABOR LEDGER HANDLERS
// =============================================================================

// Rebuild recomputes the ledger for the requested window.
func (h *Handler) Rebuild(w http.ResponseWriter, r *http.Request) {
	var req RebuildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	result, err := h.Driver.Rebuild(r.Context(), req.StartDate, req.EndDate)
	if err != nil {
		if labor.IsClientError(err) {
			writeError(w, http.StatusBadRequest, "Invalid rebuild window", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "Rebuild failed", err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ListLedger returns ledger rows for ?start=YYYY-MM-DD&end=YYYY-MM-DD.
func (h *Handler) ListLedger(w http.ResponseWriter, r *http.Request) {
	startDay, endDay, ok := h.windowParams(w, r)
	if !ok {
		return
	}

	rows, err := h.Store.ListWindow(r.Context(), startDay, endDay)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list ledger", err)
		return
	}
	writeJSON(w, http.StatusOK, toLaborRowDTOs(rows))
}

// ListLedgerByJob returns one job's ledger rows for a window.
func (h *Handler) ListLedgerByJob(w http.ResponseWriter, r *http.Request) {
	jobID := labor.JobID(chi.URLParam(r, "jobID"))
	startDay, endDay, ok := h.windowParams(w, r)
	if !ok {
		return
	}

	rows, err := h.Store.ListByJob(r.Context(), jobID, startDay, endDay)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list ledger", err)
		return
	}
	writeJSON(w, http.StatusOK, toLaborRowDTOs(rows))
}

func (h *Handler) windowParams(w http.ResponseWriter, r *http.Request) (labor.Day, labor.Day, bool) {
	startDay, err := labor.ParseDay(r.URL.Query().Get("start"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start parameter (use YYYY-MM-DD)", err)
		return labor.Day{}, labor.Day{}, false
	}
	endDay, err := labor.ParseDay(r.URL.Query().Get("end"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end parameter (use YYYY-MM-DD)", err)
		return labor.Day{}, labor.Day{}, false
	}
	if endDay.Before(startDay) {
		writeError(w, http.StatusBadRequest, "end precedes start", nil)
		return labor.Day{}, labor.Day{}, false
	}
	return startDay, endDay, true
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required", nil)
		return
	}

	emp := labor.Employee{
		ID:   labor.EmployeeID(req.ID),
		Name: req.Name,
	}
	if emp.ID == "" {
		emp.ID = labor.EmployeeID(uuid.NewString())
	}
	if req.DefaultRate != nil {
		rate := decimal.NewFromFloat(*req.DefaultRate)
		emp.DefaultRate = &rate
	}

	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create employee", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp))
}

// DeleteEmployee removes an employee. Rate history and past ledger rows are
// left in place; a later rebuild drops the employee from its windows.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := labor.EmployeeID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListRates returns an employee's rate history.
func (h *Handler) ListRates(w http.ResponseWriter, r *http.Request) {
	employeeID := labor.EmployeeID(chi.URLParam(r, "id"))

	rates, err := h.Store.ListRatesByEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list rates", err)
		return
	}

	dtos := make([]RateDTO, len(rates))
	for i, rate := range rates {
		dtos[i] = RateDTO{
			EmployeeID:    string(rate.EmployeeID),
			EffectiveDate: rate.EffectiveDate.String(),
			Rate:          rate.Rate.String(),
		}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateRate adds one effective-dated rate entry for an employee.
func (h *Handler) CreateRate(w http.ResponseWriter, r *http.Request) {
	employeeID := labor.EmployeeID(chi.URLParam(r, "id"))

	var req CreateRateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	effectiveDate, err := labor.ParseDay(req.EffectiveDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid effective_date (use YYYY-MM-DD)", err)
		return
	}
	if req.Rate <= 0 {
		writeError(w, http.StatusBadRequest, "rate must be positive", nil)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), employeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	rate := labor.HourlyRate{
		EmployeeID:    employeeID,
		EffectiveDate: effectiveDate,
		Rate:          decimal.NewFromFloat(req.Rate),
	}
	if err := h.Store.SaveRate(r.Context(), rate); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save rate", err)
		return
	}

	writeJSON(w, http.StatusCreated, RateDTO{
		EmployeeID:    string(rate.EmployeeID),
		EffectiveDate: rate.EffectiveDate.String(),
		Rate:          rate.Rate.String(),
	})
}

// =============================================================================
// EVENT & ASSIGNMENT HANDLERS
// =============================================================================

// ListEvents returns all events.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Store.ListEvents(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events", err)
		return
	}

	dtos := make([]EventDTO, len(events))
	for i, e := range events {
		dtos[i] = toEventDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEvent creates a new event.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	startsAt, err := time.Parse(time.RFC3339, req.StartsAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid starts_at (use RFC 3339)", err)
		return
	}
	endsAt, err := time.Parse(time.RFC3339, req.EndsAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid ends_at (use RFC 3339)", err)
		return
	}

	event := labor.Event{
		ID:       labor.EventID(req.ID),
		JobID:    labor.JobID(req.JobID),
		JobName:  req.JobName,
		Title:    req.Title,
		StartsAt: startsAt.UTC(),
		EndsAt:   endsAt.UTC(),
	}
	if event.ID == "" {
		event.ID = labor.EventID(uuid.NewString())
	}

	if err := h.Store.SaveEvent(r.Context(), event); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create event", err)
		return
	}
	writeJSON(w, http.StatusCreated, toEventDTO(event))
}

// DeleteEvent removes an event and its assignments.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := labor.EventID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteEvent(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete event", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// ListAssignments returns an event's assignments.
func (h *Handler) ListAssignments(w http.ResponseWriter, r *http.Request) {
	eventID := labor.EventID(chi.URLParam(r, "id"))

	assignments, err := h.Store.ListByEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list assignments", err)
		return
	}

	dtos := make([]AssignmentDTO, len(assignments))
	for i, a := range assignments {
		dtos[i] = toAssignmentDTO(a)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateAssignment adds a crew assignment to an event.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	eventID := labor.EventID(chi.URLParam(r, "id"))

	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.EmployeeID == "" {
		writeError(w, http.StatusBadRequest, "employee_id is required", nil)
		return
	}

	event, err := h.Store.GetEvent(r.Context(), eventID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to look up event", err)
		return
	}
	if event == nil {
		writeError(w, http.StatusNotFound, "Event not found", nil)
		return
	}

	assignment := labor.Assignment{
		ID:         labor.AssignmentID(req.ID),
		EventID:    eventID,
		EmployeeID: labor.EmployeeID(req.EmployeeID),
		Note:       req.Note,
	}
	if assignment.ID == "" {
		assignment.ID = labor.AssignmentID(uuid.NewString())
	}
	if req.DayOverride != nil {
		day, err := labor.ParseDay(*req.DayOverride)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid day_override (use YYYY-MM-DD)", err)
			return
		}
		assignment.DayOverride = &day
	}
	if req.Hours != nil {
		hours := decimal.NewFromFloat(*req.Hours)
		assignment.Hours = &hours
	}

	if err := h.Store.SaveAssignment(r.Context(), assignment); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create assignment", err)
		return
	}
	writeJSON(w, http.StatusCreated, toAssignmentDTO(assignment))
}

// DeleteAssignment removes a crew assignment.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := labor.AssignmentID(chi.URLParam(r, "id"))
	if err := h.Store.DeleteAssignment(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to delete assignment", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// =============================================================================
// RESPONSE HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}
