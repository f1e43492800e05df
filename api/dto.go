/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication, decoupling the internal
  domain model from the external API contract.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

VALIDATION:
  Validation is done in handlers, not in DTOs. DTOs are pure data carriers.
*/
package api

import (
	"time"

	"github.com/Killswit3h/my-calendar-sub002/labor"
)

// =============================================================================
// REBUILD
// =============================================================================

// RebuildRequest selects the date window to recompute.
type RebuildRequest struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// =============================================================================
// LEDGER
// =============================================================================

// LaborRowDTO is one ledger row in API responses. Decimal fields are emitted
// as canonical strings so clients never see float drift.
type LaborRowDTO struct {
	ID                 string `json:"id"`
	JobID              string `json:"job_id"`
	JobName            string `json:"job_name"`
	Day                string `json:"day"`
	EventID            string `json:"event_id"`
	EventTitle         string `json:"event_title"`
	EmployeeID         string `json:"employee_id"`
	EmployeeName       string `json:"employee_name"`
	SourceAssignmentID string `json:"source_assignment_id"`
	Hours              string `json:"hours"`
	RegularHours       string `json:"regular_hours"`
	OvertimeHours      string `json:"overtime_hours"`
	Rate               string `json:"rate"`
	RegularCost        string `json:"regular_cost"`
	OvertimeCost       string `json:"overtime_cost"`
	TotalCost          string `json:"total_cost"`
	Note               string `json:"note,omitempty"`
}

// =============================================================================
// REFERENCE DATA
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	DefaultRate *string `json:"default_rate,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
// ID is optional; one is generated when omitted.
type CreateEmployeeRequest struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	DefaultRate *float64 `json:"default_rate,omitempty"`
}

// CreateRateRequest adds one effective-dated rate history entry.
type CreateRateRequest struct {
	EffectiveDate string  `json:"effective_date"`
	Rate          float64 `json:"rate"`
}

// RateDTO is one rate history entry.
type RateDTO struct {
	EmployeeID    string `json:"employee_id"`
	EffectiveDate string `json:"effective_date"`
	Rate          string `json:"rate"`
}

// EventDTO represents a scheduled event.
type EventDTO struct {
	ID       string `json:"id"`
	JobID    string `json:"job_id"`
	JobName  string `json:"job_name"`
	Title    string `json:"title"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

// CreateEventRequest is the request to create an event.
type CreateEventRequest struct {
	ID       string `json:"id,omitempty"`
	JobID    string `json:"job_id"`
	JobName  string `json:"job_name"`
	Title    string `json:"title"`
	StartsAt string `json:"starts_at"` // RFC 3339
	EndsAt   string `json:"ends_at"`   // RFC 3339, exclusive
}

// AssignmentDTO represents a crew assignment.
type AssignmentDTO struct {
	ID          string  `json:"id"`
	EventID     string  `json:"event_id"`
	EmployeeID  string  `json:"employee_id"`
	DayOverride *string `json:"day_override,omitempty"`
	Hours       *string `json:"hours,omitempty"`
	Note        string  `json:"note,omitempty"`
}

// CreateAssignmentRequest is the request to add a crew assignment.
type CreateAssignmentRequest struct {
	ID          string   `json:"id,omitempty"`
	EmployeeID  string   `json:"employee_id"`
	DayOverride *string  `json:"day_override,omitempty"`
	Hours       *float64 `json:"hours,omitempty"`
	Note        string   `json:"note,omitempty"`
}

// ScenarioDTO represents a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toLaborRowDTO(row labor.LaborDailyRow) LaborRowDTO {
	return LaborRowDTO{
		ID:                 row.ID,
		JobID:              string(row.JobID),
		JobName:            row.JobName,
		Day:                row.Day.String(),
		EventID:            string(row.EventID),
		EventTitle:         row.EventTitle,
		EmployeeID:         string(row.EmployeeID),
		EmployeeName:       row.EmployeeName,
		SourceAssignmentID: string(row.SourceAssignmentID),
		Hours:              row.Hours.String(),
		RegularHours:       row.RegularHours.String(),
		OvertimeHours:      row.OvertimeHours.String(),
		Rate:               row.Rate.String(),
		RegularCost:        row.RegularCost.String(),
		OvertimeCost:       row.OvertimeCost.String(),
		TotalCost:          row.TotalCost.String(),
		Note:               row.Note,
	}
}

func toLaborRowDTOs(rows []labor.LaborDailyRow) []LaborRowDTO {
	dtos := make([]LaborRowDTO, len(rows))
	for i, row := range rows {
		dtos[i] = toLaborRowDTO(row)
	}
	return dtos
}

func toEmployeeDTO(emp labor.Employee) EmployeeDTO {
	dto := EmployeeDTO{ID: string(emp.ID), Name: emp.Name}
	if emp.DefaultRate != nil {
		s := emp.DefaultRate.String()
		dto.DefaultRate = &s
	}
	return dto
}

func toEventDTO(e labor.Event) EventDTO {
	return EventDTO{
		ID:       string(e.ID),
		JobID:    string(e.JobID),
		JobName:  e.JobName,
		Title:    e.Title,
		StartsAt: e.StartsAt.UTC().Format(time.RFC3339),
		EndsAt:   e.EndsAt.UTC().Format(time.RFC3339),
	}
}

func toAssignmentDTO(a labor.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:         string(a.ID),
		EventID:    string(a.EventID),
		EmployeeID: string(a.EmployeeID),
		Note:       a.Note,
	}
	if a.DayOverride != nil {
		s := a.DayOverride.String()
		dto.DayOverride = &s
	}
	if a.Hours != nil {
		s := a.Hours.String()
		dto.Hours = &s
	}
	return dto
}
