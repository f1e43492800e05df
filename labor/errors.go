/*
errors.go - Centralized error types for the aggregation engine

ERROR CATEGORIES:
  1. Validation errors - malformed or inverted date windows, bad config.
     Rejected before any store access.
  2. Store errors - failures during reads or the ledger replace transaction.
     The replace is atomic, so a failed rebuild leaves the prior ledger intact.

Missing-rate conditions are deliberately NOT errors: they are accumulated in
the RebuildResult so a caller can alert without aborting the rebuild.
*/
package labor

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidWindow is returned when a rebuild window is malformed or
	// the end date precedes the start date.
	ErrInvalidWindow = errors.New("invalid date window")

	// ErrInvalidConfig is returned when the engine configuration is unusable.
	ErrInvalidConfig = errors.New("invalid engine configuration")
)

// =============================================================================
// STRUCTURED ERRORS
// =============================================================================

// WindowError describes why a rebuild window was rejected.
type WindowError struct {
	StartDate string
	EndDate   string
	Reason    string
}

func (e *WindowError) Error() string {
	return fmt.Sprintf("invalid window [%s, %s]: %s", e.StartDate, e.EndDate, e.Reason)
}

func (e *WindowError) Unwrap() error { return ErrInvalidWindow }

// ConfigError describes a single unusable configuration field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return ErrInvalidConfig }

// IsClientError returns true if the error is due to invalid caller input,
// as opposed to a store failure.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidWindow) || errors.Is(err, ErrInvalidConfig)
}
