// Package validation rejects out-of-range engine input at the boundary before any scoring runs.
package validation

import "fmt"

// ValidationError represents input outside its declared range. Ranges are
// enforced at ingestion, never silently clamped.
type ValidationError struct {
	Entity string
	ID     string
	Fields []FieldError
}

// FieldError is a single range violation on one field.
type FieldError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return fmt.Sprintf("validation error: %s %s: %s %s", e.Entity, e.ID, e.Fields[0].Field, e.Fields[0].Message)
	}
	return fmt.Sprintf("validation error: %s %s: %d invalid fields", e.Entity, e.ID, len(e.Fields))
}

// InsufficientDataError signals that a training set is too small to fit a
// model. Callers degrade to a neutral prediction rather than failing.
type InsufficientDataError struct {
	RequirementID string
	Have          int
	Need          int
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("insufficient training data for requirement %s: have %d, need %d", e.RequirementID, e.Have, e.Need)
}
