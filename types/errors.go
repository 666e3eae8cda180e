package types

import (
	"fmt"
	"sort"
	"strings"
)

// ValidationError carries field-scoped messages in the shape the REST API
// uses, e.g. {"errors": {"nftfi.contract.name": ["v9.loan.fixed not supported"]}}.
type ValidationError struct {
	Errors map[string][]string `json:"errors"`
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field string, messages ...string) *ValidationError {
	return &ValidationError{Errors: map[string][]string{field: messages}}
}

// Add appends a message for a field.
func (e *ValidationError) Add(field, message string) {
	if e.Errors == nil {
		e.Errors = make(map[string][]string)
	}
	e.Errors[field] = append(e.Errors[field], message)
}

// Empty reports whether no messages were recorded.
func (e *ValidationError) Empty() bool {
	return e == nil || len(e.Errors) == 0
}

func (e *ValidationError) Error() string {
	if e.Empty() {
		return "validation failed"
	}
	fields := make([]string, 0, len(e.Errors))
	for field := range e.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(e.Errors[field], "; ")))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
