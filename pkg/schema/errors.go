package schema

import (
	"errors"
	"fmt"
	"strings"
)

// ReasonRequired is the ValidationError reason for an absent field.
const ReasonRequired = "required"

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Key    string // Field name
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %T)", e.Key, e.Reason, e.Value)
}

// Missing reports whether the field was absent from the data.
func (e *ValidationError) Missing() bool {
	return e.Reason == ReasonRequired
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		fmt.Fprintf(&b, "  %d. %s\n", i+1, err.Error())
	}
	return b.String()
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}

// MissingFields returns the names of the absent fields reported by err, in order.
func MissingFields(err error) []string {
	var missing []string
	for _, e := range ValidationErrors(err) {
		var verr *ValidationError
		if errors.As(e, &verr) && verr.Missing() {
			missing = append(missing, verr.Key)
		}
	}
	return missing
}
