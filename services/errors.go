package services

import "fmt"

// FieldViolation is one broken rule on one inbound field.
type FieldViolation struct {
	Field         string `json:"field"`
	Message       string `json:"message"`
	RejectedValue any    `json:"rejectedValue,omitempty"`
}

// ValidationError collects every violation in the payload; callers map it to
// a single 400 response listing all of them.
type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %d field(s)", len(e.Violations))
}

func (e *ValidationError) add(field, message string, rejected any) {
	e.Violations = append(e.Violations, FieldViolation{Field: field, Message: message, RejectedValue: rejected})
}

// DuplicateError: the store refused an insert on a uniqueness constraint.
type DuplicateError struct {
	Detail string
}

func (e *DuplicateError) Error() string { return "duplicate reading: " + e.Detail }

// NotFoundError: no record matched the query.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string { return e.What + " not found" }

// StoreError wraps any other persistence failure. Driver detail stays inside
// Err and is only exposed in development responses.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string { return "store " + e.Op + " failed: " + e.Err.Error() }

func (e *StoreError) Unwrap() error { return e.Err }
