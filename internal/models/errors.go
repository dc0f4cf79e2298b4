package models

import (
	"errors"
	"fmt"
)

// ErrForbidden is returned when an authenticated caller is not allowed to
// touch the resource. Handlers map it to 403.
var ErrForbidden = errors.New("not authorized to access this resource")

// ValidationError reports malformed or insufficient input. Maps to 400.
type ValidationError struct {
	Detail string
}

func (e *ValidationError) Error() string { return e.Detail }

// NewValidation creates a ValidationError with a formatted detail message.
func NewValidation(format string, args ...interface{}) error {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// NotFoundError reports an unknown entity id. Maps to 404.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// NewNotFound creates a NotFoundError for the given resource and id.
func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports a write that lost a race, such as a stock decrement
// that another order committed first. Maps to 409.
type ConflictError struct {
	Detail string
}

func (e *ConflictError) Error() string { return e.Detail }

// NewConflict creates a ConflictError with a formatted detail message.
func NewConflict(format string, args ...interface{}) error {
	return &ConflictError{Detail: fmt.Sprintf(format, args...)}
}
