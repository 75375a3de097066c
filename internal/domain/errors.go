package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the registry. Typed errors below match them through
// errors.Is so callers never need to inspect storage-engine messages.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
	ErrDuplicate  = errors.New("duplicate entity")
)

// ValidationError reports a field that failed normalization or validation.
// It is raised before anything is written.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NotFoundError reports an update, delete or get on a missing identity.
type NotFoundError struct {
	Entity Entity
	ID     ID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

// Is matches ErrNotFound
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DuplicateError reports a uniqueness-constraint violation. Entity is empty
// when the violation surfaced at commit and could not be attributed.
type DuplicateError struct {
	Entity Entity
}

func (e *DuplicateError) Error() string {
	if e.Entity == "" {
		return "duplicate entity"
	}
	return fmt.Sprintf("duplicate %s", e.Entity)
}

// Is matches ErrDuplicate
func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// Entity names an entity type in errors and logs
type Entity string

const (
	EntityCity          Entity = "city"
	EntityNeighborhood  Entity = "neighborhood"
	EntityStreet        Entity = "street"
	EntityPoliceStation Entity = "police station"
)
