// Package common defines the sentinel and typed errors shared across the
// service and transport layers. Callers match sentinels with errors.Is and
// typed errors with errors.As.
package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrUnauthenticated covers bad credentials and invalid or expired
	// refresh tokens. Lookup-miss and password-mismatch are deliberately
	// indistinguishable to prevent username enumeration.
	ErrUnauthenticated = errors.New("invalid credentials or token")

	// ErrorInternal is returned for failures the caller cannot act on.
	ErrorInternal = errors.New("internal error")
)

// NotFoundError reports that an entity, or an entity referenced by id,
// does not exist.
type NotFoundError struct {
	Entity string
	ID     uuid.UUID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Entity, e.ID)
}

// NewNotFound constructs a NotFoundError for the given entity and id.
func NewNotFound(entity string, id uuid.UUID) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// ConflictError reports a uniqueness violation, e.g. a duplicate username.
type ConflictError struct {
	Entity string
	Field  string
	Value  string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("a %s with this %s already exists", e.Entity, e.Field)
}

// ValidationError carries every violated rule for a request, never just the
// first one.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Violations, "; ")
}
