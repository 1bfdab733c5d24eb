// Package services holds the quotation/invoice business logic. Errors here
// are business-level; mapping to HTTP status codes happens in handlers.
package services

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	ErrNotFound  = errors.New("not found")
	ErrDuplicate = errors.New("duplicate")
	ErrConflict  = errors.New("conflict")
)

// NotFoundError reports an absent entity.
type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// DuplicateError reports an idempotency-token collision on quotation create.
type DuplicateError struct {
	Token string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("quotation with uniqueQuotationId %q already exists", e.Token)
}

func (e *DuplicateError) Unwrap() error { return ErrDuplicate }

// ConflictError reports an operation blocked by related state, such as
// deleting a quotation that invoices still reference.
type ConflictError struct {
	Entity string
	ID     uint
	Reason string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %d: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
