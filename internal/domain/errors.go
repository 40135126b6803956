package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ValidationError signals input that violates a domain rule before any write
// happens: a value outside a closed enumeration, a non-positive quantity or
// price, a malformed field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NewValidationError creates a validation error for a single field
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError signals a reference to a record that does not exist,
// typically an unknown asset symbol or a missing config key.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// NewNotFoundError creates a not found error for a resource/identifier pair
func NewNotFoundError(resource, id string) *NotFoundError {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError signals a uniqueness violation. Most insert-if-absent paths
// absorb the underlying constraint violation as a no-op; this error is only
// surfaced where a duplicate is genuinely unexpected.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Key)
}

// NewConflictError creates a conflict error for a resource/key pair
func NewConflictError(resource, key string) *ConflictError {
	return &ConflictError{Resource: resource, Key: key}
}

// ArithmeticMismatchError signals a caller-supplied total_amount that does
// not equal quantity × price_per_unit. The store never recomputes the
// product after the fact, so drift has to be rejected at write time.
type ArithmeticMismatchError struct {
	Expected decimal.Decimal
	Got      decimal.Decimal
}

func (e *ArithmeticMismatchError) Error() string {
	return fmt.Sprintf("total_amount %s does not match quantity*price_per_unit %s",
		e.Got.String(), e.Expected.String())
}

// IsValidation reports whether err is (or wraps) a ValidationError
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError
func IsNotFound(err error) bool {
	var n *NotFoundError
	return errors.As(err, &n)
}

// IsConflict reports whether err is (or wraps) a ConflictError
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsArithmeticMismatch reports whether err is (or wraps) an ArithmeticMismatchError
func IsArithmeticMismatch(err error) bool {
	var a *ArithmeticMismatchError
	return errors.As(err, &a)
}
