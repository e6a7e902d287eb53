package errors

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when credentials are missing or wrong
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition is returned when an order cannot move from one status to another
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid status transition from %s to %s", e.From, e.To)
}

// ErrInvalidStatus is returned when a caller supplies a status outside the known set
type ErrInvalidStatus struct {
	Value string
}

func (e *ErrInvalidStatus) Error() string {
	return fmt.Sprintf("invalid order status: %q", e.Value)
}

// ErrEmptyCart is returned when checkout is attempted without line items
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrValidation is returned when input fails validation
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ErrRepositoryUnavailable wraps storage or network failures
type ErrRepositoryUnavailable struct {
	Op  string
	Err error
}

func (e *ErrRepositoryUnavailable) Error() string {
	return fmt.Sprintf("%s: repository unavailable: %v", e.Op, e.Err)
}

func (e *ErrRepositoryUnavailable) Unwrap() error {
	return e.Err
}

// Unavailable wraps err as ErrRepositoryUnavailable unless it already carries
// one of the typed errors of this package.
func Unavailable(op string, err error) error {
	if err == nil || IsTyped(err) {
		return err
	}
	return &ErrRepositoryUnavailable{Op: op, Err: err}
}

// IsTyped reports whether err is one of the typed errors of this package.
func IsTyped(err error) bool {
	return IsNotFound(err) ||
		IsUnauthorized(err) ||
		IsInvalidStateTransition(err) ||
		IsInvalidStatus(err) ||
		IsEmptyCart(err) ||
		IsValidation(err) ||
		IsUnavailable(err)
}

func IsNotFound(err error) bool {
	var target *ErrNotFound
	return errors.As(err, &target)
}

func IsUnauthorized(err error) bool {
	var target *ErrUnauthorized
	return errors.As(err, &target)
}

func IsInvalidStateTransition(err error) bool {
	var target *ErrInvalidStateTransition
	return errors.As(err, &target)
}

func IsInvalidStatus(err error) bool {
	var target *ErrInvalidStatus
	return errors.As(err, &target)
}

func IsEmptyCart(err error) bool {
	var target *ErrEmptyCart
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target *ErrValidation
	return errors.As(err, &target)
}

func IsUnavailable(err error) bool {
	var target *ErrRepositoryUnavailable
	return errors.As(err, &target)
}
