// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
)

// Domain error taxonomy. Controllers translate these into HTTP statuses:
// NotFoundError -> 404, ValidationError -> 400, InvalidStateError -> 400,
// ConflictError -> 400, GoneError -> 410, ErrUnauthorized -> 401.
// Anything else is an internal error: logged in full, generic 500 to the caller.

var ErrUnauthorized = errors.New("unauthorized")

type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

func NewNotFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func NewValidation(msg string) error {
	return &ValidationError{Msg: msg}
}

// InvalidStateError signals an operation attempted against an entity whose
// current status forbids it (editing a sent campaign, sending a campaign
// already in flight, sending with zero recipients).
type InvalidStateError struct {
	Msg string
}

func (e *InvalidStateError) Error() string { return e.Msg }

func NewInvalidState(msg string) error {
	return &InvalidStateError{Msg: msg}
}

type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func NewConflict(msg string) error {
	return &ConflictError{Msg: msg}
}

// GoneError covers magic links that were valid once but no longer are
// (already used or expired).
type GoneError struct {
	Msg string
}

func (e *GoneError) Error() string { return e.Msg }

func NewGone(msg string) error {
	return &GoneError{Msg: msg}
}

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

func IsInvalidState(err error) bool {
	var is *InvalidStateError
	return errors.As(err, &is)
}

func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

func IsGone(err error) bool {
	var g *GoneError
	return errors.As(err, &g)
}
