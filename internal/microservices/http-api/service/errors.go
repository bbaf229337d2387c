package service

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation failed")
	ErrUnauthorized       = errors.New("could not validate credentials")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrExpiredToken       = fmt.Errorf("%w: token has expired", ErrUnauthorized)

	ErrNameInUse  = &ValidationError{Field: "username", Message: "Username already registered"}
	ErrEmailInUse = &ValidationError{Field: "email", Message: "Email already registered"}
)

// ValidationError reports malformed or out-of-range input on a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func invalid(field, format string, args ...any) *ValidationError {
	return &ValidationError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NotFoundError names the missing resource. Ownership failures on reviews and
// comments are reported with this error too, so callers cannot tell whether
// the row exists under another author.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func notFound(resource string) *NotFoundError {
	return &NotFoundError{Resource: resource}
}
