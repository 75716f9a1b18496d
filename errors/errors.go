/*
 * Copyright © 2025 StarCoreSE, All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a definition is not registered
	ErrNotFound = errors.New("definition not found")

	// ErrInvalidState is returned when an operation precedes the state it depends on
	ErrInvalidState = errors.New("invalid state")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrProviderUnavailable is returned by API clients that hold no method table
	ErrProviderUnavailable = errors.New("definition provider unavailable")

	// ErrVersionMismatch is returned when a provider announces an unexpected API version
	ErrVersionMismatch = errors.New("api version mismatch")
)

// NotFoundError represents an error when a definition is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("invalid definition id %s::%s", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// InvalidStateError represents an operation attempted against a type that is not ready for it
type InvalidStateError struct {
	Type      string
	Operation string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s cannot be applied to type %s before it has been registered", e.Operation, e.Type)
}

func (e *InvalidStateError) Is(target error) bool {
	return target == ErrInvalidState
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// VersionMismatchError represents an announcement carrying an unexpected API version
type VersionMismatchError struct {
	Want int
	Got  int
}

func (e *VersionMismatchError) Error() string {
	return fmt.Sprintf("api version mismatch: want %d, provider announced %d", e.Want, e.Got)
}

func (e *VersionMismatchError) Is(target error) bool {
	return target == ErrVersionMismatch
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(typeName, key string) error {
	return &NotFoundError{Type: typeName, Key: key}
}

// NewInvalidStateError creates a new InvalidStateError
func NewInvalidStateError(typeName, operation string) error {
	return &InvalidStateError{Type: typeName, Operation: operation}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewVersionMismatchError creates a new VersionMismatchError
func NewVersionMismatchError(want, got int) error {
	return &VersionMismatchError{Want: want, Got: got}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsInvalidState checks if an error is an invalid state error
func IsInvalidState(err error) bool {
	return errors.Is(err, ErrInvalidState)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsProviderUnavailable checks if an error reports a missing provider
func IsProviderUnavailable(err error) bool {
	return errors.Is(err, ErrProviderUnavailable)
}

// IsVersionMismatch checks if an error is a version mismatch error
func IsVersionMismatch(err error) bool {
	return errors.Is(err, ErrVersionMismatch)
}
