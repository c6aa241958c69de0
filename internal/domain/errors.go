// Package domain contains the quote store's entities and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/CLI/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates a referenced entity does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a uniqueness violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrValidation indicates a malformed or empty required field.
	ErrValidation = errors.New("validation failed")

	// ErrStorage indicates a persistence-path failure.
	ErrStorage = errors.New("storage failure")

	// ErrUnavailable indicates an upstream quote source could not be used.
	ErrUnavailable = errors.New("unavailable")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// AlreadyExistsError reports that a unique attribute is already taken.
type AlreadyExistsError struct {
	Entity string
	Field  string
	Value  string
}

// Error implements the error interface.
func (e *AlreadyExistsError) Error() string {
	if e.Value != "" {
		return fmt.Sprintf("%s with %s %q already exists", e.Entity, e.Field, e.Value)
	}

	return fmt.Sprintf("%s %s already exists", e.Entity, e.Field)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *AlreadyExistsError) Unwrap() error {
	return ErrAlreadyExists
}

// NewAlreadyExistsError creates an already exists error with context.
func NewAlreadyExistsError(entity, field, value string) error {
	return &AlreadyExistsError{Entity: entity, Field: field, Value: value}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// StorageKind distinguishes file-system failures from encoding failures.
type StorageKind string

const (
	// StorageKindIO covers open, read, write, sync and rename failures.
	StorageKindIO StorageKind = "io"

	// StorageKindSerialization covers JSON encode and decode failures.
	StorageKindSerialization StorageKind = "serialization"
)

// StorageError describes a failed load or save of one container file.
type StorageError struct {
	Kind      StorageKind
	Container string
	Path      string
	Err       error
}

// Error implements the error interface.
func (e *StorageError) Error() string {
	msg := fmt.Sprintf("%s storage error for %s", e.Kind, e.Container)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both the sentinel and the underlying cause, so
// errors.Is(err, ErrStorage) and errors.Is(err, fs.ErrNotExist) both work.
func (e *StorageError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrStorage}
	}

	return []error{ErrStorage, e.Err}
}

// NewStorageError creates a storage error for the given container file.
func NewStorageError(kind StorageKind, container, path string, err error) error {
	return &StorageError{Kind: kind, Container: container, Path: path, Err: err}
}

// UnavailableError reports a failed call to an upstream service.
type UnavailableError struct {
	Service string
	Reason  string
	Err     error
}

// Error implements the error interface.
func (e *UnavailableError) Error() string {
	msg := fmt.Sprintf("service %q unavailable", e.Service)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

// Unwrap exposes both ErrUnavailable and the cause.
func (e *UnavailableError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrUnavailable}
	}

	return []error{ErrUnavailable, e.Err}
}

// NewUnavailableError creates an unavailable error. err may be nil.
func NewUnavailableError(service, reason string, err error) error {
	return &UnavailableError{Service: service, Reason: reason, Err: err}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is a uniqueness violation.
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsStorage checks if an error is a persistence failure.
func IsStorage(err error) bool {
	return errors.Is(err, ErrStorage)
}

// IsUnavailable checks if an error is an upstream failure.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}
