// Package errors provides custom error types for domain-specific errors.
//
// Within the simulation itself an unmet precondition (no indicator data, no
// chain data, no qualifying strikes, zero affordable contracts, missing
// valuation quotes) is a normal "no trade" outcome and never produces an
// error value. The types here cover genuine faults: bad input data, upstream
// fetch failures, persistence problems.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrDataNotFound  = errors.New("data not found")
	ErrConfigInvalid = errors.New("invalid configuration")
	ErrDatabaseError = errors.New("database error")
	ErrEmptySeries   = errors.New("empty price series")
	ErrUnsortedBars  = errors.New("price bars not in ascending date order")
)

// RemoteError represents a failure reported by the upstream quote provider:
// a non-success HTTP status or an explicit error payload in the response
// body. Fetches that fail this way are fatal to that fetch and are not
// retried internally.
type RemoteError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *RemoteError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote error [%s]: status %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("remote error [%s]: %s", e.Provider, e.Message)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// NewRemoteError creates a new RemoteError.
func NewRemoteError(provider string, statusCode int, message string, err error) *RemoteError {
	return &RemoteError{
		Provider:   provider,
		StatusCode: statusCode,
		Message:    message,
		Err:        err,
	}
}

// SchemaError represents a response that was syntactically valid but missing
// an expected field, such as the time-series key in a quote payload.
type SchemaError struct {
	Provider string
	Field    string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("schema error [%s]: expected field %q not found in response", e.Provider, e.Field)
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(provider, field string) *SchemaError {
	return &SchemaError{
		Provider: provider,
		Field:    field,
	}
}

// DataError represents a malformed or unusable input dataset.
type DataError struct {
	DataType string
	Source   string
	Message  string
	Err      error
}

func (e *DataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data error [%s] %s: %s: %v", e.DataType, e.Source, e.Message, e.Err)
	}
	return fmt.Sprintf("data error [%s] %s: %s", e.DataType, e.Source, e.Message)
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// NewDataError creates a new DataError.
func NewDataError(dataType, source, message string, err error) *DataError {
	return &DataError{
		DataType: dataType,
		Source:   source,
		Message:  message,
		Err:      err,
	}
}

// ValidationError represents an invalid configuration or parameter value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
