package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeSchema  ErrorType = "SCHEMA"
	ErrTypeFormat  ErrorType = "FORMAT"
	ErrTypeState   ErrorType = "STATE"
	ErrTypeValue   ErrorType = "VALUE"
	ErrTypeStorage ErrorType = "STORAGE"
	ErrTypeConfig  ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext adds context to the error
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// IsType reports whether err is an AppError of the given type.
func IsType(err error, errType ErrorType) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type == errType
	}
	return false
}

// NewSchemaError creates an error for required columns absent from input.
// The missing set is carried both in the message and in context under
// "missing_columns".
func NewSchemaError(missingColumns []string) *AppError {
	msg := fmt.Sprintf("missing required columns: %s", strings.Join(missingColumns, ", "))
	return NewAppError(ErrTypeSchema, msg, nil).
		WithContext("missing_columns", missingColumns)
}

// MissingColumns extracts the missing column set from a schema error.
func MissingColumns(err error) []string {
	var appErr *AppError
	if !errors.As(err, &appErr) || appErr.Type != ErrTypeSchema {
		return nil
	}
	if cols, ok := appErr.Context["missing_columns"].([]string); ok {
		return cols
	}
	return nil
}

// NewFormatError creates an error for a value that fails to parse. The
// offending raw value is carried in context under "raw_value".
func NewFormatError(message, rawValue string) *AppError {
	return NewAppError(ErrTypeFormat, message, nil).
		WithContext("raw_value", rawValue)
}

// NewStateError creates an error for an operation invoked before a dataset
// was loaded.
func NewStateError(operation string) *AppError {
	return NewAppError(ErrTypeState, fmt.Sprintf("no dataset loaded: %s requires a prior load", operation), nil).
		WithContext("operation", operation)
}

// NewValueError creates an invalid-argument error.
func NewValueError(message string) *AppError {
	return NewAppError(ErrTypeValue, message, nil)
}

// NewStorageError creates a storage-related error
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
