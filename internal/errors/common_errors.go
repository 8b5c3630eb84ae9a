package errors

import (
	"fmt"
	"sort"
	"strings"
)

// ErrorType represents the type of error
type ErrorType string

const (
	ErrTypeIO         ErrorType = "IO"
	ErrTypeDataFormat ErrorType = "DATA_FORMAT"
	ErrTypeEmptyTable ErrorType = "EMPTY_TABLE"
	ErrTypeArithmetic ErrorType = "ARITHMETIC"
	ErrTypeConfig     ErrorType = "CONFIG"
)

// AppError represents an application-specific error
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Sentinels for errors.Is. A sentinel with an empty Message matches every
// error of its type.
var (
	ErrIO             = &AppError{Type: ErrTypeIO}
	ErrDataFormat     = &AppError{Type: ErrTypeDataFormat}
	ErrEmptyTable     = &AppError{Type: ErrTypeEmptyTable}
	ErrArithmetic     = &AppError{Type: ErrTypeArithmetic}
	ErrConfig         = &AppError{Type: ErrTypeConfig}
	ErrMissingColumn  = &AppError{Type: ErrTypeDataFormat, Message: msgMissingColumn}
	ErrDivisionByZero = &AppError{Type: ErrTypeArithmetic, Message: msgDivisionByZero}
)

const (
	msgMissingColumn  = "missing required column"
	msgDivisionByZero = "division by zero"
)

// Error implements the error interface
func (e *AppError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s", e.Type, e.Message)
	if len(e.Context) > 0 {
		keys := make([]string, 0, len(e.Context))
		for k := range e.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Context[k]))
		}
		fmt.Fprintf(&b, " (%s)", strings.Join(parts, ", "))
	}
	if e.Cause != nil {
		fmt.Fprintf(&b, ": %v", e.Cause)
	}
	return b.String()
}

// Unwrap allows errors.Is and errors.As to work with AppError
func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is matches on type, and on message when the target carries one.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	if t.Type != e.Type {
		return false
	}
	return t.Message == "" || t.Message == e.Message
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

// NewIOError creates an error for unreadable or unwritable files
func NewIOError(message, path string, cause error) *AppError {
	return NewAppError(ErrTypeIO, message, cause).WithContext("path", path)
}

// NewDataFormatError creates an error for input that does not fit the table schema
func NewDataFormatError(message string, cause error) *AppError {
	return NewAppError(ErrTypeDataFormat, message, cause)
}

// NewMissingColumnError reports a required column absent from the header row
func NewMissingColumnError(column string) *AppError {
	return NewAppError(ErrTypeDataFormat, msgMissingColumn, nil).WithContext("column", column)
}

// NewEmptyTableError reports an operation that needs at least one row
func NewEmptyTableError(operation string) *AppError {
	return NewAppError(ErrTypeEmptyTable, "table has no rows", nil).WithContext("operation", operation)
}

// NewDivisionByZeroError reports a zero divisor at the given sequence index
func NewDivisionByZeroError(index int) *AppError {
	return NewAppError(ErrTypeArithmetic, msgDivisionByZero, nil).WithContext("index", index)
}

// NewConfigError creates a configuration error
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}
