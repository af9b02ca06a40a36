// Package errors provides centralized error definitions and error handling utilities
// for rowsift. It defines domain-specific errors, semantic error types,
// error constructors with context wrapping, and error classification helpers.
//
// # Error Types
//
// Domain-specific errors represent errors from specific subsystems:
//   - DatasetError: errors loading, parsing or discovering a dataset
//   - FilterError: errors applying filter state changes
//
// Semantic errors represent common error conditions:
//   - ValidationError: invalid input or configuration
//   - TimeoutError: operation timed out
//
// # Usage
//
//	err := errors.NewDatasetError("dataset has no rows", errors.ErrNoData).
//		WithSource("data.csv")
//
//	if errors.Is(err, errors.ErrNoData) { ... }
//
//	var dsErr *errors.DatasetError
//	if errors.As(err, &dsErr) { ... }
//
//	if errors.IsUserFacing(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Severity represents the severity level of an error.
type Severity int

const (
	// SeverityDebug is for errors that are useful for debugging but not critical.
	SeverityDebug Severity = iota
	// SeverityInfo is for informational errors that don't indicate a problem.
	SeverityInfo
	// SeverityWarning is for errors that might indicate a problem but aren't critical.
	SeverityWarning
	// SeverityError is for errors that indicate a real problem.
	SeverityError
	// SeverityCritical is for errors that require immediate attention.
	SeverityCritical
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// -----------------------------------------------------------------------------
// Sentinel Errors
// -----------------------------------------------------------------------------

// Dataset-related sentinel errors
var (
	// ErrNoData indicates that the dataset is empty or lacks the expected header.
	ErrNoData = New("no data")
	// ErrParse indicates that the dataset source text is malformed.
	ErrParse = New("malformed dataset")
	// ErrSourceUnavailable indicates that the dataset source could not be read.
	ErrSourceUnavailable = New("dataset source unavailable")
)

// Filter-related sentinel errors
var (
	// ErrInvalidBase indicates a non-numeric or non-positive modulo base.
	ErrInvalidBase = New("invalid modulo base")
	// ErrUnknownColumn indicates a filter referenced a column that is not filterable.
	ErrUnknownColumn = New("unknown column")
	// ErrNotReady indicates a filter event arrived before the dataset was loaded.
	ErrNotReady = New("dataset not ready")
)

// General sentinel errors
var (
	// ErrTimeout indicates that an operation timed out.
	ErrTimeout = New("operation timed out")
	// ErrCanceled indicates that an operation was canceled.
	ErrCanceled = New("operation canceled")
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
)

// -----------------------------------------------------------------------------
// Base Error Interface
// -----------------------------------------------------------------------------

// RowsiftError is the base interface for all rowsift errors.
type RowsiftError interface {
	error

	// Unwrap returns the underlying error, if any.
	Unwrap() error

	// Is reports whether this error matches the target error.
	Is(target error) bool

	// Severity returns the severity level of this error.
	Severity() Severity

	// IsRetryable returns true if the operation may succeed on retry.
	IsRetryable() bool

	// IsUserFacing returns true if the error message is safe to display
	// to end users.
	IsUserFacing() bool
}

// baseError provides common functionality for all error types.
type baseError struct {
	message    string
	cause      error
	severity   Severity
	retryable  bool
	userFacing bool
}

// Error returns the error message.
func (e *baseError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.message, e.cause)
	}
	return e.message
}

// Unwrap returns the underlying error.
func (e *baseError) Unwrap() error {
	return e.cause
}

// Is checks if this error matches the target.
func (e *baseError) Is(target error) bool {
	if e.cause != nil {
		return errors.Is(e.cause, target)
	}
	return false
}

// Severity returns the error severity.
func (e *baseError) Severity() Severity {
	return e.severity
}

// IsRetryable returns whether the error is retryable.
func (e *baseError) IsRetryable() bool {
	return e.retryable
}

// IsUserFacing returns whether the error is safe to show users.
func (e *baseError) IsUserFacing() bool {
	return e.userFacing
}

// Message returns the message without cause or context decoration.
func (e *baseError) Message() string {
	return e.message
}

// -----------------------------------------------------------------------------
// Domain-Specific Errors
// -----------------------------------------------------------------------------

// DatasetError represents errors related to loading and interpreting a dataset.
//
// Example:
//
//	err := errors.NewDatasetError("missing header", errors.ErrNoData).WithSource("data.csv")
//	fmt.Println(err) // "dataset error [source=data.csv]: missing header: no data"
type DatasetError struct {
	baseError
	Source string
	Line   int
	Column string
}

// NewDatasetError creates a new DatasetError.
func NewDatasetError(message string, cause error) *DatasetError {
	return &DatasetError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityError,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithSource adds the dataset source (path or URL) to the error context.
func (e *DatasetError) WithSource(source string) *DatasetError {
	e.Source = source
	return e
}

// WithLine adds the 1-based source line to the error context.
func (e *DatasetError) WithLine(line int) *DatasetError {
	e.Line = line
	return e
}

// WithColumn adds a column name to the error context.
func (e *DatasetError) WithColumn(column string) *DatasetError {
	e.Column = column
	return e
}

// WithRetryable sets whether the error is retryable.
func (e *DatasetError) WithRetryable(r bool) *DatasetError {
	e.retryable = r
	return e
}

// Error returns the formatted error message.
func (e *DatasetError) Error() string {
	var parts []string
	if e.Source != "" {
		parts = append(parts, fmt.Sprintf("source=%s", e.Source))
	}
	if e.Line > 0 {
		parts = append(parts, fmt.Sprintf("line=%d", e.Line))
	}
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}

	prefix := "dataset error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("dataset error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *DatasetError) Is(target error) bool {
	if _, ok := target.(*DatasetError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// FilterError represents errors applying a change to the filter state.
//
// Example:
//
//	err := errors.NewFilterError("cannot filter", errors.ErrUnknownColumn).WithColumn("colour")
type FilterError struct {
	baseError
	Column string
	Input  string
}

// NewFilterError creates a new FilterError.
func NewFilterError(message string, cause error) *FilterError {
	return &FilterError{
		baseError: baseError{
			message:    message,
			cause:      cause,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithColumn adds a column name to the error context.
func (e *FilterError) WithColumn(column string) *FilterError {
	e.Column = column
	return e
}

// WithInput adds the raw user input to the error context.
func (e *FilterError) WithInput(input string) *FilterError {
	e.Input = input
	return e
}

// WithSeverity sets the error severity.
func (e *FilterError) WithSeverity(s Severity) *FilterError {
	e.severity = s
	return e
}

// Error returns the formatted error message.
func (e *FilterError) Error() string {
	var parts []string
	if e.Column != "" {
		parts = append(parts, fmt.Sprintf("column=%s", e.Column))
	}
	if e.Input != "" {
		parts = append(parts, fmt.Sprintf("input=%q", e.Input))
	}

	prefix := "filter error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("filter error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *FilterError) Is(target error) bool {
	if _, ok := target.(*FilterError); ok {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Semantic Errors
// -----------------------------------------------------------------------------

// ValidationError represents invalid input or state.
//
// Example:
//
//	err := errors.NewValidationError("page size must be positive").WithField("page_size").WithValue(0)
type ValidationError struct {
	baseError
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		baseError: baseError{
			message:    message,
			severity:   SeverityWarning,
			retryable:  false,
			userFacing: true,
		},
	}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *ValidationError) Error() string {
	var parts []string
	if e.Field != "" {
		parts = append(parts, fmt.Sprintf("field=%s", e.Field))
	}
	if e.Value != nil {
		parts = append(parts, fmt.Sprintf("value=%v", e.Value))
	}

	prefix := "validation error"
	if len(parts) > 0 {
		prefix = fmt.Sprintf("validation error [%s]", strings.Join(parts, ", "))
	}

	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", prefix, e.message, e.cause)
	}
	return fmt.Sprintf("%s: %s", prefix, e.message)
}

// Is checks if this error matches the target.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	if errors.Is(target, ErrInvalidInput) {
		return true
	}
	return e.baseError.Is(target)
}

// TimeoutError represents an operation that timed out.
type TimeoutError struct {
	baseError
	Operation string
	Duration  time.Duration
}

// NewTimeoutError creates a new TimeoutError.
func NewTimeoutError(operation string, duration time.Duration) *TimeoutError {
	return &TimeoutError{
		baseError: baseError{
			message:    operation,
			severity:   SeverityWarning,
			retryable:  true,
			userFacing: true,
		},
		Operation: operation,
		Duration:  duration,
	}
}

// WithCause adds a cause to the error.
func (e *TimeoutError) WithCause(cause error) *TimeoutError {
	e.cause = cause
	return e
}

// Error returns the formatted error message.
func (e *TimeoutError) Error() string {
	base := fmt.Sprintf("timeout error: %s (timeout: %s)", e.Operation, e.Duration)
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", base, e.cause)
	}
	return base
}

// Is checks if this error matches the target.
func (e *TimeoutError) Is(target error) bool {
	if _, ok := target.(*TimeoutError); ok {
		return true
	}
	if errors.Is(target, ErrTimeout) {
		return true
	}
	return e.baseError.Is(target)
}

// -----------------------------------------------------------------------------
// Error Classification Helpers
// -----------------------------------------------------------------------------

// IsRetryable returns true if the error represents a transient condition
// that may succeed on retry.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	var rsErr RowsiftError
	if As(err, &rsErr) {
		return rsErr.IsRetryable()
	}

	return Is(err, ErrTimeout)
}

// IsUserFacing returns true if the error message is safe to display to end users.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}

	var rsErr RowsiftError
	if As(err, &rsErr) {
		return rsErr.IsUserFacing()
	}
	return false
}

// GetSeverity returns the severity level of the error.
// Returns SeverityError for errors that don't implement RowsiftError.
func GetSeverity(err error) Severity {
	if err == nil {
		return SeverityDebug
	}

	var rsErr RowsiftError
	if As(err, &rsErr) {
		return rsErr.Severity()
	}

	return SeverityError
}

// UserMessage returns a short message suitable for a status line.
// Errors that are not user-facing collapse to a generic message.
func UserMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case IsUserFacing(err):
		return err.Error()
	default:
		return "an internal error occurred"
	}
}

// -----------------------------------------------------------------------------
// Convenience Constructors
// -----------------------------------------------------------------------------

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with a formatted context message.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}
