// Package errors provides unified error handling across the promptbrush system.
//
// It standardizes error representation for the two core components (template
// rendering and image persistence) and the surfaces built on top of them
// (CLI, TUI). Business logic returns *AppError values; interface layers format
// them with the handlers in handlers.go.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Input errors
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingKey   ErrorCode = "MISSING_KEY"

	// Rendering errors
	ErrCodeRenderFailure ErrorCode = "RENDER_FAILURE"

	// Artifact errors
	ErrCodeDecodeFailure ErrorCode = "DECODE_FAILURE"
	ErrCodeIOFailure     ErrorCode = "IO_FAILURE"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"

	// Command errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeInvalidCommand  ErrorCode = "INVALID_COMMAND"

	// Catch-all
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
)

// ErrorSeverity represents the severity level of an error
type ErrorSeverity string

const (
	SeverityInfo     ErrorSeverity = "info"
	SeverityWarning  ErrorSeverity = "warning"
	SeverityError    ErrorSeverity = "error"
	SeverityCritical ErrorSeverity = "critical"
)

// ErrorCategory represents the category of an error
type ErrorCategory string

const (
	CategoryValidation ErrorCategory = "validation"
	CategoryRendering  ErrorCategory = "rendering"
	CategoryArtifact   ErrorCategory = "artifact"
	CategoryStorage    ErrorCategory = "storage"
	CategoryCommand    ErrorCategory = "command"
	CategorySystem     ErrorCategory = "system"
)

// AppError represents a standardized application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Severity  ErrorSeverity          `json:"severity"`
	Category  ErrorCategory          `json:"category"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error
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

// WithDetails adds details to the error
func (e *AppError) WithDetails(details string) *AppError {
	e.Details = details
	return e
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Timestamp: time.Now(),
	}
}

// Wrap wraps an existing error with application error context
func Wrap(err error, code ErrorCode, message string) *AppError {
	category, severity := categorizeError(code)
	return &AppError{
		Code:      code,
		Message:   message,
		Severity:  severity,
		Category:  category,
		Cause:     err,
		Timestamp: time.Now(),
	}
}

// categorizeError determines the category and severity based on error code
func categorizeError(code ErrorCode) (ErrorCategory, ErrorSeverity) {
	switch code {
	case ErrCodeInvalidInput, ErrCodeMissingKey:
		return CategoryValidation, SeverityWarning

	case ErrCodeRenderFailure:
		return CategoryRendering, SeverityWarning

	case ErrCodeDecodeFailure:
		return CategoryArtifact, SeverityWarning
	case ErrCodeIOFailure:
		return CategoryArtifact, SeverityError

	case ErrCodeNotFound:
		return CategoryStorage, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryStorage, SeverityWarning
	case ErrCodeStorageFailure:
		return CategoryStorage, SeverityError

	case ErrCodeCommandNotFound:
		return CategoryCommand, SeverityInfo
	case ErrCodeInvalidCommand:
		return CategoryCommand, SeverityError

	case ErrCodeInternalError:
		return CategorySystem, SeverityCritical

	default:
		return CategorySystem, SeverityError
	}
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError extracts an AppError from an error, or converts it to one
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return Wrap(err, ErrCodeInternalError, "Internal error occurred")
}

// HasCode reports whether err is an AppError carrying the given code
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Common error constructors for frequently used errors

// InvalidInputError signals an argument of the wrong type or shape
func InvalidInputError(argument, reason string) *AppError {
	return NewAppError(ErrCodeInvalidInput, fmt.Sprintf("Invalid %s: %s", argument, reason))
}

// MissingKeyError signals a render attempt that lacks a value for a
// placeholder referenced by the pattern. The placeholder name is recorded
// in the error context under "placeholder".
func MissingKeyError(placeholder string) *AppError {
	return NewAppError(ErrCodeMissingKey, fmt.Sprintf("No value supplied for placeholder '%s'", placeholder)).
		WithContext("placeholder", placeholder)
}

// RenderError signals malformed placeholder syntax in a pattern
func RenderError(reason string) *AppError {
	return NewAppError(ErrCodeRenderFailure, fmt.Sprintf("Render failed: %s", reason))
}

// DecodeError signals a payload that is not valid base64
func DecodeError(err error) *AppError {
	return Wrap(err, ErrCodeDecodeFailure, "Payload is not valid base64")
}

// IOError signals a filesystem failure while persisting an artifact
func IOError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeIOFailure, fmt.Sprintf("Filesystem operation failed: %s", operation))
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func AlreadyExistsError(resource string) *AppError {
	return NewAppError(ErrCodeAlreadyExists, fmt.Sprintf("%s already exists", resource))
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func CommandNotFoundError(command string) *AppError {
	return NewAppError(ErrCodeCommandNotFound, fmt.Sprintf("Command '%s' not found", command))
}

func InvalidCommandError(command string, reason string) *AppError {
	return NewAppError(ErrCodeInvalidCommand, fmt.Sprintf("Invalid command '%s': %s", command, reason))
}
