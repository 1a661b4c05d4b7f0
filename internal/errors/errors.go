// Package errors provides unified error handling across the blueprint system.
//
// It standardizes error representation for every surface (CLI, interactive
// form, programmatic API): loader and compiler failures are AppErrors with a
// stable code, a category, and a severity, so callers can branch on what went
// wrong without string matching.
//
// The template engine's own taxonomy maps onto these codes:
//   - ErrCodeTemplateParse: serialized input is not valid template YAML
//   - ErrCodeMissingField: a template definition lacks a mandatory field
//   - ErrCodeParentNotFound: extends references an unregistered template
//   - ErrCodeMissingVariable: a required variable has no value and no default
//   - ErrCodeInheritanceCycle: an extends chain loops back on itself
//
// Unresolved interpolation references are deliberately NOT errors; they are
// left literal in rendered output so missing data stays visible.
package errors

import (
	"fmt"
	"time"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation    ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField  ErrorCode = "MISSING_FIELD"
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"

	// Template engine errors
	ErrCodeTemplateParse    ErrorCode = "TEMPLATE_PARSE_ERROR"
	ErrCodeParentNotFound   ErrorCode = "PARENT_NOT_FOUND"
	ErrCodeMissingVariable  ErrorCode = "MISSING_REQUIRED_VARIABLE"
	ErrCodeInheritanceCycle ErrorCode = "INHERITANCE_CYCLE"

	// Service errors
	ErrCodeInternalError  ErrorCode = "INTERNAL_ERROR"
	ErrCodeNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Resource errors
	ErrCodeNotFound      ErrorCode = "NOT_FOUND"
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Storage errors
	ErrCodeStorageFailure ErrorCode = "STORAGE_FAILURE"
	ErrCodeFileNotFound   ErrorCode = "FILE_NOT_FOUND"
	ErrCodeFileCorrupted  ErrorCode = "FILE_CORRUPTED"

	// Command errors
	ErrCodeCommandNotFound ErrorCode = "COMMAND_NOT_FOUND"
	ErrCodeCommandFailed   ErrorCode = "COMMAND_FAILED"
	ErrCodeInvalidCommand  ErrorCode = "INVALID_COMMAND"
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
	CategoryTemplate   ErrorCategory = "template"
	CategoryService    ErrorCategory = "service"
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
	case ErrCodeValidation, ErrCodeInvalidInput, ErrCodeMissingField, ErrCodeInvalidFormat:
		return CategoryValidation, SeverityWarning

	case ErrCodeTemplateParse, ErrCodeParentNotFound, ErrCodeMissingVariable:
		return CategoryTemplate, SeverityError
	case ErrCodeInheritanceCycle:
		return CategoryTemplate, SeverityCritical

	case ErrCodeInternalError:
		return CategoryService, SeverityCritical
	case ErrCodeNotImplemented:
		return CategoryService, SeverityInfo
	case ErrCodeNotFound:
		return CategoryService, SeverityInfo
	case ErrCodeAlreadyExists:
		return CategoryService, SeverityWarning

	case ErrCodeStorageFailure, ErrCodeFileCorrupted:
		return CategoryStorage, SeverityError
	case ErrCodeFileNotFound:
		return CategoryStorage, SeverityInfo

	case ErrCodeCommandNotFound:
		return CategoryCommand, SeverityInfo
	case ErrCodeCommandFailed, ErrCodeInvalidCommand:
		return CategoryCommand, SeverityError

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

// IsCode reports whether err is an AppError carrying the given code
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := err.(*AppError)
	return ok && appErr.Code == code
}

// Common error constructors for frequently used errors

func ValidationError(message string) *AppError {
	return NewAppError(ErrCodeValidation, message)
}

func NotFoundError(resource string) *AppError {
	return NewAppError(ErrCodeNotFound, fmt.Sprintf("%s not found", resource))
}

func InternalError(message string) *AppError {
	return NewAppError(ErrCodeInternalError, message)
}

func StorageError(operation string, err error) *AppError {
	return Wrap(err, ErrCodeStorageFailure, fmt.Sprintf("Storage operation failed: %s", operation))
}

func ParseError(source string, err error) *AppError {
	return Wrap(err, ErrCodeTemplateParse, fmt.Sprintf("Failed to parse template %s", source))
}

// MissingFieldError reports a template definition lacking a mandatory field.
// entity identifies what was being validated (meta, a variable, a section).
func MissingFieldError(entity, field string) *AppError {
	return NewAppError(ErrCodeMissingField, fmt.Sprintf("%s is missing required field '%s'", entity, field)).
		WithContext("entity", entity).
		WithContext("field", field)
}

// ParentNotFoundError reports an extends reference to an unregistered template
func ParentNotFoundError(templateID, parentID string) *AppError {
	return NewAppError(ErrCodeParentNotFound,
		fmt.Sprintf("Template '%s' extends unknown template '%s'", templateID, parentID)).
		WithContext("template", templateID).
		WithContext("parent", parentID)
}

// MissingVariableError reports a required variable with neither a caller
// value nor a declared default at compile time
func MissingVariableError(name string) *AppError {
	return NewAppError(ErrCodeMissingVariable,
		fmt.Sprintf("Required variable '%s' has no value and no default", name)).
		WithContext("variable", name)
}

// InheritanceCycleError reports a cyclic extends chain
func InheritanceCycleError(templateID string) *AppError {
	return NewAppError(ErrCodeInheritanceCycle,
		fmt.Sprintf("Template '%s' participates in a cyclic extends chain", templateID)).
		WithContext("template", templateID)
}

func CommandNotFoundError(command string) *AppError {
	return NewAppError(ErrCodeCommandNotFound, fmt.Sprintf("Command '%s' not found", command))
}

func InvalidCommandError(command string, reason string) *AppError {
	return NewAppError(ErrCodeInvalidCommand, fmt.Sprintf("Invalid command '%s': %s", command, reason))
}
