// Package errors provides a lightweight structured error type (ReportError)
// for category-based classification of report generation failures and CLI exit codes.
package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCategory represents the category of a report error for classification
type ErrorCategory string

const (
	// User-facing configuration and input errors
	CategoryConfig     ErrorCategory = "config"
	CategoryValidation ErrorCategory = "validation"

	// External tool and data errors
	CategoryTool    ErrorCategory = "tool"
	CategorySummary ErrorCategory = "summary"

	// Output errors
	CategoryFileSystem ErrorCategory = "filesystem"
	CategoryRender     ErrorCategory = "render"

	CategoryInternal ErrorCategory = "internal"
)

// ErrorSeverity indicates how critical an error is
type ErrorSeverity string

const (
	SeverityFatal   ErrorSeverity = "fatal"   // Stops execution
	SeverityError   ErrorSeverity = "error"   // Error, but not fatal
	SeverityWarning ErrorSeverity = "warning" // Continues with degraded functionality
	SeverityInfo    ErrorSeverity = "info"    // Informational, no impact
)

// ReportError is a structured error with category, severity and context
type ReportError struct {
	Category ErrorCategory `json:"category"`
	Severity ErrorSeverity `json:"severity"`
	Message  string        `json:"message"`
	Cause    error         `json:"cause,omitempty"`
	Context  ContextFields `json:"context,omitempty"`
}

// ContextFields carries structured context for ReportError
type ContextFields map[string]any

// Error implements the error interface
func (e *ReportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s (%s): %s: %v", e.Category, e.Severity, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s (%s): %s", e.Category, e.Severity, e.Message)
}

// Unwrap implements error unwrapping
func (e *ReportError) Unwrap() error {
	return e.Cause
}

// WithContext adds context information to the error
func (e *ReportError) WithContext(key string, value any) *ReportError {
	if e.Context == nil {
		e.Context = make(ContextFields)
	}
	e.Context[key] = value
	return e
}

// Degraded reports whether the error only downgrades output to a placeholder.
func (e *ReportError) Degraded() bool {
	return e.Severity == SeverityWarning || e.Severity == SeverityInfo
}

// New creates a new ReportError
func New(category ErrorCategory, severity ErrorSeverity, message string) *ReportError {
	return &ReportError{
		Category: category,
		Severity: severity,
		Message:  message,
	}
}

// Wrap creates a new ReportError that wraps an existing error
func Wrap(err error, category ErrorCategory, severity ErrorSeverity, message string) *ReportError {
	return &ReportError{
		Category: category,
		Severity: severity,
		Message:  message,
		Cause:    err,
	}
}

// As returns the first ReportError in err's chain.
func As(err error) (*ReportError, bool) {
	var re *ReportError
	if stderrors.As(err, &re) {
		return re, true
	}
	return nil, false
}

// IsCategory checks if an error belongs to a specific category
func IsCategory(err error, category ErrorCategory) bool {
	if re, ok := As(err); ok {
		return re.Category == category
	}
	return false
}

// GetCategory extracts the category from an error, or returns CategoryInternal if not a ReportError
func GetCategory(err error) ErrorCategory {
	if re, ok := As(err); ok {
		return re.Category
	}
	return CategoryInternal
}
