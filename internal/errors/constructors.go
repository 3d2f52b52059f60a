package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *ReportError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *ReportError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *ReportError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Report data errors. All of these degrade a report to its placeholder.

func ToolUnavailable(tool string, cause error) *ReportError {
	return Wrap(cause, CategoryTool, SeverityWarning, "tool unavailable").
		WithContext("tool", tool)
}

func ToolOutputUnparseable(tool string, cause error) *ReportError {
	return Wrap(cause, CategoryTool, SeverityWarning, "tool output unparseable").
		WithContext("tool", tool)
}

func SummaryMissing(path string, cause error) *ReportError {
	return Wrap(cause, CategorySummary, SeverityWarning, "summary missing").
		WithContext("path", path)
}

func SummaryMalformed(path, reason string) *ReportError {
	return New(CategorySummary, SeverityWarning, "summary malformed").
		WithContext("path", path).
		WithContext("reason", reason)
}

// Output errors

func WriteFailed(path string, cause error) *ReportError {
	return Wrap(cause, CategoryFileSystem, SeverityFatal, "write failed").
		WithContext("path", path)
}

func RenderFailed(cause error) *ReportError {
	return Wrap(cause, CategoryRender, SeverityError, "documentation render failed")
}

// Internal errors

func InternalError(message string, cause error) *ReportError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
