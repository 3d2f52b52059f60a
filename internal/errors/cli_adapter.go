package errors

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// CLIErrorAdapter handles error presentation and exit code determination for CLI applications.
type CLIErrorAdapter struct {
	verbose bool
	logger  *slog.Logger
	stderr  io.Writer
	exit    func(int)
}

// NewCLIErrorAdapter creates a new CLI error adapter.
func NewCLIErrorAdapter(verbose bool, logger *slog.Logger) *CLIErrorAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CLIErrorAdapter{
		verbose: verbose,
		logger:  logger,
		stderr:  os.Stderr,
		exit:    os.Exit,
	}
}

// ExitCodeFor determines the appropriate exit code for an error.
func (a *CLIErrorAdapter) ExitCodeFor(err error) int {
	if err == nil {
		return 0
	}

	if re, ok := As(err); ok {
		return a.exitCodeFromReportError(re)
	}

	return 1
}

// exitCodeFromReportError maps ReportError to exit codes.
func (a *CLIErrorAdapter) exitCodeFromReportError(err *ReportError) int {
	switch err.Category {
	case CategoryValidation:
		return 2 // Invalid usage
	case CategoryConfig:
		return 7 // Configuration error
	case CategoryTool, CategorySummary:
		return 1 // Report data unavailable
	case CategoryFileSystem, CategoryRender:
		return 11 // Build error
	case CategoryInternal:
		return 10 // Internal error
	default:
		return 1 // General error
	}
}

// FormatError formats an error for user-friendly display.
func (a *CLIErrorAdapter) FormatError(err error) string {
	if err == nil {
		return ""
	}

	if re, ok := As(err); ok {
		return a.formatReportError(re)
	}

	return fmt.Sprintf("Error: %v", err)
}

// formatReportError formats a ReportError for display.
func (a *CLIErrorAdapter) formatReportError(err *ReportError) string {
	if a.verbose {
		return err.Error()
	}

	switch err.Category {
	case CategoryConfig, CategoryValidation:
		return err.Message
	default:
		return fmt.Sprintf("%s: %s", err.Category, err.Message)
	}
}

// HandleError processes an error and exits the program with appropriate code.
func (a *CLIErrorAdapter) HandleError(err error) {
	if err == nil {
		return
	}

	exitCode := a.ExitCodeFor(err)
	message := a.FormatError(err)

	if a.shouldLog(err) {
		a.logError(err)
	}

	_, _ = fmt.Fprintf(a.stderr, "%s\n", message)
	a.exit(exitCode)
}

// shouldLog determines if an error should be logged.
func (a *CLIErrorAdapter) shouldLog(err error) bool {
	if a.verbose {
		return true
	}

	if re, ok := As(err); ok {
		return re.Category == CategoryInternal || re.Severity == SeverityFatal
	}

	return true
}

func (a *CLIErrorAdapter) logError(err error) {
	level := slog.LevelError
	if re, ok := As(err); ok {
		level = slogLevelFromSeverity(re.Severity)
	}
	logReportError(a.logger, level, "", err)
}

// LogDegraded logs a report error that downgraded output to a placeholder.
// The level is raised to warning when the caller treats missing data as a failure.
func LogDegraded(logger *slog.Logger, err error, strict bool) {
	level := slog.LevelInfo
	if strict {
		level = slog.LevelWarn
	}
	logReportError(logger, level, "Report degraded to placeholder", err)
}

// logReportError logs err at level with its category, context and cause as
// attributes. prefix, when set, is prepended to the message.
func logReportError(logger *slog.Logger, level slog.Level, prefix string, err error) {
	if logger == nil {
		logger = slog.Default()
	}
	re, ok := As(err)
	if !ok {
		msg := prefix
		if msg == "" {
			msg = "Unclassified error"
		}
		logger.Log(context.Background(), level, msg, "error", err)
		return
	}

	msg := re.Message
	if prefix != "" {
		msg = prefix + ": " + msg
	}
	attrs := []slog.Attr{slog.String("category", string(re.Category))}
	for k, v := range re.Context {
		attrs = append(attrs, slog.Any(k, v))
	}
	if re.Cause != nil {
		attrs = append(attrs, slog.String("cause", re.Cause.Error()))
	}
	logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// slogLevelFromSeverity converts ReportError severity to slog level.
func slogLevelFromSeverity(severity ErrorSeverity) slog.Level {
	switch severity {
	case SeverityInfo:
		return slog.LevelInfo
	case SeverityWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}
