package metrics

import "time"

// ResultLabel enumerates report outcome categories for counters.
type ResultLabel string

const (
	ResultRendered    ResultLabel = "rendered"
	ResultPlaceholder ResultLabel = "placeholder"
	ResultSkipped     ResultLabel = "skipped"
	ResultFailed      ResultLabel = "failed"
)

// BuildOutcomeLabel is the final status of a build run.
type BuildOutcomeLabel string

const (
	BuildOutcomeSuccess  BuildOutcomeLabel = "success"
	BuildOutcomeDegraded BuildOutcomeLabel = "degraded"
	BuildOutcomeFailed   BuildOutcomeLabel = "failed"
	BuildOutcomeCanceled BuildOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for report and tool metrics.
type Recorder interface {
	ObserveReportDuration(report string, d time.Duration)
	IncReportResult(report string, result ResultLabel)
	ObserveToolDuration(tool string, d time.Duration, success bool)
	ObserveBuildDuration(d time.Duration)
	IncBuildOutcome(outcome BuildOutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveReportDuration(string, time.Duration)     {}
func (NoopRecorder) IncReportResult(string, ResultLabel)             {}
func (NoopRecorder) ObserveToolDuration(string, time.Duration, bool) {}
func (NoopRecorder) ObserveBuildDuration(time.Duration)              {}
func (NoopRecorder) IncBuildOutcome(BuildOutcomeLabel)               {}

// ReportResult maps a reporter's availability flag to a result label.
func ReportResult(available bool) ResultLabel {
	if available {
		return ResultRendered
	}
	return ResultPlaceholder
}
