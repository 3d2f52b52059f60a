package build

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docreports/internal/config"
	"git.home.luguber.info/inful/docreports/internal/docsconf"
)

// BuildService is the canonical interface for executing report builds.
type BuildService interface {
	Run(ctx context.Context, req BuildRequest) (*BuildResult, error)
}

// BuildRequest contains all inputs required to execute a build.
type BuildRequest struct {
	Config  *config.Config
	Options BuildOptions
}

// BuildOptions provides optional build behavior modifiers.
type BuildOptions struct {
	// Render invokes the documentation renderer after reports are written.
	Render bool

	// FailOnMissingCoverage raises the log level when coverage data is absent.
	FailOnMissingCoverage bool
}

// BuildResult contains the outcome of a build execution.
type BuildResult struct {
	Status  BuildStatus
	BuildID string

	HaveTypeDoc  bool
	HaveCloc     bool
	HaveCoverage bool

	// Rendered is true when the renderer ran successfully.
	Rendered bool

	// Changed lists reports whose content differs from the previous build.
	Changed []string

	Duration  time.Duration
	StartTime time.Time
	EndTime   time.Time
}

// Flags converts the availability results into docs configuration flags.
func (r *BuildResult) Flags() docsconf.Flags {
	return docsconf.Flags{
		HaveTypeDoc:        r.HaveTypeDoc,
		HaveClocReport:     r.HaveCloc,
		HaveCoverageReport: r.HaveCoverage,
	}
}

// BuildStatus represents the outcome of a build execution.
type BuildStatus string

const (
	// BuildStatusSuccess indicates every report rendered from real data.
	BuildStatusSuccess BuildStatus = "success"

	// BuildStatusDegraded indicates at least one report fell back to a placeholder.
	BuildStatusDegraded BuildStatus = "degraded"

	// BuildStatusFailed indicates the build encountered an error.
	BuildStatusFailed BuildStatus = "failed"

	// BuildStatusCancelled indicates the build was cancelled.
	BuildStatusCancelled BuildStatus = "cancelled"
)

// IsSuccess returns true if the build produced its outputs.
func (s BuildStatus) IsSuccess() bool {
	return s == BuildStatusSuccess || s == BuildStatusDegraded
}
