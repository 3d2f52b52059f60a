package build

import (
	"context"
	"os"

	"git.home.luguber.info/inful/docreports/internal/config"
	"git.home.luguber.info/inful/docreports/internal/logfields"
	"git.home.luguber.info/inful/docreports/internal/manifest"
	"git.home.luguber.info/inful/docreports/internal/observability"
	"git.home.luguber.info/inful/docreports/internal/tools"
)

// RefreshCoverage regenerates only the coverage report and re-records the
// docs configuration and manifest. cloc availability is carried over from the
// previous manifest and TypeDoc availability from its output directory, so no
// external tool runs.
func (s *DefaultBuildService) RefreshCoverage(ctx context.Context, cfg *config.Config) (*BuildResult, error) {
	startTime := s.now()
	result := &BuildResult{StartTime: startTime, BuildID: observability.NewBuildID()}
	ctx = observability.WithBuildID(ctx, result.BuildID)

	finish := func(status BuildStatus, err error) (*BuildResult, error) {
		result.Status = status
		result.EndTime = s.now()
		result.Duration = result.EndTime.Sub(startTime)
		return result, err
	}

	ok, err := s.RunCoverage(observability.WithStage(ctx, "coverage"), cfg, false)
	if err != nil {
		return finish(BuildStatusFailed, err)
	}
	result.HaveCoverage = ok

	ctx = observability.WithStage(ctx, "record")
	if prev, err := manifest.Load(cfg.ManifestPath()); err != nil {
		s.log(ctx).Warn("Ignoring unreadable previous manifest", logfields.Error(err))
	} else if prev != nil {
		if entry, found := prev.Report(ReportCloc); found {
			result.HaveCloc = entry.Available
		}
	}
	td := &tools.TypeDoc{OutputDir: cfg.TypeDocOutputDir()}
	result.HaveTypeDoc, _ = td.Available()

	s.verifyReports(ctx, cfg, result)
	if err := s.writeDocsConfig(ctx, cfg, result); err != nil {
		return finish(BuildStatusFailed, err)
	}
	if _, statErr := os.Stat(cfg.ClocReportPath()); statErr != nil {
		// First run in watch mode; give the docs a cloc placeholder to include.
		if err := s.writeClocPlaceholder(ctx, cfg); err != nil {
			return finish(BuildStatusFailed, err)
		}
	}
	if err := s.writeManifest(ctx, cfg, result); err != nil {
		return finish(BuildStatusFailed, err)
	}

	if result.HaveCloc && result.HaveCoverage {
		return finish(BuildStatusSuccess, nil)
	}
	return finish(BuildStatusDegraded, nil)
}
