package build

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"git.home.luguber.info/inful/docreports/internal/codemetrics"
	"git.home.luguber.info/inful/docreports/internal/config"
	"git.home.luguber.info/inful/docreports/internal/coverage"
	"git.home.luguber.info/inful/docreports/internal/docsconf"
	derrors "git.home.luguber.info/inful/docreports/internal/errors"
	"git.home.luguber.info/inful/docreports/internal/logfields"
	"git.home.luguber.info/inful/docreports/internal/manifest"
	"git.home.luguber.info/inful/docreports/internal/markdown"
	"git.home.luguber.info/inful/docreports/internal/metrics"
	"git.home.luguber.info/inful/docreports/internal/report"
	"git.home.luguber.info/inful/docreports/internal/tools"
)

// Report names used in logs, metrics and the manifest.
const (
	ReportCloc     = "cloc"
	ReportCoverage = "coverage"
	ReportTypeDoc  = "typedoc"
)

// RunTypeDoc generates API documentation and reports whether its index page
// exists afterwards. Output from an earlier run counts as available even when
// generation is skipped or fails.
func (s *DefaultBuildService) RunTypeDoc(ctx context.Context, cfg *config.Config) bool {
	logger := s.log(ctx).With(logfields.Tool(ReportTypeDoc))
	td := &tools.TypeDoc{
		Root:      cfg.Paths.Root,
		Options:   cfg.TypeDocOptions(),
		OutputDir: cfg.TypeDocOutputDir(),
		Command:   cfg.TypeDoc.Command,
		Runner:    s.runner,
		Resolver:  s.resolver(cfg.Paths.Root),
		Logger:    logger,
	}

	if cfg.TypeDoc.Skip {
		logger.Info("TypeDoc skipped", logfields.Skipped(1))
		s.recorder.IncReportResult(ReportTypeDoc, metrics.ResultSkipped)
	} else {
		start := time.Now()
		ok, err := td.Generate(ctx)
		switch {
		case tools.IsNotConfigured(err):
			logger.Info("TypeDoc not configured", logfields.Path(td.Options))
			s.recorder.IncReportResult(ReportTypeDoc, metrics.ResultSkipped)
		case err != nil:
			derrors.LogDegraded(logger, derrors.ToolUnavailable(ReportTypeDoc, err), false)
			s.recorder.ObserveToolDuration(ReportTypeDoc, time.Since(start), false)
			s.recorder.IncReportResult(ReportTypeDoc, metrics.ResultFailed)
		default:
			s.recorder.ObserveToolDuration(ReportTypeDoc, time.Since(start), ok)
			s.recorder.IncReportResult(ReportTypeDoc, metrics.ReportResult(ok))
		}
	}

	if err := os.MkdirAll(td.OutputDir, 0o750); err != nil {
		logger.Warn("Failed to create TypeDoc output directory", logfields.Path(td.OutputDir), logfields.Error(err))
	}
	available, _ := td.Available()
	return available
}

// RunCloc runs cloc twice (per language and per file), persists the raw JSON
// next to the report and renders it. Unavailable data yields a placeholder and
// false; the error is reserved for write failures.
func (s *DefaultBuildService) RunCloc(ctx context.Context, cfg *config.Config) (bool, error) {
	start := time.Now()
	logger := s.log(ctx).With(logfields.Report(ReportCloc))
	reporter := &codemetrics.Reporter{
		ProjectRoot: cfg.Paths.Root,
		OutputPath:  cfg.ClocReportPath(),
		Logger:      logger,
	}
	defer func() { s.recorder.ObserveReportDuration(ReportCloc, time.Since(start)) }()

	if cfg.Cloc.Skip {
		logger.Info("cloc skipped", logfields.Skipped(1))
		s.recorder.IncReportResult(ReportCloc, metrics.ResultSkipped)
		return false, reporter.WritePlaceholder(codemetrics.MessageSkipped)
	}

	c := &tools.Cloc{
		Root:         cfg.Paths.Root,
		ExcludedDirs: cfg.Cloc.ExcludedDirs,
		Command:      cfg.Cloc.Command,
		Runner:       s.runner,
		Resolver:     s.resolver(cfg.Paths.Root),
		Logger:       logger,
	}

	languageJSON, err := s.runCloc(ctx, c, false)
	if err == nil {
		var fileJSON []byte
		fileJSON, err = s.runCloc(ctx, c, true)
		if err == nil {
			return s.renderCloc(cfg, reporter, languageJSON, fileJSON)
		}
	}

	var cause error
	if errors.Is(err, tools.ErrToolOutputUnparseable) {
		cause = derrors.ToolOutputUnparseable(ReportCloc, err)
	} else {
		cause = derrors.ToolUnavailable(ReportCloc, err)
	}
	derrors.LogDegraded(logger, cause, false)
	s.recorder.IncReportResult(ReportCloc, metrics.ResultPlaceholder)
	return false, reporter.WritePlaceholder(codemetrics.MessageUnavailable)
}

func (s *DefaultBuildService) writeClocPlaceholder(ctx context.Context, cfg *config.Config) error {
	reporter := &codemetrics.Reporter{
		ProjectRoot: cfg.Paths.Root,
		OutputPath:  cfg.ClocReportPath(),
		Logger:      s.log(ctx),
	}
	return reporter.WritePlaceholder(codemetrics.MessageUnavailable)
}

func (s *DefaultBuildService) runCloc(ctx context.Context, c *tools.Cloc, byFile bool) ([]byte, error) {
	start := time.Now()
	out, err := c.Run(ctx, byFile)
	s.recorder.ObserveToolDuration(ReportCloc, time.Since(start), err == nil)
	return out, err
}

func (s *DefaultBuildService) renderCloc(cfg *config.Config, reporter *codemetrics.Reporter, languageJSON, fileJSON []byte) (bool, error) {
	persisted := []struct {
		path string
		raw  []byte
	}{
		{cfg.ClocSummaryPath(), languageJSON},
		{cfg.ClocFilesPath(), fileJSON},
	}
	for _, p := range persisted {
		path := p.path
		indented, err := tools.Indent(p.raw)
		if err != nil {
			return false, derrors.InternalError("validated cloc output failed to indent", err)
		}
		if err := report.Write(path, string(indented)); err != nil {
			return false, derrors.WriteFailed(path, err)
		}
	}

	ok, err := reporter.Generate(languageJSON, fileJSON)
	if err != nil {
		s.recorder.IncReportResult(ReportCloc, metrics.ResultFailed)
		return false, err
	}
	s.recorder.IncReportResult(ReportCloc, metrics.ReportResult(ok))
	return ok, nil
}

// RunCoverage renders the coverage report from the configured summary file.
func (s *DefaultBuildService) RunCoverage(ctx context.Context, cfg *config.Config, failOnMissing bool) (bool, error) {
	start := time.Now()
	reporter := &coverage.Reporter{
		ProjectRoot:   cfg.Paths.Root,
		OutputPath:    cfg.CoverageReportPath(),
		SummaryPath:   cfg.CoverageSummary(),
		FailOnMissing: failOnMissing,
		Logger:        s.log(ctx).With(logfields.Report(ReportCoverage)),
	}
	ok, err := reporter.Generate()
	s.recorder.ObserveReportDuration(ReportCoverage, time.Since(start))
	if err != nil {
		s.recorder.IncReportResult(ReportCoverage, metrics.ResultFailed)
		return false, err
	}
	s.recorder.IncReportResult(ReportCoverage, metrics.ReportResult(ok))
	return ok, nil
}

// verifyReports parses rendered reports and downgrades availability when the
// expected tables are missing.
func (s *DefaultBuildService) verifyReports(ctx context.Context, cfg *config.Config, result *BuildResult) {
	check := func(name, path string, want int, available *bool) {
		if !*available {
			return
		}
		// #nosec G304 -- report path derived from configuration
		data, err := os.ReadFile(path)
		if err != nil {
			s.log(ctx).Warn("Report vanished before verification", logfields.Report(name), logfields.Error(err))
			*available = false
			return
		}
		n, err := markdown.CountTables(data)
		if err != nil || n < want {
			s.log(ctx).Warn("Report failed verification",
				logfields.Report(name),
				logfields.Path(path),
				logfields.Rows(n))
			*available = false
		}
	}
	check(ReportCloc, cfg.ClocReportPath(), 2, &result.HaveCloc)
	check(ReportCoverage, cfg.CoverageReportPath(), 1, &result.HaveCoverage)
}

func (s *DefaultBuildService) writeDocsConfig(ctx context.Context, cfg *config.Config, result *BuildResult) error {
	settings := docsconf.Build(cfg, result.Flags(), s.now(), s.log(ctx))
	path := cfg.DocsConfigPath()
	if err := docsconf.Write(path, settings); err != nil {
		return derrors.WriteFailed(path, err)
	}
	s.log(ctx).Debug("Docs configuration written", logfields.Output(path))
	return nil
}

func (s *DefaultBuildService) writeManifest(ctx context.Context, cfg *config.Config, result *BuildResult) error {
	path := cfg.ManifestPath()
	prev, err := manifest.Load(path)
	if err != nil {
		s.log(ctx).Warn("Ignoring unreadable previous manifest", logfields.Path(path), logfields.Error(err))
		prev = nil
	}

	m := manifest.New(result.BuildID, s.now())
	m.AddInput("coverage-summary", cfg.CoverageSummary())
	m.AddInput("cloc-summary", cfg.ClocSummaryPath())
	m.AddInput("cloc-files", cfg.ClocFilesPath())
	if err := m.AddReport(ReportCloc, cfg.Paths.Root, cfg.ClocReportPath(), result.HaveCloc); err != nil {
		return derrors.WriteFailed(cfg.ClocReportPath(), err)
	}
	if err := m.AddReport(ReportCoverage, cfg.Paths.Root, cfg.CoverageReportPath(), result.HaveCoverage); err != nil {
		return derrors.WriteFailed(cfg.CoverageReportPath(), err)
	}
	m.Status = "degraded"
	if result.HaveCloc && result.HaveCoverage {
		m.Status = "success"
	}
	m.Duration = s.now().Sub(result.StartTime).Milliseconds()

	result.Changed = m.Changed(prev)
	if err := m.Write(path); err != nil {
		return derrors.WriteFailed(path, err)
	}
	s.log(ctx).Info("Report manifest written",
		logfields.Output(path),
		logfields.Rows(len(m.Reports)),
		slog.Any("changed", result.Changed))
	return nil
}

func (s *DefaultBuildService) render(ctx context.Context, cfg *config.Config, result *BuildResult) error {
	renderer := s.renderer
	if renderer == nil {
		renderer = &tools.BinaryRenderer{
			Command: cfg.Renderer.Command,
			Args:    cfg.RendererArgs(),
			Runner:  s.runner,
			Logger:  s.log(ctx),
		}
	}

	start := time.Now()
	err := renderer.Render(ctx, cfg.Paths.Root)
	s.recorder.ObserveToolDuration("renderer", time.Since(start), err == nil)
	if err != nil {
		return derrors.RenderFailed(err)
	}
	result.Rendered = true

	if !result.HaveTypeDoc {
		return nil
	}
	dst := filepath.Join(cfg.HTMLOutputDir(), "typedoc")
	if err := tools.CopyDir(cfg.TypeDocOutputDir(), dst); err != nil {
		s.log(ctx).Warn("Failed to copy TypeDoc output into the rendered site", logfields.Output(dst), logfields.Error(err))
		return nil
	}
	s.log(ctx).Info("TypeDoc output copied", logfields.Output(dst))
	return nil
}
