package build

import (
	"context"
	"log/slog"
	"time"

	derrors "git.home.luguber.info/inful/docreports/internal/errors"
	"git.home.luguber.info/inful/docreports/internal/logfields"
	"git.home.luguber.info/inful/docreports/internal/metrics"
	"git.home.luguber.info/inful/docreports/internal/observability"
	"git.home.luguber.info/inful/docreports/internal/tools"
)

// DefaultBuildService is the standard implementation of BuildService.
type DefaultBuildService struct {
	runner   tools.Runner
	resolver func(root string) *tools.Resolver
	renderer tools.Renderer
	recorder metrics.Recorder
	logger   *slog.Logger
	now      func() time.Time
}

// NewBuildService creates a DefaultBuildService that runs real subprocesses.
func NewBuildService() *DefaultBuildService {
	return &DefaultBuildService{
		runner:   &tools.ExecRunner{},
		resolver: tools.NewResolver,
		recorder: metrics.NoopRecorder{},
		logger:   slog.Default(),
		now:      time.Now,
	}
}

// WithRunner allows injecting a fake tool runner (for testing).
func (s *DefaultBuildService) WithRunner(r tools.Runner) *DefaultBuildService {
	s.runner = r
	return s
}

// WithResolver overrides how tool commands are located.
func (s *DefaultBuildService) WithResolver(factory func(root string) *tools.Resolver) *DefaultBuildService {
	s.resolver = factory
	return s
}

// WithRenderer sets the renderer used when BuildOptions.Render is true. When
// unset a BinaryRenderer is built from configuration.
func (s *DefaultBuildService) WithRenderer(r tools.Renderer) *DefaultBuildService {
	s.renderer = r
	return s
}

// WithRecorder sets the metrics recorder.
func (s *DefaultBuildService) WithRecorder(r metrics.Recorder) *DefaultBuildService {
	if r != nil {
		s.recorder = r
	}
	return s
}

// WithLogger sets the base logger; build and stage attributes are added to it.
func (s *DefaultBuildService) WithLogger(l *slog.Logger) *DefaultBuildService {
	if l != nil {
		s.logger = l
	}
	return s
}

// WithClock overrides the time source (copyright year, manifest timestamp).
func (s *DefaultBuildService) WithClock(now func() time.Time) *DefaultBuildService {
	s.now = now
	return s
}

// Run executes the complete build pipeline.
func (s *DefaultBuildService) Run(ctx context.Context, req BuildRequest) (*BuildResult, error) {
	startTime := s.now()
	result := &BuildResult{StartTime: startTime}

	if id := observability.GetContext(ctx).BuildID; id != "" {
		result.BuildID = id
	} else {
		result.BuildID = observability.NewBuildID()
		ctx = observability.WithBuildID(ctx, result.BuildID)
	}

	finish := func(status BuildStatus, err error) (*BuildResult, error) {
		result.Status = status
		result.EndTime = s.now()
		result.Duration = result.EndTime.Sub(startTime)
		s.recorder.ObserveBuildDuration(result.Duration)
		s.recorder.IncBuildOutcome(outcomeLabel(status))
		s.log(ctx).Info("Build finished",
			slog.String("status", string(status)),
			logfields.Duration(result.Duration))
		return result, err
	}

	cfg := req.Config
	if cfg == nil {
		return finish(BuildStatusFailed, derrors.ConfigRequired("config"))
	}

	// Stage 1: TypeDoc
	result.HaveTypeDoc = s.RunTypeDoc(observability.WithStage(ctx, "typedoc"), cfg)
	if ctx.Err() != nil {
		return finish(BuildStatusCancelled, ctx.Err())
	}

	// Stage 2: cloc
	haveCloc, err := s.RunCloc(observability.WithStage(ctx, "cloc"), cfg)
	if err != nil {
		return finish(statusFor(ctx), err)
	}
	result.HaveCloc = haveCloc
	if ctx.Err() != nil {
		return finish(BuildStatusCancelled, ctx.Err())
	}

	// Stage 3: coverage
	haveCoverage, err := s.RunCoverage(observability.WithStage(ctx, "coverage"), cfg, req.Options.FailOnMissingCoverage)
	if err != nil {
		return finish(BuildStatusFailed, err)
	}
	result.HaveCoverage = haveCoverage

	// Stage 4: verification, docs configuration and manifest
	ctx = observability.WithStage(ctx, "record")
	s.verifyReports(ctx, cfg, result)
	if err := s.writeDocsConfig(ctx, cfg, result); err != nil {
		return finish(BuildStatusFailed, err)
	}
	if err := s.writeManifest(ctx, cfg, result); err != nil {
		return finish(BuildStatusFailed, err)
	}

	// Stage 5: render
	if req.Options.Render && !cfg.Renderer.Skip {
		if err := s.render(observability.WithStage(ctx, "render"), cfg, result); err != nil {
			return finish(statusFor(ctx), err)
		}
	}

	if result.HaveCloc && result.HaveCoverage {
		return finish(BuildStatusSuccess, nil)
	}
	return finish(BuildStatusDegraded, nil)
}

func (s *DefaultBuildService) log(ctx context.Context) *slog.Logger {
	return observability.LoggerFrom(ctx, s.logger)
}

func statusFor(ctx context.Context) BuildStatus {
	if ctx.Err() != nil {
		return BuildStatusCancelled
	}
	return BuildStatusFailed
}

func outcomeLabel(status BuildStatus) metrics.BuildOutcomeLabel {
	switch status {
	case BuildStatusSuccess:
		return metrics.BuildOutcomeSuccess
	case BuildStatusDegraded:
		return metrics.BuildOutcomeDegraded
	case BuildStatusCancelled:
		return metrics.BuildOutcomeCanceled
	default:
		return metrics.BuildOutcomeFailed
	}
}
