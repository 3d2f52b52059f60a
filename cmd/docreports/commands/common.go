package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docreports/internal/build"
	"git.home.luguber.info/inful/docreports/internal/config"
	"git.home.luguber.info/inful/docreports/internal/metrics"
)

// Global context passed to subcommands.
type Global struct {
	Logger  *slog.Logger
	Context context.Context

	// Stdout receives user-facing progress lines; defaults to os.Stdout.
	Stdout io.Writer

	// newService overrides service construction in tests.
	newService func(cfg *config.Config) *build.DefaultBuildService
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"docreports.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build    BuildCmd    `cmd:"" help:"Run TypeDoc and cloc, render all reports and record availability"`
	Coverage CoverageCmd `cmd:"" help:"Render the coverage report from the coverage summary"`
	Cloc     ClocCmd     `cmd:"" help:"Run cloc and render the code metrics report"`
	TypeDoc  TypeDocCmd  `cmd:"" name:"typedoc" help:"Generate TypeDoc API documentation"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate the coverage report whenever the coverage summary changes"`
	Init     InitCmd     `cmd:"" help:"Initialize a new configuration file"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	level := config.NormalizeLogLevel(os.Getenv(config.EnvLogLevel)).Slog()
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// LoadConfig loads the configured file. The default path is optional so a
// project without a configuration file builds with defaults.
func LoadConfig(root *CLI) (*config.Config, error) {
	if root.Config == config.DefaultFile {
		return config.LoadOptional(root.Config)
	}
	return config.Load(root.Config)
}

// configureLogging applies the configured level and format unless --verbose
// already forced debug output.
func configureLogging(g *Global, cfg *config.Config, verbose bool) {
	level := cfg.Logging.Level.Slog()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Logging.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	g.Logger = slog.New(handler)
	slog.SetDefault(g.Logger)
}

func (g *Global) ctx() context.Context {
	if g.Context == nil {
		return context.Background()
	}
	return g.Context
}

func (g *Global) out() io.Writer {
	if g.Stdout == nil {
		return os.Stdout
	}
	return g.Stdout
}

func (g *Global) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(g.out(), format, args...)
}

// withService loads configuration, builds a service and runs fn. When a
// metrics textfile is configured the Prometheus registry is written after fn
// returns, whatever its outcome.
func withService(g *Global, root *CLI, fn func(cfg *config.Config, svc *build.DefaultBuildService) error) error {
	cfg, err := LoadConfig(root)
	if err != nil {
		return err
	}
	configureLogging(g, cfg, root.Verbose)

	var svc *build.DefaultBuildService
	if g.newService != nil {
		svc = g.newService(cfg)
	} else {
		svc = build.NewBuildService()
	}
	svc.WithLogger(g.Logger)

	var prom *metrics.PrometheusRecorder
	if cfg.Metrics.Textfile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		svc.WithRecorder(prom)
	}

	runErr := fn(cfg, svc)

	if prom != nil {
		path := cfg.Resolve(cfg.Metrics.Textfile)
		if err := prom.WriteTextfile(path); err != nil {
			g.Logger.Warn("Failed to write metrics textfile", "path", path, "error", err)
		}
	}
	return runErr
}

func yesNo(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}
