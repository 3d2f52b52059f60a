package commands

import (
	"git.home.luguber.info/inful/docreports/internal/build"
	"git.home.luguber.info/inful/docreports/internal/config"
	derrors "git.home.luguber.info/inful/docreports/internal/errors"
)

// CoverageCmd implements the 'coverage' command.
type CoverageCmd struct {
	AllowMissing bool   `name:"allow-missing" help:"Exit successfully when coverage data is unavailable"`
	Summary      string `help:"Coverage summary JSON (overrides coverage.summary)"`
	Output       string `short:"o" help:"Report output path (overrides coverage.output)"`
}

func (c *CoverageCmd) Run(g *Global, root *CLI) error {
	return withService(g, root, func(cfg *config.Config, svc *build.DefaultBuildService) error {
		if c.Summary != "" {
			cfg.Coverage.Summary = c.Summary
		}
		if c.Output != "" {
			cfg.Coverage.Output = c.Output
		}
		allowMissing := c.AllowMissing || cfg.Coverage.AllowMissing

		ok, err := svc.RunCoverage(g.ctx(), cfg, !allowMissing)
		if err != nil {
			return err
		}
		if ok {
			g.printf("Coverage report written to %s\n", cfg.CoverageReportPath())
			return nil
		}
		g.printf("Coverage placeholder written to %s\n", cfg.CoverageReportPath())
		if allowMissing {
			return nil
		}
		return derrors.New(derrors.CategorySummary, derrors.SeverityError, "coverage data unavailable").
			WithContext("summary", cfg.CoverageSummary())
	})
}
