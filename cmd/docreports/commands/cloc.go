package commands

import (
	"git.home.luguber.info/inful/docreports/internal/build"
	"git.home.luguber.info/inful/docreports/internal/config"
)

// ClocCmd implements the 'cloc' command.
type ClocCmd struct{}

func (c *ClocCmd) Run(g *Global, root *CLI) error {
	return withService(g, root, func(cfg *config.Config, svc *build.DefaultBuildService) error {
		ok, err := svc.RunCloc(g.ctx(), cfg)
		if err != nil {
			return err
		}
		if ok {
			g.printf("Code metrics report written to %s\n", cfg.ClocReportPath())
		} else {
			g.printf("Code metrics placeholder written to %s\n", cfg.ClocReportPath())
		}
		return nil
	})
}
