package commands

import (
	"git.home.luguber.info/inful/docreports/internal/build"
	"git.home.luguber.info/inful/docreports/internal/config"
)

// TypeDocCmd implements the 'typedoc' command.
type TypeDocCmd struct{}

func (t *TypeDocCmd) Run(g *Global, root *CLI) error {
	return withService(g, root, func(cfg *config.Config, svc *build.DefaultBuildService) error {
		if svc.RunTypeDoc(g.ctx(), cfg) {
			g.printf("API documentation available at %s\n", cfg.TypeDocIndex())
		} else {
			g.printf("API documentation unavailable\n")
		}
		return nil
	})
}
