package commands

import (
	"time"

	"git.home.luguber.info/inful/docreports/internal/build"
	"git.home.luguber.info/inful/docreports/internal/config"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	Render bool `help:"Invoke the documentation renderer after generating reports"`
	Strict bool `help:"Log missing coverage data as a warning"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	return withService(g, root, func(cfg *config.Config, svc *build.DefaultBuildService) error {
		g.printf("Starting docreports build\n")
		result, err := svc.Run(g.ctx(), build.BuildRequest{
			Config: cfg,
			Options: build.BuildOptions{
				Render:                b.Render,
				FailOnMissingCoverage: b.Strict,
			},
		})
		if err != nil {
			return err
		}
		g.printf("TypeDoc: %s\n", yesNo(result.HaveTypeDoc))
		g.printf("Code metrics: %s\n", yesNo(result.HaveCloc))
		g.printf("Coverage: %s\n", yesNo(result.HaveCoverage))
		g.printf("Build %s in %s\n", result.Status, result.Duration.Round(time.Millisecond))
		return nil
	})
}
