package commands

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docreports/internal/build"
	"git.home.luguber.info/inful/docreports/internal/config"
	"git.home.luguber.info/inful/docreports/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce time.Duration `help:"Quiet period before regenerating" default:"500ms"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	return withService(g, root, func(cfg *config.Config, svc *build.DefaultBuildService) error {
		refresh := func(ctx context.Context, _ []string) error {
			result, err := svc.RefreshCoverage(ctx, cfg)
			if err != nil {
				return err
			}
			g.printf("Coverage: %s (%s)\n", yesNo(result.HaveCoverage), result.Status)
			return nil
		}

		if err := refresh(g.ctx(), nil); err != nil {
			return err
		}

		watcher, err := watch.New([]string{cfg.CoverageSummary()}, w.Debounce, refresh)
		if err != nil {
			return err
		}
		return watcher.WithLogger(g.Logger).Run(g.ctx())
	})
}
