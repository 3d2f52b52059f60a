package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docreports/cmd/docreports/commands"
	derrors "git.home.luguber.info/inful/docreports/internal/errors"
	"git.home.luguber.info/inful/docreports/internal/version"
)

func main() {
	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("docreports"),
		kong.Description("Generate code metrics, coverage and API reports for project documentation."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := parser.Run(&commands.Global{Logger: slog.Default(), Context: ctx}, cli)
	stop()

	derrors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
}
