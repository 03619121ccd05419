package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/patchexport/cmd/patchexport/commands"
	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
	"git.home.luguber.info/inful/patchexport/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cli := &commands.CLI{}
	parser := kong.Parse(cli,
		kong.Name("patchexport"),
		kong.Description("Export a patch graph project into a self-contained static page."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)

	global := &commands.Global{Logger: slog.Default(), Context: ctx}
	if err := parser.Run(global, cli); err != nil {
		stop()
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
