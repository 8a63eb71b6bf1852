package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/blockrender/cmd/blockrender/commands"
	"git.home.luguber.info/inful/blockrender/internal/foundation/errors"
	"git.home.luguber.info/inful/blockrender/internal/version"
)

func main() {
	cli := &commands.CLI{}
	global := &commands.Global{}
	parser := kong.Parse(cli,
		kong.Name("blockrender"),
		kong.Description("Render portable block documents to HTML, Markdown or a node tree"),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
	)
	if err := parser.Run(global, cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
