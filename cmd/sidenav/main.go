package main

import (
	"os"

	"github.com/alecthomas/kong"

	"github.com/MrSnakeDoc/sidenav/internal/cli"
)

type Command struct {
	Serve    cli.ServeCmd    `cmd:"" default:"1" help:"Serve the navigation over HTTP (default)."`
	Validate cli.ValidateCmd `cmd:"" help:"Report every violation and warning in a navigation file."`
	Links    cli.LinksCmd    `cmd:"" help:"Print every link target, one per line."`
	Tree     cli.TreeCmd     `cmd:"" help:"Draw the sidebar or nav bar as a tree."`
	Which    cli.WhichCmd    `cmd:"" help:"Print the sidebar section serving each path."`
	Version  cli.VersionCmd  `cmd:"" help:"Print build information."`
}

func main() {
	command := new(Command)
	ctx := kong.Parse(
		command,
		kong.Name("sidenav"),
		kong.Description("Navigation and sidebar tree store for documentation sites"),
		kong.UsageOnError(),
	)
	err := ctx.Run(&cli.Context{Out: os.Stdout, Err: os.Stderr})
	ctx.FatalIfErrorf(err)
}
