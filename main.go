package main

import (
	"os"

	"github.com/alecthomas/kong"
	"github.com/lox/notion-ingest/cmd"
)

var version = "dev"

func main() {
	cli := &cmd.CLI{}
	ctx := kong.Parse(cli,
		kong.Name("notion-ingest"),
		kong.Description("Flatten Notion pages and databases into indexable text"),
		kong.UsageOnError(),
		kong.Vars{"version": version},
	)
	err := ctx.Run(&cmd.Context{})
	ctx.FatalIfErrorf(err)
	os.Exit(0)
}
