package cmd

import "github.com/alecthomas/kong"

// CLI is the root command tree.
type CLI struct {
	Export ExportCmd `cmd:"" help:"Fetch Notion pages and databases and flatten them to text"`
	Serve  ServeCmd  `cmd:"" help:"Run the HTTP ingest service"`
	Config ConfigCmd `cmd:"" help:"Manage configuration"`

	Version kong.VersionFlag `help:"Print version and exit"`
}

// Context carries cross-command output settings.
type Context struct {
	JSON bool
}
