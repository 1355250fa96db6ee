package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/lox/notion-ingest/internal/cli"
	"github.com/lox/notion-ingest/internal/ingest"
	"github.com/lox/notion-ingest/internal/notion"
	"github.com/lox/notion-ingest/internal/output"
)

type ExportCmd struct {
	Page    []string      `help:"Page URL or ID to export. Repeatable." short:"p"`
	DB      []string      `help:"Database URL or ID to export every page of. Repeatable." short:"d" name:"db"`
	Sources string        `help:"YAML file listing databases: and pages: to export" type:"existingfile"`
	Out     string        `help:"Write combined text to a file instead of stdout" short:"o"`
	Render  bool          `help:"Pretty-print the result in the terminal" short:"r"`
	JSON    bool          `help:"Output documents with metadata as JSON" short:"j"`
	Delay   time.Duration `help:"Override the pause between API requests"`
	Verbose bool          `help:"Enable debug logging" short:"v"`
}

func (c *ExportCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runExport(ctx, c)
}

func runExport(ctx *Context, c *ExportCmd) error {
	databaseIDs := c.DB
	pageIDs := c.Page
	if c.Sources != "" {
		src, err := cli.LoadSources(c.Sources)
		if err != nil {
			output.PrintError(err)
			return err
		}
		databaseIDs = append(databaseIDs, src.Databases...)
		pageIDs = append(pageIDs, src.Pages...)
	}

	if len(databaseIDs) == 0 && len(pageIDs) == 0 {
		return &output.UserError{Message: "nothing to export: pass --page, --db, or --sources"}
	}

	log := cli.NewLogger(c.Verbose)
	client, cfg, err := cli.RequireClient(log)
	if err != nil {
		output.PrintError(err)
		return err
	}

	delay := cfg.Fetch.RequestDelay
	if c.Delay > 0 {
		delay = c.Delay
	}

	fetcher := notion.NewFetcher(client, notion.NewIntervalPacer(delay), log)
	result := ingest.New(fetcher, log).Run(context.Background(), databaseIDs, pageIDs)

	for _, failure := range result.Failures {
		output.PrintWarning(failure.String())
	}
	if len(result.Documents) == 0 {
		err := fmt.Errorf("no roots could be exported")
		output.PrintError(err)
		return err
	}

	if ctx.JSON {
		return output.PrintJSON(result.Documents)
	}

	text := result.CombinedText()

	if c.Out != "" {
		if err := os.WriteFile(c.Out, []byte(text), 0o644); err != nil {
			output.PrintError(err)
			return err
		}
		output.PrintSuccess(fmt.Sprintf("Wrote %d page(s) to %s", len(result.Documents), c.Out))
		return nil
	}

	if c.Render {
		return output.RenderMarkdown(text)
	}

	fmt.Println(text)
	return nil
}
