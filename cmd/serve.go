package cmd

import (
	"context"

	"github.com/lox/notion-ingest/internal/cli"
	"github.com/lox/notion-ingest/internal/config"
	"github.com/lox/notion-ingest/internal/output"
	"github.com/lox/notion-ingest/internal/server"
)

type ServeCmd struct {
	Listen  string `help:"Listen address (default from config, :8000)" short:"l"`
	Verbose bool   `help:"Enable debug logging" short:"v"`
}

func (c *ServeCmd) Run(ctx *Context) error {
	return runServe(c.Listen, c.Verbose)
}

func runServe(listen string, verbose bool) error {
	cfg, err := config.Load()
	if err != nil {
		output.PrintError(err)
		return err
	}
	if listen != "" {
		cfg.Server.ListenAddr = listen
	}

	log := cli.NewLogger(verbose)
	srv := server.New(cfg, log)
	if err := srv.Run(context.Background()); err != nil {
		output.PrintError(err)
		return err
	}
	return nil
}
