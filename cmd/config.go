package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/lox/notion-ingest/internal/config"
	"github.com/lox/notion-ingest/internal/output"
)

type ConfigCmd struct {
	Show     ConfigShowCmd     `cmd:"" default:"withargs" help:"Show current configuration"`
	SetToken ConfigSetTokenCmd `cmd:"" name:"set-token" help:"Store the Notion API token"`
}

type ConfigShowCmd struct {
	JSON bool `help:"Output as JSON" short:"j"`
}

func (c *ConfigShowCmd) Run(ctx *Context) error {
	ctx.JSON = c.JSON
	return runConfigShow(ctx)
}

func runConfigShow(ctx *Context) error {
	cfg, err := config.Load()
	if err != nil {
		output.PrintError(err)
		return err
	}

	path, err := config.Path()
	if err != nil {
		output.PrintError(err)
		return err
	}

	if ctx.JSON {
		return output.PrintJSON(map[string]any{
			"config_path":    path,
			"base_url":       cfg.API.BaseURL,
			"notion_version": cfg.API.NotionVersion,
			"has_token":      cfg.API.Token != "",
			"request_delay":  cfg.Fetch.RequestDelay.String(),
			"listen_addr":    cfg.Server.ListenAddr,
		})
	}

	if cfg.API.Token != "" {
		output.PrintSuccess("API token configured")
	} else {
		output.PrintWarning("API token not set")
	}
	fmt.Println()

	labelStyle := color.New(color.Faint)

	labelStyle.Print("Config path:    ")
	fmt.Println(path)

	labelStyle.Print("Base URL:       ")
	fmt.Println(cfg.API.BaseURL)

	labelStyle.Print("Notion version: ")
	fmt.Println(cfg.API.NotionVersion)

	labelStyle.Print("Token:          ")
	fmt.Println(maskToken(cfg.API.Token))

	labelStyle.Print("Request delay:  ")
	fmt.Println(cfg.Fetch.RequestDelay)

	labelStyle.Print("Listen addr:    ")
	fmt.Println(cfg.Server.ListenAddr)

	return nil
}

type ConfigSetTokenCmd struct {
	Token string `arg:"" help:"Notion integration token"`
}

func (c *ConfigSetTokenCmd) Run(ctx *Context) error {
	token := strings.TrimSpace(c.Token)
	if token == "" {
		return &output.UserError{Message: "token must not be empty"}
	}

	cfg, err := config.Load()
	if err != nil {
		output.PrintError(err)
		return err
	}
	cfg.API.Token = token
	if err := config.Save(cfg); err != nil {
		output.PrintError(err)
		return err
	}

	output.PrintSuccess("Token saved")
	return nil
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 4) + token[len(token)-4:]
}
