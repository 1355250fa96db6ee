package cli

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lox/notion-ingest/internal/api"
	"github.com/lox/notion-ingest/internal/config"
)

// RequireClient loads configuration and builds an API client from the
// configured token.
func RequireClient(log zerolog.Logger) (*api.Client, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, fmt.Errorf("load config: %w", err)
	}

	client, err := api.NewClient(cfg.API, cfg.API.Token, log)
	if err != nil {
		return nil, cfg, err
	}

	return client, cfg, nil
}
