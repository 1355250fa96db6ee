package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	configDirName  = ".config/notion-ingest"
	configFileName = "config.json"

	defaultBaseURL       = "https://api.notion.com/v1"
	defaultNotionVersion = "2022-06-28"
	defaultRequestDelay  = 350 * time.Millisecond
	defaultListenAddr    = ":8000"
)

type Config struct {
	API    APIConfig    `json:"api,omitempty"`
	Fetch  FetchConfig  `json:"fetch,omitempty"`
	Server ServerConfig `json:"server,omitempty"`
}

type APIConfig struct {
	BaseURL       string `json:"base_url,omitempty"`
	NotionVersion string `json:"notion_version,omitempty"`
	Token         string `json:"token,omitempty"`
}

type FetchConfig struct {
	// RequestDelay is the minimum pause between consecutive Notion API
	// requests during a tree walk.
	RequestDelay time.Duration `json:"request_delay,omitempty"`
}

type ServerConfig struct {
	ListenAddr string `json:"listen_addr,omitempty"`
}

func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL:       defaultBaseURL,
			NotionVersion: defaultNotionVersion,
		},
		Fetch: FetchConfig{
			RequestDelay: defaultRequestDelay,
		},
		Server: ServerConfig{
			ListenAddr: defaultListenAddr,
		},
	}
}

func Load() (Config, error) {
	cfg := Default()

	path, err := Path()
	if err != nil {
		return cfg, err
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return cfg, err
	}

	applyEnvOverrides(&cfg)
	normalize(&cfg)
	return cfg, nil
}

func Save(cfg Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}

	normalize(&cfg)

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func Path() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, configDirName, configFileName), nil
}

func applyEnvOverrides(cfg *Config) {
	if cfg == nil {
		return
	}

	if s := os.Getenv("NOTION_API_BASE_URL"); s != "" {
		cfg.API.BaseURL = s
	}
	if s := os.Getenv("NOTION_API_NOTION_VERSION"); s != "" {
		cfg.API.NotionVersion = s
	}
	if s := os.Getenv("NOTION_API_TOKEN"); s != "" {
		cfg.API.Token = s
	}
	if s := os.Getenv("NOTION_INGEST_REQUEST_DELAY"); s != "" {
		if d, err := time.ParseDuration(s); err == nil {
			cfg.Fetch.RequestDelay = d
		}
	}
	if s := os.Getenv("NOTION_INGEST_LISTEN_ADDR"); s != "" {
		cfg.Server.ListenAddr = s
	}
}

func normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	cfg.API.BaseURL = strings.TrimSpace(cfg.API.BaseURL)
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = defaultBaseURL
	}
	cfg.API.BaseURL = strings.TrimRight(cfg.API.BaseURL, "/")
	cfg.API.NotionVersion = strings.TrimSpace(cfg.API.NotionVersion)
	if cfg.API.NotionVersion == "" {
		cfg.API.NotionVersion = defaultNotionVersion
	}
	cfg.API.Token = strings.TrimSpace(cfg.API.Token)

	if cfg.Fetch.RequestDelay < 0 {
		cfg.Fetch.RequestDelay = 0
	}

	cfg.Server.ListenAddr = strings.TrimSpace(cfg.Server.ListenAddr)
	if cfg.Server.ListenAddr == "" {
		cfg.Server.ListenAddr = defaultListenAddr
	}
}
