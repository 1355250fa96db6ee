package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sources is a user-authored YAML file naming the roots to export:
//
//	databases:
//	  - 1d1debae-43f7-805a-ad97-fd68225520f6
//	pages:
//	  - https://www.notion.so/Runbook-8a9f2c4e1b0d4f6e9c3a5b7d8e0f1a2b
type Sources struct {
	Databases []string `yaml:"databases"`
	Pages     []string `yaml:"pages"`
}

func LoadSources(path string) (Sources, error) {
	var src Sources

	data, err := os.ReadFile(path)
	if err != nil {
		return src, fmt.Errorf("read sources file: %w", err)
	}
	if err := yaml.Unmarshal(data, &src); err != nil {
		return src, fmt.Errorf("parse sources file %s: %w", path, err)
	}
	return src, nil
}
