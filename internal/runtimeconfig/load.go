package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variables applied over the file values.
const (
	EnvNotionAPIKey     = "NOTION_API_KEY"
	EnvNotionDatabaseID = "NOTION_DATABASE_ID"
	EnvCatalogPath      = "ARTICLES_JSON_PATH"
	EnvTemplatePath     = "TEMPLATE_PATH"
	EnvOutputDir        = "OUTPUT_DIR"
	EnvSitemapPath      = "SITEMAP_PATH"
	EnvLogLevel         = "PUBLISHER_LOG_LEVEL"
)

// LookupFunc resolves an environment variable.
type LookupFunc func(key string) (string, bool)

// Load reads path over DefaultConfig and applies the process environment.
// An empty path skips the file. The result is not validated.
func Load(path string) (Config, error) {
	return LoadWithEnv(path, os.LookupEnv)
}

// LoadWithEnv is Load with an explicit environment.
func LoadWithEnv(path string, lookup LookupFunc) (Config, error) {
	cfg := DefaultConfig()
	if strings.TrimSpace(path) != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("publisher config: read %s: %w", path, err)
		}
		if err := Decode(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("publisher config: %s: %w", path, err)
		}
	}
	if lookup != nil {
		applyEnv(&cfg, lookup)
	}
	return cfg, nil
}

// Decode merges YAML document raw into cfg. Unknown keys are rejected.
func Decode(raw []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup LookupFunc) {
	overrides := []struct {
		key    string
		target *string
	}{
		{EnvNotionAPIKey, &cfg.Notion.APIKey},
		{EnvNotionDatabaseID, &cfg.Notion.DatabaseID},
		{EnvCatalogPath, &cfg.Paths.Catalog},
		{EnvTemplatePath, &cfg.Paths.Template},
		{EnvOutputDir, &cfg.Paths.OutputDir},
		{EnvSitemapPath, &cfg.Paths.Sitemap},
		{EnvLogLevel, &cfg.Logging.Level},
	}
	for _, o := range overrides {
		if value, ok := lookup(o.key); ok && strings.TrimSpace(value) != "" {
			*o.target = strings.TrimSpace(value)
		}
	}
}
