package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lballo/Site-laura-4/internal/runtimeconfig"
)

func validConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Notion.APIKey = "secret_test"
	return cfg
}

func env(values map[string]string) runtimeconfig.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

func TestDefaultConfigNeedsOnlyAPIKey(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}

	err := runtimeconfig.DefaultConfig().Validate()
	if !errors.Is(err, runtimeconfig.ErrNotionAPIKeyRequired) {
		t.Fatalf("expected ErrNotionAPIKeyRequired, got %v", err)
	}
}

func TestConfigValidate_MarkdownSourceSkipsNotionChecks(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Source.Kind = runtimeconfig.SourceMarkdown
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}

	cfg.Source.Dir = " "
	if err := cfg.Validate(); !errors.Is(err, runtimeconfig.ErrMarkdownDirRequired) {
		t.Fatalf("expected ErrMarkdownDirRequired, got %v", err)
	}
}

func TestConfigValidate_Failures(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"base url", func(c *runtimeconfig.Config) { c.Site.BaseURL = "" }, runtimeconfig.ErrSiteBaseURLRequired},
		{"source", func(c *runtimeconfig.Config) { c.Source.Kind = "wordpress" }, runtimeconfig.ErrSourceUnknown},
		{"database", func(c *runtimeconfig.Config) { c.Notion.DatabaseID = "" }, runtimeconfig.ErrNotionDatabaseIDRequired},
		{"template", func(c *runtimeconfig.Config) { c.Paths.Template = "" }, runtimeconfig.ErrTemplatePathRequired},
		{"output", func(c *runtimeconfig.Config) { c.Paths.OutputDir = "" }, runtimeconfig.ErrOutputDirRequired},
		{"workers", func(c *runtimeconfig.Config) { c.Publisher.Workers = -1 }, runtimeconfig.ErrWorkersInvalid},
		{"provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"gologger format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = runtimeconfig.LoggingGoLogger
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
		{"zap mode", func(c *runtimeconfig.Config) {
			c.Logging.Provider = runtimeconfig.LoggingZap
			c.Logging.Format = "pretty"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publisher.yaml")
	content := `
site:
  base_url: https://staging.example.com
source:
  kind: markdown
  dir: articles
notion:
  timeout: 5s
  properties:
    title: Name
publisher:
  workers: 8
  strict_template: true
logging:
  provider: zap
  format: production
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := runtimeconfig.LoadWithEnv(path, env(nil))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Site.BaseURL != "https://staging.example.com" {
		t.Fatalf("unexpected base url %q", cfg.Site.BaseURL)
	}
	if cfg.Site.AuthorName != "Laura Ballo" {
		t.Fatalf("expected default author to survive, got %q", cfg.Site.AuthorName)
	}
	if cfg.Source.Kind != runtimeconfig.SourceMarkdown || cfg.Source.Dir != "articles" {
		t.Fatalf("unexpected source %#v", cfg.Source)
	}
	if cfg.Notion.Timeout != 5*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.Notion.Timeout)
	}
	if cfg.Notion.Properties.Title != "Name" || cfg.Notion.Properties.Action != "Action à effectuer" {
		t.Fatalf("unexpected properties %#v", cfg.Notion.Properties)
	}
	if cfg.Publisher.Workers != 8 || !cfg.Publisher.StrictTemplate {
		t.Fatalf("unexpected publisher section %#v", cfg.Publisher)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}

	pc := cfg.PublisherConfig()
	if pc.Workers != 8 || !pc.StrictTemplate || pc.Site.BaseURL != "https://staging.example.com" {
		t.Fatalf("unexpected publisher config %#v", pc)
	}
	if got := pc.Tags.Slug("Média training"); got != "media-training" {
		t.Fatalf("expected default tag map, got %q", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "publisher.yaml")
	if err := os.WriteFile(path, []byte("site:\n  baseurl: x\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := runtimeconfig.LoadWithEnv(path, env(nil)); err == nil {
		t.Fatal("expected error for unknown key")
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := runtimeconfig.LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"), env(nil))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}

func TestLoadAppliesEnvironment(t *testing.T) {
	cfg, err := runtimeconfig.LoadWithEnv("", env(map[string]string{
		runtimeconfig.EnvNotionAPIKey:     "secret_env",
		runtimeconfig.EnvNotionDatabaseID: "db-env",
		runtimeconfig.EnvCatalogPath:      "data/articles.json",
		runtimeconfig.EnvTemplatePath:     "tpl/article.html",
		runtimeconfig.EnvOutputDir:        "out",
		runtimeconfig.EnvSitemapPath:      "out/sitemap.xml",
		runtimeconfig.EnvLogLevel:         "debug",
	}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Notion.APIKey != "secret_env" || cfg.Notion.DatabaseID != "db-env" {
		t.Fatalf("unexpected notion section %#v", cfg.Notion)
	}
	want := runtimeconfig.PathsConfig{
		Root:      ".",
		Template:  "tpl/article.html",
		OutputDir: "out",
		Catalog:   "data/articles.json",
		Sitemap:   "out/sitemap.xml",
	}
	if cfg.Paths != want {
		t.Fatalf("unexpected paths %#v", cfg.Paths)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("unexpected level %q", cfg.Logging.Level)
	}
}

func TestLoadIgnoresBlankEnvironment(t *testing.T) {
	cfg, err := runtimeconfig.LoadWithEnv("", env(map[string]string{runtimeconfig.EnvOutputDir: "  "}))
	if err != nil {
		t.Fatalf("LoadWithEnv() error: %v", err)
	}
	if cfg.Paths.OutputDir != "blog/articles" {
		t.Fatalf("expected default output dir, got %q", cfg.Paths.OutputDir)
	}
}
