package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lballo/Site-laura-4/internal/article"
	"github.com/lballo/Site-laura-4/internal/generator"
	"github.com/lballo/Site-laura-4/internal/markdown"
	"github.com/lballo/Site-laura-4/internal/notion"
	"github.com/lballo/Site-laura-4/internal/publisher"
	"github.com/lballo/Site-laura-4/internal/slugs"
)

// Content sources.
const (
	SourceNotion   = "notion"
	SourceMarkdown = "markdown"
)

// Logging providers.
const (
	LoggingConsole  = "console"
	LoggingGoLogger = "gologger"
	LoggingZap      = "zap"
)

var ErrSiteBaseURLRequired = errors.New("publisher config: site base url is required")
var ErrSourceUnknown = errors.New("publisher config: source kind is invalid")
var ErrNotionAPIKeyRequired = errors.New("publisher config: notion api key is required for the notion source")
var ErrNotionDatabaseIDRequired = errors.New("publisher config: notion database id is required for the notion source")
var ErrMarkdownDirRequired = errors.New("publisher config: markdown directory is required for the markdown source")
var ErrTemplatePathRequired = errors.New("publisher config: template path is required")
var ErrOutputDirRequired = errors.New("publisher config: output directory is required")
var ErrWorkersInvalid = errors.New("publisher config: workers must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("publisher config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("publisher config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("publisher config: logging format is invalid")

// Config aggregates everything a publishing run needs.
type Config struct {
	Site        SiteConfig             `yaml:"site"`
	Source      SourceConfig           `yaml:"source"`
	Notion      NotionConfig           `yaml:"notion"`
	Paths       PathsConfig            `yaml:"paths"`
	Publisher   PublisherConfig        `yaml:"publisher"`
	Tags        map[string]string      `yaml:"tags"`
	StaticPages []generator.StaticPage `yaml:"static_pages"`
	Logging     LoggingConfig          `yaml:"logging"`
}

// SiteConfig holds the site-wide values written into pages.
type SiteConfig struct {
	BaseURL         string `yaml:"base_url"`
	AuthorName      string `yaml:"author"`
	PublisherName   string `yaml:"publisher"`
	LogoPath        string `yaml:"logo_path"`
	DefaultCategory string `yaml:"default_category"`
	TitleSuffix     string `yaml:"title_suffix"`
}

// SourceConfig selects where drafts come from.
type SourceConfig struct {
	Kind    string `yaml:"kind"`
	Dir     string `yaml:"dir"`
	Pattern string `yaml:"pattern"`
}

// NotionConfig configures the Notion client and database mapping.
type NotionConfig struct {
	APIKey     string               `yaml:"api_key"`
	DatabaseID string               `yaml:"database_id"`
	BaseURL    string               `yaml:"base_url"`
	Version    string               `yaml:"version"`
	Timeout    time.Duration        `yaml:"timeout"`
	Properties notion.PropertyNames `yaml:"properties"`
	Actions    notion.Actions       `yaml:"actions"`
}

// PathsConfig locates the site tree and the files inside it. Every path but
// Root is relative to Root.
type PathsConfig struct {
	Root      string `yaml:"root"`
	Template  string `yaml:"template"`
	OutputDir string `yaml:"output_dir"`
	Catalog   string `yaml:"catalog"`
	Sitemap   string `yaml:"sitemap"`
}

// PublisherConfig tunes the pipeline.
type PublisherConfig struct {
	Workers        int           `yaml:"workers"`
	StrictTemplate bool          `yaml:"strict_template"`
	Timeout        time.Duration `yaml:"timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
// Format is the go-logger output format, or the zap preset
// (production|development).
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultTagSlugs maps the editorial tags to their published slugs.
func DefaultTagSlugs() map[string]string {
	return map[string]string{
		"Prise de parole en public": "prise-de-parole",
		"Communication":             "communication",
		"Compréhension de soi":      "comprehension-de-soi",
		"Gestion des émotions":      "gestion-des-emotions",
		"Hypersensibilité":          "hypersensibilite",
		"Leadership":                "leadership",
		"Stratégie":                 "strategie",
		"Affirmation de soi":        "affirmation-de-soi",
		"Story telling":             "story-telling",
		"Culture":                   "culture",
		"Gestion des conflits":      "gestion-des-conflits",
		"Gestion du changement":     "gestion-du-changement",
		"Média training":            "media-training",
	}
}

// DefaultConfig returns the settings of the production site.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			BaseURL:         "https://lauraballo.com",
			AuthorName:      "Laura Ballo",
			PublisherName:   "Laura Ballo Coaching",
			LogoPath:        "/assets/img/Laura-Ballo-white-low-res.png",
			DefaultCategory: "Leadership",
			TitleSuffix:     " | Laura Ballo",
		},
		Source: SourceConfig{
			Kind:    SourceNotion,
			Dir:     "content",
			Pattern: markdown.DefaultPattern,
		},
		Notion: NotionConfig{
			DatabaseID: "300075e127d2809eaac2e85bba8280ef",
			BaseURL:    notion.DefaultBaseURL,
			Version:    notion.DefaultVersion,
			Timeout:    notion.DefaultTimeout,
			Properties: notion.DefaultPropertyNames(),
			Actions:    notion.DefaultActions(),
		},
		Paths: PathsConfig{
			Root:      ".",
			Template:  "_templates/article.html",
			OutputDir: "blog/articles",
			Catalog:   "blog/articles.json",
			Sitemap:   "sitemap.xml",
		},
		Publisher: PublisherConfig{
			Workers: publisher.DefaultWorkers,
		},
		Tags:        DefaultTagSlugs(),
		StaticPages: generator.DefaultStaticPages(),
		Logging: LoggingConfig{
			Provider: LoggingConsole,
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Site.BaseURL) == "" {
		return ErrSiteBaseURLRequired
	}
	switch normalize(cfg.Source.Kind) {
	case SourceNotion:
		if strings.TrimSpace(cfg.Notion.APIKey) == "" {
			return ErrNotionAPIKeyRequired
		}
		if strings.TrimSpace(cfg.Notion.DatabaseID) == "" {
			return ErrNotionDatabaseIDRequired
		}
	case SourceMarkdown:
		if strings.TrimSpace(cfg.Source.Dir) == "" {
			return ErrMarkdownDirRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrSourceUnknown, cfg.Source.Kind)
	}
	if strings.TrimSpace(cfg.Paths.Template) == "" {
		return ErrTemplatePathRequired
	}
	if strings.TrimSpace(cfg.Paths.OutputDir) == "" {
		return ErrOutputDirRequired
	}
	if cfg.Publisher.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrWorkersInvalid, cfg.Publisher.Workers)
	}
	return cfg.Logging.Validate()
}

// Validate checks the provider, level and format combination.
func (cfg LoggingConfig) Validate() error {
	provider := normalize(cfg.Provider)
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Provider)
	}
	if level := strings.TrimSpace(cfg.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	format := normalize(cfg.Format)
	if format == "" {
		return nil
	}
	switch provider {
	case LoggingGoLogger:
		if !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Format)
		}
	case LoggingZap:
		if !isSupportedZapMode(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, cfg.Format)
		}
	}
	return nil
}

// ArticleSite converts the site section for the assembler.
func (cfg Config) ArticleSite() article.Site {
	return article.Site{
		BaseURL:         cfg.Site.BaseURL,
		AuthorName:      cfg.Site.AuthorName,
		PublisherName:   cfg.Site.PublisherName,
		LogoPath:        cfg.Site.LogoPath,
		DefaultCategory: cfg.Site.DefaultCategory,
		TitleSuffix:     cfg.Site.TitleSuffix,
	}
}

// PublisherConfig converts the configuration for publisher.New.
func (cfg Config) PublisherConfig() publisher.Config {
	return publisher.Config{
		Site:           cfg.ArticleSite(),
		TemplatePath:   cfg.Paths.Template,
		OutputDir:      cfg.Paths.OutputDir,
		CatalogPath:    cfg.Paths.Catalog,
		SitemapPath:    cfg.Paths.Sitemap,
		StaticPages:    cfg.StaticPages,
		Tags:           slugs.NewTagSlugger(cfg.Tags),
		Workers:        cfg.Publisher.Workers,
		StrictTemplate: cfg.Publisher.StrictTemplate,
	}
}

// NotionClientConfig converts the notion section for notion.New.
func (cfg Config) NotionClientConfig() notion.Config {
	return notion.Config{
		APIKey:  cfg.Notion.APIKey,
		BaseURL: cfg.Notion.BaseURL,
		Version: cfg.Notion.Version,
		Timeout: cfg.Notion.Timeout,
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case LoggingConsole, LoggingGoLogger, LoggingZap:
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch format {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedZapMode(mode string) bool {
	switch mode {
	case "prod", "production", "dev", "development":
		return true
	default:
		return false
	}
}
