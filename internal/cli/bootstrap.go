package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lballo/Site-laura-4/internal/generator"
	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/internal/logging/console"
	"github.com/lballo/Site-laura-4/internal/logging/gologger"
	"github.com/lballo/Site-laura-4/internal/logging/zaplogger"
	"github.com/lballo/Site-laura-4/internal/markdown"
	"github.com/lballo/Site-laura-4/internal/notion"
	"github.com/lballo/Site-laura-4/internal/publisher"
	"github.com/lballo/Site-laura-4/internal/runtimeconfig"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

// Module bundles the collaborators built from one configuration.
type Module struct {
	Config    runtimeconfig.Config
	Provider  interfaces.LoggerProvider
	SiteFS    generator.ArtifactFS
	Source    publisher.Source
	Publisher *publisher.Publisher
	flush     func() error
}

// Close flushes buffered log entries.
func (m *Module) Close() error {
	if m == nil || m.flush == nil {
		return nil
	}
	return m.flush()
}

// NewLoggerProvider builds the provider selected by cfg. The returned
// function flushes buffered entries.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig, stderr io.Writer) (interfaces.LoggerProvider, func() error, error) {
	noFlush := func() error { return nil }
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case runtimeconfig.LoggingGoLogger:
		p, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, nil, err
		}
		return p, noFlush, nil
	case runtimeconfig.LoggingZap:
		p, err := zaplogger.NewProvider(zaplogger.Config{Mode: cfg.Format, Level: cfg.Level})
		if err != nil {
			return nil, nil, err
		}
		return p, p.Sync, nil
	default:
		level, err := console.ParseLevel(cfg.Level)
		if err != nil {
			return nil, nil, err
		}
		return console.NewProvider(console.Options{Writer: stderr, Level: level}), noFlush, nil
	}
}

// NewSource builds the content source selected by cfg.
func NewSource(ctx context.Context, cfg runtimeconfig.Config, provider interfaces.LoggerProvider) (publisher.Source, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Source.Kind)) {
	case runtimeconfig.SourceMarkdown:
		dir := cfg.Source.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(cfg.Paths.Root, dir)
		}
		return markdown.Load(ctx, os.DirFS(dir), cfg.Source.Pattern, markdown.NewParser(), logging.MarkdownLogger(provider))
	case runtimeconfig.SourceNotion:
		logger := logging.NotionLogger(provider)
		client, err := notion.New(cfg.NotionClientConfig(), notion.WithLogger(logger))
		if err != nil {
			return nil, err
		}
		return notion.NewSource(client, cfg.Notion.DatabaseID,
			notion.WithPropertyNames(cfg.Notion.Properties),
			notion.WithActions(cfg.Notion.Actions),
			notion.WithSourceLogger(logger),
		)
	}
	return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrSourceUnknown, cfg.Source.Kind)
}

// Bootstrap validates cfg and wires the publishing pipeline.
func Bootstrap(ctx context.Context, cfg runtimeconfig.Config, stderr io.Writer) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	provider, flush, err := NewLoggerProvider(cfg.Logging, stderr)
	if err != nil {
		return nil, err
	}

	source, err := NewSource(ctx, cfg, provider)
	if err != nil {
		_ = flush()
		return nil, err
	}

	siteFS := generator.NewOSFS(cfg.Paths.Root)
	pub, err := publisher.New(cfg.PublisherConfig(), source, siteFS, publisher.WithLoggerProvider(provider))
	if err != nil {
		_ = flush()
		return nil, err
	}

	return &Module{
		Config:    cfg,
		Provider:  provider,
		SiteFS:    siteFS,
		Source:    source,
		Publisher: pub,
		flush:     flush,
	}, nil
}
