package logging

import (
	"context"
	"strings"

	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

const (
	rootModule      = "publisher"
	renderModule    = "publisher.render"
	notionModule    = "publisher.notion"
	catalogModule   = "publisher.catalog"
	generatorModule = "publisher.generator"
	markdownModule  = "publisher.markdown"
	commandsModule  = "publisher.commands"
)

const (
	fieldArticleSlug   = "slug"
	fieldArticlePageID = "page_id"
	fieldArticleAction = "action"
)

// ModuleLogger returns the logger registered for module, tagged with a
// module field. A nil provider or a provider returning nil yields NoOp.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// PublisherLogger returns the root namespace used by the publishing pipeline.
func PublisherLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, rootModule)
}

// RenderLogger returns the logger namespace used by the block renderer.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// NotionLogger returns the logger namespace used by the content backend client.
func NotionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, notionModule)
}

// CatalogLogger returns the logger namespace used by catalog persistence.
func CatalogLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, catalogModule)
}

// GeneratorLogger returns the logger namespace used for artifact writes.
func GeneratorLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, generatorModule)
}

// MarkdownLogger returns the logger namespace used by the markdown source.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// CommandsLogger returns the logger namespace used by command handlers.
func CommandsLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, commandsModule)
}

// WithArticleContext attaches the article slug, source page id and pipeline
// action to logger. Blank values are skipped.
func WithArticleContext(logger interfaces.Logger, slug, pageID, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(slug); trimmed != "" {
		fields[fieldArticleSlug] = trimmed
	}
	if trimmed := strings.TrimSpace(pageID); trimmed != "" {
		fields[fieldArticlePageID] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldArticleAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that discards every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
