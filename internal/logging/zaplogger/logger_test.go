package zaplogger

import (
	"context"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/lballo/Site-laura-4/internal/logging"
)

func observed(level zapcore.Level) (*Provider, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return FromZap(zap.New(core)), logs
}

func TestProviderNamesLoggers(t *testing.T) {
	p, logs := observed(zapcore.DebugLevel)

	p.GetLogger("publisher.notion").Info("notion.query", "count", 3)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "publisher.notion" {
		t.Fatalf("unexpected logger name %q", entries[0].LoggerName)
	}
	if got := entries[0].ContextMap()["count"]; got != int64(3) {
		t.Fatalf("expected count=3, got %#v", got)
	}
}

func TestSecretsAreRedacted(t *testing.T) {
	p, logs := observed(zapcore.DebugLevel)

	logger := p.GetLogger("publisher")
	logger.Info("config.loaded", "notion_api_key", "secret_abc", "database_id", "db-1")

	fields := logs.All()[0].ContextMap()
	if fields["notion_api_key"] != redacted {
		t.Fatalf("expected api key to be redacted, got %#v", fields["notion_api_key"])
	}
	if fields["database_id"] != "db-1" {
		t.Fatalf("expected database_id to pass through, got %#v", fields["database_id"])
	}
}

func TestWithFieldsAndContext(t *testing.T) {
	p, logs := observed(zapcore.DebugLevel)

	logger := logging.WithFields(p.GetLogger("publisher"), map[string]any{"slug": "oser-parler"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{"page_id": "p-1"})
	logger.WithContext(ctx).Warn("publish.skipped")

	fields := logs.All()[0].ContextMap()
	if fields["slug"] != "oser-parler" || fields["page_id"] != "p-1" {
		t.Fatalf("unexpected fields %#v", fields)
	}
}

func TestTraceMapsToDebug(t *testing.T) {
	p, logs := observed(zapcore.InfoLevel)
	p.GetLogger("publisher").Trace("hidden")
	if logs.Len() != 0 {
		t.Fatalf("expected trace to be filtered at info, got %d entries", logs.Len())
	}
}

func TestNewProviderRejectsUnknownMode(t *testing.T) {
	if _, err := NewProvider(Config{Mode: "verbose"}); err == nil {
		t.Fatal("expected error for unknown mode")
	}
	if _, err := NewProvider(Config{Level: "loud"}); err == nil {
		t.Fatal("expected error for unknown level")
	}
}

func TestNilProviderYieldsNoOp(t *testing.T) {
	var p *Provider
	p.GetLogger("x").Info("discarded")
	if err := p.Sync(); err != nil {
		t.Fatalf("unexpected sync error: %v", err)
	}
}
