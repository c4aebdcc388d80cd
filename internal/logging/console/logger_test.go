package console_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2026, 10, 15, 9, 30, 0, 125000000, time.UTC)

	provider := console.NewProvider(console.Options{
		Writer: &buf,
		Clock:  func() time.Time { return now },
		Level:  console.LevelDebug,
	})

	logger := logging.ModuleLogger(provider, "publisher.render")
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"slug": "oser-parler",
	})
	logger = logger.WithContext(ctx)

	logger.Warn("blocks.render.image_source_missing",
		"block_id", "b-1",
		"elapsed", 1500*time.Millisecond,
		"error", errors.New("no url"),
	)

	got := strings.TrimSpace(buf.String())
	want := `2026-10-15T09:30:00.125Z WARN blocks.render.image_source_missing block_id=b-1 elapsed=1.5s error="no url" logger=publisher.render module=publisher.render slug=oser-parler`
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{
		Writer: &buf,
		Level:  console.LevelInfo,
	})

	logger := provider.GetLogger("publisher.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Info("included.info", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.info foo=bar") {
		t.Fatalf("expected info log to be written, got %s", lines[0])
	}
}

func TestConsoleLogger_PositionalArguments(t *testing.T) {
	var buf bytes.Buffer
	provider := console.NewProvider(console.Options{Writer: &buf})

	provider.GetLogger("p").Info("odd", 42, "value", "dangling")

	got := buf.String()
	if !strings.Contains(got, "field_0=value") || !strings.Contains(got, "field_1=dangling") {
		t.Fatalf("expected positional fields, got %s", got)
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"":        console.LevelInfo,
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
		"fatal":   console.LevelFatal,
	}
	for name, want := range cases {
		got, err := console.ParseLevel(name)
		if err != nil || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", name, got, err, want)
		}
	}
	if _, err := console.ParseLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
