// Package zaplogger adapts go.uber.org/zap to the publisher logging contract.
package zaplogger

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

const redacted = "[REDACTED]"

// Config selects the zap preset and minimum level.
type Config struct {
	// Mode is "production" (JSON) or "development" (console). Empty means
	// development.
	Mode  string
	Level string
}

// Provider hands out named zap loggers.
type Provider struct {
	root *zap.SugaredLogger
}

// NewProvider builds a zap logger from cfg.
func NewProvider(cfg Config) (*Provider, error) {
	var zc zap.Config
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "prod", "production":
		zc = zap.NewProductionConfig()
	case "", "dev", "development":
		zc = zap.NewDevelopmentConfig()
	default:
		return nil, fmt.Errorf("logging: unsupported zap mode %q", cfg.Mode)
	}
	if strings.TrimSpace(cfg.Level) != "" {
		level, err := zapcore.ParseLevel(strings.TrimSpace(cfg.Level))
		if err != nil {
			return nil, fmt.Errorf("logging: zap level: %w", err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}
	built, err := zc.Build()
	if err != nil {
		return nil, err
	}
	return FromZap(built), nil
}

// FromZap wraps an existing zap logger.
func FromZap(l *zap.Logger) *Provider {
	if l == nil {
		l = zap.NewNop()
	}
	return &Provider{root: l.Sugar()}
}

// Sync flushes buffered entries.
func (p *Provider) Sync() error {
	if p == nil || p.root == nil {
		return nil
	}
	return p.root.Sync()
}

// GetLogger satisfies interfaces.LoggerProvider.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name == "" {
		return &adapter{sugar: p.root}
	}
	return &adapter{sugar: p.root.Named(name)}
}

type adapter struct {
	sugar *zap.SugaredLogger
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.sugar.Debugw(msg, sanitize(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.sugar.Debugw(msg, sanitize(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.sugar.Infow(msg, sanitize(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.sugar.Warnw(msg, sanitize(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.sugar.Errorw(msg, sanitize(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.sugar.Fatalw(msg, sanitize(args)...) }

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	kv := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		kv = append(kv, k, v)
	}
	return &adapter{sugar: l.sugar.With(sanitize(kv)...)}
}

// WithContext applies fields stored with logging.ContextWithFields.
func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return l.WithFields(logging.ContextFields(ctx))
}

// sanitize masks credential values. Pairs are assumed to be key/value; a
// trailing odd value is passed through.
func sanitize(kv []any) []any {
	if len(kv) == 0 {
		return kv
	}
	out := make([]any, 0, len(kv))
	for i := 0; i < len(kv); i += 2 {
		if i == len(kv)-1 {
			out = append(out, kv[i])
			break
		}
		key, _ := kv[i].(string)
		value := kv[i+1]
		if isSecretKey(key) {
			value = redacted
		}
		out = append(out, kv[i], value)
	}
	return out
}

func isSecretKey(key string) bool {
	key = strings.ToLower(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	for _, marker := range []string{"token", "authorization", "secret", "password", "api_key", "apikey"} {
		if strings.Contains(key, marker) {
			return true
		}
	}
	return false
}
