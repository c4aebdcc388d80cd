package publishcmd

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	command "github.com/goliatone/go-command"

	"github.com/lballo/Site-laura-4/internal/article"
	"github.com/lballo/Site-laura-4/internal/commands"
	"github.com/lballo/Site-laura-4/internal/generator"
	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/internal/markdown"
	"github.com/lballo/Site-laura-4/internal/publisher"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

const (
	publishOperation = "publisher.publish"
	previewOperation = "publisher.preview"
)

var (
	_ command.Commander[PublishCommand] = (*PublishHandler)(nil)
	_ command.Commander[PreviewCommand] = (*PreviewHandler)(nil)
)

// Runner executes a publishing pass. *publisher.Publisher satisfies it.
type Runner interface {
	Run(ctx context.Context, opts publisher.Options) (*publisher.Result, error)
}

// PublishHandler runs the pipeline through the shared command foundation.
type PublishHandler struct {
	inner *commands.Handler[PublishCommand]
}

// NewPublishHandler binds runner to the handler. onResult, when set, receives
// the run result, including partial results of failed runs.
func NewPublishHandler(runner Runner, logger interfaces.Logger, onResult func(*publisher.Result), opts ...commands.HandlerOption[PublishCommand]) *PublishHandler {
	baseLogger := logging.Ensure(logger)

	exec := func(ctx context.Context, msg PublishCommand) error {
		result, err := runner.Run(ctx, publisher.Options{DryRun: msg.DryRun})
		if result != nil {
			logging.WithFields(baseLogger, map[string]any{
				"published": result.Count(publisher.StatusPublished),
				"retired":   result.Count(publisher.StatusRetired),
				"skipped":   result.Count(publisher.StatusSkipped),
				"failed":    result.Count(publisher.StatusFailed),
				"dry_run":   msg.DryRun,
			}).Info("publisher.command.publish.completed")
			if onResult != nil {
				onResult(result)
			}
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[PublishCommand]{
		commands.WithLogger[PublishCommand](baseLogger),
		commands.WithOperation[PublishCommand](publishOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PublishHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *PublishHandler) Execute(ctx context.Context, msg PublishCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Preview is one rendered markdown article.
type Preview struct {
	Source   string
	Document *article.Document
	// Path is the written file, empty when nothing was written.
	Path string
	Err  error
}

// PreviewDeps are the collaborators of PreviewHandler.
type PreviewDeps struct {
	Config publisher.Config
	// SiteFS holds the template referenced by Config.TemplatePath.
	SiteFS   generator.ArtifactFS
	Provider interfaces.LoggerProvider
}

// PreviewHandler renders local markdown with the site template.
type PreviewHandler struct {
	inner *commands.Handler[PreviewCommand]
}

// NewPreviewHandler builds the preview handler. onPreview, when set,
// receives every rendered article.
func NewPreviewHandler(deps PreviewDeps, onPreview func([]Preview), opts ...commands.HandlerOption[PreviewCommand]) *PreviewHandler {
	baseLogger := commands.CommandLogger(deps.Provider, "preview")

	exec := func(ctx context.Context, msg PreviewCommand) error {
		previews, err := preview(ctx, deps, msg, baseLogger)
		if err != nil {
			return err
		}
		failed := 0
		for _, p := range previews {
			if p.Err != nil {
				failed++
			}
		}
		baseLogger.Info("publisher.command.preview.completed", "documents", len(previews), "failed", failed)
		if onPreview != nil {
			onPreview(previews)
		}
		if failed > 0 {
			return fmt.Errorf("preview: %d of %d documents failed", failed, len(previews))
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[PreviewCommand]{
		commands.WithLogger[PreviewCommand](baseLogger),
		commands.WithOperation[PreviewCommand](previewOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &PreviewHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute implements command.Commander.
func (h *PreviewHandler) Execute(ctx context.Context, msg PreviewCommand) error {
	return h.inner.Execute(ctx, msg)
}

func preview(ctx context.Context, deps PreviewDeps, msg PreviewCommand, logger interfaces.Logger) ([]Preview, error) {
	root, pattern, err := resolveInput(msg.Path, msg.Pattern)
	if err != nil {
		return nil, err
	}

	source, err := markdown.Load(ctx, os.DirFS(root), pattern, markdown.NewParser(), logging.MarkdownLogger(deps.Provider))
	if err != nil {
		return nil, err
	}

	pub, err := publisher.New(deps.Config, source, deps.SiteFS, publisher.WithLoggerProvider(deps.Provider))
	if err != nil {
		return nil, err
	}

	var out *generator.Writer
	if msg.Output != "" {
		out = generator.NewWriter(generator.NewOSFS(msg.Output), logging.GeneratorLogger(deps.Provider))
	}

	previews := make([]Preview, 0, len(source.Documents()))
	for _, doc := range source.Documents() {
		p := Preview{Source: filepath.Join(root, filepath.FromSlash(doc.Path))}
		p.Document, p.Err = pub.Preview(ctx, doc.Draft(), doc)
		if p.Err == nil && out != nil {
			name := p.Document.Metadata.Slug + ".html"
			if err := out.Write(ctx, generator.CategoryArticle, name, []byte(p.Document.HTML)); err != nil {
				p.Err = err
			} else {
				p.Path = filepath.Join(msg.Output, name)
			}
		}
		if p.Err != nil {
			logger.Warn("publisher.command.preview.document_failed", "source", p.Source, "error", p.Err)
		}
		previews = append(previews, p)
	}
	return previews, nil
}

// resolveInput turns a file or directory path into a root directory and a
// glob pattern relative to it.
func resolveInput(path, pattern string) (string, string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", "", fmt.Errorf("preview: %w", err)
	}
	if info.IsDir() {
		if pattern == "" {
			pattern = markdown.DefaultPattern
		}
		return path, pattern, nil
	}
	if !info.Mode().IsRegular() {
		return "", "", fmt.Errorf("preview: %s: %w", path, fs.ErrInvalid)
	}
	return filepath.Dir(path), filepath.Base(path), nil
}
