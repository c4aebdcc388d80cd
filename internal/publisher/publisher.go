// Package publisher runs the publishing pipeline: drafts come out of a
// content source, are rendered and assembled into pages, and land in the
// artifact tree together with the refreshed catalog and sitemap.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lballo/Site-laura-4/internal/article"
	"github.com/lballo/Site-laura-4/internal/blocks"
	"github.com/lballo/Site-laura-4/internal/catalog"
	"github.com/lballo/Site-laura-4/internal/generator"
	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/internal/slugs"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

// DefaultWorkers bounds concurrent document renders when Config.Workers is unset.
const DefaultWorkers = 4

var (
	ErrNilSource = errors.New("publisher: source is required")
	ErrNilFS     = errors.New("publisher: artifact filesystem is required")
	// ErrEmptyDocument marks a page whose blocks render to no visible markup.
	ErrEmptyDocument = errors.New("publisher: rendered document is empty")
)

// Source lists pending pages, serves their blocks and records outcomes.
type Source interface {
	blocks.ChildFetcher
	ToPublish(ctx context.Context) ([]article.Draft, error)
	ToRetire(ctx context.Context) ([]article.Draft, error)
	MarkPublished(ctx context.Context, pageID string) error
	MarkRetired(ctx context.Context, pageID string) error
}

// Config holds the site values and artifact locations of a run. Paths are
// relative to the artifact filesystem root.
type Config struct {
	Site           article.Site
	TemplatePath   string
	OutputDir      string
	CatalogPath    string
	SitemapPath    string
	StaticPages    []generator.StaticPage
	Tags           slugs.TagSlugger
	Workers        int
	StrictTemplate bool
}

// Options tune a single run.
type Options struct {
	// DryRun renders and assembles every page but writes no artifact and
	// leaves the source untouched.
	DryRun bool
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLoggerProvider routes pipeline and renderer logs through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(p *Publisher) {
		p.provider = provider
	}
}

// WithClock overrides the publish date source.
func WithClock(clock func() time.Time) Option {
	return func(p *Publisher) {
		if clock != nil {
			p.clock = clock
		}
	}
}

// Publisher owns one configured pipeline.
type Publisher struct {
	cfg       Config
	source    Source
	writer    *generator.Writer
	renderer  *blocks.Renderer
	assembler *article.Assembler
	provider  interfaces.LoggerProvider
	logger    interfaces.Logger
	catLogger interfaces.Logger
	clock     func() time.Time
}

// New wires a Publisher over source and fsys.
func New(cfg Config, source Source, fsys generator.ArtifactFS, opts ...Option) (*Publisher, error) {
	if source == nil {
		return nil, ErrNilSource
	}
	if fsys == nil {
		return nil, ErrNilFS
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultWorkers
	}
	if len(cfg.StaticPages) == 0 {
		cfg.StaticPages = generator.DefaultStaticPages()
	}

	p := &Publisher{
		cfg:    cfg,
		source: source,
		clock:  time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}

	p.logger = logging.PublisherLogger(p.provider)
	p.catLogger = logging.CatalogLogger(p.provider)
	p.writer = generator.NewWriter(fsys, logging.GeneratorLogger(p.provider))
	p.renderer = p.newRenderer(source)
	p.assembler = article.NewAssembler(cfg.Site, article.WithStrictPlaceholders(cfg.StrictTemplate))
	return p, nil
}

func (p *Publisher) newRenderer(fetcher blocks.ChildFetcher) *blocks.Renderer {
	return blocks.NewRenderer(fetcher, blocks.WithLogger(logging.RenderLogger(p.provider)))
}

// Run processes every pending retire and publish request. Per-article
// failures do not stop the run; they are reported in the result and joined
// into the returned error.
func (p *Publisher) Run(ctx context.Context, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	tmpl, err := p.template()
	if err != nil {
		return nil, err
	}
	cat, err := catalog.Load(p.writer.FS(), p.cfg.CatalogPath)
	if err != nil {
		return nil, err
	}
	p.catLogger.Info("catalog.loaded", "path", p.cfg.CatalogPath, "articles", cat.Len())

	toPublish, err := p.source.ToPublish(ctx)
	if err != nil {
		return nil, fmt.Errorf("publisher: list pages to publish: %w", err)
	}
	toRetire, err := p.source.ToRetire(ctx)
	if err != nil {
		return nil, fmt.Errorf("publisher: list pages to retire: %w", err)
	}

	result := &Result{DryRun: opts.DryRun, CatalogSize: cat.Len()}
	if len(toPublish) == 0 && len(toRetire) == 0 {
		p.logger.Info("publisher.run.nothing_to_do")
		return result, nil
	}

	for _, draft := range toRetire {
		result.Articles = append(result.Articles, p.retire(ctx, cat, draft, opts))
	}

	publishedOn := p.clock()
	built := p.buildAll(ctx, tmpl, toPublish, publishedOn)
	for _, b := range built {
		result.Articles = append(result.Articles, p.store(ctx, cat, b, opts))
	}
	result.CatalogSize = cat.Len()

	if !opts.DryRun {
		if err := p.saveIndexes(ctx, cat); err != nil {
			return result, err
		}
		p.markSource(ctx, result)
	}

	var failures []error
	for _, a := range result.Articles {
		if a.Err != nil && a.Status == StatusFailed {
			failures = append(failures, a.Err)
		}
	}

	p.logger.Info("publisher.run.completed",
		"published", result.Count(StatusPublished),
		"retired", result.Count(StatusRetired),
		"skipped", result.Count(StatusSkipped),
		"failed", result.Count(StatusFailed),
		"dry_run", opts.DryRun,
	)
	return result, errors.Join(failures...)
}

func (p *Publisher) template() (article.Template, error) {
	raw, err := fs.ReadFile(p.writer.FS(), p.cfg.TemplatePath)
	if err != nil {
		return article.Template{}, fmt.Errorf("publisher: read template %s: %w", p.cfg.TemplatePath, err)
	}
	return article.NewTemplate(string(raw)), nil
}

func (p *Publisher) retire(ctx context.Context, cat *catalog.Catalog, draft article.Draft, opts Options) ArticleResult {
	slug := slugs.Resolve(draft.URL, draft.Title)
	res := ArticleResult{
		Action: ActionRetire,
		Status: StatusRetired,
		PageID: draft.PageID,
		Title:  draft.Title,
		Slug:   slug,
	}
	logger := logging.WithArticleContext(p.logger, slug, draft.PageID, string(ActionRetire))

	path, err := generator.ArticlePath(p.cfg.OutputDir, slug)
	if err != nil {
		logger.Error("publisher.retire.invalid_slug", "error", err)
		res.Status, res.Err = StatusFailed, err
		return res
	}
	res.Path = path

	if !opts.DryRun {
		removed, err := p.writer.Remove(ctx, generator.CategoryArticle, path)
		if err != nil {
			logger.Error("publisher.retire.remove_failed", "path", path, "error", err)
			res.Status, res.Err = StatusFailed, err
			return res
		}
		res.Removed = removed
		if !removed {
			logger.Warn("publisher.retire.artifact_missing", "path", path)
		}
	}

	if !cat.Remove(slug) {
		logger.Warn("publisher.retire.not_in_catalog")
	}
	logger.Info("publisher.retire.done")
	return res
}

type built struct {
	draft article.Draft
	doc   *article.Document
	err   error
	empty bool
}

// buildAll renders and assembles drafts concurrently. Results keep draft
// order; one failure never cancels the others.
func (p *Publisher) buildAll(ctx context.Context, tmpl article.Template, drafts []article.Draft, publishedOn time.Time) []built {
	out := make([]built, len(drafts))

	var g errgroup.Group
	g.SetLimit(p.cfg.Workers)
	for i, draft := range drafts {
		g.Go(func() error {
			doc, err := p.build(ctx, p.source, p.renderer, tmpl, draft, publishedOn)
			out[i] = built{draft: draft, doc: doc, err: err, empty: errors.Is(err, ErrEmptyDocument)}
			return nil
		})
	}
	_ = g.Wait()
	return out
}

func (p *Publisher) build(ctx context.Context, fetcher blocks.ChildFetcher, renderer *blocks.Renderer, tmpl article.Template, draft article.Draft, publishedOn time.Time) (*article.Document, error) {
	top, err := fetcher.Children(ctx, draft.PageID)
	if err != nil {
		return nil, fmt.Errorf("publisher: fetch blocks of %q: %w", draft.Title, err)
	}
	fragment, err := renderer.Render(ctx, top)
	if err != nil {
		return nil, fmt.Errorf("publisher: render %q: %w", draft.Title, err)
	}
	if fragment.Empty() {
		return nil, fmt.Errorf("%w: %q", ErrEmptyDocument, draft.Title)
	}

	meta := article.NewMetadata(draft, p.cfg.Site, p.cfg.Tags, publishedOn)
	doc, err := p.assembler.Assemble(tmpl, fragment, meta)
	if err != nil {
		return nil, fmt.Errorf("publisher: assemble %q: %w", draft.Title, err)
	}
	return doc, nil
}

func (p *Publisher) store(ctx context.Context, cat *catalog.Catalog, b built, opts Options) ArticleResult {
	slug := slugs.Resolve(b.draft.URL, b.draft.Title)
	res := ArticleResult{
		Action: ActionPublish,
		Status: StatusPublished,
		PageID: b.draft.PageID,
		Title:  b.draft.Title,
		Slug:   slug,
	}
	logger := logging.WithArticleContext(p.logger, slug, b.draft.PageID, string(ActionPublish))

	switch {
	case b.empty:
		logger.Warn("publisher.publish.empty_document")
		res.Status, res.Err = StatusSkipped, b.err
		return res
	case b.err != nil:
		logger.Error("publisher.publish.failed", "error", b.err)
		res.Status, res.Err = StatusFailed, b.err
		return res
	}

	res.ReadingTime = b.doc.ReadingTime
	path, err := generator.ArticlePath(p.cfg.OutputDir, b.doc.Metadata.Slug)
	if err != nil {
		logger.Error("publisher.publish.invalid_slug", "error", err)
		res.Status, res.Err = StatusFailed, err
		return res
	}
	res.Path = path

	if !opts.DryRun {
		if err := p.writer.Write(ctx, generator.CategoryArticle, path, []byte(b.doc.HTML)); err != nil {
			logger.Error("publisher.publish.write_failed", "path", path, "error", err)
			res.Status, res.Err = StatusFailed, err
			return res
		}
	}

	if cat.Upsert(catalog.NewEntry(b.doc)) {
		logger.Info("publisher.publish.catalog_updated")
	} else {
		logger.Info("publisher.publish.catalog_added")
	}
	logger.Info("publisher.publish.done", "path", path, "reading_time", b.doc.ReadingTime)
	return res
}

func (p *Publisher) saveIndexes(ctx context.Context, cat *catalog.Catalog) error {
	data, err := cat.Marshal()
	if err != nil {
		return fmt.Errorf("publisher: encode catalog: %w", err)
	}
	if err := p.writer.Write(ctx, generator.CategoryCatalog, p.cfg.CatalogPath, data); err != nil {
		return err
	}

	sitemap := generator.BuildSitemap(p.cfg.Site.BaseURL, p.cfg.StaticPages, cat.Articles)
	if err := p.writer.Write(ctx, generator.CategorySitemap, p.cfg.SitemapPath, []byte(sitemap)); err != nil {
		return err
	}
	p.catLogger.Info("catalog.indexes.saved", "catalog", p.cfg.CatalogPath, "sitemap", p.cfg.SitemapPath, "articles", cat.Len())
	return nil
}

// markSource reports outcomes back to the source. Failures are logged and
// leave Marked unset.
func (p *Publisher) markSource(ctx context.Context, result *Result) {
	for i := range result.Articles {
		a := &result.Articles[i]
		var err error
		switch a.Status {
		case StatusPublished:
			err = p.source.MarkPublished(ctx, a.PageID)
		case StatusRetired:
			err = p.source.MarkRetired(ctx, a.PageID)
		default:
			continue
		}
		if err != nil {
			logging.WithArticleContext(p.logger, a.Slug, a.PageID, string(a.Action)).
				Warn("publisher.source.mark_failed", "error", err)
			continue
		}
		a.Marked = true
	}
}

// Preview renders and assembles one draft without touching any artifact or
// the source. Children are resolved through fetcher.
func (p *Publisher) Preview(ctx context.Context, draft article.Draft, fetcher blocks.ChildFetcher) (*article.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if fetcher == nil {
		fetcher = p.source
	}
	tmpl, err := p.template()
	if err != nil {
		return nil, err
	}
	return p.build(ctx, fetcher, p.newRenderer(fetcher), tmpl, draft, p.clock())
}
