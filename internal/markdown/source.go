package markdown

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/lballo/Site-laura-4/internal/article"
	"github.com/lballo/Site-laura-4/internal/blocks"
	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

// Source serves parsed documents to the publishing pipeline. Documents
// flagged draft are never listed.
type Source struct {
	docs   []*Document
	logger interfaces.Logger
}

// NewSource wraps already parsed documents.
func NewSource(logger interfaces.Logger, docs ...*Document) *Source {
	return &Source{docs: docs, logger: logging.Ensure(logger)}
}

// Load discovers and parses every file of fsys matching pattern.
func Load(ctx context.Context, fsys fs.FS, pattern string, parser *Parser, logger interfaces.Logger) (*Source, error) {
	if parser == nil {
		parser = NewParser()
	}
	paths, err := Discover(fsys, pattern)
	if err != nil {
		return nil, err
	}

	logger = logging.Ensure(logger)
	docs := make([]*Document, 0, len(paths))
	for _, p := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		raw, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("markdown: read %s: %w", p, err)
		}
		doc, err := parser.Parse(p, raw)
		if err != nil {
			return nil, err
		}
		logger.Debug("markdown.document.parsed", "path", p, "blocks", len(doc.Blocks))
		docs = append(docs, doc)
	}
	return NewSource(logger, docs...), nil
}

// Documents returns the parsed documents in discovery order.
func (s *Source) Documents() []*Document {
	return s.docs
}

// ToPublish lists documents whose action is publish.
func (s *Source) ToPublish(context.Context) ([]article.Draft, error) {
	return s.drafts(ActionPublish), nil
}

// ToRetire lists documents whose action is retire.
func (s *Source) ToRetire(context.Context) ([]article.Draft, error) {
	return s.drafts(ActionRetire), nil
}

func (s *Source) drafts(action string) []article.Draft {
	var out []article.Draft
	for _, doc := range s.docs {
		if doc.FrontMatter.Draft || doc.FrontMatter.Action != action {
			continue
		}
		out = append(out, doc.Draft())
	}
	return out
}

// Children routes to the document owning blockID.
func (s *Source) Children(ctx context.Context, blockID string) ([]blocks.Block, error) {
	for _, doc := range s.docs {
		if doc.Owns(blockID) {
			return doc.Children(ctx, blockID)
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownBlock, blockID)
}

// MarkPublished records the outcome; files carry no status to update.
func (s *Source) MarkPublished(_ context.Context, pageID string) error {
	s.logger.Info("markdown.document.published", "page_id", pageID)
	return nil
}

// MarkRetired records the outcome; files carry no status to update.
func (s *Source) MarkRetired(_ context.Context, pageID string) error {
	s.logger.Info("markdown.document.retired", "page_id", pageID)
	return nil
}
