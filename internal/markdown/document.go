package markdown

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/lballo/Site-laura-4/internal/article"
	"github.com/lballo/Site-laura-4/internal/blocks"
)

// ErrUnknownBlock is returned when children are requested for an id the
// document does not own.
var ErrUnknownBlock = errors.New("markdown: unknown block")

// Document is one parsed markdown article.
type Document struct {
	ID          uuid.UUID
	Path        string
	FrontMatter FrontMatter
	Blocks      []blocks.Block
	children    map[string][]blocks.Block
}

// Draft returns the article draft described by the frontmatter.
func (d *Document) Draft() article.Draft {
	return d.FrontMatter.Draft(d.ID.String())
}

// Owns reports whether blockID is the document itself or one of its
// parent blocks.
func (d *Document) Owns(blockID string) bool {
	if blockID == d.ID.String() {
		return true
	}
	_, ok := d.children[blockID]
	return ok
}

// Children resolves children from the parsed tree. The document id yields
// the top-level blocks.
func (d *Document) Children(ctx context.Context, blockID string) ([]blocks.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if blockID == d.ID.String() {
		return d.Blocks, nil
	}
	if kids, ok := d.children[blockID]; ok {
		return kids, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrUnknownBlock, blockID, d.Path)
}
