package blocks

import (
	"context"
	"fmt"
	"html"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

const fetchChildrenFailedCode = "BLOCK_CHILDREN_FETCH_FAILED"

const fragmentSeparator = "\n\n"

const (
	dividerMarkup = "    <div class=\"transition-section\">\n" +
		"      <div class=\"transition-mark\">* * *</div>\n" +
		"    </div>"
)

// ChildFetcher returns the ordered descendants of a block that declared
// children. Implementations must paginate fully before returning.
type ChildFetcher interface {
	Children(ctx context.Context, blockID string) ([]Block, error)
}

// ChildFetcherFunc adapts a function to ChildFetcher.
type ChildFetcherFunc func(ctx context.Context, blockID string) ([]Block, error)

// Children calls f.
func (f ChildFetcherFunc) Children(ctx context.Context, blockID string) ([]Block, error) {
	return f(ctx, blockID)
}

// Fragment is the ordered markup produced by one render, one entry per
// top-level unit.
type Fragment []string

// String joins the units with a blank line.
func (f Fragment) String() string {
	return strings.Join(f, fragmentSeparator)
}

// Empty reports whether the fragment holds no visible markup.
func (f Fragment) Empty() bool {
	return strings.TrimSpace(f.String()) == ""
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLogger sets the logger used for skipped and malformed blocks.
func WithLogger(logger interfaces.Logger) Option {
	return func(r *Renderer) {
		r.logger = logging.Ensure(logger)
	}
}

// Renderer walks a block tree and produces markup. A Renderer holds no
// per-document state, so one instance can render independent documents
// concurrently.
type Renderer struct {
	fetcher ChildFetcher
	logger  interfaces.Logger
}

// NewRenderer builds a Renderer resolving children through fetcher. A nil
// fetcher leaves declared children unresolved.
func NewRenderer(fetcher ChildFetcher, opts ...Option) *Renderer {
	r := &Renderer{
		fetcher: fetcher,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// renderState is shared by every recursive call of one document render.
type renderState struct {
	leadConsumed bool
}

// Render converts blocks into a Fragment. A failed child fetch aborts the
// whole render.
func (r *Renderer) Render(ctx context.Context, blocks []Block) (Fragment, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return r.render(ctx, blocks, &renderState{})
}

func (r *Renderer) render(ctx context.Context, blocks []Block, state *renderState) (Fragment, error) {
	out := Fragment{}

	for i := 0; i < len(blocks); {
		block := blocks[i]

		switch block.Kind {
		case KindParagraph:
			text := FormatRuns(block.Text)
			if strings.TrimSpace(text) != "" {
				out = append(out, r.paragraph(text, state))
			}
			nested, err := r.children(ctx, block, state)
			if err != nil {
				return nil, err
			}
			out = append(out, nested...)
			i++

		case KindHeadingMajor, KindHeadingMinor:
			out = append(out, "    <h2>"+FormatRuns(block.Text)+"</h2>")
			state.leadConsumed = true
			i++

		case KindHeadingSub:
			out = append(out, "    <h3>"+FormatRuns(block.Text)+"</h3>")
			state.leadConsumed = true
			i++

		case KindBulleted, KindNumbered:
			end := runEnd(blocks, i)
			list, err := r.list(ctx, blocks[i:end], state)
			if err != nil {
				return nil, err
			}
			out = append(out, list)
			state.leadConsumed = true
			i = end

		case KindQuote:
			out = append(out, boxed("pullquote", FormatRuns(block.Text)))
			state.leadConsumed = true
			i++

		case KindCallout:
			out = append(out, boxed("insight-box", FormatRuns(block.Text)))
			state.leadConsumed = true
			i++

		case KindDivider:
			out = append(out, dividerMarkup)
			i++

		case KindImage:
			out = append(out, r.image(block))
			state.leadConsumed = true
			i++

		case KindToggle:
			// Toggle children stay unrendered; only the summary is emitted.
			out = append(out, "    <details>\n      <summary>"+FormatRuns(block.Text)+"</summary>\n    </details>")
			state.leadConsumed = true
			i++

		default:
			r.logger.Info("blocks.render.unknown_kind", "kind", string(block.Kind), "block_id", block.ID)
			i++
		}
	}

	return out, nil
}

func (r *Renderer) paragraph(text string, state *renderState) string {
	if !state.leadConsumed {
		state.leadConsumed = true
		return `    <p class="lead">` + text + "</p>"
	}
	return "    <p>" + text + "</p>"
}

// runEnd returns the index just past the run of blocks sharing the list kind
// of blocks[start].
func runEnd(blocks []Block, start int) int {
	kind := blocks[start].Kind
	end := start + 1
	for end < len(blocks) && blocks[end].Kind == kind {
		end++
	}
	return end
}

func (r *Renderer) list(ctx context.Context, items []Block, state *renderState) (string, error) {
	tag := "ul"
	if items[0].Kind == KindNumbered {
		tag = "ol"
	}

	rendered := make([]string, 0, len(items))
	for _, item := range items {
		nested, err := r.children(ctx, item, state)
		if err != nil {
			return "", err
		}
		var inner string
		if len(nested) > 0 {
			inner = "\n" + nested.String()
		}
		rendered = append(rendered, "      <li>"+FormatRuns(item.Text)+inner+"</li>")
	}

	return "    <" + tag + ">\n" + strings.Join(rendered, "\n") + "\n    </" + tag + ">", nil
}

func boxed(class, text string) string {
	return `    <div class="` + class + `">` + "\n      <p>" + text + "</p>\n    </div>"
}

func (r *Renderer) image(block Block) string {
	if block.Image == nil || block.Image.URL() == "" {
		r.logger.Warn("blocks.render.image_source_missing", "block_id", block.ID)
	}

	var raw string
	if block.Image != nil {
		raw = block.Image.Caption
	}
	caption := ParseCaption(raw)

	var captionMarkup string
	if caption.Visible != "" {
		captionMarkup = "\n      <p class=\"image-caption\">" + html.EscapeString(caption.Visible) + "</p>"
	}

	return "    <div class=\"full-image\">\n" +
		`      <img src="` + html.EscapeString(block.Image.URL()) + `" alt="` + html.EscapeString(caption.Alt) + `" loading="lazy">` +
		captionMarkup + "\n    </div>"
}

func (r *Renderer) children(ctx context.Context, block Block, state *renderState) (Fragment, error) {
	if !block.HasChildren || r.fetcher == nil {
		return nil, nil
	}
	if strings.TrimSpace(block.ID) == "" {
		r.logger.Warn("blocks.render.children_without_id", "kind", string(block.Kind))
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, wrapFetchError(err, block.ID)
	}

	kids, err := r.fetcher.Children(ctx, block.ID)
	if err != nil {
		r.logger.Error("blocks.render.children_fetch_failed", "block_id", block.ID, "error", err)
		return nil, wrapFetchError(err, block.ID)
	}
	if len(kids) == 0 {
		return nil, nil
	}
	return r.render(ctx, kids, state)
}

func wrapFetchError(err error, blockID string) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryExternal, fmt.Sprintf("fetch children of block %s", blockID)).
		WithTextCode(fetchChildrenFailedCode)
}
