package markdown

import (
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/lballo/Site-laura-4/internal/blocks"
	"github.com/lballo/Site-laura-4/internal/identity"
)

// alertPattern matches the GitHub alert marker that turns a blockquote into
// a callout, e.g. "> [!NOTE]".
var alertPattern = regexp.MustCompile(`^\[!(NOTE|TIP|IMPORTANT|WARNING|CAUTION)\]\s*`)

// Parser converts markdown documents into block trees. The parser is
// stateless so one instance can be shared.
type Parser struct {
	engine goldmark.Markdown
}

// NewParser builds a Parser with strikethrough and bare-URL linking enabled.
func NewParser() *Parser {
	return &Parser{
		engine: goldmark.New(goldmark.WithExtensions(
			extension.Strikethrough,
			extension.Linkify,
		)),
	}
}

// Parse reads the frontmatter and body of source. filePath identifies the
// document and seeds its deterministic block ids.
func (p *Parser) Parse(filePath string, source []byte) (*Document, error) {
	meta, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("markdown %s: %w", filePath, err)
	}

	docID := identity.DocumentUUID(filePath)
	root := p.engine.Parser().Parse(text.NewReader(body))

	conv := &converter{
		source:   body,
		docID:    docID,
		children: map[string][]blocks.Block{},
	}
	top := conv.sequence(root.FirstChild(), nil)

	if strings.TrimSpace(meta.Title) == "" {
		meta.Title = titleFromPath(filePath)
	}

	return &Document{
		ID:          docID,
		Path:        filePath,
		FrontMatter: meta,
		Blocks:      top,
		children:    conv.children,
	}, nil
}

func titleFromPath(filePath string) string {
	base := path.Base(strings.ReplaceAll(filePath, "\\", "/"))
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.TrimSpace(strings.NewReplacer("-", " ", "_", " ").Replace(base))
}

type converter struct {
	source   []byte
	docID    uuid.UUID
	children map[string][]blocks.Block
}

func (c *converter) id(position []int) string {
	return identity.BlockUUID(c.docID, position).String()
}

func extend(position []int, idx int) []int {
	out := make([]int, len(position), len(position)+1)
	copy(out, position)
	return append(out, idx)
}

// sequence converts first and its following siblings.
func (c *converter) sequence(first ast.Node, position []int) []blocks.Block {
	var out []blocks.Block
	for n := first; n != nil; n = n.NextSibling() {
		if list, ok := n.(*ast.List); ok {
			out = append(out, c.list(list, position, len(out))...)
			continue
		}
		if block, ok := c.block(n, extend(position, len(out))); ok {
			out = append(out, block)
		}
	}
	return out
}

func (c *converter) block(n ast.Node, position []int) (blocks.Block, bool) {
	id := c.id(position)

	switch node := n.(type) {
	case *ast.Heading:
		kind := blocks.KindHeadingSub
		switch node.Level {
		case 1:
			kind = blocks.KindHeadingMajor
		case 2:
			kind = blocks.KindHeadingMinor
		}
		return blocks.Block{ID: id, Kind: kind, Text: c.inline(node)}, true

	case *ast.Paragraph, *ast.TextBlock:
		if img, ok := soleImage(n); ok {
			return blocks.Block{ID: id, Kind: blocks.KindImage, Image: c.image(img)}, true
		}
		return blocks.Block{ID: id, Kind: blocks.KindParagraph, Text: c.inline(n)}, true

	case *ast.ThematicBreak:
		return blocks.Block{ID: id, Kind: blocks.KindDivider}, true

	case *ast.Blockquote:
		return c.quote(node, id), true

	case *ast.FencedCodeBlock, *ast.CodeBlock:
		return blocks.Block{ID: id, Kind: "code"}, true

	case *ast.HTMLBlock:
		return blocks.Block{ID: id, Kind: "html"}, true
	}

	return blocks.Block{ID: id, Kind: blocks.Kind(strings.ToLower(n.Kind().String()))}, true
}

func (c *converter) list(list *ast.List, position []int, offset int) []blocks.Block {
	kind := blocks.KindBulleted
	if list.IsOrdered() {
		kind = blocks.KindNumbered
	}

	var out []blocks.Block
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		itemPos := extend(position, offset+len(out))
		block := blocks.Block{ID: c.id(itemPos), Kind: kind}

		rest := item.FirstChild()
		switch rest.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			block.Text = c.inline(rest)
			rest = rest.NextSibling()
		}

		if nested := c.sequence(rest, itemPos); len(nested) > 0 {
			block.HasChildren = true
			c.children[block.ID] = nested
		}
		out = append(out, block)
	}
	return out
}

func (c *converter) quote(node *ast.Blockquote, id string) blocks.Block {
	var runs []blocks.TextRun
	for n := node.FirstChild(); n != nil; n = n.NextSibling() {
		switch n.(type) {
		case *ast.Paragraph, *ast.TextBlock:
		default:
			continue
		}
		if len(runs) > 0 {
			runs = append(runs, blocks.TextRun{PlainText: "\n"})
		}
		runs = append(runs, c.inline(n)...)
	}

	if loc := alertPattern.FindStringIndex(blocks.PlainText(runs)); loc != nil {
		return blocks.Block{ID: id, Kind: blocks.KindCallout, Text: trimRunsPrefix(runs, loc[1])}
	}
	return blocks.Block{ID: id, Kind: blocks.KindQuote, Text: runs}
}

// trimRunsPrefix drops the first n bytes of plain text across runs.
func trimRunsPrefix(runs []blocks.TextRun, n int) []blocks.TextRun {
	out := make([]blocks.TextRun, 0, len(runs))
	for _, run := range runs {
		if n >= len(run.PlainText) {
			n -= len(run.PlainText)
			continue
		}
		run.PlainText = run.PlainText[n:]
		n = 0
		out = append(out, run)
	}
	return out
}

func soleImage(n ast.Node) (*ast.Image, bool) {
	if n.ChildCount() != 1 {
		return nil, false
	}
	img, ok := n.FirstChild().(*ast.Image)
	return img, ok
}

// image maps a markdown image. The title, when present, carries the caption
// convention; otherwise the alt text does.
func (c *converter) image(img *ast.Image) *blocks.Image {
	caption := string(img.Title)
	if caption == "" {
		caption = c.plain(img)
	}
	dest := string(img.Destination)
	out := &blocks.Image{Caption: caption}
	if strings.HasPrefix(dest, "http://") || strings.HasPrefix(dest, "https://") {
		out.External = &blocks.MediaRef{URL: dest}
	} else {
		out.Hosted = &blocks.MediaRef{URL: dest}
	}
	return out
}

type inlineState struct {
	annotations blocks.Annotations
	href        string
}

func (c *converter) inline(n ast.Node) []blocks.TextRun {
	var runs []blocks.TextRun
	c.collect(n, inlineState{}, &runs)
	return runs
}

func (c *converter) collect(parent ast.Node, state inlineState, runs *[]blocks.TextRun) {
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Text:
			value := string(node.Segment.Value(c.source))
			switch {
			case node.HardLineBreak():
				value += "\n"
			case node.SoftLineBreak():
				value += " "
			}
			emit(runs, value, state)

		case *ast.String:
			emit(runs, string(node.Value), state)

		case *ast.CodeSpan:
			next := state
			next.annotations.Code = true
			emit(runs, c.plain(node), next)

		case *ast.Emphasis:
			next := state
			if node.Level >= 2 {
				next.annotations.Bold = true
			} else {
				next.annotations.Italic = true
			}
			c.collect(node, next, runs)

		case *east.Strikethrough:
			next := state
			next.annotations.Strikethrough = true
			c.collect(node, next, runs)

		case *ast.Link:
			next := state
			next.href = string(node.Destination)
			c.collect(node, next, runs)

		case *ast.AutoLink:
			next := state
			next.href = string(node.URL(c.source))
			emit(runs, string(node.Label(c.source)), next)

		case *ast.Image:
			emit(runs, c.plain(node), state)

		case *ast.RawHTML:
			// dropped

		default:
			c.collect(n, state, runs)
		}
	}
}

func emit(runs *[]blocks.TextRun, value string, state inlineState) {
	if value == "" {
		return
	}
	*runs = append(*runs, blocks.TextRun{
		PlainText:   value,
		Annotations: state.annotations,
		Href:        state.href,
	})
}

// plain returns the concatenated text beneath n without formatting.
func (c *converter) plain(n ast.Node) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := child.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(c.source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
