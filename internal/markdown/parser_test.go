package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lballo/Site-laura-4/internal/blocks"
)

const sample = `---
title: Oser parler
seo_title: Oser parler en public
tags: [Leadership, Culture]
situations: [Réunion]
url: https://lauraballo.com/oser-parler
---
# Titre

Premier **gras** et *italique* avec ` + "`code`" + ` et [lien](https://x.test).

- un
- deux
  - imbriqué

1. premier

> citation

> [!NOTE]
> Remarque

---

![alt: SEO | Légende](https://cdn.test/a.png)
`

func parseSample(t *testing.T) *Document {
	t.Helper()
	doc, err := NewParser().Parse("articles/oser-parler.md", []byte(sample))
	require.NoError(t, err)
	return doc
}

func kinds(in []blocks.Block) []blocks.Kind {
	out := make([]blocks.Kind, 0, len(in))
	for _, b := range in {
		out = append(out, b.Kind)
	}
	return out
}

func TestParseMapsBlockKinds(t *testing.T) {
	doc := parseSample(t)
	assert.Equal(t, []blocks.Kind{
		blocks.KindHeadingMajor,
		blocks.KindParagraph,
		blocks.KindBulleted,
		blocks.KindBulleted,
		blocks.KindNumbered,
		blocks.KindQuote,
		blocks.KindCallout,
		blocks.KindDivider,
		blocks.KindImage,
	}, kinds(doc.Blocks))
}

func TestParseInlineFormatting(t *testing.T) {
	doc := parseSample(t)
	assert.Equal(t,
		`Premier <strong>gras</strong> et <em>italique</em> avec <code>code</code> et <a href="https://x.test">lien</a>.`,
		blocks.FormatRuns(doc.Blocks[1].Text))
}

func TestParseNestedListChildren(t *testing.T) {
	doc := parseSample(t)
	parent := doc.Blocks[3]
	assert.Equal(t, "deux", blocks.PlainText(parent.Text))
	require.True(t, parent.HasChildren)
	assert.False(t, doc.Blocks[2].HasChildren)

	kids, err := doc.Children(context.Background(), parent.ID)
	require.NoError(t, err)
	require.Len(t, kids, 1)
	assert.Equal(t, blocks.KindBulleted, kids[0].Kind)
	assert.Equal(t, "imbriqué", blocks.PlainText(kids[0].Text))
}

func TestParseQuoteAndCallout(t *testing.T) {
	doc := parseSample(t)
	assert.Equal(t, "citation", blocks.PlainText(doc.Blocks[5].Text))
	assert.Equal(t, "Remarque", blocks.PlainText(doc.Blocks[6].Text))
}

func TestParseImageCaption(t *testing.T) {
	doc := parseSample(t)
	img := doc.Blocks[8].Image
	require.NotNil(t, img)
	assert.Equal(t, "https://cdn.test/a.png", img.URL())
	assert.NotNil(t, img.External)
	assert.Equal(t, "alt: SEO | Légende", img.Caption)
}

func TestParseImageTitleOverridesAlt(t *testing.T) {
	doc, err := NewParser().Parse("a.md", []byte(`![ignored](assets/b.png "Alt | Caption")`))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, "Alt | Caption", doc.Blocks[0].Image.Caption)
	assert.Equal(t, "assets/b.png", doc.Blocks[0].Image.URL())
	assert.NotNil(t, doc.Blocks[0].Image.Hosted)
}

func TestParseUnsupportedBlocksKeepTheirKind(t *testing.T) {
	doc, err := NewParser().Parse("a.md", []byte("```go\nfmt.Println()\n```\n"))
	require.NoError(t, err)
	require.Len(t, doc.Blocks, 1)
	assert.Equal(t, blocks.Kind("code"), doc.Blocks[0].Kind)
	assert.False(t, doc.Blocks[0].Kind.Known())
}

func TestParseIDsAreDeterministic(t *testing.T) {
	a := parseSample(t)
	b := parseSample(t)
	assert.Equal(t, a.ID, b.ID)
	for i := range a.Blocks {
		assert.Equal(t, a.Blocks[i].ID, b.Blocks[i].ID)
	}
	assert.NotEqual(t, a.Blocks[0].ID, a.Blocks[1].ID)
}

func TestParseDerivesDraft(t *testing.T) {
	doc := parseSample(t)
	draft := doc.Draft()
	assert.Equal(t, doc.ID.String(), draft.PageID)
	assert.Equal(t, "Oser parler", draft.Title)
	assert.Equal(t, "Oser parler en public", draft.SEOTitle)
	assert.Equal(t, []string{"Leadership", "Culture"}, draft.Tags)
	assert.Equal(t, []string{"Réunion"}, draft.Situations)
	assert.Equal(t, ActionPublish, doc.FrontMatter.Action)
}

func TestParseTitleFallsBackToFileName(t *testing.T) {
	doc, err := NewParser().Parse("notes/mon-article.md", []byte("Corps"))
	require.NoError(t, err)
	assert.Equal(t, "mon article", doc.FrontMatter.Title)
}

func TestDocumentChildrenTopLevelAndUnknown(t *testing.T) {
	doc := parseSample(t)
	top, err := doc.Children(context.Background(), doc.ID.String())
	require.NoError(t, err)
	assert.Len(t, top, len(doc.Blocks))

	_, err = doc.Children(context.Background(), "missing")
	require.ErrorIs(t, err, ErrUnknownBlock)
}

func TestParsedDocumentRendersThroughRenderer(t *testing.T) {
	doc := parseSample(t)
	out, err := blocks.NewRenderer(doc).Render(context.Background(), doc.Blocks)
	require.NoError(t, err)

	html := out.String()
	assert.Contains(t, html, "    <h2>Titre</h2>")
	assert.Contains(t, html, "      <li>deux\n    <ul>\n      <li>imbriqué</li>\n    </ul></li>")
	assert.Contains(t, html, "    <ol>\n      <li>premier</li>\n    </ol>")
	assert.Contains(t, html, "<div class=\"insight-box\">\n      <p>Remarque</p>")
	assert.Contains(t, html, `alt="SEO"`)
	assert.Contains(t, html, `<p class="image-caption">Légende</p>`)
}
