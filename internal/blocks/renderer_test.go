package blocks

import (
	"context"
	"errors"
	"strings"
	"testing"

	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(s string) []TextRun {
	return []TextRun{{PlainText: s}}
}

func para(s string) Block {
	return Block{Kind: KindParagraph, Text: text(s)}
}

func item(kind Kind, s string) Block {
	return Block{Kind: kind, Text: text(s)}
}

type mapFetcher struct {
	children map[string][]Block
	calls    []string
	err      error
}

func (m *mapFetcher) Children(_ context.Context, id string) ([]Block, error) {
	m.calls = append(m.calls, id)
	if m.err != nil {
		return nil, m.err
	}
	return m.children[id], nil
}

func render(t *testing.T, fetcher ChildFetcher, blocks ...Block) Fragment {
	t.Helper()
	out, err := NewRenderer(fetcher).Render(context.Background(), blocks)
	require.NoError(t, err)
	return out
}

func TestRenderEmptySequence(t *testing.T) {
	out := render(t, nil)
	assert.Empty(t, out)
	assert.Equal(t, "", out.String())
	assert.True(t, out.Empty())
}

func TestRenderLeadParagraphOnlyOnce(t *testing.T) {
	out := render(t, nil, para(""), para("first"), para("second"))
	require.Len(t, out, 2)
	assert.Equal(t, `    <p class="lead">first</p>`, out[0])
	assert.Equal(t, "    <p>second</p>", out[1])
	assert.Equal(t, "    <p class=\"lead\">first</p>\n\n    <p>second</p>", out.String())
}

func TestRenderWhitespaceParagraphIsSkipped(t *testing.T) {
	out := render(t, nil, para("   "), para("body"))
	require.Len(t, out, 1)
	assert.Equal(t, `    <p class="lead">body</p>`, out[0])
}

func TestRenderHeadingClearsLead(t *testing.T) {
	out := render(t, nil,
		Block{Kind: KindHeadingMajor, Text: text("Title")},
		para("after heading"),
	)
	assert.Equal(t, Fragment{"    <h2>Title</h2>", "    <p>after heading</p>"}, out)
}

func TestRenderHeadingLevels(t *testing.T) {
	out := render(t, nil,
		Block{Kind: KindHeadingMajor, Text: text("one")},
		Block{Kind: KindHeadingMinor, Text: text("two")},
		Block{Kind: KindHeadingSub, Text: text("three")},
	)
	assert.Equal(t, Fragment{"    <h2>one</h2>", "    <h2>two</h2>", "    <h3>three</h3>"}, out)
}

func TestRenderDividerKeepsLeadEligibility(t *testing.T) {
	out := render(t, nil, Block{Kind: KindDivider}, para("intro"))
	require.Len(t, out, 2)
	assert.Equal(t, dividerMarkup, out[0])
	assert.Equal(t, `    <p class="lead">intro</p>`, out[1])
}

func TestRenderGroupsConsecutiveListItems(t *testing.T) {
	out := render(t, nil,
		item(KindBulleted, "a"),
		item(KindBulleted, "b"),
		item(KindBulleted, "c"),
		item(KindNumbered, "1"),
	)
	require.Len(t, out, 2)
	assert.Equal(t, "    <ul>\n      <li>a</li>\n      <li>b</li>\n      <li>c</li>\n    </ul>", out[0])
	assert.Equal(t, "    <ol>\n      <li>1</li>\n    </ol>", out[1])
}

func TestRenderListRunStopsAtOtherKinds(t *testing.T) {
	out := render(t, nil,
		item(KindBulleted, "a"),
		para("between"),
		item(KindBulleted, "b"),
	)
	require.Len(t, out, 3)
	assert.True(t, strings.HasPrefix(out[0], "    <ul>"))
	assert.Equal(t, "    <p>between</p>", out[1])
	assert.True(t, strings.HasPrefix(out[2], "    <ul>"))
}

func TestRenderListItemChildrenInlined(t *testing.T) {
	fetcher := &mapFetcher{children: map[string][]Block{
		"parent": {item(KindBulleted, "nested")},
	}}
	parent := item(KindBulleted, "top")
	parent.ID = "parent"
	parent.HasChildren = true

	out := render(t, fetcher, parent)
	require.Len(t, out, 1)
	want := "    <ul>\n      <li>top\n    <ul>\n      <li>nested</li>\n    </ul></li>\n    </ul>"
	assert.Equal(t, want, out[0])
	assert.Equal(t, []string{"parent"}, fetcher.calls)
}

func TestRenderLeadFlagSharedWithNestedChildren(t *testing.T) {
	fetcher := &mapFetcher{children: map[string][]Block{
		"li": {para("nested first")},
	}}
	li := item(KindBulleted, "item")
	li.ID = "li"
	li.HasChildren = true

	out := render(t, fetcher, li, para("later"))
	require.Len(t, out, 2)
	assert.Contains(t, out[0], `<p class="lead">nested first</p>`)
	assert.Equal(t, "    <p>later</p>", out[1])
	assert.Equal(t, 1, strings.Count(out.String(), `class="lead"`))
}

func TestRenderNestedParagraphDoesNotReEarnLead(t *testing.T) {
	fetcher := &mapFetcher{children: map[string][]Block{
		"p": {para("child")},
	}}
	parent := para("parent")
	parent.ID = "p"
	parent.HasChildren = true

	out := render(t, fetcher, parent)
	assert.Equal(t, Fragment{`    <p class="lead">parent</p>`, "    <p>child</p>"}, out)
}

func TestRenderEmptySpacerParagraphHostsChildren(t *testing.T) {
	fetcher := &mapFetcher{children: map[string][]Block{
		"spacer": {Block{Kind: KindQuote, Text: text("quoted")}},
	}}
	spacer := para("")
	spacer.ID = "spacer"
	spacer.HasChildren = true

	out := render(t, fetcher, spacer)
	assert.Equal(t, Fragment{"    <div class=\"pullquote\">\n      <p>quoted</p>\n    </div>"}, out)
}

func TestRenderQuoteAndCallout(t *testing.T) {
	out := render(t, nil,
		Block{Kind: KindQuote, Text: text("q & a")},
		Block{Kind: KindCallout, Text: text("insight")},
	)
	assert.Equal(t, Fragment{
		"    <div class=\"pullquote\">\n      <p>q &amp; a</p>\n    </div>",
		"    <div class=\"insight-box\">\n      <p>insight</p>\n    </div>",
	}, out)
}

func TestRenderImageWithCaptionConvention(t *testing.T) {
	out := render(t, nil, Block{Kind: KindImage, Image: &Image{
		Hosted:  &MediaRef{URL: "https://cdn.example.com/a.png?x=1&y=2"},
		Caption: `alt: "SEO" <phrase> | Visible & short`,
	}})
	want := "    <div class=\"full-image\">\n" +
		`      <img src="https://cdn.example.com/a.png?x=1&amp;y=2" alt="&#34;SEO&#34; &lt;phrase&gt;" loading="lazy">` +
		"\n      <p class=\"image-caption\">Visible &amp; short</p>\n    </div>"
	assert.Equal(t, Fragment{want}, out)
}

func TestRenderImageExternalSource(t *testing.T) {
	out := render(t, nil, Block{Kind: KindImage, Image: &Image{
		External: &MediaRef{URL: "https://img.example.com/b.jpg"},
		Caption:  "alt: only alt",
	}})
	want := "    <div class=\"full-image\">\n" +
		`      <img src="https://img.example.com/b.jpg" alt="only alt" loading="lazy">` +
		"\n    </div>"
	assert.Equal(t, Fragment{want}, out)
}

func TestRenderImageWithoutSourceFailsSoft(t *testing.T) {
	for _, img := range []*Image{nil, {}} {
		out := render(t, nil, Block{Kind: KindImage, Image: img})
		want := "    <div class=\"full-image\">\n" +
			`      <img src="" alt="illustration" loading="lazy">` +
			"\n    </div>"
		assert.Equal(t, Fragment{want}, out)
	}
}

func TestRenderImageClearsLead(t *testing.T) {
	out := render(t, nil, Block{Kind: KindImage, Image: &Image{}}, para("text"))
	assert.Equal(t, "    <p>text</p>", out[1])
}

func TestRenderToggleDoesNotRenderChildren(t *testing.T) {
	fetcher := &mapFetcher{children: map[string][]Block{
		"t": {para("hidden")},
	}}
	toggle := Block{ID: "t", Kind: KindToggle, HasChildren: true, Text: text("More")}

	out := render(t, fetcher, toggle)
	assert.Equal(t, Fragment{"    <details>\n      <summary>More</summary>\n    </details>"}, out)
	assert.Empty(t, fetcher.calls)
}

func TestRenderSkipsUnknownKinds(t *testing.T) {
	out := render(t, nil, Block{Kind: "synced_block"}, para("kept"))
	assert.Equal(t, Fragment{`    <p class="lead">kept</p>`}, out)
}

func TestRenderFetchFailureAbortsDocument(t *testing.T) {
	fetcher := &mapFetcher{err: errors.New("backend down")}
	parent := para("intro")
	parent.ID = "p"
	parent.HasChildren = true

	out, err := NewRenderer(fetcher).Render(context.Background(), []Block{parent, para("after")})
	require.Error(t, err)
	assert.Nil(t, out)
	assert.True(t, goerrors.IsCategory(err, goerrors.CategoryExternal))
}

func TestRenderWithoutFetcherIgnoresChildren(t *testing.T) {
	parent := para("alone")
	parent.ID = "p"
	parent.HasChildren = true
	out := render(t, nil, parent)
	assert.Equal(t, Fragment{`    <p class="lead">alone</p>`}, out)
}

func TestRenderCancelledContextStopsChildFetch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &mapFetcher{}
	parent := para("x")
	parent.ID = "p"
	parent.HasChildren = true

	_, err := NewRenderer(fetcher).Render(ctx, []Block{parent})
	require.Error(t, err)
	assert.Empty(t, fetcher.calls)
}

func TestRendererIsReusableAcrossDocuments(t *testing.T) {
	r := NewRenderer(nil)
	first, err := r.Render(context.Background(), []Block{para("a")})
	require.NoError(t, err)
	second, err := r.Render(context.Background(), []Block{para("b")})
	require.NoError(t, err)
	assert.Equal(t, `    <p class="lead">a</p>`, first[0])
	assert.Equal(t, `    <p class="lead">b</p>`, second[0])
}

func TestChildFetcherFunc(t *testing.T) {
	fn := ChildFetcherFunc(func(_ context.Context, id string) ([]Block, error) {
		return []Block{para(id)}, nil
	})
	got, err := fn.Children(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "abc", PlainText(got[0].Text))
}
