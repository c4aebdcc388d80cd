package notion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lballo/Site-laura-4/internal/blocks"
)

func TestDecodeBlockTextKinds(t *testing.T) {
	block, err := DecodeBlock([]byte(`{
		"id": "h",
		"type": "heading_3",
		"heading_3": {"rich_text": [
			{"plain_text": "See ", "annotations": {}},
			{"plain_text": "docs", "href": "https://x.test", "annotations": {"italic": true, "code": true}}
		]}
	}`))
	require.NoError(t, err)
	assert.Equal(t, blocks.KindHeadingSub, block.Kind)
	assert.Equal(t, []blocks.TextRun{
		{PlainText: "See "},
		{PlainText: "docs", Href: "https://x.test", Annotations: blocks.Annotations{Italic: true, Code: true}},
	}, block.Text)
}

func TestDecodeBlockImage(t *testing.T) {
	hosted, err := DecodeBlock([]byte(`{"id":"i","type":"image","image":{"type":"file","file":{"url":"https://s3/a.png"},"caption":[{"plain_text":"alt: A "},{"plain_text":"| B"}]}}`))
	require.NoError(t, err)
	require.NotNil(t, hosted.Image)
	assert.Equal(t, "https://s3/a.png", hosted.Image.URL())
	assert.Equal(t, "alt: A | B", hosted.Image.Caption)

	external, err := DecodeBlock([]byte(`{"id":"e","type":"image","image":{"type":"external","external":{"url":"https://cdn/b.jpg"}}}`))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/b.jpg", external.Image.URL())
	assert.Nil(t, external.Image.Hosted)
}

func TestDecodeBlockUnknownKindKeepsType(t *testing.T) {
	block, err := DecodeBlock([]byte(`{"id":"s","type":"synced_block","has_children":true,"synced_block":{}}`))
	require.NoError(t, err)
	assert.Equal(t, blocks.Kind("synced_block"), block.Kind)
	assert.False(t, block.Kind.Known())
	assert.Empty(t, block.Text)
}

func TestDecodeBlockRejectsInvalidJSON(t *testing.T) {
	_, err := DecodeBlock([]byte(`{`))
	require.Error(t, err)
}
