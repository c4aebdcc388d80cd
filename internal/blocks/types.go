package blocks

// Kind identifies the variant carried by a Block. Values mirror the content
// backend type names so decoded payloads map without translation.
type Kind string

const (
	KindParagraph    Kind = "paragraph"
	KindHeadingMajor Kind = "heading_1"
	KindHeadingMinor Kind = "heading_2"
	KindHeadingSub   Kind = "heading_3"
	KindBulleted     Kind = "bulleted_list_item"
	KindNumbered     Kind = "numbered_list_item"
	KindQuote        Kind = "quote"
	KindCallout      Kind = "callout"
	KindDivider      Kind = "divider"
	KindImage        Kind = "image"
	KindToggle       Kind = "toggle"
)

var knownKinds = map[Kind]struct{}{
	KindParagraph:    {},
	KindHeadingMajor: {},
	KindHeadingMinor: {},
	KindHeadingSub:   {},
	KindBulleted:     {},
	KindNumbered:     {},
	KindQuote:        {},
	KindCallout:      {},
	KindDivider:      {},
	KindImage:        {},
	KindToggle:       {},
}

// Known reports whether the renderer has a rule for the kind.
func (k Kind) Known() bool {
	_, ok := knownKinds[k]
	return ok
}

// IsListItem reports whether consecutive blocks of this kind collapse into one list.
func (k Kind) IsListItem() bool {
	return k == KindBulleted || k == KindNumbered
}

// TextBearing reports whether the kind carries a TextRun payload.
func (k Kind) TextBearing() bool {
	switch k {
	case KindDivider, KindImage:
		return false
	}
	return k.Known()
}

// Annotations holds the inline emphasis flags of a TextRun.
type Annotations struct {
	Bold          bool `json:"bold"`
	Italic        bool `json:"italic"`
	Strikethrough bool `json:"strikethrough"`
	Underline     bool `json:"underline"`
	Code          bool `json:"code"`
}

// TextRun is one annotated span of text. An empty Href means the run is not a link.
type TextRun struct {
	PlainText   string      `json:"plain_text"`
	Annotations Annotations `json:"annotations"`
	Href        string      `json:"href,omitempty"`
}

// MediaRef points at a media file.
type MediaRef struct {
	URL string `json:"url"`
}

// Image is the payload of an image block. Hosted and External are mutually
// exclusive; Caption is the raw caption text before convention decoding.
type Image struct {
	Hosted   *MediaRef `json:"file,omitempty"`
	External *MediaRef `json:"external,omitempty"`
	Caption  string    `json:"caption,omitempty"`
}

// URL resolves the media location, returning an empty string when neither
// source is populated.
func (img *Image) URL() string {
	if img == nil {
		return ""
	}
	if img.Hosted != nil && img.Hosted.URL != "" {
		return img.Hosted.URL
	}
	if img.External != nil {
		return img.External.URL
	}
	return ""
}

// Block is one unit of authored content. Blocks flagged with HasChildren have
// their descendants fetched on demand through a ChildFetcher using ID.
type Block struct {
	ID          string    `json:"id"`
	Kind        Kind      `json:"type"`
	HasChildren bool      `json:"has_children"`
	Text        []TextRun `json:"rich_text,omitempty"`
	Image       *Image    `json:"image,omitempty"`
}

// Blocks is an ordered block sequence.
type Blocks []Block
