package blocks

import "strings"

const (
	altPrefix       = "alt:"
	captionSep      = "|"
	fallbackAltText = "illustration"
)

// Caption is the decoded form of a raw media caption.
type Caption struct {
	Alt     string
	Visible string
}

// ParseCaption decodes the caption convention. The first matching rule wins:
//
//	"alt: SEO text | visible"  -> ("SEO text", "visible")
//	"alt: SEO text"            -> ("SEO text", "")
//	"SEO text | visible"       -> ("SEO text", "visible")
//	"caption"                  -> ("caption", "caption")
//	""                         -> ("illustration", "")
func ParseCaption(raw string) Caption {
	if len(raw) >= len(altPrefix) && strings.EqualFold(raw[:len(altPrefix)], altPrefix) {
		rest := strings.TrimSpace(raw[len(altPrefix):])
		if alt, visible, ok := strings.Cut(rest, captionSep); ok {
			return Caption{Alt: strings.TrimSpace(alt), Visible: strings.TrimSpace(visible)}
		}
		return Caption{Alt: rest}
	}

	if alt, visible, ok := strings.Cut(raw, captionSep); ok {
		return Caption{Alt: strings.TrimSpace(alt), Visible: strings.TrimSpace(visible)}
	}

	alt := raw
	if alt == "" {
		alt = fallbackAltText
	}
	return Caption{Alt: alt, Visible: raw}
}
