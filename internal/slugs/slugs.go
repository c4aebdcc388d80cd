// Package slugs derives the URL slugs used for article files, catalog
// entries and tag filters.
package slugs

import (
	"net/url"
	"strings"

	"github.com/goliatone/go-slug"
)

// FromURL extracts the slug from a canonical article URL. All of these
// yield "my-slug":
//
//	https://example.com/my-slug
//	https://example.com/my-slug.html
//	https://example.com/blog/articles/my-slug.html
func FromURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parsed, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	path := strings.Trim(parsed.Path, "/")
	path = strings.TrimSuffix(path, ".html")
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

// FromTitle normalises free text into a slug. Invalid input yields "".
func FromTitle(title string) string {
	normalized, err := slug.Normalize(strings.TrimSpace(title))
	if err != nil {
		return ""
	}
	return normalized
}

// Resolve prefers the slug carried by rawURL and falls back to the title.
func Resolve(rawURL, title string) string {
	if s := FromURL(rawURL); s != "" {
		return s
	}
	return FromTitle(title)
}

// TagSlugger maps tag labels to their published slugs.
type TagSlugger struct {
	known map[string]string
}

// NewTagSlugger builds a TagSlugger over mapping (label -> slug).
func NewTagSlugger(mapping map[string]string) TagSlugger {
	known := make(map[string]string, len(mapping))
	for label, value := range mapping {
		known[label] = value
	}
	return TagSlugger{known: known}
}

// Slug returns the mapped slug for tag, or a normalised form of the label.
func (t TagSlugger) Slug(tag string) string {
	if mapped, ok := t.known[tag]; ok {
		return mapped
	}
	return FromTitle(tag)
}

// Slugs maps every tag, preserving order.
func (t TagSlugger) Slugs(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		out = append(out, t.Slug(tag))
	}
	return out
}
