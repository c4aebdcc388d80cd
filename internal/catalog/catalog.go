// Package catalog maintains the flat article index (articles.json) read by
// the static site for listing, filtering and search.
package catalog

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/lballo/Site-laura-4/internal/article"
)

// ErrInvalidCatalog wraps schema violations found while parsing.
var ErrInvalidCatalog = errors.New("catalog: invalid document")

const schemaURL = "publisher://catalog.schema.json"

const schemaSource = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "properties": {
    "articles": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["slug"],
        "properties": {
          "id": {"type": "string"},
          "title": {"type": "string"},
          "slug": {"type": "string", "minLength": 1},
          "url": {"type": "string"},
          "date": {"type": "string"},
          "readingTime": {"type": "string"},
          "excerpt": {"type": "string"},
          "tags": {"type": ["array", "null"], "items": {"type": "string"}},
          "situations": {"type": ["array", "null"], "items": {"type": "string"}},
          "searchKeywords": {"type": ["array", "null"], "items": {"type": "string"}},
          "category": {"type": "string"},
          "image": {"type": "string"},
          "featured": {"type": "boolean"}
        }
      }
    }
  }
}`

var schema = jsonschema.MustCompileString(schemaURL, schemaSource)

// Entry is one listed article.
type Entry struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	URL            string   `json:"url"`
	Date           string   `json:"date"`
	ReadingTime    string   `json:"readingTime"`
	Excerpt        string   `json:"excerpt"`
	Tags           []string `json:"tags"`
	Situations     []string `json:"situations"`
	SearchKeywords []string `json:"searchKeywords"`
	Category       string   `json:"category"`
	Image          string   `json:"image"`
	Featured       bool     `json:"featured"`
}

// NewEntry derives the catalog entry of an assembled document.
func NewEntry(doc *article.Document) Entry {
	meta := doc.Metadata
	return Entry{
		ID:             meta.Slug,
		Title:          meta.Title,
		Slug:           meta.Slug,
		URL:            "/" + meta.Slug,
		Date:           meta.Date,
		ReadingTime:    doc.ReadingTimeLabel(),
		Excerpt:        meta.Description,
		Tags:           nonNil(meta.TagSlugs),
		Situations:     nonNil(meta.Situations),
		SearchKeywords: article.SearchKeywords(meta.KeyPhrase, meta.Title),
		Category:       meta.Category,
		Image:          meta.Image,
	}
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return append([]string(nil), in...)
}

// Catalog is the in-memory form of the index file.
type Catalog struct {
	Articles []Entry `json:"articles"`
}

// Load reads name from fsys. A missing file yields an empty catalog.
func Load(fsys fs.FS, name string) (*Catalog, error) {
	raw, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return &Catalog{Articles: []Entry{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("catalog: read %s: %w", name, err)
	}
	return Parse(raw)
}

// Parse decodes and validates raw index content.
func Parse(raw []byte) (*Catalog, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return &Catalog{Articles: []Entry{}}, nil
	}

	var doc any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var c Catalog
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if c.Articles == nil {
		c.Articles = []Entry{}
	}
	return &c, nil
}

// Len returns the number of entries.
func (c *Catalog) Len() int {
	return len(c.Articles)
}

// Find returns the entry for slug.
func (c *Catalog) Find(slug string) (Entry, bool) {
	for _, e := range c.Articles {
		if e.Slug == slug {
			return e, true
		}
	}
	return Entry{}, false
}

// Upsert replaces the entry sharing e's slug in place, or appends e.
// It reports whether an entry was replaced.
func (c *Catalog) Upsert(e Entry) bool {
	for i := range c.Articles {
		if c.Articles[i].Slug == e.Slug {
			c.Articles[i] = e
			return true
		}
	}
	c.Articles = append(c.Articles, e)
	return false
}

// Remove drops every entry with slug and reports whether any was found.
func (c *Catalog) Remove(slug string) bool {
	kept := c.Articles[:0]
	removed := false
	for _, e := range c.Articles {
		if e.Slug == slug {
			removed = true
			continue
		}
		kept = append(kept, e)
	}
	c.Articles = kept
	return removed
}

// Sort orders entries by date, newest first. Entries sharing a date keep
// their relative order.
func (c *Catalog) Sort() {
	sort.SliceStable(c.Articles, func(i, j int) bool {
		return c.Articles[i].Date > c.Articles[j].Date
	})
}

// Marshal sorts the catalog and encodes it with two-space indentation,
// leaving non-ASCII and markup characters unescaped. Missing lists are
// written as empty arrays.
func (c *Catalog) Marshal() ([]byte, error) {
	c.Sort()
	out := Catalog{Articles: make([]Entry, 0, len(c.Articles))}
	for _, e := range c.Articles {
		e.Tags = nonNil(e.Tags)
		e.Situations = nonNil(e.Situations)
		e.SearchKeywords = nonNil(e.SearchKeywords)
		out.Articles = append(out.Articles, e)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return nil, fmt.Errorf("catalog: encode: %w", err)
	}
	return buf.Bytes(), nil
}
