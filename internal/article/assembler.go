package article

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strconv"
	"strings"

	"github.com/lballo/Site-laura-4/internal/blocks"
)

// Template placeholders. Each appears in templates as {{NAME}}.
const (
	PlaceholderTitleSEO         = "TITLE_SEO"
	PlaceholderMetaDescription  = "META_DESCRIPTION"
	PlaceholderOGTitle          = "OG_TITLE"
	PlaceholderOGDescription    = "OG_DESCRIPTION"
	PlaceholderOGImage          = "OG_IMAGE"
	PlaceholderCanonicalURL     = "CANONICAL_URL"
	PlaceholderPublishedDate    = "PUBLISHED_DATE"
	PlaceholderCategory         = "CATEGORY"
	PlaceholderTitle            = "TITLE"
	PlaceholderExcerpt          = "EXCERPT"
	PlaceholderDateFormatted    = "DATE_FORMATTED"
	PlaceholderReadingTime      = "READING_TIME"
	PlaceholderContent          = "CONTENT"
	PlaceholderImageURL         = "IMAGE_URL"
	PlaceholderSlug             = "SLUG"
	PlaceholderSearchKeywordsJS = "SEARCH_KEYWORDS_JS"
	PlaceholderSchemaJSON       = "SCHEMA_JSON"
)

// Placeholders lists every token the assembler supplies.
var Placeholders = []string{
	PlaceholderTitleSEO,
	PlaceholderMetaDescription,
	PlaceholderOGTitle,
	PlaceholderOGDescription,
	PlaceholderOGImage,
	PlaceholderCanonicalURL,
	PlaceholderPublishedDate,
	PlaceholderCategory,
	PlaceholderTitle,
	PlaceholderExcerpt,
	PlaceholderDateFormatted,
	PlaceholderReadingTime,
	PlaceholderContent,
	PlaceholderImageURL,
	PlaceholderSlug,
	PlaceholderSearchKeywordsJS,
	PlaceholderSchemaJSON,
}

var (
	// ErrUnresolvedPlaceholder is returned in strict mode when the template
	// carries a token the assembler does not supply.
	ErrUnresolvedPlaceholder = errors.New("article: unresolved template placeholder")
	// ErrEmptyTemplate is returned when the template has no content.
	ErrEmptyTemplate = errors.New("article: template is empty")
)

var tokenPattern = regexp.MustCompile(`\{\{([A-Z][A-Z0-9_]*)\}\}`)

// Token returns the literal form of a placeholder name.
func Token(name string) string {
	return "{{" + name + "}}"
}

// Template is a page skeleton with {{NAME}} placeholders.
type Template struct {
	raw string
}

// NewTemplate wraps raw template text.
func NewTemplate(raw string) Template {
	return Template{raw: raw}
}

// Tokens lists the distinct placeholder names present in the template, in
// order of first appearance.
func (t Template) Tokens() []string {
	matches := tokenPattern.FindAllStringSubmatch(t.raw, -1)
	seen := map[string]struct{}{}
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if _, ok := seen[m[1]]; ok {
			continue
		}
		seen[m[1]] = struct{}{}
		out = append(out, m[1])
	}
	return out
}

// Document is the assembled output for one article.
type Document struct {
	Metadata       PageMetadata
	Content        string
	HTML           string
	ReadingTime    int
	StructuredData StructuredData
}

// ReadingTimeLabel formats the reading time the way templates and the
// catalog display it.
func (d Document) ReadingTimeLabel() string {
	return ReadingTimeLabel(d.ReadingTime)
}

// ReadingTimeLabel formats minutes as "N min".
func ReadingTimeLabel(minutes int) string {
	return strconv.Itoa(minutes) + " min"
}

// Assembler fills templates with rendered markup and metadata.
type Assembler struct {
	site   Site
	strict bool
}

// AssemblerOption configures an Assembler.
type AssemblerOption func(*Assembler)

// WithStrictPlaceholders makes Assemble fail when the template carries a
// token outside Placeholders instead of leaving it untouched.
func WithStrictPlaceholders(strict bool) AssemblerOption {
	return func(a *Assembler) {
		a.strict = strict
	}
}

// NewAssembler builds an Assembler for site.
func NewAssembler(site Site, opts ...AssemblerOption) *Assembler {
	a := &Assembler{site: site}
	for _, opt := range opts {
		if opt != nil {
			opt(a)
		}
	}
	return a
}

// Assemble substitutes every placeholder of tmpl. Substitution is a single
// literal pass, so placeholder-looking text inside inserted values is never
// expanded again.
func (a *Assembler) Assemble(tmpl Template, fragment blocks.Fragment, meta PageMetadata) (*Document, error) {
	if strings.TrimSpace(tmpl.raw) == "" {
		return nil, ErrEmptyTemplate
	}
	if err := meta.Validate(); err != nil {
		return nil, fmt.Errorf("article: invalid metadata for %q: %w", meta.Slug, err)
	}
	if a.strict {
		if unknown := unknownTokens(tmpl); len(unknown) > 0 {
			return nil, fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(unknown, ", "))
		}
	}

	content := fragment.String()
	meta.ReadingTime = ReadingTime(content)
	schema := NewStructuredData(meta, a.site)

	values, err := a.values(meta, content, schema)
	if err != nil {
		return nil, err
	}

	pairs := make([]string, 0, len(values)*2)
	for _, name := range Placeholders {
		pairs = append(pairs, Token(name), values[name])
	}

	return &Document{
		Metadata:       meta,
		Content:        content,
		HTML:           strings.NewReplacer(pairs...).Replace(tmpl.raw),
		ReadingTime:    meta.ReadingTime,
		StructuredData: schema,
	}, nil
}

func (a *Assembler) values(meta PageMetadata, content string, schema StructuredData) (map[string]string, error) {
	tagSlugs := meta.TagSlugs
	if tagSlugs == nil {
		tagSlugs = []string{}
	}
	keywordsJS, err := json.Marshal(tagSlugs)
	if err != nil {
		return nil, fmt.Errorf("article: encode search keywords: %w", err)
	}

	var schemaJSON bytes.Buffer
	enc := json.NewEncoder(&schemaJSON)
	enc.SetIndent("", "    ")
	if err := enc.Encode(schema); err != nil {
		return nil, fmt.Errorf("article: encode structured data: %w", err)
	}

	esc := html.EscapeString
	return map[string]string{
		PlaceholderTitleSEO:         esc(meta.SEOTitle),
		PlaceholderMetaDescription:  esc(meta.Description),
		PlaceholderOGTitle:          esc(meta.Title),
		PlaceholderOGDescription:    esc(meta.Description),
		PlaceholderOGImage:          esc(meta.Image),
		PlaceholderCanonicalURL:     esc(meta.CanonicalURL),
		PlaceholderPublishedDate:    esc(meta.Date),
		PlaceholderCategory:         esc(meta.Category),
		PlaceholderTitle:            esc(meta.Title),
		PlaceholderExcerpt:          esc(meta.Description),
		PlaceholderDateFormatted:    esc(FormatDateFR(meta.Date)),
		PlaceholderReadingTime:      ReadingTimeLabel(meta.ReadingTime),
		PlaceholderContent:          content,
		PlaceholderImageURL:         esc(meta.Image),
		PlaceholderSlug:             esc(meta.Slug),
		PlaceholderSearchKeywordsJS: string(keywordsJS),
		PlaceholderSchemaJSON:       strings.TrimRight(schemaJSON.String(), "\n"),
	}, nil
}

func unknownTokens(tmpl Template) []string {
	known := make(map[string]struct{}, len(Placeholders))
	for _, name := range Placeholders {
		known[name] = struct{}{}
	}
	var unknown []string
	for _, name := range tmpl.Tokens() {
		if _, ok := known[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	return unknown
}
