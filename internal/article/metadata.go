// Package article assembles published article documents from rendered block
// markup and page metadata, and derives reading time, structured data and
// search keywords.
package article

import (
	"regexp"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/lballo/Site-laura-4/internal/slugs"
)

// ISODate is the calendar date layout used for publish dates.
const ISODate = "2006-01-02"

var slugPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// Site holds the site-wide values used for canonical URLs and structured data.
type Site struct {
	BaseURL         string
	AuthorName      string
	PublisherName   string
	LogoPath        string
	DefaultCategory string
	TitleSuffix     string
}

// URL joins path onto the site base URL.
func (s Site) URL(path string) string {
	base := strings.TrimRight(strings.TrimSpace(s.BaseURL), "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// Draft is an article as extracted from the content backend, before any
// derivation.
type Draft struct {
	PageID      string
	Title       string
	SEOTitle    string
	Description string
	KeyPhrase   string
	URL         string
	Image       string
	ImageAlt    string
	Tags        []string
	Situations  []string
}

// PageMetadata is the flat record combined with rendered markup to produce
// the final document.
type PageMetadata struct {
	PageID       string
	Title        string
	SEOTitle     string
	Description  string
	CanonicalURL string
	Date         string
	Category     string
	Tags         []string
	TagSlugs     []string
	Situations   []string
	Image        string
	ImageAlt     string
	KeyPhrase    string
	Slug         string
	ReadingTime  int
}

// Validate checks the fields the template and catalog cannot do without.
func (m PageMetadata) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Title, validation.Required),
		validation.Field(&m.Slug, validation.Required, validation.Match(slugPattern)),
		validation.Field(&m.CanonicalURL, validation.Required),
		validation.Field(&m.Date, validation.Required, validation.Date(ISODate)),
	)
}

// NewMetadata derives page metadata from a draft published on publishedOn.
func NewMetadata(draft Draft, site Site, tags slugs.TagSlugger, publishedOn time.Time) PageMetadata {
	title := strings.TrimSpace(draft.Title)
	slug := slugs.Resolve(draft.URL, title)

	seoTitle := strings.TrimSpace(draft.SEOTitle)
	if seoTitle == "" {
		seoTitle = title + site.TitleSuffix
	}

	category := site.DefaultCategory
	if len(draft.Tags) > 0 {
		category = draft.Tags[0]
	}

	situations := make([]string, 0, len(draft.Situations))
	for _, s := range draft.Situations {
		situations = append(situations, strings.ToLower(s))
	}

	return PageMetadata{
		PageID:       draft.PageID,
		Title:        title,
		SEOTitle:     seoTitle,
		Description:  draft.Description,
		CanonicalURL: site.URL(slug),
		Date:         publishedOn.UTC().Format(ISODate),
		Category:     category,
		Tags:         append([]string(nil), draft.Tags...),
		TagSlugs:     tags.Slugs(draft.Tags),
		Situations:   situations,
		Image:        draft.Image,
		ImageAlt:     draft.ImageAlt,
		KeyPhrase:    draft.KeyPhrase,
		Slug:         slug,
	}
}
