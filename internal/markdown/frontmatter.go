package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/lballo/Site-laura-4/internal/article"
)

// Actions accepted in the frontmatter "action" field.
const (
	ActionPublish = "publish"
	ActionRetire  = "retire"
)

// FrontMatter is the metadata header of a markdown article.
type FrontMatter struct {
	Title       string         `yaml:"title"`
	SEOTitle    string         `yaml:"seo_title"`
	Description string         `yaml:"description"`
	KeyPhrase   string         `yaml:"key_phrase"`
	URL         string         `yaml:"url"`
	Image       string         `yaml:"image"`
	ImageAlt    string         `yaml:"image_alt"`
	Tags        []string       `yaml:"tags"`
	Situations  []string       `yaml:"situations"`
	Action      string         `yaml:"action"`
	Draft       bool           `yaml:"draft"`
	Custom      map[string]any `yaml:",inline"`
}

// ParseFrontMatter splits source into its frontmatter and markdown body.
// Documents without a header yield a zero FrontMatter and the full source.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta FrontMatter
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	meta.Action = strings.ToLower(strings.TrimSpace(meta.Action))
	if meta.Action == "" {
		meta.Action = ActionPublish
	}
	if meta.Custom == nil {
		meta.Custom = map[string]any{}
	}
	return meta, body, nil
}

// Draft converts the header into an article draft identified by pageID.
func (fm FrontMatter) Draft(pageID string) article.Draft {
	return article.Draft{
		PageID:      pageID,
		Title:       fm.Title,
		SEOTitle:    fm.SEOTitle,
		Description: fm.Description,
		KeyPhrase:   fm.KeyPhrase,
		URL:         fm.URL,
		Image:       fm.Image,
		ImageAlt:    fm.ImageAlt,
		Tags:        append([]string(nil), fm.Tags...),
		Situations:  append([]string(nil), fm.Situations...),
	}
}
