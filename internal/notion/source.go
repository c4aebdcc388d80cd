package notion

import (
	"context"
	"errors"
	"strings"

	"github.com/lballo/Site-laura-4/internal/article"
	"github.com/lballo/Site-laura-4/internal/blocks"
	"github.com/lballo/Site-laura-4/internal/identity"
	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

// ErrMissingDatabaseID is returned by NewSource without a database id.
var ErrMissingDatabaseID = errors.New("notion: database id required")

// PropertyNames maps article fields to database property names.
type PropertyNames struct {
	Title       string `yaml:"title"`
	SEOTitle    string `yaml:"seo_title"`
	Description string `yaml:"description"`
	KeyPhrase   string `yaml:"key_phrase"`
	URL         string `yaml:"url"`
	Image       string `yaml:"image"`
	ImageAlt    string `yaml:"image_alt"`
	Tags        string `yaml:"tags"`
	Situations  string `yaml:"situations"`
	Action      string `yaml:"action"`
	Transferred string `yaml:"transferred"`
}

// Actions holds the select options of the action property.
type Actions struct {
	Publish   string `yaml:"publish"`
	Retire    string `yaml:"retire"`
	Published string `yaml:"published"`
	Retired   string `yaml:"retired"`
}

// DefaultPropertyNames returns the property names of the editorial database.
func DefaultPropertyNames() PropertyNames {
	return PropertyNames{
		Title:       "Titre de l'article",
		SEOTitle:    "Titre SEO",
		Description: "Méta description",
		KeyPhrase:   "Expression clé principale",
		URL:         "URL",
		Image:       "Image",
		ImageAlt:    "Alt",
		Tags:        "Tags",
		Situations:  "Situation",
		Action:      "Action à effectuer",
		Transferred: "Article transféré",
	}
}

// DefaultActions returns the action options of the editorial database.
func DefaultActions() Actions {
	return Actions{
		Publish:   "Publier article",
		Retire:    "Supprimer article",
		Published: "A indexer google search console",
		Retired:   "publié et indexé",
	}
}

// API is the subset of Client used by Source.
type API interface {
	QueryDatabase(ctx context.Context, databaseID string, filter any) ([]Page, error)
	Children(ctx context.Context, blockID string) ([]blocks.Block, error)
	UpdatePage(ctx context.Context, pageID string, properties map[string]any) error
}

// Source reads article drafts from one editorial database.
type Source struct {
	api        API
	databaseID string
	props      PropertyNames
	actions    Actions
	logger     interfaces.Logger
}

// SourceOption customises a Source.
type SourceOption func(*Source)

// WithPropertyNames overrides the database property names.
func WithPropertyNames(names PropertyNames) SourceOption {
	return func(s *Source) {
		s.props = names
	}
}

// WithActions overrides the action options.
func WithActions(actions Actions) SourceOption {
	return func(s *Source) {
		s.actions = actions
	}
}

// WithSourceLogger sets the source logger.
func WithSourceLogger(logger interfaces.Logger) SourceOption {
	return func(s *Source) {
		s.logger = logging.Ensure(logger)
	}
}

// NewSource builds a Source over api. Database ids copied from a share link
// (32 hex digits) are normalised to the dashed form.
func NewSource(api API, databaseID string, opts ...SourceOption) (*Source, error) {
	if strings.TrimSpace(databaseID) == "" {
		return nil, ErrMissingDatabaseID
	}
	s := &Source{
		api:        api,
		databaseID: identity.Canonical(databaseID),
		props:      DefaultPropertyNames(),
		actions:    DefaultActions(),
		logger:     logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s, nil
}

// ToPublish lists pages flagged for publication.
func (s *Source) ToPublish(ctx context.Context) ([]article.Draft, error) {
	return s.drafts(ctx, s.actions.Publish)
}

// ToRetire lists pages flagged for removal.
func (s *Source) ToRetire(ctx context.Context) ([]article.Draft, error) {
	return s.drafts(ctx, s.actions.Retire)
}

// Children resolves block children through the API.
func (s *Source) Children(ctx context.Context, blockID string) ([]blocks.Block, error) {
	return s.api.Children(ctx, blockID)
}

// MarkPublished moves a page to the post-publication action.
func (s *Source) MarkPublished(ctx context.Context, pageID string) error {
	return s.api.UpdatePage(ctx, pageID, map[string]any{
		s.props.Action:      SelectValue(s.actions.Published),
		s.props.Transferred: CheckboxValue(true),
	})
}

// MarkRetired moves a page to the post-removal action.
func (s *Source) MarkRetired(ctx context.Context, pageID string) error {
	return s.api.UpdatePage(ctx, pageID, map[string]any{
		s.props.Action:      SelectValue(s.actions.Retired),
		s.props.Transferred: CheckboxValue(false),
	})
}

func (s *Source) drafts(ctx context.Context, action string) ([]article.Draft, error) {
	pages, err := s.api.QueryDatabase(ctx, s.databaseID, SelectEquals(s.props.Action, action))
	if err != nil {
		return nil, err
	}
	out := make([]article.Draft, 0, len(pages))
	for _, page := range pages {
		out = append(out, s.Draft(page))
	}
	s.logger.Info("notion.drafts.listed", "action", action, "count", len(out))
	return out, nil
}

// Draft extracts article fields from a page.
func (s *Source) Draft(page Page) article.Draft {
	return article.Draft{
		PageID:      page.ID,
		Title:       page.Title(s.props.Title),
		SEOTitle:    page.Text(s.props.SEOTitle),
		Description: page.Text(s.props.Description),
		KeyPhrase:   page.Text(s.props.KeyPhrase),
		URL:         page.URL(s.props.URL),
		Image:       page.URL(s.props.Image),
		ImageAlt:    page.Text(s.props.ImageAlt),
		Tags:        page.MultiSelect(s.props.Tags),
		Situations:  page.MultiSelect(s.props.Situations),
	}
}
