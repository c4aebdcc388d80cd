package publishcmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gobwas/glob"
)

const (
	publishMessageType = "publisher.publish"
	previewMessageType = "publisher.preview"
)

// PublishCommand runs one publishing pass over the configured source.
type PublishCommand struct {
	// DryRun renders every pending article without writing artifacts or
	// updating the source.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (PublishCommand) Type() string { return publishMessageType }

// Validate implements command.Message. A publish pass takes no required input.
func (PublishCommand) Validate() error { return nil }

// PreviewCommand renders local markdown articles with the site template.
type PreviewCommand struct {
	// Path is a markdown file or a directory of markdown files.
	Path string `json:"path"`
	// Pattern selects files when Path is a directory.
	Pattern string `json:"pattern,omitempty"`
	// Output receives one slug.html per article. Empty keeps results in memory.
	Output string `json:"output,omitempty"`
}

// Type implements command.Message.
func (PreviewCommand) Type() string { return previewMessageType }

// Validate ensures a path is present and the pattern compiles.
func (cmd PreviewCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Path, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("publisher.preview.path_required", "path is required")
			}
			return nil
		})),
		validation.Field(&cmd.Pattern, validation.By(func(value any) error {
			pattern := strings.TrimSpace(value.(string))
			if pattern == "" {
				return nil
			}
			if _, err := glob.Compile(pattern, '/'); err != nil {
				return validation.NewError("publisher.preview.pattern_invalid", "pattern is not a valid glob")
			}
			return nil
		})),
	)
}
