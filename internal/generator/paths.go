package generator

import (
	"fmt"
	"path"
	"strings"
)

// ArticlePath returns the artifact path of an article page: outputDir/slug.html.
func ArticlePath(outputDir, slug string) (string, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" || slug == "." || slug == ".." || strings.ContainsAny(slug, `/\`) {
		return "", fmt.Errorf("%w: slug %q", ErrInvalidPath, slug)
	}
	dir := cleanPath(outputDir)
	if dir == "" {
		dir = "."
	}
	return path.Join(dir, slug+".html"), nil
}
