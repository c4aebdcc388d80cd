package markdown

import (
	"fmt"
	"io/fs"
	"strings"

	"github.com/gobwas/glob"
)

// DefaultPattern selects every markdown file below the root.
const DefaultPattern = "**.md"

// Discover lists the files of fsys whose slash-separated path matches
// pattern, in lexical order.
func Discover(fsys fs.FS, pattern string) ([]string, error) {
	if strings.TrimSpace(pattern) == "" {
		pattern = DefaultPattern
	}
	matcher, err := glob.Compile(pattern, '/')
	if err != nil {
		return nil, fmt.Errorf("markdown: invalid pattern %q: %w", pattern, err)
	}

	var out []string
	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if matcher.Match(p) {
			out = append(out, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("markdown: discover: %w", err)
	}
	return out, nil
}
