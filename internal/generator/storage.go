package generator

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/liamg/memoryfs"

	"github.com/lballo/Site-laura-4/internal/logging"
	"github.com/lballo/Site-laura-4/pkg/interfaces"
)

// ErrInvalidPath is returned for paths that are not slash-separated and
// rooted inside the artifact filesystem.
var ErrInvalidPath = errors.New("generator: invalid artifact path")

// ErrRemoveUnsupported is returned when the backing filesystem cannot
// delete files.
var ErrRemoveUnsupported = errors.New("generator: remove not supported")

// ArtifactFS is the writable tree generated files land in. Paths are
// slash-separated and relative to the tree root.
type ArtifactFS interface {
	fs.FS
	MkdirAll(name string, perm fs.FileMode) error
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Remove(name string) error
}

// NewOSFS returns an ArtifactFS rooted at dir on disk.
func NewOSFS(dir string) ArtifactFS {
	return &osFS{root: dir, FS: os.DirFS(dir)}
}

type osFS struct {
	fs.FS
	root string
}

func (o *osFS) resolve(name string) (string, error) {
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	return filepath.Join(o.root, filepath.FromSlash(name)), nil
}

func (o *osFS) MkdirAll(name string, perm fs.FileMode) error {
	full, err := o.resolve(name)
	if err != nil {
		return err
	}
	return os.MkdirAll(full, perm)
}

func (o *osFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	full, err := o.resolve(name)
	if err != nil {
		return err
	}
	return os.WriteFile(full, data, perm)
}

func (o *osFS) Remove(name string) error {
	full, err := o.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(full)
}

// NewMemoryFS returns an empty in-memory ArtifactFS, used for dry runs and
// previews.
func NewMemoryFS() ArtifactFS {
	return &memFS{FS: memoryfs.New()}
}

type memFS struct {
	*memoryfs.FS
}

func (m *memFS) Remove(name string) error {
	if !fs.ValidPath(name) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	remover, ok := any(m.FS).(interface{ Remove(string) error })
	if !ok {
		return ErrRemoveUnsupported
	}
	return remover.Remove(name)
}

type writeCategory string

const (
	CategoryArticle writeCategory = "article"
	CategoryCatalog writeCategory = "catalog"
	CategorySitemap writeCategory = "sitemap"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// Writer routes generated artifacts into an ArtifactFS.
type Writer struct {
	fsys   ArtifactFS
	logger interfaces.Logger
}

// NewWriter builds a Writer over fsys.
func NewWriter(fsys ArtifactFS, logger interfaces.Logger) *Writer {
	return &Writer{fsys: fsys, logger: logging.Ensure(logger)}
}

// FS exposes the underlying tree for reads.
func (w *Writer) FS() ArtifactFS {
	return w.fsys
}

// Write stores data at name, creating parent directories.
func (w *Writer) Write(ctx context.Context, category writeCategory, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	name = cleanPath(name)
	if !fs.ValidPath(name) || name == "." {
		return fmt.Errorf("%w: %q", ErrInvalidPath, name)
	}
	if dir := path.Dir(name); dir != "." {
		if err := w.fsys.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("generator: ensure dir %s: %w", dir, err)
		}
	}
	if err := w.fsys.WriteFile(name, data, filePerm); err != nil {
		return fmt.Errorf("generator: write %s: %w", name, err)
	}
	w.logger.Debug("generator.artifact.written", "category", string(category), "path", name, "bytes", len(data))
	return nil
}

// Remove deletes name. It reports false without error when the file does
// not exist.
func (w *Writer) Remove(ctx context.Context, category writeCategory, name string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	name = cleanPath(name)
	if _, err := fs.Stat(w.fsys, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("generator: stat %s: %w", name, err)
	}
	if err := w.fsys.Remove(name); err != nil {
		return false, fmt.Errorf("generator: remove %s: %w", name, err)
	}
	w.logger.Debug("generator.artifact.removed", "category", string(category), "path", name)
	return true, nil
}

func cleanPath(name string) string {
	name = strings.TrimSpace(strings.ReplaceAll(name, "\\", "/"))
	return path.Clean(strings.TrimPrefix(name, "./"))
}
