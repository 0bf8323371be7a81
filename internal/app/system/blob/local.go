// internal/app/system/blob/local.go
package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/spf13/afero"
)

// Local keeps objects on a filesystem under root and serves them from
// baseURL.
type Local struct {
	fs      afero.Fs
	root    string
	baseURL string
}

// NewLocal returns a Local store. Pass afero.NewOsFs() in production and
// afero.NewMemMapFs() in tests.
func NewLocal(fsys afero.Fs, root, baseURL string) *Local {
	return &Local{fs: fsys, root: root, baseURL: strings.TrimRight(baseURL, "/")}
}

// Root is the directory objects are written under.
func (l *Local) Root() string { return l.root }

func (l *Local) Upload(ctx context.Context, r io.Reader, key, contentType string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	full := path.Join(l.root, key)
	if err := l.fs.MkdirAll(path.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("blob: mkdir for %s: %w", key, err)
	}
	if err := afero.WriteReader(l.fs, full, r); err != nil {
		return "", fmt.Errorf("blob: write %s: %w", key, err)
	}
	return l.baseURL + "/" + key, nil
}

func (l *Local) Delete(ctx context.Context, url string) error {
	key, err := keyFromURL(l.baseURL, url)
	if err != nil {
		return err
	}
	if err := l.fs.Remove(path.Join(l.root, key)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("blob: delete %s: %w", key, err)
	}
	return nil
}

var _ Store = (*Local)(nil)
