package blob

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileStore reads blobs from a directory.
type FileStore struct {
	dir string
}

// NewFileStore roots the store at dir. An empty dir means the working directory.
func NewFileStore(dir string) *FileStore {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		dir = "."
	}
	return &FileStore{dir: dir}
}

// Open returns the file named name under the store root.
func (s *FileStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := filepath.Clean("/" + name)
	f, err := os.Open(filepath.Join(s.dir, clean))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return f, nil
}
