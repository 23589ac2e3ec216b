package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/JonMunkholm/mrv/internal/core"
)

// File serves objects from the local filesystem, reading bucket b and key k
// from <root>/<b>/<k>. A bucket of "." reads keys directly under root.
type File struct {
	root    string
	maxSize int64
}

// NewFile returns a File rooted at root. maxSize <= 0 disables the size limit.
func NewFile(root string, maxSize int64) *File {
	return &File{root: root, maxSize: maxSize}
}

func (f *File) path(loc core.Locator) (string, error) {
	bucket := filepath.FromSlash(loc.Bucket)
	key := filepath.FromSlash(loc.Key)
	if (bucket != "." && !filepath.IsLocal(bucket)) || !filepath.IsLocal(key) {
		return "", fmt.Errorf("%s: path escapes blob root: %w", loc, core.ErrBlobNotFound)
	}
	return filepath.Join(f.root, bucket, key), nil
}

func (f *File) Fetch(ctx context.Context, loc core.Locator) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path, err := f.path(loc)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", loc, core.ErrBlobNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", loc, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%s is a directory: %w", loc, core.ErrBlobNotFound)
	}
	if f.maxSize > 0 && info.Size() > f.maxSize {
		return nil, fmt.Errorf("%s is %d bytes: %w", loc, info.Size(), core.ErrBlobTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", loc, err)
	}
	return data, nil
}
