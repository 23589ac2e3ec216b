// Package blob provides the sources uploads are fetched from: S3 and the
// local filesystem.
package blob

import (
	"context"
	"fmt"
	"strings"

	"github.com/JonMunkholm/mrv/internal/config"
	"github.com/JonMunkholm/mrv/internal/core"
)

// Open returns the source selected by cfg.Backend.
func Open(ctx context.Context, cfg config.BlobConfig) (core.BlobSource, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.BlobS3:
		return NewS3(ctx, cfg)
	case config.BlobFile:
		return NewFile(cfg.FileRoot, cfg.MaxSize), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", cfg.Backend)
	}
}
