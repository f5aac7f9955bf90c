// Package file implements ports.ConfigSource over config documents on the
// local filesystem.
package file

import (
	"context"
	"path/filepath"

	"github.com/dialbird/canvass/pkg/survey"
)

// Source resolves survey config snapshots from files. Keys are file paths,
// resolved against BasePath when it is set; the decoder is chosen by
// extension the same way survey.LoadFile does.
type Source struct {
	BasePath string
}

// NewSource creates a Source rooted at basePath. An empty basePath resolves
// keys relative to the working directory.
func NewSource(basePath string) *Source {
	return &Source{BasePath: basePath}
}

// Config reads and decodes the snapshot stored under key. The config is
// returned as-is; callers validate before use.
func (s *Source) Config(ctx context.Context, key string) (*survey.Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := key
	if s.BasePath != "" && !filepath.IsAbs(key) {
		path = filepath.Join(s.BasePath, key)
	}
	return survey.LoadFile(path)
}
