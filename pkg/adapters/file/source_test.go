package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialbird/canvass/pkg/adapters/file"
	"github.com/dialbird/canvass/pkg/ports"
)

var _ ports.ConfigSource = (*file.Source)(nil)

const sampleYAML = `
enabled: true
questions:
  - id: q1
    type: yes_no
    text: Are you satisfied?
    next_on_yes: null
    next_on_no:
`

func TestSource_Config(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "survey.yaml"), []byte(sampleYAML), 0o644))

	src := file.NewSource(dir)
	cfg, err := src.Config(context.Background(), "survey.yaml")
	require.NoError(t, err)
	require.Len(t, cfg.Questions, 1)
	assert.True(t, cfg.Questions[0].NextOnYes.IsTerminal())
}

func TestSource_AbsolutePathIgnoresBase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "survey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	src := file.NewSource(filepath.Join(dir, "elsewhere"))
	cfg, err := src.Config(context.Background(), path)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)
}

func TestSource_MissingFile(t *testing.T) {
	src := file.NewSource(t.TempDir())
	_, err := src.Config(context.Background(), "nope.yaml")
	assert.Error(t, err)
}

func TestSource_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := file.NewSource(t.TempDir())
	_, err := src.Config(ctx, "survey.yaml")
	assert.ErrorIs(t, err, context.Canceled)
}
