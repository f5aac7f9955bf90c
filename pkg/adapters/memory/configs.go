package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/dialbird/canvass/pkg/survey"
)

// ConfigSource implements ports.ConfigSource over an in-memory map of
// validated snapshots, keyed by agent version. Embedding hosts register
// snapshots from the dashboard's own storage; the CLI uses the file-backed
// source instead.
type ConfigSource struct {
	mu      sync.RWMutex
	configs map[string]*survey.Config
}

// NewConfigSource creates an empty source.
func NewConfigSource() *ConfigSource {
	return &ConfigSource{configs: make(map[string]*survey.Config)}
}

// Put registers a snapshot under a key. The config is stored as-is; callers
// validate before registering.
func (s *ConfigSource) Put(key string, cfg *survey.Config) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[key] = cfg
}

// Config returns the snapshot for key.
func (s *ConfigSource) Config(ctx context.Context, key string) (*survey.Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.configs[key]
	if !ok {
		return nil, fmt.Errorf("survey config %q not found", key)
	}
	return cfg, nil
}
