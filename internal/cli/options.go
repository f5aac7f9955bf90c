// Package cli carries the command logic behind the canvass binary: engine
// construction, persistence wiring and the interactive session loop.
package cli

import (
	"context"
	"log/slog"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/internal/logging"
	"github.com/dialbird/canvass/pkg/adapters/file"
	"github.com/dialbird/canvass/pkg/ports"
)

// RunOptions contains all the configuration for the run command.
type RunOptions struct {
	ConfigPath string
	Headless   bool
	JSON       bool
	Debug      bool
	SessionID  string
	Fresh      bool
	RedisURL   string
}

func createLogger(debug, json bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	if json {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// createEngine resolves the config snapshot through a ConfigSource and binds
// an engine with standard CLI conventions. The CLI always reads files; a
// deployment embedding this package swaps in its own source.
func createEngine(ctx context.Context, opts RunOptions, logger *slog.Logger) (*canvass.Engine, error) {
	var source ports.ConfigSource = file.NewSource("")
	cfg, err := source.Config(ctx, opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return canvass.New(cfg, canvass.WithLogger(logger))
}
