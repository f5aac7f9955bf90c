package ports

import (
	"context"

	"github.com/dialbird/canvass/pkg/survey"
)

// SessionStore defines the interface for persisting call session state.
// A hung-up call resumes from whatever was last saved.
type SessionStore interface {
	// Save persists the session under its id.
	Save(ctx context.Context, sessionID string, s *survey.Session) error

	// Load retrieves a session.
	// Returns survey.ErrSessionNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (*survey.Session, error)

	// Delete removes the session.
	Delete(ctx context.Context, sessionID string) error

	// List returns the ids of stored sessions.
	List(ctx context.Context) ([]string, error)
}

// ConfigSource resolves the survey config snapshot a call runs against.
// Snapshots are immutable per agent version; a call fetches one at start and
// never re-reads it.
type ConfigSource interface {
	// Config returns the stored snapshot for an agent version key.
	Config(ctx context.Context, key string) (*survey.Config, error)
}
