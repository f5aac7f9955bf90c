package middleware

import (
	"context"
	"regexp"

	"github.com/dialbird/canvass/pkg/ports"
	"github.com/dialbird/canvass/pkg/survey"
)

type piiMiddleware struct {
	next     ports.SessionStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the recorded answers of
// questions whose id matches any of the patterns (e.g. `email|phone|name`).
// Branching already happened by the time a record is saved, so masking the
// stored value never affects traversal.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.SessionStore) ports.SessionStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, sess *survey.Session) error {
	// Deep clone to avoid side effects on the in-memory session used by the
	// call runtime.
	cloned := sess.Clone()
	for i := range cloned.Answers {
		if m.matches(cloned.Answers[i].QuestionID) {
			mask(&cloned.Answers[i])
		}
	}
	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) matches(questionID string) bool {
	for _, p := range m.patterns {
		if p.MatchString(questionID) {
			return true
		}
	}
	return false
}

func mask(rec *survey.AnswerRecord) {
	rec.Raw = "***"
	if rec.Normalized.Kind == survey.AnswerText {
		rec.Normalized.Text = "***"
	}
	if rec.Normalized.Kind == survey.AnswerOptions {
		for i := range rec.Normalized.Options {
			rec.Normalized.Options[i] = "***"
		}
	}
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*survey.Session, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
