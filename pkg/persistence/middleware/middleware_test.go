package middleware_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialbird/canvass/pkg/adapters/memory"
	"github.com/dialbird/canvass/pkg/persistence/middleware"
	"github.com/dialbird/canvass/pkg/ports"
	"github.com/dialbird/canvass/pkg/survey"
)

func sampleSession(t *testing.T) *survey.Session {
	t.Helper()
	sess := survey.NewSession("call-1")
	require.NoError(t, sess.Begin("q1", time.Now()))
	require.NoError(t, sess.Apply(survey.AnswerRecord{
		QuestionID: "email",
		Raw:        "jo@example.com",
		Normalized: survey.TextAnswer("jo@example.com"),
		AnsweredAt: time.Now(),
	}, survey.Next("q2"), time.Now()))
	require.NoError(t, sess.Apply(survey.AnswerRecord{
		QuestionID: "q2",
		Raw:        "8",
		Normalized: survey.RatingAnswer(8),
		AnsweredAt: time.Now(),
	}, survey.Complete(), time.Now()))
	return sess
}

func testKey(b byte) []byte {
	key := make([]byte, 32)
	for i := range key {
		key[i] = b
	}
	return key
}

func TestEncryptionMiddleware_RoundTrip(t *testing.T) {
	backing := memory.NewStore()
	store := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: testKey(1),
	}))
	ctx := context.Background()

	sess := sampleSession(t)
	require.NoError(t, store.Save(ctx, "call-1", sess))

	// At rest the transcript is an opaque envelope; only status survives.
	raw, err := backing.Load(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, survey.StatusCompleted, raw.Status)
	require.Len(t, raw.Answers, 1)
	assert.NotEqual(t, "email", raw.Answers[0].QuestionID)

	loaded, err := store.Load(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, survey.StatusCompleted, loaded.Status)
	require.Len(t, loaded.Answers, 2)
	assert.Equal(t, survey.TextAnswer("jo@example.com"), loaded.Answers[0].Normalized)
}

func TestEncryptionMiddleware_KeyRotation(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()

	oldStore := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: testKey(1),
	}))
	require.NoError(t, oldStore.Save(ctx, "call-1", sampleSession(t)))

	// New deployment rotated the key; the old one is a fallback.
	newStore := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    testKey(2),
		FallbackKeys: [][]byte{testKey(1)},
	}))
	loaded, err := newStore.Load(ctx, "call-1")
	require.NoError(t, err)
	assert.Len(t, loaded.Answers, 2)

	// Without the fallback, old sessions are unreadable.
	strictStore := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: testKey(2),
	}))
	_, err = strictStore.Load(ctx, "call-1")
	assert.Error(t, err)
}

func TestEncryptionMiddleware_RejectsPlainSessions(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	require.NoError(t, backing.Save(ctx, "plain", sampleSession(t)))

	store := middleware.Chain(backing, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey: testKey(1),
	}))
	_, err := store.Load(ctx, "plain")
	assert.Error(t, err)
}

func TestPIIMiddleware_MasksMatchingQuestions(t *testing.T) {
	ctx := context.Background()
	backing := memory.NewStore()
	store := middleware.Chain(backing, middleware.NewPIIMiddleware([]string{"email", "phone"}))

	sess := sampleSession(t)
	require.NoError(t, store.Save(ctx, "call-1", sess))

	loaded, err := store.Load(ctx, "call-1")
	require.NoError(t, err)
	require.Len(t, loaded.Answers, 2)

	assert.Equal(t, "***", loaded.Answers[0].Raw)
	assert.Equal(t, "***", loaded.Answers[0].Normalized.Text)
	// Non-matching questions are untouched.
	assert.Equal(t, "8", loaded.Answers[1].Raw)
	assert.Equal(t, 8, loaded.Answers[1].Normalized.Rating)

	// The in-memory session the call runtime holds is never mutated.
	assert.Equal(t, "jo@example.com", sess.Answers[0].Raw)
}

func TestChain_Order(t *testing.T) {
	// PII masking must run before encryption: outermost first.
	ctx := context.Background()
	backing := memory.NewStore()
	store := middleware.Chain(backing,
		middleware.NewPIIMiddleware([]string{"email"}),
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: testKey(3)}),
	)

	require.NoError(t, store.Save(ctx, "call-1", sampleSession(t)))
	loaded, err := store.Load(ctx, "call-1")
	require.NoError(t, err)
	assert.Equal(t, "***", loaded.Answers[0].Raw)

	var _ ports.SessionStore = store
}
