package ports

import (
	"context"
	"testing"
	"time"

	"github.com/dialbird/canvass/pkg/survey"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunSessionStoreContract runs a suite of tests verifying that a
// SessionStore implementation adheres to the interface contract.
func RunSessionStoreContract(t *testing.T, store SessionStore) {
	ctx := context.Background()
	sessionID := "contract-test-session-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		s := survey.NewSession(sessionID)
		require.NoError(t, s.Begin("q1", time.Now()))
		require.NoError(t, s.Apply(survey.AnswerRecord{
			QuestionID: "q1",
			Raw:        "yes",
			Normalized: survey.BoolAnswer(true),
			AnsweredAt: time.Now(),
		}, survey.Next("q2"), time.Now()))

		err := store.Save(ctx, sessionID, s)
		require.NoError(t, err, "Save should not return error")

		loaded, err := store.Load(ctx, sessionID)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, s.CurrentQuestionID, loaded.CurrentQuestionID)
		assert.Equal(t, survey.StatusInProgress, loaded.Status)
		require.Len(t, loaded.Answers, 1)
		assert.Equal(t, "q1", loaded.Answers[0].QuestionID)
		assert.Equal(t, survey.AnswerBool, loaded.Answers[0].Normalized.Kind)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+sessionID)
		assert.ErrorIs(t, err, survey.ErrSessionNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		err := store.Save(ctx, sessionID, survey.NewSession(sessionID))
		require.NoError(t, err)

		err = store.Delete(ctx, sessionID)
		require.NoError(t, err, "Delete should not return error")

		_, err = store.Load(ctx, sessionID)
		assert.ErrorIs(t, err, survey.ErrSessionNotFound, "Load after Delete should return ErrSessionNotFound")
	})

	t.Run("List", func(t *testing.T) {
		id1 := sessionID + "-1"
		id2 := sessionID + "-2"
		_ = store.Save(ctx, id1, survey.NewSession(id1))
		_ = store.Save(ctx, id2, survey.NewSession(id2))

		defer func() {
			_ = store.Delete(ctx, id1)
			_ = store.Delete(ctx, id2)
		}()

		sessions, err := store.List(ctx)
		require.NoError(t, err)
		assert.Contains(t, sessions, id1)
		assert.Contains(t, sessions, id2)
	})
}
