package survey_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialbird/canvass/pkg/survey"
)

var t0 = time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

func TestSession_Lifecycle(t *testing.T) {
	sess := survey.NewSession("call-1")
	assert.Equal(t, survey.StatusNotStarted, sess.Status)

	require.NoError(t, sess.Begin("q1", t0))
	assert.Equal(t, survey.StatusInProgress, sess.Status)
	assert.Equal(t, "q1", sess.CurrentQuestionID)
	assert.Equal(t, t0, sess.StartedAt)

	// Begin is single-shot.
	assert.Error(t, sess.Begin("q1", t0))

	rec := survey.AnswerRecord{QuestionID: "q1", Raw: "yes", Normalized: survey.BoolAnswer(true), AnsweredAt: t0}
	require.NoError(t, sess.Apply(rec, survey.Next("q2"), t0))
	assert.Equal(t, "q2", sess.CurrentQuestionID)
	require.Len(t, sess.Answers, 1)

	end := t0.Add(time.Minute)
	rec2 := survey.AnswerRecord{QuestionID: "q2", Raw: "done", Normalized: survey.TextAnswer("done"), AnsweredAt: end}
	require.NoError(t, sess.Apply(rec2, survey.Complete(), end))
	assert.Equal(t, survey.StatusCompleted, sess.Status)
	assert.Empty(t, sess.CurrentQuestionID)
	assert.Equal(t, end, sess.EndedAt)

	// Finalized sessions reject further turns.
	err := sess.Apply(rec2, survey.Complete(), end)
	assert.ErrorIs(t, err, survey.ErrSessionFinalized)
}

func TestSession_AbortOutcome(t *testing.T) {
	sess := survey.NewSession("call-2")
	require.NoError(t, sess.Begin("q1", t0))

	rec := survey.AnswerRecord{QuestionID: "q1", Normalized: survey.Withdrawn(), AnsweredAt: t0}
	require.NoError(t, sess.Apply(rec, survey.Abort(), t0))
	assert.Equal(t, survey.StatusAbandoned, sess.Status)
	// The withdrawal is still part of the transcript.
	require.Len(t, sess.Answers, 1)
}

func TestSession_Abandon(t *testing.T) {
	sess := survey.NewSession("call-3")
	require.NoError(t, sess.Begin("q1", t0))
	require.NoError(t, sess.Abandon(t0))
	assert.Equal(t, survey.StatusAbandoned, sess.Status)

	assert.ErrorIs(t, sess.Abandon(t0), survey.ErrSessionFinalized)
}

func TestSession_ApplyBeforeBegin(t *testing.T) {
	sess := survey.NewSession("call-4")
	err := sess.Apply(survey.AnswerRecord{QuestionID: "q1"}, survey.Complete(), t0)
	assert.Error(t, err)
}

func TestSession_BeginRequiresStartQuestion(t *testing.T) {
	sess := survey.NewSession("call-5")
	assert.Error(t, sess.Begin("", t0))
}

func TestBuildResponse(t *testing.T) {
	sess := survey.NewSession("call-6")
	require.NoError(t, sess.Begin("q1", t0))
	require.NoError(t, sess.Apply(survey.AnswerRecord{QuestionID: "q1"}, survey.Next("q2"), t0))
	require.NoError(t, sess.Abandon(t0))

	// One answered, one reached but unanswered.
	resp := survey.BuildResponse(sess, 2)
	assert.Equal(t, "call-6", resp.SessionID)
	assert.Equal(t, survey.StatusAbandoned, resp.Status)
	assert.InDelta(t, 0.5, resp.CompletionRate, 1e-9)

	assert.Zero(t, survey.BuildResponse(survey.NewSession("x"), 0).CompletionRate)
}

func TestSession_Clone(t *testing.T) {
	sess := survey.NewSession("call-7")
	require.NoError(t, sess.Begin("q1", t0))
	require.NoError(t, sess.Apply(survey.AnswerRecord{QuestionID: "q1"}, survey.Next("q2"), t0))

	clone := sess.Clone()
	clone.Answers[0].QuestionID = "mutated"
	clone.CurrentQuestionID = "elsewhere"

	assert.Equal(t, "q1", sess.Answers[0].QuestionID)
	assert.Equal(t, "q2", sess.CurrentQuestionID)
}
