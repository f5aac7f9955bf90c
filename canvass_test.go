package canvass_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/pkg/survey"
)

func demoConfig() *survey.Config {
	return &survey.Config{
		Enabled:           true,
		StartQuestion:     "satisfied",
		CompletionMessage: "Thanks for your time!",
		AbortMessage:      "No problem, goodbye.",
		Questions: []survey.Question{
			{
				ID: "satisfied", Type: survey.TypeYesNo, Text: "Are you satisfied?", Required: true,
				NextOnYes: survey.To("rating"),
				NextOnNo:  survey.To("feedback"),
			},
			{
				ID: "rating", Type: survey.TypeRating, Text: "Rate us 1-5",
				MinValue: 1, MaxValue: 5,
				Next: survey.Terminal(),
			},
			{
				ID: "feedback", Type: survey.TypeOpenEnded, Text: "What went wrong?",
				MaxLength: 500,
				Next:      survey.Terminal(),
			},
		},
	}
}

func TestNew_RejectsInvalidConfig(t *testing.T) {
	cfg := demoConfig()
	cfg.Questions[0].NextOnYes = survey.To("nowhere")

	_, err := canvass.New(cfg)
	require.Error(t, err)

	var vs survey.Violations
	require.ErrorAs(t, err, &vs)
	assert.Len(t, vs, 1)
}

func TestNew_RejectsDisabledConfig(t *testing.T) {
	cfg := demoConfig()
	cfg.Enabled = false
	_, err := canvass.New(cfg)
	assert.ErrorIs(t, err, survey.ErrConfigDisabled)
}

func TestEngine_FullSession(t *testing.T) {
	eng, err := canvass.New(demoConfig())
	require.NoError(t, err)

	sess, err := eng.Start("call-1")
	require.NoError(t, err)
	assert.Equal(t, "satisfied", sess.CurrentQuestionID)

	out, err := eng.Submit(sess, "yes")
	require.NoError(t, err)
	assert.Equal(t, survey.Next("rating"), out)
	assert.Equal(t, "rating", sess.CurrentQuestionID)

	out, err = eng.Submit(sess, "4")
	require.NoError(t, err)
	assert.Equal(t, survey.Complete(), out)
	assert.Equal(t, survey.StatusCompleted, sess.Status)

	require.Len(t, sess.Answers, 2)
	assert.Equal(t, survey.BoolAnswer(true), sess.Answers[0].Normalized)
	assert.Equal(t, survey.RatingAnswer(4), sess.Answers[1].Normalized)
}

func TestEngine_RejectionLeavesSessionUntouched(t *testing.T) {
	eng, err := canvass.New(demoConfig())
	require.NoError(t, err)

	sess, err := eng.Start("call-2")
	require.NoError(t, err)

	_, err = eng.Submit(sess, "banana")
	require.Error(t, err)
	ae, ok := survey.AsAnswerError(err)
	require.True(t, ok)
	assert.Equal(t, survey.FailAmbiguousYesNo, ae.Code)

	// Re-prompt the same question: no move, no transcript entry.
	assert.Equal(t, "satisfied", sess.CurrentQuestionID)
	assert.Empty(t, sess.Answers)

	// The session recovers with a valid answer.
	out, err := eng.Submit(sess, "no")
	require.NoError(t, err)
	assert.Equal(t, survey.Next("feedback"), out)
}

func TestEngine_Withdraw(t *testing.T) {
	eng, err := canvass.New(demoConfig())
	require.NoError(t, err)

	sess, err := eng.Start("call-3")
	require.NoError(t, err)

	out, err := eng.Withdraw(sess)
	require.NoError(t, err)
	assert.Equal(t, survey.Abort(), out)
	assert.Equal(t, survey.StatusAbandoned, sess.Status)
	require.Len(t, sess.Answers, 1)
	assert.Equal(t, survey.Withdrawn(), sess.Answers[0].Normalized)
}

func TestEngine_Hooks(t *testing.T) {
	var started, answered, rejected, finalized int
	hooks := canvass.Hooks{
		OnSessionStart: func(sessionID, questionID string) { started++ },
		OnAnswer:       func(sessionID, questionID string, outcome survey.Outcome) { answered++ },
		OnReject:       func(sessionID, questionID string, code survey.FailCode) { rejected++ },
		OnFinalize:     func(sessionID string, status survey.Status) { finalized++ },
	}

	eng, err := canvass.New(demoConfig(), canvass.WithHooks(hooks))
	require.NoError(t, err)

	sess, err := eng.Start("call-4")
	require.NoError(t, err)

	_, err = eng.Submit(sess, "dunno")
	require.Error(t, err)

	_, err = eng.Submit(sess, "yes")
	require.NoError(t, err)
	_, err = eng.Submit(sess, "5")
	require.NoError(t, err)

	assert.Equal(t, 1, started)
	assert.Equal(t, 2, answered)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, 1, finalized)
}

func TestEngine_Clock(t *testing.T) {
	fixed := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	eng, err := canvass.New(demoConfig(), canvass.WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	sess, err := eng.Start("call-5")
	require.NoError(t, err)
	assert.Equal(t, fixed, sess.StartedAt)

	_, err = eng.Submit(sess, "yes")
	require.NoError(t, err)
	assert.Equal(t, fixed, sess.Answers[0].AnsweredAt)
}

func TestEngine_Progress(t *testing.T) {
	eng, err := canvass.New(demoConfig())
	require.NoError(t, err)

	sess, err := eng.Start("call-6")
	require.NoError(t, err)

	answered, total := eng.Progress(sess)
	assert.Equal(t, 0, answered)
	assert.Equal(t, 3, total)

	_, err = eng.Submit(sess, "yes")
	require.NoError(t, err)
	answered, _ = eng.Progress(sess)
	assert.Equal(t, 1, answered)
}

func TestEngine_CustomSynonyms(t *testing.T) {
	eng, err := canvass.New(demoConfig(), canvass.WithSynonyms(
		survey.NewSynonymSet([]string{"aye"}, []string{"nay"}),
	))
	require.NoError(t, err)

	ans, err := eng.ValidateAnswer("satisfied", "aye")
	require.NoError(t, err)
	assert.Equal(t, survey.BoolAnswer(true), ans)
}
