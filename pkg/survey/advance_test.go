package survey_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialbird/canvass/pkg/survey"
)

func yesNoConfig() *survey.Config {
	return &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID: "q1", Type: survey.TypeYesNo, Text: "Are you satisfied?",
				NextOnYes: survey.Terminal(),
				NextOnNo:  survey.To("q2"),
			},
			{
				ID: "q2", Type: survey.TypeOpenEnded, Text: "What went wrong?",
				MaxLength: 500,
				Next:      survey.Terminal(),
			},
		},
	}
}

func TestAdvance_YesNoBranching(t *testing.T) {
	cfg := yesNoConfig()

	out, err := survey.Advance(cfg, "q1", survey.BoolAnswer(true))
	require.NoError(t, err)
	assert.Equal(t, survey.Complete(), out)

	out, err = survey.Advance(cfg, "q1", survey.BoolAnswer(false))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("q2"), out)

	out, err = survey.Advance(cfg, "q2", survey.TextAnswer("some text"))
	require.NoError(t, err)
	assert.Equal(t, survey.Complete(), out)
}

func TestAdvance_RatingRanges(t *testing.T) {
	cfg := &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID: "q1", Type: survey.TypeRating, Text: "Rate us 1-10",
				MinValue: 1, MaxValue: 10,
				NextByRange: []survey.RangeBranch{
					{Min: 1, Max: 5, Next: survey.To("q2")},
					{Min: 6, Max: 10, Next: survey.Terminal()},
				},
			},
			{ID: "q2", Type: survey.TypeOpenEnded, Text: "Tell us more", MaxLength: 500},
		},
	}

	out, err := survey.Advance(cfg, "q1", survey.RatingAnswer(3))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("q2"), out)

	out, err = survey.Advance(cfg, "q1", survey.RatingAnswer(8))
	require.NoError(t, err)
	assert.Equal(t, survey.Complete(), out)
}

func TestAdvance_RatingRangeCoverage(t *testing.T) {
	// Every value in the domain maps to exactly one outcome.
	cfg := &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID: "q1", Type: survey.TypeRating, Text: "Rate us", MinValue: 1, MaxValue: 10,
				NextByRange: []survey.RangeBranch{
					{Min: 1, Max: 3, Next: survey.To("low")},
					{Min: 4, Max: 7, Next: survey.To("mid")},
					{Min: 8, Max: 10, Next: survey.Terminal()},
				},
			},
			{ID: "low", Type: survey.TypeOpenEnded, Text: "low", MaxLength: 10},
			{ID: "mid", Type: survey.TypeOpenEnded, Text: "mid", MaxLength: 10},
		},
	}
	require.Empty(t, survey.Validate(cfg))

	for v := 1; v <= 10; v++ {
		out, err := survey.Advance(cfg, "q1", survey.RatingAnswer(v))
		require.NoError(t, err, "value %d", v)
		assert.True(t, out.Kind == survey.OutcomeNext || out.Kind == survey.OutcomeComplete, "value %d", v)
	}
}

func TestAdvance_MultipleChoiceBranching(t *testing.T) {
	cfg := &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID: "q1", Type: survey.TypeMultipleChoice, Text: "Pick one",
				Options:      []string{"A", "B"},
				NextByOption: map[string]string{"A": "q2"},
				Next:         survey.To("q3"),
			},
			{ID: "q2", Type: survey.TypeOpenEnded, Text: "about A", MaxLength: 100},
			{ID: "q3", Type: survey.TypeOpenEnded, Text: "about B", MaxLength: 100},
		},
	}

	out, err := survey.Advance(cfg, "q1", survey.OptionsAnswer("A"))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("q2"), out)

	out, err = survey.Advance(cfg, "q1", survey.OptionsAnswer("B"))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("q3"), out)
}

func TestAdvance_MultiSelectUsesDeclaredOrder(t *testing.T) {
	cfg := &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID: "q1", Type: survey.TypeMultipleChoice, Text: "Pick any",
				Options:       []string{"A", "B", "C"},
				AllowMultiple: true,
				NextByOption:  map[string]string{"B": "qB", "C": "qC"},
				Next:          survey.Terminal(),
			},
			{ID: "qB", Type: survey.TypeOpenEnded, Text: "b", MaxLength: 10},
			{ID: "qC", Type: survey.TypeOpenEnded, Text: "c", MaxLength: 10},
		},
	}

	// Selection order does not matter, declared option order does: B wins
	// over C regardless of how the respondent listed them.
	out, err := survey.Advance(cfg, "q1", survey.OptionsAnswer("C", "B"))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("qB"), out)

	// A has no branch and is skipped in favor of the next selected option.
	out, err = survey.Advance(cfg, "q1", survey.OptionsAnswer("A", "C"))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("qC"), out)

	// No selected option has a branch: fall back to next.
	out, err = survey.Advance(cfg, "q1", survey.OptionsAnswer("A"))
	require.NoError(t, err)
	assert.Equal(t, survey.Complete(), out)
}

func TestAdvance_SkipFollowsDefaultBranch(t *testing.T) {
	cfg := yesNoConfig()

	// Skipping a yes_no follows next_on_no.
	out, err := survey.Advance(cfg, "q1", survey.Skipped())
	require.NoError(t, err)
	assert.Equal(t, survey.Next("q2"), out)

	// Skipping anything else follows next.
	out, err = survey.Advance(cfg, "q2", survey.Skipped())
	require.NoError(t, err)
	assert.Equal(t, survey.Complete(), out)
}

func TestAdvance_WithdrawnAborts(t *testing.T) {
	cfg := yesNoConfig()
	for _, id := range []string{"q1", "q2"} {
		out, err := survey.Advance(cfg, id, survey.Withdrawn())
		require.NoError(t, err)
		assert.Equal(t, survey.Abort(), out)
	}
}

func TestAdvance_UnknownQuestion(t *testing.T) {
	_, err := survey.Advance(yesNoConfig(), "nope", survey.BoolAnswer(true))
	assert.ErrorIs(t, err, survey.ErrQuestionNotFound)
}

func TestAdvance_MismatchedAnswerKind(t *testing.T) {
	cfg := yesNoConfig()
	_, err := survey.Advance(cfg, "q1", survey.RatingAnswer(4))
	assert.Error(t, err)
}

func TestAdvance_Deterministic(t *testing.T) {
	cfg := yesNoConfig()
	first, err := survey.Advance(cfg, "q1", survey.BoolAnswer(false))
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := survey.Advance(cfg, "q1", survey.BoolAnswer(false))
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestAdvance_CycleIsLegal(t *testing.T) {
	cfg := &survey.Config{
		Enabled: true,
		Questions: []survey.Question{
			{
				ID: "retry", Type: survey.TypeYesNo, Text: "Try again?",
				NextOnYes: survey.To("retry"),
				NextOnNo:  survey.Terminal(),
			},
		},
	}
	require.Empty(t, survey.Validate(cfg))

	out, err := survey.Advance(cfg, "retry", survey.BoolAnswer(true))
	require.NoError(t, err)
	assert.Equal(t, survey.Next("retry"), out)
}
