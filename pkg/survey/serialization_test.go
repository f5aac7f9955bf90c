package survey_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dialbird/canvass/pkg/survey"
)

const sampleJSON = `{
  "enabled": true,
  "start_question": "q1",
  "completion_message": "Thanks!",
  "questions": [
    {
      "id": "q1",
      "type": "yes_no",
      "text": "Are you satisfied?",
      "required": true,
      "next_on_yes": null,
      "next_on_no": "q2"
    },
    {
      "id": "q2",
      "type": "open_ended",
      "text": "What went wrong?",
      "max_length": 500,
      "next": null
    }
  ]
}`

func TestDecodeJSON_NullVersusAbsent(t *testing.T) {
	cfg, err := survey.DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)

	q1 := cfg.Question("q1")
	require.NotNil(t, q1)
	assert.True(t, q1.NextOnYes.Defined())
	assert.True(t, q1.NextOnYes.IsTerminal())
	assert.True(t, q1.NextOnNo.Defined())
	assert.Equal(t, "q2", q1.NextOnNo.ID())
	// next was never written for q1.
	assert.False(t, q1.Next.Defined())

	q2 := cfg.Question("q2")
	require.NotNil(t, q2)
	assert.True(t, q2.Next.IsTerminal())
}

func TestJSONRoundTrip(t *testing.T) {
	cfg, err := survey.DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)

	// Absent fields stay absent: round-tripping must not invent keys the
	// editor never wrote.
	var generic map[string]any
	require.NoError(t, json.Unmarshal(data, &generic))
	questions := generic["questions"].([]any)
	q1 := questions[0].(map[string]any)
	_, hasNext := q1["next"]
	assert.False(t, hasNext)
	v, hasYes := q1["next_on_yes"]
	assert.True(t, hasYes)
	assert.Nil(t, v)

	again, err := survey.DecodeJSON(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)

	// Validation and traversal are unchanged by the round trip.
	assert.Equal(t, survey.Validate(cfg), survey.Validate(again))
	out1, err1 := survey.Advance(cfg, "q1", survey.BoolAnswer(true))
	out2, err2 := survey.Advance(again, "q1", survey.BoolAnswer(true))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, out1, out2)
}

func TestDecodeYAML_NullVersusAbsent(t *testing.T) {
	doc := `
enabled: true
start_question: q1
questions:
  - id: q1
    type: yes_no
    text: Are you satisfied?
    next_on_yes: null
    next_on_no: q2
  - id: q2
    type: yes_no
    text: Would you call again?
    next_on_yes: q3
    next_on_no:
  - id: q3
    type: open_ended
    text: Anything else?
    max_length: 200
    next: null
`
	cfg, err := survey.DecodeYAML([]byte(doc))
	require.NoError(t, err)
	require.Empty(t, survey.Validate(cfg))

	q1 := cfg.Question("q1")
	require.NotNil(t, q1)
	assert.True(t, q1.NextOnYes.Defined())
	assert.True(t, q1.NextOnYes.IsTerminal())
	assert.Equal(t, "q2", q1.NextOnNo.ID())
	// next was never written for q1.
	assert.False(t, q1.Next.Defined())

	// The bare "key:" form is an explicit null as well.
	q2 := cfg.Question("q2")
	require.NotNil(t, q2)
	assert.True(t, q2.NextOnNo.IsTerminal())

	assert.True(t, cfg.Question("q3").Next.IsTerminal())
}

func TestYAMLRoundTrip(t *testing.T) {
	cfg, err := survey.DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)

	// Absent fields stay absent and explicit nulls stay null.
	var generic map[string]any
	require.NoError(t, yaml.Unmarshal(data, &generic))
	questions := generic["questions"].([]any)
	q1 := questions[0].(map[string]any)
	_, hasNext := q1["next"]
	assert.False(t, hasNext)
	v, hasYes := q1["next_on_yes"]
	assert.True(t, hasYes)
	assert.Nil(t, v)

	again, err := survey.DecodeYAML(data)
	require.NoError(t, err)
	assert.Equal(t, cfg, again)
	assert.True(t, again.Question("q1").NextOnYes.IsTerminal())

	// Validation and traversal are unchanged by the round trip.
	assert.Equal(t, survey.Validate(cfg), survey.Validate(again))
	out1, err1 := survey.Advance(cfg, "q1", survey.BoolAnswer(true))
	out2, err2 := survey.Advance(again, "q1", survey.BoolAnswer(true))
	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, out1, out2)
}

func TestDecodeYAML(t *testing.T) {
	doc := `
enabled: true
questions:
  - id: q1
    type: rating
    text: Rate the call
    min_value: 1
    max_value: 5
    next_by_range:
      - {min: 1, max: 3, next: q2}
      - {min: 4, max: 5, next: null}
  - id: q2
    type: open_ended
    text: What should we improve?
    max_length: 300
    next: null
`
	cfg, err := survey.DecodeYAML([]byte(doc))
	require.NoError(t, err)
	require.Empty(t, survey.Validate(cfg))

	q1 := cfg.Question("q1")
	require.NotNil(t, q1)
	require.Len(t, q1.NextByRange, 2)
	assert.Equal(t, "q2", q1.NextByRange[0].Next.ID())
	assert.True(t, q1.NextByRange[1].Next.IsTerminal())
	assert.False(t, q1.Next.Defined())
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "survey.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(sampleJSON), 0o644))
	cfg, err := survey.LoadFile(jsonPath)
	require.NoError(t, err)
	assert.True(t, cfg.Enabled)

	yamlPath := filepath.Join(dir, "survey.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte("enabled: true\nquestions:\n  - id: q1\n    type: open_ended\n    text: Hi\n    max_length: 10\n"), 0o644))
	cfg, err = survey.LoadFile(yamlPath)
	require.NoError(t, err)
	require.Len(t, cfg.Questions, 1)

	_, err = survey.LoadFile(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)
}

func TestDecodeConfigMap(t *testing.T) {
	raw := map[string]any{
		"enabled":        true,
		"start_question": "q1",
		"questions": []any{
			map[string]any{
				"id":          "q1",
				"type":        "yes_no",
				"text":        "Satisfied?",
				"next_on_yes": nil,
				"next_on_no":  "q2",
			},
			map[string]any{
				"id":         "q2",
				"type":       "rating",
				"text":       "Rate us",
				"min_value":  1,
				"max_value":  5,
				"next_by_range": []any{
					map[string]any{"min": 1, "max": 5, "next": nil},
				},
			},
		},
	}

	cfg, err := survey.DecodeConfigMap(raw)
	require.NoError(t, err)
	require.Empty(t, survey.Validate(cfg))

	q1 := cfg.Question("q1")
	require.NotNil(t, q1)
	assert.True(t, q1.NextOnYes.IsTerminal())
	assert.Equal(t, "q2", q1.NextOnNo.ID())
	assert.False(t, q1.Next.Defined())

	q2 := cfg.Question("q2")
	require.NotNil(t, q2)
	require.Len(t, q2.NextByRange, 1)
	assert.True(t, q2.NextByRange[0].Next.IsTerminal())
}

func TestTargetString(t *testing.T) {
	assert.Equal(t, "<undefined>", survey.Target{}.String())
	assert.Equal(t, "<complete>", survey.Terminal().String())
	assert.Equal(t, "q7", survey.To("q7").String())
}
