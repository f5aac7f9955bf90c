package survey

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Target is an id-or-terminal transition reference. It distinguishes a field
// that was absent from the document from one explicitly set to null: the
// config validator needs that difference for yes_no branch completeness, and
// round-tripping must not invent fields the editor never wrote.
type Target struct {
	defined bool
	id      string
}

// To returns a target pointing at a question id.
func To(id string) Target {
	return Target{defined: true, id: id}
}

// Terminal returns an explicit null target: the survey completes here.
func Terminal() Target {
	return Target{defined: true}
}

// Defined reports whether the field was present in the source document.
func (t Target) Defined() bool { return t.defined }

// IsTerminal reports whether the target ends the survey (explicit null).
func (t Target) IsTerminal() bool { return t.defined && t.id == "" }

// ID returns the referenced question id, empty for terminal or undefined
// targets.
func (t Target) ID() string { return t.id }

// IsZero lets encoding/json omit undefined targets via omitzero.
func (t Target) IsZero() bool { return !t.defined }

func (t Target) String() string {
	switch {
	case !t.defined:
		return "<undefined>"
	case t.id == "":
		return "<complete>"
	default:
		return t.id
	}
}

// MarshalJSON writes the id, or null for terminal targets.
func (t Target) MarshalJSON() ([]byte, error) {
	if t.id == "" {
		return []byte("null"), nil
	}
	return json.Marshal(t.id)
}

// UnmarshalJSON is only invoked for present keys, so any call marks the
// target as defined.
func (t *Target) UnmarshalJSON(data []byte) error {
	t.defined = true
	if string(data) == "null" {
		t.id = ""
		return nil
	}
	return json.Unmarshal(data, &t.id)
}

// MarshalYAML mirrors the JSON representation.
func (t Target) MarshalYAML() (any, error) {
	if t.id == "" {
		return nil, nil
	}
	return t.id, nil
}

// UnmarshalYAML accepts a scalar question id. yaml.v3 never routes !!null
// nodes to custom unmarshalers; DecodeYAML recovers explicit nulls through
// its raw-map pass.
func (t *Target) UnmarshalYAML(value *yaml.Node) error {
	t.defined = true
	if value.Tag == "!!null" {
		t.id = ""
		return nil
	}
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("transition target must be a question id or null, got %s", value.Tag)
	}
	t.id = value.Value
	return nil
}

// DecodeJSON parses a SurveyConfig document.
func DecodeJSON(data []byte) (*Config, error) {
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse survey config: %w", err)
	}
	return &cfg, nil
}

// DecodeYAML parses a SurveyConfig document written in YAML. Decoding runs
// through the raw-map path: yaml.v3 never hands !!null nodes to a custom
// unmarshaler, so explicit terminal targets only survive via the post-pass
// in DecodeConfigMap.
func DecodeYAML(data []byte) (*Config, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse survey config: %w", err)
	}
	return DecodeConfigMap(raw)
}

// LoadFile reads a config from disk, choosing the decoder by extension.
// The dashboard persists JSON; YAML is accepted for hand-authored files.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read survey config: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return DecodeJSON(data)
	}
}

// DecodeConfigMap builds a Config from a loosely-typed map, as stored inside
// an agent's settings blob. Explicit nulls survive as terminal targets.
func DecodeConfigMap(raw map[string]any) (*Config, error) {
	var cfg Config
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: targetDecodeHook,
		Result:     &cfg,
	})
	if err != nil {
		return nil, err
	}
	if err := dec.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode survey config: %w", err)
	}

	// mapstructure drops explicit nulls, so re-mark terminal targets from the
	// raw question maps.
	rawQuestions, _ := raw["questions"].([]any)
	for i := range cfg.Questions {
		if i >= len(rawQuestions) {
			break
		}
		rq, ok := rawQuestions[i].(map[string]any)
		if !ok {
			continue
		}
		markTerminal(rq, "next_on_yes", &cfg.Questions[i].NextOnYes)
		markTerminal(rq, "next_on_no", &cfg.Questions[i].NextOnNo)
		markTerminal(rq, "next", &cfg.Questions[i].Next)
		rawRanges, _ := rq["next_by_range"].([]any)
		for j := range cfg.Questions[i].NextByRange {
			if j >= len(rawRanges) {
				break
			}
			if rr, ok := rawRanges[j].(map[string]any); ok {
				markTerminal(rr, "next", &cfg.Questions[i].NextByRange[j].Next)
			}
		}
	}
	return &cfg, nil
}

func markTerminal(raw map[string]any, key string, t *Target) {
	if v, present := raw[key]; present && v == nil {
		*t = Terminal()
	}
}

// targetDecodeHook converts raw strings into Targets during map decoding.
func targetDecodeHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != reflect.TypeOf(Target{}) {
		return data, nil
	}
	switch v := data.(type) {
	case string:
		return To(v), nil
	case nil:
		return Terminal(), nil
	default:
		return nil, fmt.Errorf("transition target must be a question id or null, got %T", data)
	}
}
