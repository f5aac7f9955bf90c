package survey

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// AnswerKind tags the normalized value variants.
type AnswerKind string

const (
	AnswerBool    AnswerKind = "bool"
	AnswerOptions AnswerKind = "options"
	AnswerRating  AnswerKind = "rating"
	AnswerText    AnswerKind = "text"
	// AnswerSkipped is the sentinel for a legitimate declined answer; it
	// still drives Advance along the question's default branch.
	AnswerSkipped AnswerKind = "skipped"
	// AnswerWithdrawn is the caller's explicit signal that the respondent
	// withdrew from the survey. Advance maps it to Abort; it is never
	// produced by answer validation.
	AnswerWithdrawn AnswerKind = "withdrawn"
)

// Answer is a validated, type-correct representation of respondent input.
type Answer struct {
	Kind    AnswerKind `json:"kind"`
	Bool    bool       `json:"bool,omitempty"`
	Options []string   `json:"options,omitempty"`
	Rating  int        `json:"rating,omitempty"`
	Text    string     `json:"text,omitempty"`
}

// BoolAnswer normalizes a yes/no response.
func BoolAnswer(v bool) Answer { return Answer{Kind: AnswerBool, Bool: v} }

// OptionsAnswer normalizes a multiple-choice selection, in selection order.
func OptionsAnswer(opts ...string) Answer { return Answer{Kind: AnswerOptions, Options: opts} }

// RatingAnswer normalizes a numeric rating.
func RatingAnswer(v int) Answer { return Answer{Kind: AnswerRating, Rating: v} }

// TextAnswer normalizes an open-ended response.
func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }

// Skipped is the sentinel answer for a declined question.
func Skipped() Answer { return Answer{Kind: AnswerSkipped} }

// Withdrawn is the sentinel answer for explicit respondent withdrawal.
func Withdrawn() Answer { return Answer{Kind: AnswerWithdrawn} }

// SynonymSet maps spoken affirmations and negations to booleans. The default
// set covers the phrasings the transcription layer actually produces;
// deployments serving other locales extend it per agent.
type SynonymSet struct {
	yes map[string]struct{}
	no  map[string]struct{}
}

// NewSynonymSet builds a synonym set from explicit word lists.
func NewSynonymSet(yes, no []string) SynonymSet {
	s := SynonymSet{
		yes: make(map[string]struct{}, len(yes)),
		no:  make(map[string]struct{}, len(no)),
	}
	for _, w := range yes {
		s.yes[normalizeToken(w)] = struct{}{}
	}
	for _, w := range no {
		s.no[normalizeToken(w)] = struct{}{}
	}
	return s
}

// DefaultSynonyms returns the built-in yes/no vocabulary.
func DefaultSynonyms() SynonymSet {
	return NewSynonymSet(
		[]string{"yes", "y", "yeah", "yep", "yup", "sure", "ok", "okay", "true", "1", "correct", "evet"},
		[]string{"no", "n", "nope", "nah", "false", "0", "incorrect", "hayir", "hayır"},
	)
}

// Interpret maps a raw utterance to a boolean. ok is false when the
// utterance matches neither list.
func (s SynonymSet) Interpret(raw string) (value, ok bool) {
	tok := normalizeToken(raw)
	if _, yes := s.yes[tok]; yes {
		return true, true
	}
	if _, no := s.no[tok]; no {
		return false, true
	}
	return false, false
}

func normalizeToken(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// AnswerValidator checks raw respondent input against a question's
// constraints and produces normalized answers. It is deliberately strict:
// consuming runtimes re-prompt on failure rather than guess.
type AnswerValidator struct {
	synonyms  SynonymSet
	allowSkip bool
}

// AnswerOption configures an AnswerValidator.
type AnswerOption func(*AnswerValidator)

// WithSynonyms replaces the yes/no vocabulary.
func WithSynonyms(s SynonymSet) AnswerOption {
	return func(v *AnswerValidator) { v.synonyms = s }
}

// WithSkipAllowed applies the config-level allow_skip permission.
func WithSkipAllowed(allowed bool) AnswerOption {
	return func(v *AnswerValidator) { v.allowSkip = allowed }
}

// NewAnswerValidator builds a validator with the default synonym set.
func NewAnswerValidator(opts ...AnswerOption) *AnswerValidator {
	v := &AnswerValidator{synonyms: DefaultSynonyms()}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// ValidateAnswer checks raw input against q using the default validator
// settings (built-in synonyms, no global skip permission).
func ValidateAnswer(q *Question, raw any) (Answer, error) {
	return NewAnswerValidator().Validate(q, raw)
}

// Validate normalizes raw input for q, or reports a typed failure.
func (v *AnswerValidator) Validate(q *Question, raw any) (Answer, error) {
	switch q.Type {
	case TypeYesNo:
		return v.validateYesNo(q, raw)
	case TypeMultipleChoice:
		return v.validateChoice(q, raw)
	case TypeRating:
		return v.validateRating(q, raw)
	case TypeOpenEnded:
		return v.validateText(q, raw)
	default:
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailWrongType, Reason: fmt.Sprintf("unknown question type %q", q.Type)}
	}
}

func (v *AnswerValidator) skip(q *Question) (Answer, error) {
	if !q.Required || v.allowSkip {
		return Skipped(), nil
	}
	return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailAnswerRequired, Reason: "question cannot be skipped"}
}

func (v *AnswerValidator) validateYesNo(q *Question, raw any) (Answer, error) {
	switch val := raw.(type) {
	case bool:
		return BoolAnswer(val), nil
	case string:
		if strings.TrimSpace(val) == "" {
			return v.skip(q)
		}
		if b, ok := v.synonyms.Interpret(val); ok {
			return BoolAnswer(b), nil
		}
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailAmbiguousYesNo, Reason: fmt.Sprintf("%q maps to neither yes nor no", val)}
	default:
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailAmbiguousYesNo, Reason: fmt.Sprintf("expected a yes/no utterance, got %T", raw)}
	}
}

func (v *AnswerValidator) validateChoice(q *Question, raw any) (Answer, error) {
	selected, err := selectionList(q, raw)
	if err != nil {
		return Answer{}, err
	}
	if len(selected) == 0 {
		return v.skip(q)
	}
	if !q.AllowMultiple && len(selected) != 1 {
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailInvalidOption, Reason: fmt.Sprintf("exactly one option must be selected, got %d", len(selected))}
	}

	seen := make(map[string]bool, len(selected))
	normalized := make([]string, 0, len(selected))
	for _, opt := range selected {
		if !q.HasOption(opt) {
			return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailInvalidOption, Reason: fmt.Sprintf("%q is not one of the options", opt)}
		}
		if !seen[opt] {
			seen[opt] = true
			normalized = append(normalized, opt)
		}
	}
	return OptionsAnswer(normalized...), nil
}

func selectionList(q *Question, raw any) ([]string, error) {
	switch val := raw.(type) {
	case string:
		if strings.TrimSpace(val) == "" {
			return nil, nil
		}
		return []string{strings.TrimSpace(val)}, nil
	case []string:
		return trimNonEmpty(val), nil
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			s, ok := item.(string)
			if !ok {
				return nil, &AnswerError{QuestionID: q.ID, Code: FailInvalidOption, Reason: fmt.Sprintf("selections must be strings, got %T", item)}
			}
			out = append(out, s)
		}
		return trimNonEmpty(out), nil
	case nil:
		return nil, nil
	default:
		return nil, &AnswerError{QuestionID: q.ID, Code: FailInvalidOption, Reason: fmt.Sprintf("expected option selection, got %T", raw)}
	}
}

func trimNonEmpty(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if t := strings.TrimSpace(s); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func (v *AnswerValidator) validateRating(q *Question, raw any) (Answer, error) {
	var n int
	switch val := raw.(type) {
	case int:
		n = val
	case int64:
		n = int(val)
	case float64:
		if val != float64(int(val)) {
			return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailWrongType, Reason: "rating must be a whole number"}
		}
		n = int(val)
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return v.skip(q)
		}
		parsed, err := strconv.Atoi(trimmed)
		if err != nil {
			return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailWrongType, Reason: fmt.Sprintf("%q is not a number", val)}
		}
		n = parsed
	default:
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailWrongType, Reason: fmt.Sprintf("expected a numeric rating, got %T", raw)}
	}

	if n < q.MinValue || n > q.MaxValue {
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailOutOfRange, Reason: fmt.Sprintf("%d is outside [%d,%d]", n, q.MinValue, q.MaxValue)}
	}
	return RatingAnswer(n), nil
}

func (v *AnswerValidator) validateText(q *Question, raw any) (Answer, error) {
	s, ok := raw.(string)
	if !ok {
		if raw == nil {
			return v.skip(q)
		}
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailWrongType, Reason: fmt.Sprintf("expected text, got %T", raw)}
	}
	if strings.TrimSpace(s) == "" {
		return v.skip(q)
	}
	if utf8.RuneCountInString(s) > q.MaxLength {
		return Answer{}, &AnswerError{QuestionID: q.ID, Code: FailTooLong, Reason: fmt.Sprintf("answer is %d characters, limit is %d", utf8.RuneCountInString(s), q.MaxLength)}
	}
	return TextAnswer(s), nil
}
