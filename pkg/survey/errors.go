package survey

import (
	"errors"
	"fmt"
	"strings"
)

// ErrQuestionNotFound is returned when an id does not name a question in the
// config. During a live call this indicates a programming error: configs are
// validated before they go live.
var ErrQuestionNotFound = errors.New("question not found")

// ErrSessionNotFound is returned by session stores when an id is unknown.
var ErrSessionNotFound = errors.New("session not found")

// ErrSessionFinalized is returned when a completed or abandoned session is
// asked to transition again.
var ErrSessionFinalized = errors.New("session already finalized")

// ErrConfigDisabled is returned when a disabled config is handed to the
// engine; disabled configs are never traversed.
var ErrConfigDisabled = errors.New("survey config is disabled")

// FailCode classifies an answer validation failure so the calling runtime
// can choose its re-prompt wording.
type FailCode string

const (
	FailAmbiguousYesNo FailCode = "ambiguous_yes_no"
	FailInvalidOption  FailCode = "invalid_option"
	FailOutOfRange     FailCode = "out_of_range"
	FailTooLong        FailCode = "too_long"
	FailWrongType      FailCode = "wrong_type"
	// FailAnswerRequired means the respondent tried to skip a question that
	// neither the question nor the config allows skipping.
	FailAnswerRequired FailCode = "answer_required"
)

// AnswerError reports why a raw answer was rejected. The policy is always
// "re-prompt the same question", never guess.
type AnswerError struct {
	QuestionID string   `json:"question_id"`
	Code       FailCode `json:"code"`
	Reason     string   `json:"reason,omitempty"`
}

func (e *AnswerError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("question %q: %s", e.QuestionID, e.Code)
	}
	return fmt.Sprintf("question %q: %s (%s)", e.QuestionID, e.Code, e.Reason)
}

// AsAnswerError unwraps err into an *AnswerError if it is one.
func AsAnswerError(err error) (*AnswerError, bool) {
	var ae *AnswerError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// Invariant names the structural rule a config violated. The authoring UI
// keys its inline markers off these values, so they are part of the wire
// contract.
type Invariant string

const (
	// InvariantBrokenReference: a next* field or start_question names a
	// question that does not exist.
	InvariantBrokenReference Invariant = "broken_reference"
	// InvariantMissingBranch: a yes_no question leaves next_on_yes or
	// next_on_no undefined.
	InvariantMissingBranch Invariant = "missing_branch"
	// InvariantOptionCoverage: next_by_option misses an option and no
	// fallback next is defined.
	InvariantOptionCoverage Invariant = "option_coverage"
	// InvariantRangeCoverage: next_by_range has gaps or overlaps inside
	// [min_value, max_value].
	InvariantRangeCoverage Invariant = "range_coverage"
	// InvariantDuplicateID: two questions share an id.
	InvariantDuplicateID Invariant = "duplicate_id"
	// InvariantEmptySurvey: the config is enabled but has no questions.
	InvariantEmptySurvey Invariant = "empty_survey"
	// InvariantInvalidQuestion: a per-type field is unsound (empty text,
	// duplicate options, min_value >= max_value, non-positive max_length).
	InvariantInvalidQuestion Invariant = "invalid_question"
)

// Violation points the authoring UI at one exact problem in a config.
type Violation struct {
	QuestionID string    `json:"question_id,omitempty"`
	Invariant  Invariant `json:"invariant"`
	Detail     string    `json:"detail"`
}

func (v Violation) String() string {
	if v.QuestionID == "" {
		return fmt.Sprintf("%s: %s", v.Invariant, v.Detail)
	}
	return fmt.Sprintf("%s (question %q): %s", v.Invariant, v.QuestionID, v.Detail)
}

// Violations aggregates every structural problem found in one pass.
type Violations []Violation

func (vs Violations) Error() string {
	if len(vs) == 1 {
		return vs[0].String()
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d config violations:\n", len(vs))
	for i, v := range vs {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, v.String())
	}
	return sb.String()
}
