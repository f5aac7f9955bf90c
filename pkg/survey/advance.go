package survey

import "fmt"

// OutcomeKind tags the result of one traversal step.
type OutcomeKind string

const (
	// OutcomeNext names the question the agent asks next.
	OutcomeNext OutcomeKind = "next"
	// OutcomeComplete ends the survey successfully; the runtime speaks the
	// config's completion_message.
	OutcomeComplete OutcomeKind = "complete"
	// OutcomeAbort ends the survey on explicit respondent withdrawal; the
	// runtime speaks the abort_message.
	OutcomeAbort OutcomeKind = "abort"
)

// Outcome is the traversal engine's decision for one conversational turn.
type Outcome struct {
	Kind       OutcomeKind `json:"kind"`
	QuestionID string      `json:"question_id,omitempty"`
}

// Next returns an outcome pointing at the following question.
func Next(id string) Outcome { return Outcome{Kind: OutcomeNext, QuestionID: id} }

// Complete returns the successful terminal outcome.
func Complete() Outcome { return Outcome{Kind: OutcomeComplete} }

// Abort returns the withdrawal terminal outcome.
func Abort() Outcome { return Outcome{Kind: OutcomeAbort} }

// IsTerminal reports whether the outcome ends the session.
func (o Outcome) IsTerminal() bool { return o.Kind != OutcomeNext }

// Advance decides what follows the question that was just answered. It is a
// pure function: the same (config, question, answer) triple always yields
// the same outcome, and it never touches session state; the caller appends
// the answer to history and moves the session based on the result.
//
// The config is assumed to have passed Validate; Advance does not re-check
// graph integrity per turn. An unknown question id is therefore a
// programming error and returns ErrQuestionNotFound.
//
// A skipped answer follows the question's default branch: next_on_no for
// yes_no questions, next for everything else. A withdrawn answer always
// maps to Abort.
func Advance(cfg *Config, questionID string, ans Answer) (Outcome, error) {
	q := cfg.Question(questionID)
	if q == nil {
		return Outcome{}, fmt.Errorf("advance from %q: %w", questionID, ErrQuestionNotFound)
	}

	if ans.Kind == AnswerWithdrawn {
		return Abort(), nil
	}

	switch q.Type {
	case TypeYesNo:
		if ans.Kind == AnswerSkipped {
			return resolve(q.NextOnNo), nil
		}
		if ans.Kind != AnswerBool {
			return Outcome{}, fmt.Errorf("question %q expects a boolean answer, got %s", q.ID, ans.Kind)
		}
		if ans.Bool {
			return resolve(q.NextOnYes), nil
		}
		return resolve(q.NextOnNo), nil

	case TypeMultipleChoice:
		if ans.Kind == AnswerSkipped {
			return resolve(q.Next), nil
		}
		if ans.Kind != AnswerOptions {
			return Outcome{}, fmt.Errorf("question %q expects an option answer, got %s", q.ID, ans.Kind)
		}
		if len(q.NextByOption) > 0 {
			// Multi-select branches on the first selected option in declared
			// order that has an explicit branch; unresolved lookups fall back
			// to next.
			for _, opt := range q.Options {
				if !selected(ans.Options, opt) {
					continue
				}
				if id, ok := q.NextByOption[opt]; ok {
					return Next(id), nil
				}
			}
		}
		return resolve(q.Next), nil

	case TypeRating:
		if ans.Kind == AnswerSkipped {
			return resolve(q.Next), nil
		}
		if ans.Kind != AnswerRating {
			return Outcome{}, fmt.Errorf("question %q expects a rating answer, got %s", q.ID, ans.Kind)
		}
		for _, rb := range q.NextByRange {
			if rb.Contains(ans.Rating) {
				return resolve(rb.Next), nil
			}
		}
		return resolve(q.Next), nil

	case TypeOpenEnded:
		// Content never affects branching.
		return resolve(q.Next), nil

	default:
		return Outcome{}, fmt.Errorf("question %q has unknown type %q", q.ID, q.Type)
	}
}

// resolve maps a transition target to an outcome: undefined and terminal
// targets both complete the survey.
func resolve(t Target) Outcome {
	if t.Defined() && !t.IsTerminal() {
		return Next(t.ID())
	}
	return Complete()
}

func selected(selection []string, opt string) bool {
	for _, s := range selection {
		if s == opt {
			return true
		}
	}
	return false
}
