package canvass

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dialbird/canvass/pkg/survey"
)

// Runner drives a survey the way a call would, over plain line IO. It exists
// for the CLI simulator and for tests; production traffic goes through the
// HTTP adapter instead.
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
	// OnTurn runs after every applied turn with the updated session; the CLI
	// uses it to persist between questions. Errors abort the run.
	OnTurn func(*survey.Session) error
}

// ContentRenderer transforms question text before output. The CLI uses it
// for markdown-to-ANSI rendering without coupling the core package to a TUI
// library.
type ContentRenderer func(string) (string, error)

// NewRunner creates a Runner; callers set Input/Output explicitly
// (os.Stdin/os.Stdout in the CLI, buffers in tests).
func NewRunner() *Runner {
	return &Runner{}
}

// Run executes a survey session until a terminal outcome or EOF.
// A nil session starts a fresh one named "simulator". EOF and explicit
// "quit" withdraw the session.
func (r *Runner) Run(engine *Engine, sess *survey.Session) (*survey.Session, error) {
	if r.Input == nil {
		return nil, fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return nil, fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	lineReader := bufio.NewReader(r.Input)
	writer := r.Output

	if sess == nil {
		var err error
		sess, err = engine.Start("simulator")
		if err != nil {
			return nil, err
		}
	}

	cfg := engine.Config()
	for sess.Status == survey.StatusInProgress {
		q := engine.Question(sess.CurrentQuestionID)
		if q == nil {
			return sess, fmt.Errorf("session points at %q: %w", sess.CurrentQuestionID, survey.ErrQuestionNotFound)
		}

		r.printQuestion(writer, engine, sess, q)

		fmt.Fprint(writer, "> ")
		text, err := lineReader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				_, werr := engine.Withdraw(sess)
				if werr != nil {
					return sess, werr
				}
				if perr := r.persist(sess); perr != nil {
					return sess, perr
				}
				break
			}
			return sess, fmt.Errorf("input error: %w", err)
		}
		input := strings.TrimSpace(text)

		if input == "quit" || input == "exit" {
			if _, err := engine.Withdraw(sess); err != nil {
				return sess, err
			}
			if err := r.persist(sess); err != nil {
				return sess, err
			}
			break
		}

		outcome, err := engine.Submit(sess, answerValue(q, input))
		if err != nil {
			if ae, ok := survey.AsAnswerError(err); ok {
				// Re-prompt the same question, never guess.
				fmt.Fprintf(writer, "Sorry, %s. Let me ask again.\n", rejectionHint(ae.Code))
				continue
			}
			return sess, err
		}

		if err := r.persist(sess); err != nil {
			return sess, err
		}

		if outcome.Kind == survey.OutcomeComplete && cfg.CompletionMessage != "" {
			fmt.Fprintln(writer, cfg.CompletionMessage)
		}
		if outcome.Kind == survey.OutcomeAbort && cfg.AbortMessage != "" {
			fmt.Fprintln(writer, cfg.AbortMessage)
		}
	}

	return sess, nil
}

func (r *Runner) persist(sess *survey.Session) error {
	if r.OnTurn == nil {
		return nil
	}
	return r.OnTurn(sess)
}

func (r *Runner) printQuestion(w io.Writer, engine *Engine, sess *survey.Session, q *survey.Question) {
	if engine.Config().ShowProgress && !r.Headless {
		answered, total := engine.Progress(sess)
		fmt.Fprintf(w, "[question %d of %d]\n", answered+1, total)
	}

	text := q.Text
	if r.Renderer != nil {
		if rendered, err := r.Renderer(text); err == nil {
			text = rendered
		}
	}
	fmt.Fprintln(w, strings.TrimSpace(text))

	if r.Headless {
		return
	}
	switch q.Type {
	case survey.TypeMultipleChoice:
		fmt.Fprintf(w, "  options: %s\n", strings.Join(q.Options, ", "))
	case survey.TypeRating:
		hint := fmt.Sprintf("  scale: %d-%d", q.MinValue, q.MaxValue)
		if q.MinLabel != "" || q.MaxLabel != "" {
			hint += fmt.Sprintf(" (%s .. %s)", q.MinLabel, q.MaxLabel)
		}
		fmt.Fprintln(w, hint)
	}
}

// answerValue splits comma-separated input for multi-select questions; every
// other type takes the raw line.
func answerValue(q *survey.Question, input string) any {
	if q.Type == survey.TypeMultipleChoice && q.AllowMultiple && strings.Contains(input, ",") {
		parts := strings.Split(input, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return input
}

func rejectionHint(code survey.FailCode) string {
	switch code {
	case survey.FailAmbiguousYesNo:
		return "I couldn't tell if that was a yes or a no"
	case survey.FailInvalidOption:
		return "that wasn't one of the options"
	case survey.FailOutOfRange:
		return "that number is outside the scale"
	case survey.FailTooLong:
		return "that answer was too long"
	case survey.FailAnswerRequired:
		return "this question needs an answer"
	default:
		return "I didn't catch that"
	}
}
