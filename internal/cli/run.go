package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/internal/presentation/tui"
	"github.com/dialbird/canvass/pkg/session"
	"github.com/dialbird/canvass/pkg/survey"
)

// RunSession executes a single interactive survey session.
func RunSession(opts RunOptions) error {
	logger := createLogger(opts.Debug, opts.JSON)

	if !opts.JSON && !opts.Headless {
		tui.PrintBanner()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	engine, err := createEngine(ctx, opts, logger)
	if err != nil {
		return err
	}

	manager, err := setupPersistence(opts, logger)
	if err != nil {
		return err
	}

	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = "local"
	}
	if opts.Fresh {
		if err := manager.Delete(ctx, sessionID); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	sess, err := manager.LoadOrStart(ctx, sessionID, engine.Config().Start())
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}
	if sess.Status.Terminal() {
		fmt.Printf("Session %q already finished (%s). Use --fresh to start over.\n", sessionID, sess.Status)
		return nil
	}

	if opts.JSON {
		return runJSON(ctx, engine, manager, sessionID, sess)
	}

	r := canvass.NewRunner()
	r.Input = os.Stdin
	r.Output = os.Stdout
	r.Headless = opts.Headless
	if !opts.Headless {
		r.Renderer = tui.NewRenderer()
	}
	r.OnTurn = func(s *survey.Session) error {
		return manager.Save(ctx, sessionID, s)
	}

	_, err = r.Run(engine, sess)
	return err
}

// turnOutput is one NDJSON record emitted per turn in --json mode.
type turnOutput struct {
	Question *survey.Question    `json:"question,omitempty"`
	Outcome  *survey.Outcome     `json:"outcome,omitempty"`
	Reject   *survey.AnswerError `json:"reject,omitempty"`
	Status   survey.Status       `json:"status"`
}

// runJSON drives the session over NDJSON: one question record out, one
// {"answer": ...} record in, repeated until a terminal outcome.
func runJSON(ctx context.Context, engine *canvass.Engine, manager *session.Manager, sessionID string, sess *survey.Session) error {
	enc := json.NewEncoder(os.Stdout)
	dec := json.NewDecoder(os.Stdin)

	for sess.Status == survey.StatusInProgress {
		q := engine.Question(sess.CurrentQuestionID)
		if q == nil {
			return fmt.Errorf("session points at %q: %w", sess.CurrentQuestionID, survey.ErrQuestionNotFound)
		}
		if err := enc.Encode(turnOutput{Question: q, Status: sess.Status}); err != nil {
			return err
		}

		var in struct {
			Answer any `json:"answer"`
		}
		if err := dec.Decode(&in); err != nil {
			if err == io.EOF {
				if _, werr := engine.Withdraw(sess); werr != nil {
					return werr
				}
				break
			}
			return fmt.Errorf("input decode error: %w", err)
		}

		outcome, err := engine.Submit(sess, in.Answer)
		if err != nil {
			if ae, ok := survey.AsAnswerError(err); ok {
				if err := enc.Encode(turnOutput{Reject: ae, Status: sess.Status}); err != nil {
					return err
				}
				continue
			}
			return err
		}

		if err := manager.Save(ctx, sessionID, sess); err != nil {
			return err
		}
		if err := enc.Encode(turnOutput{Outcome: &outcome, Status: sess.Status}); err != nil {
			return err
		}
	}

	return manager.Save(ctx, sessionID, sess)
}
