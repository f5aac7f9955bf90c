package canvass

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dialbird/canvass/pkg/survey"
)

// Version is the library version, stamped into adapters and the CLI.
var Version = "0.4.1"

// Hooks let hosts observe engine decisions (for metrics or auditing)
// without coupling the core to a backend. Nil members are skipped.
type Hooks struct {
	// OnSessionStart fires when a session is seated at its first question.
	OnSessionStart func(sessionID, questionID string)
	// OnAnswer fires after a turn advances, with the traversal outcome.
	OnAnswer func(sessionID, questionID string, outcome survey.Outcome)
	// OnReject fires when an answer fails validation.
	OnReject func(sessionID, questionID string, code survey.FailCode)
	// OnFinalize fires when a session reaches a terminal status.
	OnFinalize func(sessionID string, status survey.Status)
}

// Engine binds one validated, immutable config snapshot to the traversal
// functions. One Engine serves any number of concurrent calls: it holds no
// per-call state and never mutates the config.
type Engine struct {
	cfg      *survey.Config
	answers  *survey.AnswerValidator
	synonyms *survey.SynonymSet
	logger   *slog.Logger
	hooks    Hooks
	now      func() time.Time
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithLogger sets a structured logger for per-turn debug logging.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks Hooks) Option {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithSynonyms replaces the yes/no vocabulary used to normalize answers.
func WithSynonyms(s survey.SynonymSet) Option {
	return func(e *Engine) {
		e.synonyms = &s
	}
}

// WithClock overrides the time source; tests use it for stable timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New validates cfg and binds an engine to it. A config with violations or
// with Enabled false never reaches live traffic: the error carries the full
// violation list for the authoring UI.
func New(cfg *survey.Config, opts ...Option) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("survey config is required")
	}
	if !cfg.Enabled {
		return nil, survey.ErrConfigDisabled
	}
	if vs := survey.Validate(cfg); len(vs) > 0 {
		return nil, vs
	}

	eng := &Engine{
		cfg: cfg,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(eng)
	}
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	answerOpts := []survey.AnswerOption{survey.WithSkipAllowed(cfg.AllowSkip)}
	if eng.synonyms != nil {
		answerOpts = append(answerOpts, survey.WithSynonyms(*eng.synonyms))
	}
	eng.answers = survey.NewAnswerValidator(answerOpts...)

	return eng, nil
}

// Config returns the bound snapshot. Callers must treat it as read-only.
func (e *Engine) Config() *survey.Config {
	return e.cfg
}

// Question returns the question with the given id, nil if absent.
func (e *Engine) Question(id string) *survey.Question {
	return e.cfg.Question(id)
}

// Inspect returns the full question list for visualization tools.
func (e *Engine) Inspect() []survey.Question {
	return e.cfg.Questions
}

// Start creates a session seated at the survey's start question.
func (e *Engine) Start(sessionID string) (*survey.Session, error) {
	sess := survey.NewSession(sessionID)
	start := e.cfg.Start()
	if err := sess.Begin(start, e.now()); err != nil {
		return nil, err
	}
	e.logger.Debug("session started", "session_id", sessionID, "question", start)
	if e.hooks.OnSessionStart != nil {
		e.hooks.OnSessionStart(sessionID, start)
	}
	return sess, nil
}

// ValidateAnswer normalizes raw input for the given question.
func (e *Engine) ValidateAnswer(questionID string, raw any) (survey.Answer, error) {
	q := e.cfg.Question(questionID)
	if q == nil {
		return survey.Answer{}, fmt.Errorf("validate answer for %q: %w", questionID, survey.ErrQuestionNotFound)
	}
	return e.answers.Validate(q, raw)
}

// Advance resolves the next outcome for an already-normalized answer.
func (e *Engine) Advance(questionID string, ans survey.Answer) (survey.Outcome, error) {
	return survey.Advance(e.cfg, questionID, ans)
}

// Submit runs one full conversational turn: validate the raw answer against
// the session's current question, advance, and move the session. On a
// validation failure the session is untouched and the caller re-prompts.
func (e *Engine) Submit(sess *survey.Session, raw any) (survey.Outcome, error) {
	questionID := sess.CurrentQuestionID

	ans, err := e.ValidateAnswer(questionID, raw)
	if err != nil {
		if ae, ok := survey.AsAnswerError(err); ok {
			e.logger.Debug("answer rejected", "session_id", sess.SessionID, "question", questionID, "code", ae.Code)
			if e.hooks.OnReject != nil {
				e.hooks.OnReject(sess.SessionID, questionID, ae.Code)
			}
		}
		return survey.Outcome{}, err
	}

	outcome, err := e.Advance(questionID, ans)
	if err != nil {
		return survey.Outcome{}, err
	}

	now := e.now()
	if err := sess.Apply(survey.AnswerRecord{
		QuestionID: questionID,
		Raw:        raw,
		Normalized: ans,
		AnsweredAt: now,
	}, outcome, now); err != nil {
		return survey.Outcome{}, err
	}

	e.logger.Debug("turn advanced",
		"session_id", sess.SessionID,
		"question", questionID,
		"outcome", outcome.Kind,
		"next", outcome.QuestionID,
	)
	if e.hooks.OnAnswer != nil {
		e.hooks.OnAnswer(sess.SessionID, questionID, outcome)
	}
	if outcome.IsTerminal() && e.hooks.OnFinalize != nil {
		e.hooks.OnFinalize(sess.SessionID, sess.Status)
	}
	return outcome, nil
}

// Withdraw records explicit respondent withdrawal: the current question gets
// a withdrawn sentinel answer and the session finalizes as abandoned.
func (e *Engine) Withdraw(sess *survey.Session) (survey.Outcome, error) {
	questionID := sess.CurrentQuestionID
	outcome, err := e.Advance(questionID, survey.Withdrawn())
	if err != nil {
		return survey.Outcome{}, err
	}
	now := e.now()
	if err := sess.Apply(survey.AnswerRecord{
		QuestionID: questionID,
		Normalized: survey.Withdrawn(),
		AnsweredAt: now,
	}, outcome, now); err != nil {
		return survey.Outcome{}, err
	}
	e.logger.Debug("session withdrawn", "session_id", sess.SessionID, "question", questionID)
	if e.hooks.OnFinalize != nil {
		e.hooks.OnFinalize(sess.SessionID, sess.Status)
	}
	return outcome, nil
}

// Progress reports answered and total question counts for the advisory
// "question N of M" announcement. Total is the declared question count, not
// the reachable set, matching what the dashboard displays.
func (e *Engine) Progress(sess *survey.Session) (answered, total int) {
	return len(sess.Answers), len(e.cfg.Questions)
}
