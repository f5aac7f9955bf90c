package survey

import (
	"fmt"
	"time"
)

// Status is the lifecycle state of one survey session.
type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusAbandoned  Status = "abandoned"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// AnswerRecord is one transcript entry: the raw utterance and its normalized
// value for the question it answered.
type AnswerRecord struct {
	QuestionID string    `json:"question_id"`
	Raw        any       `json:"raw_answer"`
	Normalized Answer    `json:"normalized_value"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Session is the per-call runtime record. One session exists per active
// phone call and is owned exclusively by that call; the engine never
// inspects or mutates it; the caller advances it with Apply based on
// traversal outcomes.
type Session struct {
	SessionID         string         `json:"session_id"`
	CurrentQuestionID string         `json:"current_question_id"`
	Answers           []AnswerRecord `json:"answers"`
	Status            Status         `json:"status"`
	StartedAt         time.Time      `json:"started_at,omitempty"`
	EndedAt           time.Time      `json:"ended_at,omitempty"`
}

// NewSession creates a session that has not yet asked anything.
func NewSession(sessionID string) *Session {
	return &Session{
		SessionID: sessionID,
		Status:    StatusNotStarted,
	}
}

// Begin seats the session at the first question. Legal only from
// not_started.
func (s *Session) Begin(startQuestionID string, now time.Time) error {
	if s.Status != StatusNotStarted {
		return s.transitionErr(StatusInProgress)
	}
	if startQuestionID == "" {
		return fmt.Errorf("begin session %q: empty start question", s.SessionID)
	}
	s.CurrentQuestionID = startQuestionID
	s.Status = StatusInProgress
	s.StartedAt = now
	return nil
}

// Apply appends rec to the transcript and moves the session according to the
// traversal outcome. Legal only while in_progress.
func (s *Session) Apply(rec AnswerRecord, outcome Outcome, now time.Time) error {
	if s.Status != StatusInProgress {
		if s.Status.Terminal() {
			return fmt.Errorf("session %q: %w", s.SessionID, ErrSessionFinalized)
		}
		return s.transitionErr(StatusInProgress)
	}

	s.Answers = append(s.Answers, rec)
	switch outcome.Kind {
	case OutcomeNext:
		s.CurrentQuestionID = outcome.QuestionID
	case OutcomeComplete:
		s.Status = StatusCompleted
		s.CurrentQuestionID = ""
		s.EndedAt = now
	case OutcomeAbort:
		s.Status = StatusAbandoned
		s.CurrentQuestionID = ""
		s.EndedAt = now
	default:
		return fmt.Errorf("session %q: unknown outcome %q", s.SessionID, outcome.Kind)
	}
	return nil
}

// Abandon finalizes the session early: hang-up, abort outcome, or the
// runtime's attempt budget running out. Legal from not_started and
// in_progress; idempotence is left to the caller.
func (s *Session) Abandon(now time.Time) error {
	if s.Status.Terminal() {
		return fmt.Errorf("session %q: %w", s.SessionID, ErrSessionFinalized)
	}
	s.Status = StatusAbandoned
	s.CurrentQuestionID = ""
	s.EndedAt = now
	return nil
}

func (s *Session) transitionErr(to Status) error {
	return fmt.Errorf("session %q: illegal transition %s -> %s", s.SessionID, s.Status, to)
}

// Response is the record the runtime persists after a session ends.
// CompletionRate is a derived reporting value owned by this layer, not by
// the traversal engine.
type Response struct {
	SessionID      string         `json:"session_id"`
	Answers        []AnswerRecord `json:"answers"`
	Status         Status         `json:"status"`
	CompletionRate float64        `json:"completion_rate"`
}

// BuildResponse derives the result record from a finalized session.
// totalReachable is the number of questions the runtime actually reached
// (answered plus, for abandoned sessions, the one left pending).
func BuildResponse(s *Session, totalReachable int) Response {
	rate := 0.0
	if totalReachable > 0 {
		rate = float64(len(s.Answers)) / float64(totalReachable)
	}
	return Response{
		SessionID:      s.SessionID,
		Answers:        s.Answers,
		Status:         s.Status,
		CompletionRate: rate,
	}
}

// Clone returns a deep copy safe to hand across goroutines or stores.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	out := *s
	out.Answers = make([]AnswerRecord, len(s.Answers))
	copy(out.Answers, s.Answers)
	return &out
}
