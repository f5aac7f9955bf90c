// Package http exposes the survey engine over a JSON REST API. Stateless
// endpoints (validation, advancement) serve authoring tools; session
// endpoints drive live calls through a session.Manager so concurrent
// turns for the same call serialize correctly.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/internal/presentation/graph"
	"github.com/dialbird/canvass/pkg/session"
	"github.com/dialbird/canvass/pkg/survey"
)

// Server routes survey API requests to the engine and session manager.
type Server struct {
	Engine   *canvass.Engine
	Sessions *session.Manager
	Logger   *slog.Logger
}

// NewHandler builds the router. Sessions may be nil; session endpoints then
// answer 503 so a validation-only deployment needs no store.
func NewHandler(engine *canvass.Engine, sessions *session.Manager, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{Engine: engine, Sessions: sessions, Logger: logger}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/graph", s.GetGraph)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/configs/validate", s.ValidateConfig)
	r.Post("/answers/validate", s.ValidateAnswer)
	r.Post("/advance", s.Advance)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Post("/", s.CreateSession)
		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.AbandonSession)
			r.Post("/answers", s.SubmitAnswer)
		})
	})

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ValidateConfigResponse reports validator output for a candidate config.
type ValidateConfigResponse struct {
	Valid      bool               `json:"valid"`
	Violations []survey.Violation `json:"violations,omitempty"`
}

// ValidateConfig handles POST /configs/validate. The body is a raw survey
// config; the response lists every violation, never just the first.
func (s *Server) ValidateConfig(w http.ResponseWriter, r *http.Request) {
	var raw map[string]any
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.Logger.Warn("validate config: invalid body", "err", err)
		return
	}

	cfg, err := survey.DecodeConfigMap(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Config decode error: %v", err), http.StatusBadRequest)
		return
	}

	vs := survey.Validate(cfg)
	writeJSON(w, s.Logger, ValidateConfigResponse{
		Valid:      len(vs) == 0,
		Violations: vs,
	})
}

// AnswerRequest carries one respondent utterance against one question.
type AnswerRequest struct {
	QuestionID string `json:"question_id"`
	Answer     any    `json:"answer"`
}

// AnswerResult is either a normalized answer or a rejection; exactly one of
// Answer and Rejection is set.
type AnswerResult struct {
	Valid     bool                `json:"valid"`
	Answer    *survey.Answer      `json:"answer,omitempty"`
	Rejection *survey.AnswerError `json:"rejection,omitempty"`
}

// ValidateAnswer handles POST /answers/validate.
func (s *Server) ValidateAnswer(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ans, err := s.Engine.ValidateAnswer(body.QuestionID, body.Answer)
	if err != nil {
		if ae, ok := survey.AsAnswerError(err); ok {
			writeJSON(w, s.Logger, AnswerResult{Valid: false, Rejection: ae})
			return
		}
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.Logger, AnswerResult{Valid: true, Answer: &ans})
}

// AdvanceResponse carries a traversal outcome.
type AdvanceResponse struct {
	Outcome survey.Outcome `json:"outcome"`
}

// Advance handles POST /advance: a stateless validate-then-branch turn, used
// by callers that keep session state themselves.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	var body AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ans, err := s.Engine.ValidateAnswer(body.QuestionID, body.Answer)
	if err != nil {
		if ae, ok := survey.AsAnswerError(err); ok {
			http.Error(w, ae.Error(), http.StatusUnprocessableEntity)
			return
		}
		s.writeError(w, err)
		return
	}

	outcome, err := s.Engine.Advance(body.QuestionID, ans)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.Logger, AdvanceResponse{Outcome: outcome})
}

// CreateSessionRequest names the session to start.
type CreateSessionRequest struct {
	SessionID string `json:"session_id"`
}

// CreateSession handles POST /sessions. Creating an already-existing session
// returns its current state unchanged, so call retries are safe.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireSessions(w) {
		return
	}
	var body CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(body.SessionID) == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	sess, err := s.Sessions.LoadOrStart(r.Context(), body.SessionID, s.Engine.Config().Start())
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
	writeJSON(w, s.Logger, sess)
}

// SubmitAnswer handles POST /sessions/{sessionID}/answers. The full turn
// runs under the session lock so two carriers retrying the same call cannot
// double-apply an answer.
func (s *Server) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	if !s.requireSessions(w) {
		return
	}
	sessionID := chi.URLParam(r, "sessionID")

	var body struct {
		Answer any `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var sess *survey.Session
	var outcome survey.Outcome
	// Load and Save go through the raw store: WithLock already holds the
	// session lock and the manager's own methods would re-acquire it.
	store := s.Sessions.Store()
	err := s.Sessions.WithLock(r.Context(), sessionID, func(ctx context.Context) error {
		var err error
		sess, err = store.Load(ctx, sessionID)
		if err != nil {
			return err
		}
		outcome, err = s.Engine.Submit(sess, body.Answer)
		if err != nil {
			return err
		}
		return store.Save(ctx, sessionID, sess)
	})
	if err != nil {
		if ae, ok := survey.AsAnswerError(err); ok {
			writeJSON(w, s.Logger, AnswerResult{Valid: false, Rejection: ae})
			return
		}
		s.writeError(w, err)
		return
	}

	writeJSON(w, s.Logger, struct {
		Outcome survey.Outcome  `json:"outcome"`
		Session *survey.Session `json:"session"`
	}{Outcome: outcome, Session: sess})
}

// GetSession handles GET /sessions/{sessionID}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireSessions(w) {
		return
	}
	sess, err := s.Sessions.Load(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.Logger, sess)
}

// AbandonSession handles DELETE /sessions/{sessionID}: the call dropped, so
// the session finalizes as abandoned but its answers are kept.
func (s *Server) AbandonSession(w http.ResponseWriter, r *http.Request) {
	if !s.requireSessions(w) {
		return
	}
	sess, err := s.Sessions.Abandon(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.Logger, sess)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	if !s.requireSessions(w) {
		return
	}
	ids, err := s.Sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, s.Logger, struct {
		Sessions []string `json:"sessions"`
	}{Sessions: ids})
}

// GetGraph handles GET /graph. With ?format=mermaid it returns the Mermaid
// flowchart; otherwise the question list as JSON.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "mermaid" {
		w.Header().Set("Content-Type", "text/vnd.mermaid")
		fmt.Fprint(w, graph.GenerateMermaid(s.Engine.Config(), nil))
		return
	}
	writeJSON(w, s.Logger, s.Engine.Inspect())
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{"status": "ok"})
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.Logger, map[string]string{
		"app":     "canvass-http",
		"version": strings.TrimSpace(canvass.Version),
	})
}

func (s *Server) requireSessions(w http.ResponseWriter) bool {
	if s.Sessions == nil {
		http.Error(w, "Session store not configured", http.StatusServiceUnavailable)
		return false
	}
	return true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, survey.ErrQuestionNotFound), errors.Is(err, survey.ErrSessionNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, survey.ErrSessionFinalized):
		http.Error(w, err.Error(), http.StatusConflict)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
		s.Logger.Error("request failed", "err", err)
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}
