package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/dialbird/canvass"
	"github.com/dialbird/canvass/pkg/survey"
)

// Metrics holds the engine's Prometheus collectors. Label cardinality stays
// bounded: question IDs come from a validated config, outcome kinds and fail
// codes are closed enums.
type Metrics struct {
	SessionsStarted   prometheus.Counter
	AnswersTotal      *prometheus.CounterVec
	RejectionsTotal   *prometheus.CounterVec
	SessionsFinalized *prometheus.CounterVec
}

// NewMetrics builds the collector set under the canvass_ namespace. The
// collectors are not registered; call Register or hand them to a custom
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		SessionsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "canvass_sessions_started_total",
			Help: "Total number of survey sessions started",
		}),
		AnswersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_answers_total",
			Help: "Total answers applied, by question and outcome kind",
		}, []string{"question_id", "outcome"}),
		RejectionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_rejections_total",
			Help: "Total answers rejected by validation, by question and fail code",
		}, []string{"question_id", "code"}),
		SessionsFinalized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "canvass_sessions_finalized_total",
			Help: "Total sessions reaching a terminal status",
		}, []string{"status"}),
	}
}

// Register adds all collectors to the given registerer.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		m.SessionsStarted,
		m.AnswersTotal,
		m.RejectionsTotal,
		m.SessionsFinalized,
	} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers on the default registry and panics on collision.
func (m *Metrics) MustRegister() {
	prometheus.MustRegister(
		m.SessionsStarted,
		m.AnswersTotal,
		m.RejectionsTotal,
		m.SessionsFinalized,
	)
}

// Hooks returns engine hooks that record into the collectors. Pass the
// result to canvass.WithHooks; wrap it with Merge if the host has its own
// hooks too.
func (m *Metrics) Hooks() canvass.Hooks {
	return canvass.Hooks{
		OnSessionStart: func(sessionID, questionID string) {
			m.SessionsStarted.Inc()
		},
		OnAnswer: func(sessionID, questionID string, outcome survey.Outcome) {
			m.AnswersTotal.WithLabelValues(questionID, string(outcome.Kind)).Inc()
		},
		OnReject: func(sessionID, questionID string, code survey.FailCode) {
			m.RejectionsTotal.WithLabelValues(questionID, string(code)).Inc()
		},
		OnFinalize: func(sessionID string, status survey.Status) {
			m.SessionsFinalized.WithLabelValues(string(status)).Inc()
		},
	}
}

// Merge combines hook sets so metrics and host callbacks both fire. Later
// sets run after earlier ones.
func Merge(sets ...canvass.Hooks) canvass.Hooks {
	var out canvass.Hooks
	out.OnSessionStart = func(sessionID, questionID string) {
		for _, h := range sets {
			if h.OnSessionStart != nil {
				h.OnSessionStart(sessionID, questionID)
			}
		}
	}
	out.OnAnswer = func(sessionID, questionID string, outcome survey.Outcome) {
		for _, h := range sets {
			if h.OnAnswer != nil {
				h.OnAnswer(sessionID, questionID, outcome)
			}
		}
	}
	out.OnReject = func(sessionID, questionID string, code survey.FailCode) {
		for _, h := range sets {
			if h.OnReject != nil {
				h.OnReject(sessionID, questionID, code)
			}
		}
	}
	out.OnFinalize = func(sessionID string, status survey.Status) {
		for _, h := range sets {
			if h.OnFinalize != nil {
				h.OnFinalize(sessionID, status)
			}
		}
	}
	return out
}
