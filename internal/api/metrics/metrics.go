// Package metrics defines and registers all custom Prometheus metrics for the
// Pirates console. It is the single source of truth for metric names, labels,
// and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation through promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pirates_console"

// ── Navigation metrics ────────────────────────────────────────────────────────

// GuardDecisionsTotal counts navigation guard outcomes.
// Labels:
//   - decision: "allow" or "redirect"
//   - reason: "public", "accepted", "unauthenticated", "wrong_role"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of navigation guard decisions.",
	},
	[]string{"decision", "reason"},
)

// ScreensSupersededTotal counts screen requests abandoned because the same
// session navigated elsewhere before the backend answered.
var ScreensSupersededTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "screens_superseded_total",
		Help:      "Total number of screen loads abandoned by a newer navigation.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionHydrationsTotal counts hydration outcomes.
// Label:
//   - result: "restored", "empty", "malformed", "unavailable"
var SessionHydrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_hydrations_total",
		Help:      "Total number of session hydrations, labelled by outcome.",
	},
	[]string{"result"},
)

// SessionStoreErrorsTotal counts persisted store failures that degraded a
// session to in-memory only.
// Label:
//   - op: "get", "set", "remove"
var SessionStoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_store_errors_total",
		Help:      "Total number of session store failures.",
	},
	[]string{"op"},
)

// SessionsExpiredTotal counts sessions cleared because the stored token was
// expired or undecodable.
var SessionsExpiredTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_expired_total",
		Help:      "Total number of sessions cleared on an invalid or expired token.",
	},
)

// ActiveSessions tracks the number of in-memory session containers.
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Current number of session containers held in memory.",
	},
)

// WriteQueueDepth tracks the number of session writes waiting per worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var WriteQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "session_write_queue_depth",
		Help:      "Current number of session writes pending in each writer channel.",
	},
	[]string{"worker_id"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the Pirates REST API.
// Labels:
//   - endpoint: route template (e.g. "/owner/managers/{id}")
//   - outcome: "ok", "not_found", "unauthorized", "error", "cancelled"
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the backend API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "outcome"},
)
