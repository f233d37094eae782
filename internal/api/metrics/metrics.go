// Package metrics defines and registers all custom Prometheus metrics for the
// coaching platform API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package init
// via promauto, so importing any of the vars below is enough to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coaching"

// ── Authentication metrics ────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "rejected" (bad credentials), or "error" (store failure)
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// SessionTouchesTotal counts sliding-window renewals on the request hot path.
// Label:
//   - result: "hit" (renewed), "miss" (unknown or expired), or "error"
var SessionTouchesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_touches_total",
		Help:      "Total number of session sliding-window renewals, labelled by result.",
	},
	[]string{"result"},
)

// ── Reaper metrics ────────────────────────────────────────────────────────────

// ReaperRunsTotal counts background reaper ticks.
// Label:
//   - result: "ok" or "error" (store unreachable; retried next tick)
var ReaperRunsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reaper_runs_total",
		Help:      "Total number of session reaper runs, labelled by result.",
	},
	[]string{"result"},
)

// SessionsReapedTotal counts sessions removed by the background reaper.
var SessionsReapedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_reaped_total",
		Help:      "Total number of expired sessions removed by the reaper.",
	},
)

// ── Ownership guard metrics ───────────────────────────────────────────────────

// GuardDecisionsTotal counts ownership guard outcomes per resource family.
// Labels:
//   - resource: "relationship", "coaching_session", or "goal"
//   - decision: "allowed", "denied", "not_found", "bad_request", or "error"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of resource ownership guard decisions.",
	},
	[]string{"resource", "decision"},
)
