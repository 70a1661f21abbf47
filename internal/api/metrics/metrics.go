// Package metrics defines and registers all custom Prometheus metrics for
// the AutoVision dealership API. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics register with the default Prometheus registry at package init;
// the /metrics endpoint exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "autovision"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts sign-in attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of sign-in attempts, by result.",
	},
	[]string{"result"},
)

// TokenRefreshesTotal counts silent token refresh calls.
// Label:
//   - result: "success" or "failure"
var TokenRefreshesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "token_refreshes_total",
		Help:      "Total number of refresh-token exchanges, by result.",
	},
	[]string{"result"},
)

// ── Vehicle metrics ───────────────────────────────────────────────────────────

// VehiclesCreatedTotal counts newly created listings.
// Label:
//   - status: commercial status at creation ("available", "reserved", "sold")
var VehiclesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "vehicles_created_total",
		Help:      "Total number of vehicle listings created, by commercial status.",
	},
	[]string{"status"},
)

// ApprovalTransitionsTotal counts moderation state changes.
// Labels:
//   - from: previous approval status
//   - to: new approval status
var ApprovalTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "approval_transitions_total",
		Help:      "Total number of approval status transitions.",
	},
	[]string{"from", "to"},
)

// ── Activity trail metrics ────────────────────────────────────────────────────

// ActivityQueueDepth tracks entries waiting in each dispatcher worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var ActivityQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "activity_queue_depth",
		Help:      "Current number of activity entries pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ActivityWriteFailuresTotal counts audit entries that could not be persisted.
// These failures are absorbed; the counter is the only externally visible
// trace of a lost entry.
var ActivityWriteFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "activity_write_failures_total",
		Help:      "Total number of activity log entries dropped due to persistence errors.",
	},
)
