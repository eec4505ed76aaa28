// Package metrics defines and registers the custom Prometheus metrics of the
// user records API. It is the single source of truth for metric names,
// labels, and help strings.
//
// All collectors are registered with the default registry via promauto, so
// they are exported by the /metrics handler without further wiring.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "userstore"

// ── User metrics ──────────────────────────────────────────────────────────────

// UsersCreatedTotal counts users persisted by a create request.
// Label:
//   - entry: "body" (POST /api/users) or "query" (GET /api/users-insecure/create)
var UsersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "users_created_total",
		Help:      "Total number of users created, by entry point.",
	},
	[]string{"entry"},
)

// InsecureRequestsTotal counts hits on the query-string create endpoint,
// whether or not they end up creating a user.
var InsecureRequestsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "insecure_requests_total",
		Help:      "Total number of create requests that carried credentials in the URL.",
	},
)

// ValidationFailuresTotal counts requests rejected before reaching the store.
// Label:
//   - operation: "create" or "update"
var ValidationFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "validation_failures_total",
		Help:      "Total number of requests rejected by input validation.",
	},
	[]string{"operation"},
)

// ── Store metrics ─────────────────────────────────────────────────────────────

// StoreErrorsTotal counts unexpected store failures (surfaced as 500).
// Label:
//   - operation: "list", "get", "create", "update" or "delete"
var StoreErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_errors_total",
		Help:      "Total number of unexpected record store failures.",
	},
	[]string{"operation"},
)
