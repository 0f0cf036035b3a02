// Package metrics defines and registers all custom Prometheus metrics
// for the course marketplace. It is the single source of truth for
// metric names, labels, and help strings; metrics register with the
// default registry at package init via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "coursemarket"

// SignupsTotal counts successful account creations.
// Label:
//   - role: "admin" or "user"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of successful signups, by role.",
	},
	[]string{"role"},
)

// CoursesCreatedTotal counts courses created through the admin catalog.
var CoursesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses created.",
	},
)

// PurchasesTotal counts purchase attempts by outcome.
// Label:
//   - result: "success", "conflict" (already purchased), "unavailable"
//     (missing user or unpublished/missing course), or "error"
var PurchasesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "purchases_total",
		Help:      "Total number of purchase attempts, by result.",
	},
	[]string{"result"},
)

// AuthRejectedTotal counts requests rejected by the auth middleware.
// Label:
//   - reason: "missing_header", "missing_token", "expired", "invalid"
var AuthRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_rejected_total",
		Help:      "Total number of requests rejected during token verification.",
	},
	[]string{"reason"},
)

// CatalogCacheTotal counts published-catalog cache lookups.
// Label:
//   - result: "hit" or "miss"
var CatalogCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_cache_total",
		Help:      "Total number of published-catalog cache lookups, by result.",
	},
	[]string{"result"},
)
