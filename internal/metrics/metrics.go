// Package metrics defines and registers all custom Prometheus metrics for
// the PDF-chat API. It is the single source of truth for metric names,
// labels, and help strings, and is deliberately free of transport imports
// so core services can record business counters directly. Metrics register
// with the default registry via promauto at init time; the /metrics route
// is wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pdfchat"

// SignupsTotal counts successfully created accounts.
var SignupsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of user accounts created.",
	},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "rejected"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, labelled by result.",
	},
	[]string{"result"},
)

// ChatsSavedTotal counts chat snapshots appended to user documents.
var ChatsSavedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chats_saved_total",
		Help:      "Total number of chats saved.",
	},
)

// ChatCacheTotal counts chat-list cache lookups.
// Label:
//   - result: "hit" or "miss"
var ChatCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "chat_cache_total",
		Help:      "Total number of chat-list cache lookups, labelled by result (hit/miss).",
	},
	[]string{"result"},
)

// ChatSaveDuration measures how long one save takes against the store.
var ChatSaveDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "chat_save_duration_seconds",
		Help:      "Duration of a single chat append against the backing store.",
		Buckets:   prometheus.DefBuckets,
	},
)
