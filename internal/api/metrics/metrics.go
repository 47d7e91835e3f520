// Package metrics defines and registers all custom Prometheus metrics for the
// work report service. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time; the
// router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "workreports"

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// SubmissionsCreatedTotal counts persisted daily reports.
// Label:
//   - attachment: "yes" when the report carried a file, otherwise "no"
var SubmissionsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_created_total",
		Help:      "Total number of daily reports persisted.",
	},
	[]string{"attachment"},
)

// SubmissionsRejectedTotal counts submissions rejected before persistence.
// Label:
//   - reason: "empty_text", "duplicate_date", "file_rejected", or "invalid"
var SubmissionsRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "submissions_rejected_total",
		Help:      "Total number of daily reports rejected, by reason.",
	},
	[]string{"reason"},
)

// AttachmentDownloadsTotal counts successful attachment downloads.
var AttachmentDownloadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "attachment_downloads_total",
		Help:      "Total number of attachments served.",
	},
)

// SubmitDuration measures how long a submit request takes end-to-end.
// Label:
//   - outcome: "created" or "rejected"
var SubmitDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "submit_duration_seconds",
		Help:      "Duration of report submission from request to persistence.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"outcome"},
)
