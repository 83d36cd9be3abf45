// Package metrics exposes prometheus instruments for the quick-ship workflow.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	BookingsSubmittedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickship_bookings_submitted_total",
		Help: "Total number of shipments successfully submitted to the booking provider.",
	})

	LabelsIssuedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickship_labels_issued_total",
		Help: "Total number of labels issued, including soft successes without a URL.",
	})

	QuickShipErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "quickship_errors_total",
		Help: "Total number of quick-ship runs that terminated with an error, by stage.",
	},
		[]string{"stage"},
	)

	LabelAttemptsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quickship_label_attempts_total",
		Help: "Total number of label provider calls, retries included.",
	})

	PendingLabelOrders = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "quickship_pending_label_orders",
		Help: "Current number of orders in the in-memory pending-label view.",
	})
)
