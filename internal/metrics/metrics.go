package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubpay_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clubpay_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TrainingsCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubpay_trainings_created_total",
			Help: "Total number of recorded trainings",
		},
	)

	TrainingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubpay_training_transitions_total",
			Help: "Total number of training status changes",
		},
		[]string{"from", "to"},
	)

	PaymentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubpay_payments_total",
			Help: "Total number of settled payments",
		},
	)

	PaidOutCents = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubpay_paid_out_cents_total",
			Help: "Sum of all settled compensation in cents",
		},
	)

	SettlementFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubpay_settlement_failures_total",
			Help: "Total number of rejected settlements",
		},
		[]string{"reason"},
	)

	PaymentReversalsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubpay_payment_reversals_total",
			Help: "Total number of reversed payments",
		},
	)

	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubpay_notifications_total",
			Help: "Total number of payout notifications",
		},
		[]string{"type", "status"},
	)

	NotificationQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "clubpay_notification_queue_length",
			Help: "Current length of the payout notification queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTrainingCreated() {
	TrainingsCreatedTotal.Inc()
}

func RecordTrainingTransition(from, to string) {
	TrainingTransitionsTotal.WithLabelValues(from, to).Inc()
}

func RecordPayment(totalCents int64) {
	PaymentsTotal.Inc()
	PaidOutCents.Add(float64(totalCents))
}

func RecordSettlementFailure(reason string) {
	SettlementFailuresTotal.WithLabelValues(reason).Inc()
}

func RecordPaymentReversal() {
	PaymentReversalsTotal.Inc()
}

func RecordNotification(kind, status string) {
	NotificationsTotal.WithLabelValues(kind, status).Inc()
}
