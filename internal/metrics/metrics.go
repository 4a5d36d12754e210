package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	PaymentsInitiated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_initiated_total",
			Help: "Payment initiations that reached pending state",
		},
		[]string{"kind"}, // top_up|withdrawal|ticket
	)
	PaymentsFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_failed_total",
			Help: "Payment initiations rejected by a processor",
		},
		[]string{"kind"},
	)

	WebhookEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_events_total",
			Help: "Inbound gateway webhook deliveries by outcome",
		},
		[]string{"event", "outcome"}, // settled|miss|ignored|error|unverified
	)

	WorkerQueueDepth = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "worker_queue_depth",
			Help: "Current worker queue depth",
		},
	)
)

var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(PaymentsInitiated)
	prometheus.MustRegister(PaymentsFailed)
	prometheus.MustRegister(WebhookEvents)
	prometheus.MustRegister(WorkerQueueDepth)
}
