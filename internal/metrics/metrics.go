package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"route", "method", "status"},
	)

	// Payment lifecycle
	PaymentsInitiated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_initiated_total",
			Help: "Total payment initiations accepted",
		},
	)
	PaymentsSettled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_settled_total",
			Help: "Total payments reaching a terminal state",
		},
		[]string{"result"}, // success|failed
	)
	GatewayErrors = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gateway_errors_total",
			Help: "Total failed calls to the payment gateway",
		},
	)

	// OTP
	OTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_requests_total",
			Help: "Total OTP operations against the verify service",
		},
		[]string{"op"}, // send|check
	)

	// Worker queue
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
	prometheus.MustRegister(PaymentsSettled)
	prometheus.MustRegister(GatewayErrors)
	prometheus.MustRegister(OTPRequests)
	prometheus.MustRegister(WorkerQueueDepth)
}
