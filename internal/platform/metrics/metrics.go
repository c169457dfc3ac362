package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains the Prometheus metrics of the voucher engine
type Metrics struct {
	// Voucher metrics
	VouchersCreated    *prometheus.CounterVec
	VoucherTransitions *prometheus.CounterVec
	VoucherRejections  *prometheus.CounterVec
	PostedAmount       *prometheus.CounterVec

	// HTTP metrics
	HTTPRequests *prometheus.CounterVec
}

// NewMetrics initializes and registers metrics on the default registerer
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers metrics with a custom registry
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		VouchersCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voucher_created_total",
			Help: "The total number of vouchers created, by voucher type",
		}, []string{"type"}),
		VoucherTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voucher_transitions_total",
			Help: "The total number of successful lifecycle transitions",
		}, []string{"type", "action"}),
		VoucherRejections: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voucher_rejections_total",
			Help: "The total number of voucher operations rejected by a business rule",
		}, []string{"kind"}),
		PostedAmount: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voucher_posted_amount_total",
			Help: "Sum of persisted amounts of posted vouchers",
		}, []string{"type"}),
		HTTPRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "voucher_http_requests_total",
			Help: "The total number of HTTP requests by route and status",
		}, []string{"method", "route", "status"}),
	}
}

// The helpers below are nil-safe so services can run without metrics.

func (m *Metrics) RecordCreated(voucherType string) {
	if m == nil {
		return
	}
	m.VouchersCreated.WithLabelValues(voucherType).Inc()
}

func (m *Metrics) RecordTransition(voucherType, action string) {
	if m == nil {
		return
	}
	m.VoucherTransitions.WithLabelValues(voucherType, action).Inc()
}

func (m *Metrics) RecordRejection(kind string) {
	if m == nil {
		return
	}
	m.VoucherRejections.WithLabelValues(kind).Inc()
}

func (m *Metrics) RecordPosted(voucherType string, amount float64) {
	if m == nil {
		return
	}
	m.PostedAmount.WithLabelValues(voucherType).Add(amount)
}

func (m *Metrics) RecordRequest(method, route string, status int) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
}
