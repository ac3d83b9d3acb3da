// Package metrics exposes Prometheus collectors for workbook loads and
// dashboard traffic.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Namespace prefixes every metric name.
const Namespace = "xtract"

// Metrics implements sheet.Observer and records HTTP requests.
type Metrics struct {
	loads           *prometheus.CounterVec
	loadDuration    prometheus.Histogram
	records         prometheus.Gauge
	lastLoad        prometheus.Gauge
	requests        *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
}

// New registers the collectors with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		loads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "workbook_loads_total",
			Help:      "Workbook read attempts by result.",
		}, []string{"result"}),
		loadDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "workbook_load_duration_seconds",
			Help:      "Time spent reading the workbook.",
			Buckets:   prometheus.DefBuckets,
		}),
		records: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "workbook_records",
			Help:      "Invoices in the last loaded workbook.",
		}),
		lastLoad: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Name:      "workbook_last_load_timestamp_seconds",
			Help:      "Unix time of the last successful load.",
		}),
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "http_requests_total",
			Help:      "Dashboard requests by route and status code.",
		}, []string{"route", "code"}),
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Dashboard request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"route"}),
	}
}

// LoadSucceeded records a successful workbook read.
func (m *Metrics) LoadSucceeded(_ string, records int, elapsed time.Duration) {
	m.loads.WithLabelValues("success").Inc()
	m.loadDuration.Observe(elapsed.Seconds())
	m.records.Set(float64(records))
	m.lastLoad.SetToCurrentTime()
}

// LoadFailed records a failed workbook read.
func (m *Metrics) LoadFailed(_ string, _ error) {
	m.loads.WithLabelValues("failure").Inc()
	m.records.Set(0)
}

// ObserveRequest records one handled HTTP request.
func (m *Metrics) ObserveRequest(route string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
}
