package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "decoderfleet_"

	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

var (
	registerOnce sync.Once

	vendorRequests *prometheus.CounterVec
	vendorLatency  *prometheus.HistogramVec

	scanLatency prometheus.Histogram
	scanFound   prometheus.Gauge
)

// Init registers the metrics with the default registry. Observers are no-ops
// until Init ran, so packages can be used without it.
func Init() {
	registerOnce.Do(func() {
		vendorRequests = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "vendor_requests_total",
				Help: "Total vendor control requests by action and result",
			},
			[]string{"action", "result"},
		)
		vendorLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "vendor_request_duration_seconds",
				Help:    "Vendor control request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"action"},
		)
		scanLatency = prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "scan_duration_seconds",
				Help:    "Duration of a full address pool scan in seconds",
				Buckets: []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
		)
		scanFound = prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: metricPrefix + "scan_decoders_found",
				Help: "Number of reachable decoders found by the last pool scan",
			},
		)

		prometheus.MustRegister(
			vendorRequests,
			vendorLatency,
			scanLatency,
			scanFound,
		)
	})
}

// ObserveVendorRequest records one vendor round trip.
func ObserveVendorRequest(action, result string, duration time.Duration) {
	if result == "" {
		result = ResultOK
	}
	if vendorRequests != nil {
		vendorRequests.WithLabelValues(action, result).Inc()
	}
	if vendorLatency != nil {
		vendorLatency.WithLabelValues(action).Observe(duration.Seconds())
	}
}

// ObserveScan records a pool scan and how many decoders answered.
func ObserveScan(found int, duration time.Duration) {
	if scanLatency != nil {
		scanLatency.Observe(duration.Seconds())
	}
	if scanFound != nil {
		scanFound.Set(float64(found))
	}
}
