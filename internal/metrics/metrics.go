// Package metrics exposes the Prometheus collectors of the upload pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imgstore",
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "imgstore",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Uploads
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imgstore",
			Name:      "uploads_total",
			Help:      "Total image uploads by outcome",
		},
		[]string{"extension", "compressed", "status"},
	)

	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imgstore",
			Name:      "upload_bytes_total",
			Help:      "Bytes received and stored",
		},
		[]string{"stage"},
	)

	TranscodeDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "imgstore",
			Name:      "transcode_duration_seconds",
			Help:      "Image re-encoding duration in seconds",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"format", "status"},
	)

	// Object store
	StoreOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imgstore",
			Name:      "store_operations_total",
			Help:      "Total object store operations",
		},
		[]string{"driver", "operation", "status"},
	)

	StoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "imgstore",
			Name:      "store_duration_seconds",
			Help:      "Object store operation duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"driver", "operation"},
	)
)

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "error"
}

// RecordRequest records an HTTP request.
func RecordRequest(method, route, code string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, route, code).Inc()
	RequestDuration.WithLabelValues(method, route).Observe(durationSec)
}

// RecordUpload records the outcome of an upload and, on success, its sizes.
func RecordUpload(ext string, compressed, ok bool, originalBytes, finalBytes int) {
	c := "false"
	if compressed {
		c = "true"
	}
	UploadsTotal.WithLabelValues(ext, c, status(ok)).Inc()
	if ok {
		UploadBytesTotal.WithLabelValues("original").Add(float64(originalBytes))
		UploadBytesTotal.WithLabelValues("final").Add(float64(finalBytes))
	}
}

// RecordTranscode records one re-encoding.
func RecordTranscode(format string, ok bool, durationSec float64) {
	TranscodeDuration.WithLabelValues(format, status(ok)).Observe(durationSec)
}

// RecordStoreOperation records one object store call.
func RecordStoreOperation(driver, operation string, ok bool, durationSec float64) {
	StoreOperationsTotal.WithLabelValues(driver, operation, status(ok)).Inc()
	StoreDuration.WithLabelValues(driver, operation).Observe(durationSec)
}
