package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	StatusOK    = "ok"
	StatusError = "error"
)

var HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_total",
	Help: "Total number of requests labelled by path and status",
}, []string{"path", "status"})

var documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "challan_documents_total",
	Help: "Challan documents processed, labelled by outcome",
}, []string{"status"})

var documentDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "challan_document_duration_seconds",
	Help:    "Time spent extracting a single challan document.",
	Buckets: []float64{.01, .05, .1, .25, .5, 1, 2, 5, 10, 30},
}, []string{"status"})

var batchSize = promauto.NewHistogram(prometheus.HistogramOpts{
	Name:    "challan_batch_size",
	Help:    "Number of documents per extraction run.",
	Buckets: []float64{1, 2, 5, 10, 25, 50, 100},
})

func CaptureDocument(status string, elapsed time.Duration) {
	documentsTotal.WithLabelValues(status).Inc()
	documentDuration.WithLabelValues(status).Observe(elapsed.Seconds())
}

func CaptureBatch(size int) {
	batchSize.Observe(float64(size))
}
