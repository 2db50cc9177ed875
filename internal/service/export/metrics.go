package export

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricExportsTotal          = "sales_tracker_exports_total"
	MetricExportDurationSeconds = "sales_tracker_export_duration_seconds"
)

// Metrics records export counts and latency by report kind, format and outcome.
type Metrics struct {
	exportsTotal   *prometheus.CounterVec
	exportDuration *prometheus.HistogramVec
}

// NewMetrics registers the export collectors with reg. A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		exportsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricExportsTotal,
			Help: "Number of report exports by kind, format and status.",
		}, []string{"kind", "format", "status"}),
		exportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricExportDurationSeconds,
			Help:    "Time spent building and rasterizing a report.",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		}, []string{"kind", "format"}),
	}
	if reg != nil {
		reg.MustRegister(m.exportsTotal, m.exportDuration)
	}
	return m
}

func (m *Metrics) observe(kind, format string, started time.Time, err error) {
	if m == nil {
		return
	}
	status := "success"
	if err != nil {
		status = "error"
	}
	m.exportsTotal.WithLabelValues(kind, format, status).Inc()
	m.exportDuration.WithLabelValues(kind, format).Observe(time.Since(started).Seconds())
}
