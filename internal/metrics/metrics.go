// Package metrics provides Prometheus metrics for the monitoring core.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry is the Prometheus registry for all application metrics.
var Registry = prometheus.NewRegistry()

func init() {
	Registry.MustRegister(collectors.NewGoCollector())
	Registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
}

// Handler returns an HTTP handler exposing the registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// MonitorMetrics counts the work done by the reading/alert services.
type MonitorMetrics struct {
	ReadingsSubmitted prometheus.Counter
	AlertsRaised      *prometheus.CounterVec
	AlertsResolved    prometheus.Counter
}

// NewMonitorMetrics creates and registers the monitoring counters on reg.
func NewMonitorMetrics(namespace string, reg prometheus.Registerer) *MonitorMetrics {
	m := &MonitorMetrics{
		ReadingsSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "records",
			Name:      "readings_submitted_total",
			Help:      "Total number of temperature readings submitted",
		}),
		AlertsRaised: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "raised_total",
			Help:      "Total number of alerts raised, by danger level",
		}, []string{"danger"}),
		AlertsResolved: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "alerts",
			Name:      "resolved_total",
			Help:      "Total number of alerts resolved",
		}),
	}
	reg.MustRegister(m.ReadingsSubmitted, m.AlertsRaised, m.AlertsResolved)
	return m
}

// CountReading is nil-safe so services can run without metrics in tests.
func (m *MonitorMetrics) CountReading() {
	if m == nil {
		return
	}
	m.ReadingsSubmitted.Inc()
}

// CountAlertRaised records one raised alert with its danger label.
func (m *MonitorMetrics) CountAlertRaised(danger string) {
	if m == nil {
		return
	}
	m.AlertsRaised.WithLabelValues(danger).Inc()
}

// CountAlertResolved records one resolved alert.
func (m *MonitorMetrics) CountAlertResolved() {
	if m == nil {
		return
	}
	m.AlertsResolved.Inc()
}
