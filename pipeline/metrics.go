package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "asyncforge"

// Metrics holds prometheus metrics for pipeline runs.
type Metrics struct {
	runs          *prometheus.CounterVec
	stageDuration *prometheus.HistogramVec
	elements      *prometheus.CounterVec
	issues        *prometheus.CounterVec
}

// NewMetrics creates unregistered pipeline metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "pipeline_runs_total",
				Help:      "Pipeline runs by outcome.",
			},
			[]string{"result"}, // "valid", "invalid" or "failed"
		),
		stageDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "stage_duration_seconds",
				Help:      "Pipeline stage duration in seconds.",
				Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10), // 50µs to ~13s
			},
			[]string{"stage"},
		),
		elements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "elements_processed_total",
				Help:      "Document entries written by the processing stage.",
			},
			[]string{"kind"},
		),
		issues: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "diagnostics_total",
				Help:      "Diagnostics raised by stage and severity.",
			},
			[]string{"stage", "severity"},
		),
	}
}

// Register registers the metrics with registry.
func (m *Metrics) Register(registry prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.runs, m.stageDuration, m.elements, m.issues} {
		if err := registry.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// MustRegister registers the metrics with registry and panics on failure.
func (m *Metrics) MustRegister(registry prometheus.Registerer) {
	registry.MustRegister(m.runs, m.stageDuration, m.elements, m.issues)
}

func (m *Metrics) observeStage(stage string, seconds float64) {
	if m == nil {
		return
	}
	m.stageDuration.WithLabelValues(stage).Observe(seconds)
}

func (m *Metrics) addElements(kind string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.elements.WithLabelValues(kind).Add(float64(n))
}

func (m *Metrics) observeDiagnostics(diags []Diagnostic) {
	if m == nil {
		return
	}
	for _, d := range diags {
		m.issues.WithLabelValues(d.Stage, d.Severity.String()).Inc()
	}
}

func (m *Metrics) observeRun(result string) {
	if m == nil {
		return
	}
	m.runs.WithLabelValues(result).Inc()
}
