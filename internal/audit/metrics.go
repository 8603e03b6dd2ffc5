package audit

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder exports audit outcomes as Prometheus metrics.
type PrometheusRecorder struct {
	audits       *prometheus.CounterVec
	failedChecks *prometheus.CounterVec
	scores       prometheus.Histogram
}

// NewPrometheusRecorder creates the audit metrics and registers them with reg.
func NewPrometheusRecorder(namespace string, reg prometheus.Registerer) (*PrometheusRecorder, error) {
	r := &PrometheusRecorder{
		audits: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audits_total",
				Help:      "Total number of document audits by outcome",
			},
			[]string{"passed"},
		),
		failedChecks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "audit_check_failures_total",
				Help:      "Total number of failed audit checks",
			},
			[]string{"check", "severity"},
		),
		scores: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "audit_score",
				Help:      "Distribution of audit scores",
				Buckets:   prometheus.LinearBuckets(0, 10, 11),
			},
		),
	}
	for _, c := range []prometheus.Collector{r.audits, r.failedChecks, r.scores} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ObserveAudit implements Recorder.
func (r *PrometheusRecorder) ObserveAudit(res Result) {
	r.audits.WithLabelValues(strconv.FormatBool(res.Passed)).Inc()
	r.scores.Observe(float64(res.Score))
	for _, c := range res.Checks {
		if !c.Passed {
			r.failedChecks.WithLabelValues(c.Name, string(c.Severity)).Inc()
		}
	}
}
