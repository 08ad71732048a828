package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records revalidation job runs.
//
//   - revalidate_job_runs_total{status}: runs by outcome (success, failure)
//   - revalidate_job_duration_seconds: run duration, warm-up included
//   - revalidate_job_entries_removed_total: cache entries dropped
//   - revalidate_job_last_success_timestamp: time of the last successful run
type Metrics struct {
	JobRunsTotal         *prometheus.CounterVec
	JobDurationSeconds   prometheus.Histogram
	EntriesRemovedTotal  prometheus.Counter
	LastSuccessTimestamp prometheus.Gauge
}

// NewMetrics creates the job metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		JobRunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Name: "revalidate_job_runs_total",
			Help: "Total number of revalidation job runs by status (success/failure)",
		}, []string{"status"}),
		JobDurationSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "revalidate_job_duration_seconds",
			Help:    "Duration of revalidation job runs in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30},
		}),
		EntriesRemovedTotal: f.NewCounter(prometheus.CounterOpts{
			Name: "revalidate_job_entries_removed_total",
			Help: "Total number of cache entries removed by scheduled revalidation",
		}),
		LastSuccessTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "revalidate_job_last_success_timestamp",
			Help: "Unix timestamp of the last successful revalidation run",
		}),
	}
}

func (m *Metrics) recordRun(status string, seconds float64) {
	if m == nil {
		return
	}
	m.JobRunsTotal.WithLabelValues(status).Inc()
	m.JobDurationSeconds.Observe(seconds)
	if status == "success" {
		m.LastSuccessTimestamp.SetToCurrentTime()
	}
}

func (m *Metrics) recordRemoved(n int) {
	if m == nil {
		return
	}
	m.EntriesRemovedTotal.Add(float64(n))
}
