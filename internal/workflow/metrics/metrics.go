package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TransitionsApplied  *prometheus.CounterVec
	TransitionsRejected *prometheus.CounterVec
	BulkItems           *prometheus.CounterVec
	BulkDuration        prometheus.Histogram
	PipelineBuilds      prometheus.Counter
	SummaryCacheHits    prometheus.Counter
	SummaryCacheMisses  prometheus.Counter
}

func New() *Metrics {
	return &Metrics{
		TransitionsApplied: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sgc_workflow_transitions_applied_total",
			Help: "Total number of state transitions applied, per module",
		}, []string{"module"}),
		TransitionsRejected: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sgc_workflow_transitions_rejected_total",
			Help: "Total number of illegal transition attempts rejected, per module",
		}, []string{"module"}),
		BulkItems: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "sgc_workflow_bulk_items_total",
			Help: "Per-item outcomes of bulk transition operations",
		}, []string{"module", "outcome"}),
		BulkDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "sgc_workflow_bulk_duration_seconds",
			Help:    "Wall time of bulk transition operations",
			Buckets: prometheus.DefBuckets,
		}),
		PipelineBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sgc_workflow_pipeline_builds_total",
			Help: "Total number of pipeline aggregations served",
		}),
		SummaryCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sgc_workflow_summary_cache_hits_total",
			Help: "Dashboard summary cache hits",
		}),
		SummaryCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "sgc_workflow_summary_cache_misses_total",
			Help: "Dashboard summary cache misses",
		}),
	}
}

func (m *Metrics) ObserveTransitionApplied(module string) {
	m.TransitionsApplied.WithLabelValues(module).Inc()
}

func (m *Metrics) ObserveTransitionRejected(module string) {
	m.TransitionsRejected.WithLabelValues(module).Inc()
}

func (m *Metrics) ObserveBulkOutcome(module string, succeeded, failed int) {
	m.BulkItems.WithLabelValues(module, "succeeded").Add(float64(succeeded))
	m.BulkItems.WithLabelValues(module, "failed").Add(float64(failed))
}

func (m *Metrics) ObserveBulkDuration(d time.Duration) {
	m.BulkDuration.Observe(d.Seconds())
}

func (m *Metrics) IncrementPipelineBuilds() {
	m.PipelineBuilds.Inc()
}

func (m *Metrics) IncrementSummaryCacheHit() {
	m.SummaryCacheHits.Inc()
}

func (m *Metrics) IncrementSummaryCacheMiss() {
	m.SummaryCacheMisses.Inc()
}
