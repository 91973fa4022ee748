package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds the service's prometheus collectors behind a private
// registry so default-registry collisions cannot occur in tests.
type Registry struct {
	reg *prometheus.Registry

	FetchTotal      prometheus.Counter
	FetchFailures   prometheus.Counter
	FetchDuration   prometheus.Histogram
	SnapshotRecords prometheus.Gauge
	Renders         *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	fetchTotal := prometheus.NewCounter(prometheus.CounterOpts{Name: "boxoffice_upstream_fetch_total"})
	fetchFailures := prometheus.NewCounter(prometheus.CounterOpts{Name: "boxoffice_upstream_fetch_failures_total"})
	fetchDuration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "boxoffice_upstream_fetch_duration_seconds",
		Buckets: prometheus.DefBuckets,
	})
	snapshotRecords := prometheus.NewGauge(prometheus.GaugeOpts{Name: "boxoffice_snapshot_records"})
	renders := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "boxoffice_renders_total"}, []string{"view"})

	r.MustRegister(fetchTotal, fetchFailures, fetchDuration, snapshotRecords, renders)
	return &Registry{
		reg:             r,
		FetchTotal:      fetchTotal,
		FetchFailures:   fetchFailures,
		FetchDuration:   fetchDuration,
		SnapshotRecords: snapshotRecords,
		Renders:         renders,
	}
}

// ObserveFetch records one upstream call. Safe on a nil registry so callers
// can run without metrics wired.
func (r *Registry) ObserveFetch(d time.Duration, count int, err error) {
	if r == nil {
		return
	}
	r.FetchTotal.Inc()
	if err != nil {
		r.FetchFailures.Inc()
		return
	}
	r.FetchDuration.Observe(d.Seconds())
	r.SnapshotRecords.Set(float64(count))
}

// ObserveRender counts one completed render for the named view.
func (r *Registry) ObserveRender(view string) {
	if r == nil {
		return
	}
	r.Renders.WithLabelValues(view).Inc()
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }
