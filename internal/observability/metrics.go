package observability

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const pushJob = "seo_competitor"

// Metrics collects per-run measurements on a private registry so a run can
// be pushed to a Pushgateway as a unit.
type Metrics struct {
	Registry *prometheus.Registry

	FetchTotal    *prometheus.CounterVec
	FetchDuration prometheus.Histogram
	KeywordHits   *prometheus.GaugeVec
	LastRun       prometheus.Gauge
}

func NewMetrics() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		FetchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_competitor_fetch_total",
				Help: "Competitor page fetches by outcome",
			},
			[]string{"outcome"},
		),
		FetchDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "seo_competitor_fetch_duration_seconds",
				Help:    "Time spent fetching one competitor page",
				Buckets: prometheus.ExponentialBuckets(0.1, 2, 8),
			},
		),
		KeywordHits: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "seo_competitor_keyword_hits",
				Help: "Tracked keywords found on a competitor page",
			},
			[]string{"url"},
		),
		LastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "seo_competitor_last_run_timestamp_seconds",
				Help: "Unix time the last analysis run finished",
			},
		),
	}
	m.Registry.MustRegister(m.FetchTotal, m.FetchDuration, m.KeywordHits, m.LastRun)
	return m
}

func (m *Metrics) ObserveFetch(outcome string, elapsed time.Duration) {
	m.FetchTotal.WithLabelValues(outcome).Inc()
	m.FetchDuration.Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveKeywordHits(url string, hits int) {
	m.KeywordHits.WithLabelValues(url).Set(float64(hits))
}

// Push sends the registry to the Pushgateway at url, replacing the previous
// run's metrics for this job.
func (m *Metrics) Push(ctx context.Context, url string) error {
	m.LastRun.SetToCurrentTime()
	if err := push.New(url, pushJob).Gatherer(m.Registry).PushContext(ctx); err != nil {
		return fmt.Errorf("failed to push metrics to %s: %w", url, err)
	}
	return nil
}
