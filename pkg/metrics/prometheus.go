package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder implements domain.repository.Metrics using Prometheus.
// It owns its registry so a batch run can push exactly its own series.
type Recorder struct {
	reg *prometheus.Registry

	seriesPoints *prometheus.GaugeVec
	errorsTotal  *prometheus.CounterVec
	runDuration  prometheus.Histogram
	runsTotal    prometheus.Counter
	days         prometheus.Gauge
	latest       *prometheus.GaugeVec
	lastSuccess  prometheus.Gauge
}

// New creates a new Prometheus metrics recorder.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Recorder{
		reg: reg,
		seriesPoints: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bubble_series_points",
				Help: "Points parsed per input series in the last run",
			},
			[]string{"series"},
		),
		errorsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "bubble_errors_total",
				Help: "Total number of failed runs by error kind",
			},
			[]string{"kind"},
		),
		runDuration: f.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "bubble_run_duration_seconds",
				Help:    "Duration of a full fetch-compute-write run",
				Buckets: prometheus.DefBuckets,
			},
		),
		runsTotal: f.NewCounter(
			prometheus.CounterOpts{
				Name: "bubble_runs_total",
				Help: "Successful runs",
			},
		),
		days: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "bubble_document_days",
				Help: "Rows in the last written document",
			},
		),
		latest: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "bubble_latest_value",
				Help: "Last row of the document by column",
			},
			[]string{"column"},
		),
		lastSuccess: f.NewGauge(
			prometheus.GaugeOpts{
				Name: "bubble_last_success_timestamp_seconds",
				Help: "Unix time of the last successful run",
			},
		),
	}
}

// RecordSeriesPoints records how many points a series contributed.
func (r *Recorder) RecordSeriesPoints(series string, n int) {
	r.seriesPoints.WithLabelValues(series).Set(float64(n))
}

// RecordError records an error occurrence.
func (r *Recorder) RecordError(kind string) {
	r.errorsTotal.WithLabelValues(kind).Inc()
}

// RecordRun records a successful run.
func (r *Recorder) RecordRun(d time.Duration, days int) {
	r.runDuration.Observe(d.Seconds())
	r.runsTotal.Inc()
	r.days.Set(float64(days))
	r.lastSuccess.SetToCurrentTime()
}

func (r *Recorder) RecordLatest(bubble, hot, growth int) {
	r.latest.WithLabelValues("bubble").Set(float64(bubble))
	r.latest.WithLabelValues("hot").Set(float64(hot))
	r.latest.WithLabelValues("growth_60_day").Set(float64(growth))
}

// Registry exposes the recorder's own registry.
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// Gatherer merges the recorder's registry with the process default one
// (Go runtime and Kafka producer collectors live there).
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return prometheus.Gatherers{r.reg, prometheus.DefaultGatherer}
}

// RegisterProcessCollectors adds Go runtime collectors to the recorder's registry.
// Serve mode calls it; batch runs skip it so pushed groups stay small.
func (r *Recorder) RegisterProcessCollectors() error {
	if err := r.reg.Register(collectors.NewBuildInfoCollector()); err != nil {
		return fmt.Errorf("register build info: %w", err)
	}
	return nil
}

// Push sends the recorder's registry to a Pushgateway, replacing the job's group.
func (r *Recorder) Push(ctx context.Context, url, job string) error {
	if url == "" {
		return nil
	}
	if err := push.New(url, job).Gatherer(r.reg).PushContext(ctx); err != nil {
		return fmt.Errorf("push metrics: %w", err)
	}
	return nil
}
