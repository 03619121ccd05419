package metrics

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/patchexport/internal/foundation/errors"
)

const namespace = "patchexport"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry      *prom.Registry
	stageDuration *prom.HistogramVec
	runDuration   prom.Histogram
	stageResults  *prom.CounterVec
	stageChanges  *prom.CounterVec
	runOutcomes   *prom.CounterVec
	lastRun       prom.Gauge
}

// NewPrometheusRecorder constructs the collectors and registers them on reg,
// or on a fresh registry when reg is nil.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.stageDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "stage_duration_seconds",
		Help:      "Duration of individual export stages",
		Buckets:   prom.DefBuckets,
	}, []string{"stage"})
	pr.runDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: namespace,
		Name:      "run_duration_seconds",
		Help:      "Total export run duration",
		Buckets:   prom.DefBuckets,
	})
	pr.stageResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_results_total",
		Help:      "Stage result counts by outcome",
	}, []string{"stage", "result"})
	pr.stageChanges = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "stage_changes_total",
		Help:      "Stages that modified project files",
	}, []string{"stage"})
	pr.runOutcomes = prom.NewCounterVec(prom.CounterOpts{
		Namespace: namespace,
		Name:      "run_outcomes_total",
		Help:      "Export runs by final status",
	}, []string{"outcome"})
	pr.lastRun = prom.NewGauge(prom.GaugeOpts{
		Namespace: namespace,
		Name:      "last_run_timestamp_seconds",
		Help:      "Unix time of the last finished export run",
	})
	reg.MustRegister(pr.stageDuration, pr.runDuration, pr.stageResults, pr.stageChanges, pr.runOutcomes, pr.lastRun)
	return pr
}

// Registry returns the registry holding the recorder's collectors.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveStageDuration(stage string, d time.Duration) {
	if p == nil {
		return
	}
	p.stageDuration.WithLabelValues(stage).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveRunDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.runDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncStageResult(stage string, result ResultLabel) {
	if p == nil {
		return
	}
	p.stageResults.WithLabelValues(stage, string(result)).Inc()
}

func (p *PrometheusRecorder) IncStageChanged(stage string) {
	if p == nil {
		return
	}
	p.stageChanges.WithLabelValues(stage).Inc()
}

func (p *PrometheusRecorder) IncRunOutcome(outcome string) {
	if p == nil {
		return
	}
	p.runOutcomes.WithLabelValues(outcome).Inc()
	p.lastRun.SetToCurrentTime()
}

// WriteTextfile writes the current metric values in the text exposition
// format, replacing path atomically.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics textfile").
			WithContext("path", path).Build()
	}
	return nil
}
