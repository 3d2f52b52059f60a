package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	registry       *prom.Registry
	reportDuration *prom.HistogramVec
	reportResults  *prom.CounterVec
	toolDuration   *prom.HistogramVec
	buildDuration  prom.Histogram
	buildOutcome   *prom.CounterVec
	lastBuild      prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics.
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{registry: reg}
	pr.reportDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "docreports",
		Name:      "report_duration_seconds",
		Help:      "Duration of individual report generation",
		Buckets:   prom.DefBuckets,
	}, []string{"report"})
	pr.reportResults = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docreports",
		Name:      "report_results_total",
		Help:      "Report results by outcome",
	}, []string{"report", "result"})
	pr.toolDuration = prom.NewHistogramVec(prom.HistogramOpts{
		Namespace: "docreports",
		Name:      "tool_duration_seconds",
		Help:      "Duration of external tool invocations",
		Buckets:   prom.DefBuckets,
	}, []string{"tool", "result"})
	pr.buildDuration = prom.NewHistogram(prom.HistogramOpts{
		Namespace: "docreports",
		Name:      "build_duration_seconds",
		Help:      "Total build duration",
		Buckets:   prom.DefBuckets,
	})
	pr.buildOutcome = prom.NewCounterVec(prom.CounterOpts{
		Namespace: "docreports",
		Name:      "build_outcomes_total",
		Help:      "Build outcomes by final status",
	}, []string{"outcome"})
	pr.lastBuild = prom.NewGauge(prom.GaugeOpts{
		Namespace: "docreports",
		Name:      "last_build_timestamp_seconds",
		Help:      "Unix time of the last finished build",
	})
	reg.MustRegister(pr.reportDuration, pr.reportResults, pr.toolDuration, pr.buildDuration, pr.buildOutcome, pr.lastBuild)
	return pr
}

// Registry returns the registry the recorder's collectors live on.
func (p *PrometheusRecorder) Registry() *prom.Registry { return p.registry }

func (p *PrometheusRecorder) ObserveReportDuration(report string, d time.Duration) {
	if p == nil || p.reportDuration == nil {
		return
	}
	p.reportDuration.WithLabelValues(report).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncReportResult(report string, result ResultLabel) {
	if p == nil || p.reportResults == nil {
		return
	}
	p.reportResults.WithLabelValues(report, string(result)).Inc()
}

func (p *PrometheusRecorder) ObserveToolDuration(tool string, d time.Duration, success bool) {
	if p == nil || p.toolDuration == nil {
		return
	}
	res := "failed"
	if success {
		res = "success"
	}
	p.toolDuration.WithLabelValues(tool, res).Observe(d.Seconds())
}

func (p *PrometheusRecorder) ObserveBuildDuration(d time.Duration) {
	if p == nil || p.buildDuration == nil {
		return
	}
	p.buildDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncBuildOutcome(outcome BuildOutcomeLabel) {
	if p == nil || p.buildOutcome == nil {
		return
	}
	p.buildOutcome.WithLabelValues(string(outcome)).Inc()
	p.lastBuild.SetToCurrentTime()
}

// WriteTextfile writes all registered metrics in the text exposition format.
// The write is atomic, as required by the node_exporter textfile collector.
func (p *PrometheusRecorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prom.WriteToTextfile(path, p.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
