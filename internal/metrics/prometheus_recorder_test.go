package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)
	pr.ObserveReportDuration("cloc", 150*time.Millisecond)
	pr.IncReportResult("cloc", ResultRendered)
	pr.IncReportResult("coverage", ResultPlaceholder)
	pr.IncReportResult("coverage", ResultPlaceholder)
	pr.ObserveToolDuration("cloc", time.Second, true)
	pr.ObserveBuildDuration(500 * time.Millisecond)
	pr.IncBuildOutcome(BuildOutcomeDegraded)

	mfs, err := reg.Gather()
	require.NoError(t, err)
	require.NotEmpty(t, mfs)

	counts := map[string]float64{}
	for _, mf := range mfs {
		if mf.GetName() != "docreports_report_results_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			key := ""
			for _, lp := range m.GetLabel() {
				key += lp.GetName() + "=" + lp.GetValue() + ";"
			}
			counts[key] = m.GetCounter().GetValue()
		}
	}
	require.InDelta(t, 2, counts["report=coverage;result=placeholder;"], 0)
	require.InDelta(t, 1, counts["report=cloc;result=rendered;"], 0)
}

func TestPrometheusRecorder_WriteTextfile(t *testing.T) {
	pr := NewPrometheusRecorder(nil)
	pr.IncReportResult("cloc", ResultSkipped)

	path := filepath.Join(t.TempDir(), "textfile", "docreports.prom")
	require.NoError(t, pr.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), `docreports_report_results_total{report="cloc",result="skipped"} 1`)
}

func TestNilPrometheusRecorder(t *testing.T) {
	var pr *PrometheusRecorder
	require.NotPanics(t, func() {
		pr.ObserveReportDuration("cloc", time.Second)
		pr.IncReportResult("cloc", ResultFailed)
		pr.ObserveToolDuration("cloc", time.Second, false)
		pr.ObserveBuildDuration(time.Second)
		pr.IncBuildOutcome(BuildOutcomeFailed)
	})
}
