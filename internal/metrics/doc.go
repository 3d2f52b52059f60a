// Package metrics records report generation metrics.
//
// Components receive a Recorder through dependency injection. NoopRecorder is
// the default, so callers never check for nil:
//
//	type Builder struct {
//	    recorder metrics.Recorder
//	}
//
//	b.recorder.ObserveReportDuration("coverage", time.Since(start))
//
// PrometheusRecorder registers its collectors on a private registry. One-shot
// builds have no scrape endpoint, so the registry is exported with
// WriteTextfile for the node_exporter textfile collector.
package metrics
