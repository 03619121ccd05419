// Package metrics records export run and stage metrics.
//
// Components receive a Recorder; NoopRecorder is the default so callers never
// check for nil. PrometheusRecorder registers its collectors on a private
// registry which can be written to a node-exporter textfile after each run:
//
//	rec := metrics.NewPrometheusRecorder(nil)
//	exp := exporter.New(cfg, exporter.WithRecorder(rec))
//	...
//	_ = rec.WriteTextfile("/var/lib/node_exporter/patchexport.prom")
package metrics
