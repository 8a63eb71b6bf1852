// Package metrics provides render observability for blockrender.
//
// Components receive a Recorder through their configuration. NoopRecorder is
// the default, so recording never needs a nil check:
//
//	cfg := render.Config[*html.Node]{Recorder: metrics.NoopRecorder{}}
//
// PrometheusRecorder forwards to Prometheus collectors registered on a
// caller-supplied registry; WriteText dumps that registry in the text
// exposition format.
package metrics
