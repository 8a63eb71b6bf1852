package metrics

import (
	"io"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "blockrender"

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	nodes          *prom.CounterVec
	degradedMarks  *prom.CounterVec
	unknownTypes   *prom.CounterVec
	renderDuration prom.Histogram
	renderOutcome  *prom.CounterVec
}

var _ Recorder = (*PrometheusRecorder)(nil)

// NewPrometheusRecorder constructs the collectors and registers them on reg
// (a fresh registry when reg is nil).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{
		nodes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "nodes_rendered_total",
			Help:      "Nodes dispatched to a renderer, by class",
		}, []string{"class"}),
		degradedMarks: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "degraded_marks_total",
			Help:      "Marks rendered as plain content because no renderer matched",
		}, []string{"mark_type"}),
		unknownTypes: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "unknown_block_types_total",
			Help:      "Blocks rendered by the unknown-type fallback",
		}, []string{"block_type"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Duration of a full document render",
			Buckets:   prom.DefBuckets,
		}),
		renderOutcome: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "render_outcomes_total",
			Help:      "Document renders by outcome",
		}, []string{"outcome"}),
	}
	reg.MustRegister(pr.nodes, pr.degradedMarks, pr.unknownTypes, pr.renderDuration, pr.renderOutcome)
	return pr
}

func (p *PrometheusRecorder) IncNode(class string) {
	if p == nil {
		return
	}
	p.nodes.WithLabelValues(class).Inc()
}

func (p *PrometheusRecorder) IncDegradedMark(markType string) {
	if p == nil {
		return
	}
	p.degradedMarks.WithLabelValues(markType).Inc()
}

func (p *PrometheusRecorder) IncUnknownType(blockType string) {
	if p == nil {
		return
	}
	p.unknownTypes.WithLabelValues(blockType).Inc()
}

func (p *PrometheusRecorder) ObserveRenderDuration(d time.Duration) {
	if p == nil {
		return
	}
	p.renderDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncRenderOutcome(outcome OutcomeLabel) {
	if p == nil {
		return
	}
	p.renderOutcome.WithLabelValues(string(outcome)).Inc()
}

// WriteText writes every metric family gathered from g in the Prometheus text format.
func WriteText(w io.Writer, g prom.Gatherer) error {
	mfs, err := g.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}
