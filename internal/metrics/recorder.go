package metrics

import "time"

// OutcomeLabel enumerates render outcomes for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for the render walk.
type Recorder interface {
	// IncNode counts one dispatched node of the given class (list, list-item, span, block).
	IncNode(class string)
	// IncDegradedMark counts a mark rendered without its wrapper.
	IncDegradedMark(markType string)
	// IncUnknownType counts a block rendered by the unknown-type fallback.
	IncUnknownType(blockType string)
	ObserveRenderDuration(d time.Duration)
	IncRenderOutcome(outcome OutcomeLabel)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not configured).
type NoopRecorder struct{}

func (NoopRecorder) IncNode(string)                      {}
func (NoopRecorder) IncDegradedMark(string)              {}
func (NoopRecorder) IncUnknownType(string)               {}
func (NoopRecorder) ObserveRenderDuration(time.Duration) {}
func (NoopRecorder) IncRenderOutcome(OutcomeLabel)       {}
