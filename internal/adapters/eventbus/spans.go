package eventbus

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/mason/internal/core/domain"
)

// SpanListener mirrors step events onto OpenTelemetry spans, one span per
// action. With no tracer provider installed the spans are no-ops, so the
// listener is safe to attach unconditionally.
type SpanListener struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

// NewSpanListener creates a listener using the named tracer.
func NewSpanListener(name string) *SpanListener {
	return &SpanListener{
		tracer: otel.Tracer(name),
		spans:  make(map[string]trace.Span),
	}
}

// Handle is the bus listener func.
func (l *SpanListener) Handle(event domain.Event) {
	step, ok := event.(domain.StepEvent)
	if !ok {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	switch step.Status {
	case domain.StepStarted:
		_, span := l.tracer.Start(context.Background(), step.ActionID,
			trace.WithAttributes(attribute.String("step", step.StepName)))
		l.spans[step.ActionID] = span
	case domain.StepFinished, domain.StepFailed, domain.StepCached:
		span, ok := l.spans[step.ActionID]
		if !ok {
			if step.Status != domain.StepCached {
				return
			}
			_, span = l.tracer.Start(context.Background(), step.ActionID,
				trace.WithAttributes(attribute.Bool("cached", true)))
		}
		if step.Status == domain.StepFailed {
			span.SetStatus(codes.Error, "step failed")
		}
		span.End()
		delete(l.spans, step.ActionID)
	}
}
