package observability

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Operation tracks one client call: its span, its duration and, on failure,
// the error metric.
type Operation struct {
	Name     string
	Endpoint string

	span    trace.Span
	clock   clockwork.Clock
	start   time.Time
	metrics *Metrics
}

// StartOperation opens a span named name. metrics may be nil.
func StartOperation(ctx context.Context, tracer trace.Tracer, clock clockwork.Clock, metrics *Metrics, name, endpoint string) (context.Context, *Operation) {
	ctx, span := tracer.Start(ctx, name, trace.WithSpanKind(trace.SpanKindClient))
	span.SetAttributes(
		attribute.String(AttrOperationName, name),
		attribute.String(AttrEndpoint, endpoint),
	)
	return ctx, &Operation{
		Name:     name,
		Endpoint: endpoint,
		span:     span,
		clock:    clock,
		start:    clock.Now(),
		metrics:  metrics,
	}
}

// SetAttributes adds attributes to the operation's span.
func (op *Operation) SetAttributes(kv ...attribute.KeyValue) {
	op.span.SetAttributes(kv...)
}

// End closes the span. errType classifies err for the error metric and is
// ignored when err is nil.
func (op *Operation) End(ctx context.Context, err error, errType string) {
	op.span.SetAttributes(attribute.Int64(AttrDurationMs, op.Duration().Milliseconds()))
	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
		op.span.SetAttributes(attribute.String(AttrErrorType, errType))
		op.metrics.RecordError(ctx, errType)
	} else {
		op.span.SetStatus(codes.Ok, "")
	}
	op.span.End()
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return op.clock.Since(op.start)
}
