// Package observability wires OpenTelemetry metrics and tracing into the
// client.
//
// Providers:
//
//	p, err := observability.Setup(ctx, cfg, os.Stderr, log)
//	defer p.Shutdown(ctx)
//
// Instruments:
//
//	metrics, err := observability.NewMetrics(p.MeterProvider().Meter(observability.MeterName))
//	metrics.RecordRequest(ctx, "GET", 200, elapsed)
//
// Spans:
//
//	ctx, op := observability.StartOperation(ctx, tracer, clock, metrics, "zoom.get", "/users")
//	defer op.End(ctx, err, "api")
package observability
