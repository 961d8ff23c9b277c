package observability

import (
	"bytes"
	"context"
	stderrors "errors"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/kbukum/basiczoom/errors"
)

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.ApplyDefaults()

	if cfg.Exporter != ExporterNone {
		t.Errorf("expected exporter 'none', got %s", cfg.Exporter)
	}
	if cfg.Endpoint != "localhost:4318" {
		t.Errorf("expected Endpoint 'localhost:4318', got %s", cfg.Endpoint)
	}
	if cfg.SampleRate != 1.0 {
		t.Errorf("expected SampleRate 1.0, got %f", cfg.SampleRate)
	}
	if cfg.Interval != 15*time.Second {
		t.Errorf("expected Interval 15s, got %v", cfg.Interval)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("zoomctl")
	if cfg.ServiceName != "zoomctl" || cfg.Exporter != ExporterOTLP || !cfg.Insecure {
		t.Errorf("unexpected default config %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := Config{Exporter: "zipkin", ServiceName: "x"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); !errors.HasCode(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("expected INVALID_CONFIG for unknown exporter, got %v", err)
	}

	cfg = Config{Exporter: ExporterStdout, SampleRate: 1.5, ServiceName: "x"}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "sample_rate") {
		t.Errorf("expected sample_rate error, got %v", err)
	}

	cfg = Config{Exporter: ExporterStdout}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error when exporting without a service name")
	}
}

func TestNewMetrics_Noop(t *testing.T) {
	metrics, err := NewMetrics(noop.NewMeterProvider().Meter("test"))
	if err != nil {
		t.Fatalf("unexpected error creating metrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRequest(ctx, "GET", 200, 100*time.Millisecond)
	metrics.RecordRefresh(ctx, "signed_token")
	metrics.RecordPages(ctx, "users", 3)
	metrics.RecordError(ctx, "api")
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordRequest(ctx, "GET", 200, time.Millisecond)
	m.RecordRefresh(ctx, "session")
	m.RecordPages(ctx, "users", 1)
	m.RecordError(ctx, "api")
}

func collectSums(t *testing.T, reader *sdkmetric.ManualReader) map[string]int64 {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("collect: %v", err)
	}
	sums := map[string]int64{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if sum, ok := m.Data.(metricdata.Sum[int64]); ok {
				for _, dp := range sum.DataPoints {
					sums[m.Name] += dp.Value
				}
			}
		}
	}
	return sums
}

func TestMetrics_Recorded(t *testing.T) {
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	metrics, err := NewMetrics(mp.Meter(MeterName))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx := context.Background()
	metrics.RecordRequest(ctx, "GET", 200, 10*time.Millisecond)
	metrics.RecordRequest(ctx, "GET", 429, 10*time.Millisecond)
	metrics.RecordRefresh(ctx, "exchanged_token")
	metrics.RecordPages(ctx, "call_logs", 4)
	metrics.RecordPages(ctx, "call_logs", 0)
	metrics.RecordError(ctx, "date_range")

	sums := collectSums(t, reader)
	want := map[string]int64{
		"zoom.request.total":            2,
		"zoom.credential.refresh.total": 1,
		"zoom.pagination.pages.total":   4,
		"zoom.error.total":              1,
	}
	for name, v := range want {
		if sums[name] != v {
			t.Errorf("%s: expected %d, got %d", name, v, sums[name])
		}
	}
}

func TestOperation_Success(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	clock := clockwork.NewFakeClock()

	ctx, op := StartOperation(context.Background(), tp.Tracer("test"), clock, nil, "zoom.get", "/users")
	clock.Advance(250 * time.Millisecond)
	if op.Duration() != 250*time.Millisecond {
		t.Errorf("expected 250ms, got %v", op.Duration())
	}
	op.End(ctx, nil, "")

	spans := sr.Ended()
	if len(spans) != 1 {
		t.Fatalf("expected 1 span, got %d", len(spans))
	}
	if spans[0].Name() != "zoom.get" {
		t.Errorf("unexpected span name %s", spans[0].Name())
	}
	if spans[0].Status().Code != codes.Ok {
		t.Errorf("expected Ok status, got %v", spans[0].Status())
	}
	found := false
	for _, kv := range spans[0].Attributes() {
		if string(kv.Key) == AttrEndpoint && kv.Value.AsString() == "/users" {
			found = true
		}
	}
	if !found {
		t.Error("expected endpoint attribute on span")
	}
}

func TestOperation_Error(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	reader := sdkmetric.NewManualReader()
	metrics, err := NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)).Meter(MeterName))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	ctx, op := StartOperation(context.Background(), tp.Tracer("test"), clockwork.NewFakeClock(), metrics, "zoom.delete", "/users/x")
	op.End(ctx, stderrors.New("boom"), "api")

	span := sr.Ended()[0]
	if span.Status().Code != codes.Error || span.Status().Description != "boom" {
		t.Errorf("unexpected status %v", span.Status())
	}
	if len(span.Events()) == 0 {
		t.Error("expected recorded error event")
	}
	if sums := collectSums(t, reader); sums["zoom.error.total"] != 1 {
		t.Errorf("expected error metric, got %v", sums)
	}
}

func TestSetup_None(t *testing.T) {
	p, err := Setup(context.Background(), Config{}, nil, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	if p.MeterProvider() == nil || p.TracerProvider() == nil {
		t.Fatal("expected no-op providers")
	}
	if err := p.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown: %v", err)
	}
}

func TestSetup_Stdout(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()
	p, err := Setup(ctx, Config{Exporter: ExporterStdout, ServiceName: "zoomctl"}, &buf, nil)
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}

	metrics, err := NewMetrics(p.MeterProvider().Meter(MeterName))
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	metrics.RecordRequest(ctx, "GET", 200, time.Millisecond)
	_, op := StartOperation(ctx, p.TracerProvider().Tracer(TracerName), clockwork.NewRealClock(), metrics, "zoom.get", "/users")
	op.End(ctx, nil, "")

	if err := p.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "zoom.request.total") {
		t.Error("expected exported metric on writer")
	}
	if !strings.Contains(out, "zoom.get") {
		t.Error("expected exported span on writer")
	}
}

func TestSetup_Invalid(t *testing.T) {
	if _, err := Setup(context.Background(), Config{Exporter: "zipkin", ServiceName: "x"}, nil, nil); err == nil {
		t.Error("expected error for unknown exporter")
	}
}
