package observability

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// MeterName is the instrumentation scope of the client's instruments.
const MeterName = "github.com/kbukum/basiczoom"

// InitMeter builds a meter provider exporting to cfg.Exporter. The stdout
// exporter writes to w. Shut the provider down on exit to flush.
func InitMeter(ctx context.Context, cfg Config, w io.Writer) (*sdkmetric.MeterProvider, error) {
	var exporter sdkmetric.Exporter
	var err error

	switch cfg.Exporter {
	case ExporterOTLP:
		opts := []otlpmetrichttp.Option{
			otlpmetrichttp.WithEndpoint(cfg.Endpoint),
		}
		if cfg.Insecure {
			opts = append(opts, otlpmetrichttp.WithInsecure())
		}
		exporter, err = otlpmetrichttp.New(ctx, opts...)
	case ExporterStdout:
		exporter, err = stdoutmetric.New(stdoutmetric.WithWriter(w))
	default:
		return nil, fmt.Errorf("unsupported metrics exporter: %s", cfg.Exporter)
	}
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(cfg)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	readerOpts := []sdkmetric.PeriodicReaderOption{}
	if cfg.Interval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.Interval))
	}

	return sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	), nil
}

// newResource creates a resource with service metadata.
func newResource(cfg Config) (*resource.Resource, error) {
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(
			attribute.String(AttrServiceName, cfg.ServiceName),
			attribute.String("service.version", cfg.ServiceVersion),
		),
	)
}

// Metrics holds the client's metric instruments. A nil *Metrics records
// nothing.
type Metrics struct {
	requestTotal    metric.Int64Counter
	requestDuration metric.Float64Histogram
	refreshTotal    metric.Int64Counter
	pagesTotal      metric.Int64Counter
	errorTotal      metric.Int64Counter
}

// NewMetrics creates metric instruments on the given meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	requestTotal, err := meter.Int64Counter("zoom.request.total",
		metric.WithDescription("HTTP attempts sent to the API"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zoom.request.total counter: %w", err)
	}

	requestDuration, err := meter.Float64Histogram("zoom.request.duration",
		metric.WithDescription("Duration of HTTP attempts in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zoom.request.duration histogram: %w", err)
	}

	refreshTotal, err := meter.Int64Counter("zoom.credential.refresh.total",
		metric.WithDescription("Access tokens minted or exchanged"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zoom.credential.refresh.total counter: %w", err)
	}

	pagesTotal, err := meter.Int64Counter("zoom.pagination.pages.total",
		metric.WithDescription("Pages fetched while following next_page_token"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zoom.pagination.pages.total counter: %w", err)
	}

	errorTotal, err := meter.Int64Counter("zoom.error.total",
		metric.WithDescription("Failed calls by error type"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating zoom.error.total counter: %w", err)
	}

	return &Metrics{
		requestTotal:    requestTotal,
		requestDuration: requestDuration,
		refreshTotal:    refreshTotal,
		pagesTotal:      pagesTotal,
		errorTotal:      errorTotal,
	}, nil
}

// RecordRequest records one HTTP attempt. A status of 0 means no response
// was received.
func (m *Metrics) RecordRequest(ctx context.Context, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.requestTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrMethod, method),
		attribute.Int(AttrStatus, status),
	))
	m.requestDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String(AttrMethod, method),
	))
}

// RecordRefresh records a new access token for a credential kind.
func (m *Metrics) RecordRefresh(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.refreshTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrCredentialKind, kind)))
}

// RecordPages records pages fetched for a resource.
func (m *Metrics) RecordPages(ctx context.Context, resource string, n int) {
	if m == nil || n <= 0 {
		return
	}
	m.pagesTotal.Add(ctx, int64(n), metric.WithAttributes(attribute.String(AttrResource, resource)))
}

// RecordError records a failed call by error type.
func (m *Metrics) RecordError(ctx context.Context, errType string) {
	if m == nil {
		return
	}
	m.errorTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrErrorType, errType)))
}
