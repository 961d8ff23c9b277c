package observability

import (
	"context"
	"errors"
	"io"

	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/kbukum/basiczoom/logger"
)

// Provider owns the meter and tracer providers built from a Config.
type Provider struct {
	meter  *sdkmetric.MeterProvider
	tracer *sdktrace.TracerProvider
}

// Setup builds providers for cfg. With the none exporter the returned
// Provider hands out no-op providers.
func Setup(ctx context.Context, cfg Config, w io.Writer, log *logger.Logger) (*Provider, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	p := &Provider{}
	if cfg.Exporter == ExporterNone {
		return p, nil
	}

	mp, err := InitMeter(ctx, cfg, w)
	if err != nil {
		return nil, err
	}
	p.meter = mp

	tp, err := InitTracer(ctx, cfg, w)
	if err != nil {
		return nil, errors.Join(err, mp.Shutdown(ctx))
	}
	p.tracer = tp

	if log != nil {
		log.WithComponent("observability").Info("telemetry initialized", logger.Fields(
			"exporter", cfg.Exporter,
			"service", cfg.ServiceName,
			"interval", cfg.Interval.String(),
			"sample_rate", cfg.SampleRate,
		))
	}
	return p, nil
}

// MeterProvider returns the meter provider.
func (p *Provider) MeterProvider() metric.MeterProvider {
	if p.meter == nil {
		return metricnoop.NewMeterProvider()
	}
	return p.meter
}

// TracerProvider returns the tracer provider.
func (p *Provider) TracerProvider() trace.TracerProvider {
	if p.tracer == nil {
		return tracenoop.NewTracerProvider()
	}
	return p.tracer
}

// Shutdown flushes and stops both providers.
func (p *Provider) Shutdown(ctx context.Context) error {
	var errs []error
	if p.tracer != nil {
		errs = append(errs, p.tracer.Shutdown(ctx))
	}
	if p.meter != nil {
		errs = append(errs, p.meter.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
