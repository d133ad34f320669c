package telemetry

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

type providers struct {
	tracer *sdktrace.TracerProvider
	meter  *sdkmetric.MeterProvider
}

var installed *providers

// Tracer returns a tracer from the global provider, it is safe to call
// before Setup, spans will be forwarded once a provider is installed.
func Tracer(name string) trace.Tracer {
	return otel.Tracer(name)
}

// Meter returns a meter from the global provider.
func Meter(name string) metric.Meter {
	return otel.Meter(name)
}

func Setup(ctx context.Context, serviceName string, c config) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second*15)
	defer cancel()

	r, err := newResource(serviceName)
	if err != nil {
		return err
	}

	tracerProvider, err := newTraceProvider(ctx, r, c)
	if err != nil {
		return err
	}
	otel.SetTracerProvider(tracerProvider)

	meterProvider, err := newMetricProvider(ctx, r, c)
	if err != nil {
		return errors.Join(err, tracerProvider.Shutdown(ctx))
	}
	otel.SetMeterProvider(meterProvider)

	installed = &providers{
		tracer: tracerProvider,
		meter:  meterProvider,
	}
	return nil
}

// Shutdown flushes and stops the providers installed by Setup, it is a
// no-op if Setup was never called.
func Shutdown(ctx context.Context) error {
	if installed == nil {
		return nil
	}
	p := installed
	installed = nil

	var errlist []error
	err := p.tracer.Shutdown(ctx)
	if err != nil {
		errlist = append(errlist, err)
	}
	err = p.meter.Shutdown(ctx)
	if err != nil {
		errlist = append(errlist, err)
	}
	return errors.Join(errlist...)
}
