package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the catalog-selection service.
var tracer = otel.Tracer("catalog-selection")

// GetTracer returns the global tracer for creating spans.
//
//	ctx, span := tracing.GetTracer().Start(ctx, "selection.first")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// Config controls the process-wide tracer provider.
type Config struct {
	ServiceName    string
	ServiceVersion string
	// SampleRatio is the fraction of root spans recorded (0..1).
	// Spans with a sampled remote parent are always recorded.
	SampleRatio float64
}

// Setup installs an SDK tracer provider and the W3C trace context propagator
// as otel globals. No exporter is attached: span and trace IDs are generated
// so X-Trace-Id and log correlation work, and an exporter can be added with
// sdktrace.WithBatcher later.
//
// The returned function flushes and stops the provider.
func Setup(cfg Config) func(context.Context) error {
	ratio := cfg.SampleRatio
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	tracer = tp.Tracer(cfg.ServiceName, trace.WithInstrumentationVersion(cfg.ServiceVersion),
		trace.WithInstrumentationAttributes(attribute.String("service.name", cfg.ServiceName)))

	return tp.Shutdown
}
