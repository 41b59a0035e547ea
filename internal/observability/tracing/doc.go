// Package tracing provides OpenTelemetry tracing integration.
//
// Setup installs the SDK tracer provider once at startup; Middleware opens a
// server span per request and returns its trace ID in X-Trace-Id so clients
// and log lines can be correlated.
//
//	shutdown := tracing.Setup(tracing.Config{ServiceName: "catalog-selection", SampleRatio: 1})
//	defer shutdown(context.Background())
//
//	ctx, span := tracing.GetTracer().Start(ctx, "selection.first")
//	defer span.End()
package tracing
