package instrument

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/zipkin"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// NewZipkinProvider returns a tracer provider that batches spans to the Zipkin
// collector at collectorURL, sampling ratio of root spans. Callers must
// Shutdown the provider to flush pending spans.
func NewZipkinProvider(collectorURL string, ratio float64) (*sdktrace.TracerProvider, error) {
	exporter, err := zipkin.New(collectorURL)
	if err != nil {
		return nil, err
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(resource.NewSchemaless(
			attribute.String("service.name", defaultTracerName),
		)),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
	), nil
}
