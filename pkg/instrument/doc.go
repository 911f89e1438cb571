// Package instrument wraps routerstore serializers with Prometheus metrics and
// OpenTelemetry tracing.
//
// Metrics collected (namespace "routerstore" by default):
//   - routerstore_serializations_total: Counter of serializations by serializer
//   - routerstore_serialize_duration_seconds: Histogram of serialization time
//   - routerstore_route_nodes: Histogram of route tree sizes
//
// Example:
//
//	m := instrument.NewMetrics(instrument.WithRegistry(prometheus.DefaultRegisterer))
//	s := instrument.Wrap[*routerstore.MinimalRouterState](
//	    routerstore.MinimalSerializer{}, routerstore.KindMinimal,
//	    instrument.WithMetrics(m),
//	)
//	state := s.SerializeContext(ctx, snapshot)
//
// Spans are created with the global tracer provider unless WithTracerProvider
// is given.
package instrument
