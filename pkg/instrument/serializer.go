package instrument

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/routerstore/pkg/routerstore"
)

// Default tracer name for routerstore spans.
const defaultTracerName = "routerstore"

// Option configures a wrapped serializer.
type Option func(*options)

type options struct {
	metrics  *Metrics
	provider trace.TracerProvider
	logger   *slog.Logger
}

// WithMetrics records Prometheus metrics into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// WithTracerProvider sets the tracer provider used for spans.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.provider = tp
	}
}

// WithLogger sets the logger for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Serializer is an instrumented routerstore.Serializer.
type Serializer[T any] struct {
	inner   routerstore.Serializer[T]
	kind    routerstore.Kind
	metrics *Metrics
	tracer  trace.Tracer
	logger  *slog.Logger
}

// Wrap instruments inner. kind labels the metrics and spans.
func Wrap[T any](inner routerstore.Serializer[T], kind routerstore.Kind, opts ...Option) *Serializer[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.provider == nil {
		o.provider = otel.GetTracerProvider()
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}

	return &Serializer[T]{
		inner:   inner,
		kind:    kind,
		metrics: o.metrics,
		tracer:  o.provider.Tracer(defaultTracerName),
		logger:  o.logger,
	}
}

// Kind returns the serializer variant.
func (s *Serializer[T]) Kind() routerstore.Kind {
	return s.kind
}

// Serialize implements routerstore.Serializer.
func (s *Serializer[T]) Serialize(state *routerstore.RouterStateSnapshot) T {
	return s.SerializeContext(context.Background(), state)
}

// SerializeContext serializes state inside a span that is a child of ctx.
func (s *Serializer[T]) SerializeContext(ctx context.Context, state *routerstore.RouterStateSnapshot) T {
	nodes := routerstore.CountNodes(state.Root)

	_, span := s.tracer.Start(ctx, "routerstore.serialize",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("routerstore.serializer", s.kind.String()),
			attribute.String("routerstore.url", state.URL),
			attribute.Int("routerstore.nodes", nodes),
			attribute.Int("routerstore.depth", routerstore.Depth(state.Root)),
		),
	)
	defer span.End()

	start := time.Now()
	out := s.inner.Serialize(state)
	elapsed := time.Since(start)

	s.metrics.observe(s.kind, nodes, elapsed)
	span.SetStatus(codes.Ok, "")
	s.logger.Debug("router state serialized",
		"serializer", s.kind,
		"url", state.URL,
		"nodes", nodes,
		"elapsed", elapsed,
	)
	return out
}

// ForKind returns the instrumented serializer for kind with its output type
// erased.
func ForKind(kind routerstore.Kind, opts ...Option) (*Serializer[any], error) {
	inner, err := routerstore.ForKind(kind)
	if err != nil {
		return nil, err
	}
	return Wrap(inner, kind, opts...), nil
}
