package instrument

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/vango-dev/routerstore/pkg/routerstore"
)

func testState() *routerstore.RouterStateSnapshot {
	root := routerstore.NewRoute("", nil)
	users := root.AppendChild(routerstore.NewRoute("users", nil))
	users.AppendChild(routerstore.NewRoute(":id", routerstore.Params{"id": "5"}))
	return routerstore.NewRouterState("/users/5", root)
}

func TestWrapReturnsInnerResult(t *testing.T) {
	state := testState()
	s := Wrap[*routerstore.MinimalRouterState](routerstore.MinimalSerializer{}, routerstore.KindMinimal)

	got := s.Serialize(state)

	assert.Equal(t, routerstore.MinimalSerializer{}.Serialize(state), got)
	assert.Equal(t, routerstore.KindMinimal, s.Kind())
}

func TestWrapRecordsMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithConstLabels(prometheus.Labels{"app": "test"}))

	full := Wrap[*routerstore.SerializedRouterState](routerstore.DefaultSerializer{}, routerstore.KindFull, WithMetrics(m))
	minimal := Wrap[*routerstore.MinimalRouterState](routerstore.MinimalSerializer{}, routerstore.KindMinimal, WithMetrics(m))

	state := testState()
	full.Serialize(state)
	full.Serialize(state)
	minimal.Serialize(state)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.serializations.WithLabelValues("full")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.serializations.WithLabelValues("minimal")))

	count, err := testutil.GatherAndCount(reg, "routerstore_serialize_duration_seconds", "routerstore_route_nodes")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
}

func TestNewMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(WithRegistry(reg), WithNamespace("app"), WithSubsystem("router"), WithBuckets([]float64{0.1}))

	Wrap[*routerstore.MinimalRouterState](routerstore.MinimalSerializer{}, routerstore.KindMinimal, WithMetrics(m)).
		Serialize(testState())

	count, err := testutil.GatherAndCount(reg, "app_router_serializations_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestWrapCreatesSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	s := Wrap[*routerstore.SerializedRouterState](routerstore.DefaultSerializer{}, routerstore.KindFull, WithTracerProvider(tp))

	ctx, parent := tp.Tracer("test").Start(context.Background(), "navigation")
	s.SerializeContext(ctx, testState())
	parent.End()

	spans := recorder.Ended()
	require.Len(t, spans, 2)
	span := spans[0]
	assert.Equal(t, "routerstore.serialize", span.Name())
	assert.Equal(t, parent.SpanContext().SpanID(), span.Parent().SpanID())
	assert.Equal(t, codes.Ok, span.Status().Code)

	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range span.Attributes() {
		attrs[kv.Key] = kv.Value
	}
	assert.Equal(t, "full", attrs["routerstore.serializer"].AsString())
	assert.Equal(t, "/users/5", attrs["routerstore.url"].AsString())
	assert.Equal(t, int64(3), attrs["routerstore.nodes"].AsInt64())
	assert.Equal(t, int64(3), attrs["routerstore.depth"].AsInt64())
}

func TestForKind(t *testing.T) {
	s, err := ForKind(routerstore.KindFull)
	require.NoError(t, err)
	assert.IsType(t, &routerstore.SerializedRouterState{}, s.Serialize(testState()))

	_, err = ForKind(routerstore.Kind("bogus"))
	assert.Error(t, err)
}

func TestNewZipkinProvider(t *testing.T) {
	tp, err := NewZipkinProvider("http://localhost:9411/api/v2/spans", 1)
	require.NoError(t, err)
	assert.NoError(t, tp.Shutdown(context.Background()))

	_, err = NewZipkinProvider("://missing-scheme", 1)
	assert.Error(t, err)
}
