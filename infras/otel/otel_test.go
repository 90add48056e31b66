package otel_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	oteltrace "go.opentelemetry.io/otel/trace"

	"staybook/config"
	"staybook/infras/otel"
)

type status string

func (s status) String() string { return "status:" + string(s) }

func TestNew_WithoutEndpoint(t *testing.T) {
	o := otel.New(&config.Config{})

	ctx, scope := o.NewScope(context.Background(), "service", "service.Test")
	require.NotNil(t, ctx)

	scope.TraceError(nil)
	scope.SetAttribute("k", "v")
	scope.End()

	assert.NoError(t, o.Shutdown(context.Background()))
}

func TestScope(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))

	_, span := provider.Tracer("test").Start(context.Background(), "op")
	scope := otel.NewScope(span)

	scope.SetAttributes(map[string]any{
		"count":  3,
		"ratio":  0.5,
		"ok":     true,
		"tags":   []string{"a", "b"},
		"status": status("PENDING"),
		"other":  struct{ N int }{N: 1},
	})
	scope.AddEvent("checked")
	scope.TraceIfError(nil)
	scope.TraceError(errors.New("boom"))
	scope.End()

	ended := recorder.Ended()
	require.Len(t, ended, 1)

	got := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		got[kv.Key] = kv.Value
	}

	assert.Equal(t, int64(3), got["count"].AsInt64())
	assert.InDelta(t, 0.5, got["ratio"].AsFloat64(), 0)
	assert.True(t, got["ok"].AsBool())
	assert.Equal(t, []string{"a", "b"}, got["tags"].AsStringSlice())
	assert.Equal(t, "status:PENDING", got["status"].AsString())
	assert.Equal(t, "{1}", got["other"].AsString())

	assert.Equal(t, codes.Error, ended[0].Status().Code)
	assert.Equal(t, "boom", ended[0].Status().Description)
	require.Len(t, ended[0].Events(), 2)
	assert.Equal(t, "checked", ended[0].Events()[0].Name)
}

func TestExtractHTTP(t *testing.T) {
	otel.New(&config.Config{})

	header := http.Header{}
	header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")

	spanCtx := oteltrace.SpanContextFromContext(otel.ExtractHTTP(context.Background(), header))

	assert.True(t, spanCtx.IsRemote())
	assert.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", spanCtx.TraceID().String())
}
