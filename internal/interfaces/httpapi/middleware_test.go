package httpapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/futball/internal/platform/logging"
)

func TestTracePath(t *testing.T) {
	t.Parallel()

	for _, path := range []string{"/healthz", "/health", "/livez", "/readyz", " /HEALTHZ "} {
		assert.False(t, tracePath(path), path)
	}
	for _, path := range []string{"/v1/competitions", "/v1/seasons/1/standings", "/"} {
		assert.True(t, tracePath(path), path)
	}
}

func TestAccessRecorder(t *testing.T) {
	t.Parallel()

	rec := &accessRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	_, err := rec.Write([]byte("hello"))
	require.NoError(t, err)
	rec.WriteHeader(http.StatusTeapot)
	_, err = rec.Write([]byte("!"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.status)
	assert.Equal(t, 6, rec.bytes)
}

func TestRequestLogging_PassesThrough(t *testing.T) {
	t.Parallel()

	handler := RequestLogging(logging.NewNop(), http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/seasons/9/standings", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "gone")
}

func TestStartSpan(t *testing.T) {
	t.Parallel()

	assert.True(t, tracesName("httpapi.Handler.GetStandings"))
	assert.False(t, tracesName("httpapi.writeError"))

	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.GetStandings")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())

	parent := trace.ContextWithSpanContext(ctx, trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{0x01},
		SpanID:     trace.SpanID{0x02},
		TraceFlags: trace.FlagsSampled,
	}))
	got, _ = startSpan(parent, "httpapi.RequestLogging")
	assert.Equal(t, parent, got)
}
