package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	tracer       = otel.Tracer("github.com/riskibarqy/futball/internal/interfaces/httpapi")
	nonRecording = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler methods running under a traced
// request. Anything else gets a span that records nothing.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !tracesName(name) || !trace.SpanContextFromContext(ctx).IsValid() {
		return ctx, nonRecording
	}
	return tracer.Start(ctx, name)
}

func tracesName(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
