package usecase

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("futball/internal/usecase")

// startUsecaseSpan only opens a child span when the caller is already being
// traced, so batch commands without a root span stay span free.
func startUsecaseSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if strings.TrimSpace(name) == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name)
}
