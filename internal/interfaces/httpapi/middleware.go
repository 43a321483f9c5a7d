package httpapi

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/futball/internal/platform/logging"
)

// Probe paths stay out of traces.
var untracedPaths = map[string]struct{}{
	"/healthz": {},
	"/health":  {},
	"/livez":   {},
	"/readyz":  {},
}

func tracePath(path string) bool {
	_, skip := untracedPaths[strings.ToLower(strings.TrimSpace(path))]
	return !skip
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "futball-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool { return tracePath(r.URL.Path) }),
	)
}

// accessRecorder keeps what the access log reports about a response.
type accessRecorder struct {
	http.ResponseWriter
	status      int
	bytes       int
	wroteHeader bool
}

func (a *accessRecorder) WriteHeader(code int) {
	if !a.wroteHeader {
		a.status = code
		a.wroteHeader = true
	}
	a.ResponseWriter.WriteHeader(code)
}

func (a *accessRecorder) Write(p []byte) (int, error) {
	if !a.wroteHeader {
		a.WriteHeader(http.StatusOK)
	}
	n, err := a.ResponseWriter.Write(p)
	a.bytes += n
	return n, err
}

// RequestLogging writes one access line per request, at warn for client
// errors and error for server errors.
func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := time.Now()
		rec := &accessRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		ctx := r.Context()
		attrs := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"bytes", rec.bytes,
			"duration_ms", time.Since(started).Milliseconds(),
			"remote_addr", r.RemoteAddr,
		}
		if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
			attrs = append(attrs, "trace_id", sc.TraceID().String(), "span_id", sc.SpanID().String())
		}

		switch {
		case rec.status >= http.StatusInternalServerError:
			logger.ErrorContext(ctx, "http request", attrs...)
		case rec.status >= http.StatusBadRequest:
			logger.WarnContext(ctx, "http request", attrs...)
		default:
			logger.InfoContext(ctx, "http request", attrs...)
		}
	})
}
