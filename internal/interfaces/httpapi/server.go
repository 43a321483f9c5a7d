package httpapi

import (
	"net/http"

	"github.com/riskibarqy/futball/internal/platform/logging"
)

func NewRouter(handler *Handler, logger *logging.Logger, corsAllowedOrigins []string) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerCatalogRoutes(mux, handler)
	registerSeasonRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, CORS(corsAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(r.Context(), "panic recovered", "panic", rec, "path", r.URL.Path)
				writeError(r.Context(), w, errInternal)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
