package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"

	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

// startTracing points the global OpenTelemetry providers at Uptrace. The
// stop func flushes buffered spans.
func startTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	switch {
	case !cfg.UptraceEnabled:
		disabled(logger, "uptrace", "UPTRACE_ENABLED=false")
		return nil, nil
	case strings.TrimSpace(cfg.UptraceDSN) == "":
		disabled(logger, "uptrace", "no UPTRACE_DSN")
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
	)
	logger.Info("tracing exported to uptrace", "service", cfg.ServiceName, "version", cfg.ServiceVersion)
	return uptrace.Shutdown, nil
}
