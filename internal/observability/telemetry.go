// Package observability starts the process-wide tracing and profiling
// exporters selected by config and stops them together.
package observability

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

// Telemetry is the set of exporters one process started. A zero value is a
// valid no-op.
type Telemetry struct {
	logger   *logging.Logger
	stoppers []stopper
}

type stopper struct {
	name string
	stop func(context.Context) error
}

// Start brings up tracing, continuous profiling and the pprof listener in
// that order. Whatever already started is stopped again when a later step
// fails.
func Start(cfg config.Config, logger *logging.Logger) (*Telemetry, error) {
	if logger == nil {
		logger = logging.Default()
	}
	t := &Telemetry{logger: logger}

	steps := []struct {
		name  string
		start func(config.Config, *logging.Logger) (func(context.Context) error, error)
	}{
		{name: "uptrace", start: startTracing},
		{name: "pyroscope", start: startProfiler},
		{name: "pprof", start: startPprof},
	}
	for _, step := range steps {
		stop, err := step.start(cfg, logger)
		if err != nil {
			_ = t.Shutdown(context.Background())
			return nil, fmt.Errorf("start %s: %w", step.name, err)
		}
		if stop != nil {
			t.stoppers = append(t.stoppers, stopper{name: step.name, stop: stop})
		}
	}
	return t, nil
}

// Running lists the exporters that are active.
func (t *Telemetry) Running() []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.stoppers))
	for _, s := range t.stoppers {
		out = append(out, s.name)
	}
	return out
}

// Shutdown stops exporters in reverse start order and returns every
// failure joined.
func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil {
		return nil
	}
	var errs []error
	for i := len(t.stoppers) - 1; i >= 0; i-- {
		s := t.stoppers[i]
		if err := s.stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", s.name, err))
		}
	}
	t.stoppers = nil
	return errors.Join(errs...)
}

func disabled(logger *logging.Logger, name, reason string) {
	logger.Info(name+" disabled", "reason", strings.TrimSpace(reason))
}
