package observability

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

var profileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileInuseObjects,
	pyroscope.ProfileGoroutines,
}

func startProfiler(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.PyroscopeEnabled {
		disabled(logger, "pyroscope", "PYROSCOPE_ENABLED=false")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPass,
		UploadRate:        cfg.PyroscopeUploadRate,
		ProfileTypes:      profileTypes,
		Tags: map[string]string{
			"service": cfg.ServiceName,
			"env":     cfg.AppEnv,
			"version": cfg.ServiceVersion,
		},
	})
	if err != nil {
		return nil, err
	}

	logger.Info("continuous profiling started", "server", cfg.PyroscopeServerAddress, "application", cfg.PyroscopeAppName)
	return func(context.Context) error { return profiler.Stop() }, nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// startPprof binds the listener up front so a busy port fails Start
// instead of a background goroutine.
func startPprof(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.PprofEnabled {
		disabled(logger, "pprof", "PPROF_ENABLED=false")
		return nil, nil
	}

	ln, err := net.Listen("tcp", cfg.PprofAddr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Handler: pprofMux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof listener stopped", "error", err)
		}
	}()

	logger.Info("pprof listening", "addr", ln.Addr().String())
	return srv.Shutdown, nil
}
