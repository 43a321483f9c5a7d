package app

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/interfaces/httpapi"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Catalog, services.Standings, services.XG, services.Summary, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}
