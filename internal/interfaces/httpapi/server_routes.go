package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerCatalogRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/competitions", handler.ListCompetitions)
	mux.HandleFunc("GET /v1/competitions/{competitionID}/seasons", handler.ListSeasons)
	mux.HandleFunc("GET /v1/seasons/default", handler.GetDefaultSeason)
}

func registerSeasonRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/seasons/{seasonID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/xg", handler.GetXG)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/summary", handler.GetSummary)
	mux.HandleFunc("GET /v1/seasons/{seasonID}/shots", handler.ListShots)
}
