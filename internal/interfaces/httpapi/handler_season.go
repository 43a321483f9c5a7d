package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/futball/internal/usecase"
)

func (h *Handler) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListCompetitions")
	defer span.End()

	items, err := h.catalogService.Competitions(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list competitions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]competitionDTO, 0, len(items))
	for _, item := range items {
		out = append(out, competitionToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	competitionID, err := parseID(r.PathValue("competitionID"), "competition id")
	if err == nil {
		err = h.validateRequest(ctx, competitionPath{CompetitionID: competitionID})
	}
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	items, err := h.catalogService.Seasons(ctx, competitionID)
	if err != nil {
		h.logger.WarnContext(ctx, "list seasons failed", "competition_id", competitionID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]seasonDTO, 0, len(items))
	for _, item := range items {
		out = append(out, seasonToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetDefaultSeason(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDefaultSeason")
	defer span.End()

	item, ok, err := h.catalogService.DefaultSeason(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get default season failed", "error", err)
		writeError(ctx, w, err)
		return
	}
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: no season has been imported", usecase.ErrNotFound))
		return
	}
	writeSuccess(ctx, w, http.StatusOK, seasonToDTO(item))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	seasonID, err := h.seasonID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.standingsService.Table(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get standings failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, table)
}

func (h *Handler) GetXG(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetXG")
	defer span.End()

	seasonID, err := h.seasonID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	rows, err := h.xgService.Summaries(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get xg failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, rows)
}

func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSummary")
	defer span.End()

	seasonID, err := h.seasonID(ctx, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.summaryService.Summary(ctx, seasonID)
	if err != nil {
		h.logger.WarnContext(ctx, "get season summary failed", "season_id", seasonID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, summary)
}

func (h *Handler) ListShots(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListShots")
	defer span.End()

	var query shotMapQuery
	var err error
	if query.SeasonID, err = parseID(r.PathValue("seasonID"), "season id"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if query.TeamID, err = parseID(r.URL.Query().Get("team_id"), "team_id"); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, query); err != nil {
		writeError(ctx, w, err)
		return
	}

	points, err := h.summaryService.ShotMap(ctx, query.SeasonID, query.TeamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list shots failed", "season_id", query.SeasonID, "team_id", query.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, points)
}
