package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/riskibarqy/futball/internal/platform/logging"
	"github.com/riskibarqy/futball/internal/usecase"
)

// Handler serves the read-only season views.
type Handler struct {
	catalogService   *usecase.CatalogService
	standingsService *usecase.StandingsService
	xgService        *usecase.XGService
	summaryService   *usecase.SeasonSummaryService
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	catalogService *usecase.CatalogService,
	standingsService *usecase.StandingsService,
	xgService *usecase.XGService,
	summaryService *usecase.SeasonSummaryService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:   catalogService,
		standingsService: standingsService,
		xgService:        xgService,
		summaryService:   summaryService,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

type seasonPath struct {
	SeasonID int64 `validate:"gt=0"`
}

type competitionPath struct {
	CompetitionID int64 `validate:"gt=0"`
}

type shotMapQuery struct {
	SeasonID int64 `validate:"gt=0"`
	TeamID   int64 `validate:"gte=0"`
}

// parseID reads an integer path or query value; blank reads as zero and
// leaves the range check to the validator.
func parseID(raw, name string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, name)
	}
	return v, nil
}

func (h *Handler) seasonID(ctx context.Context, r *http.Request) (int64, error) {
	id, err := parseID(r.PathValue("seasonID"), "season id")
	if err != nil {
		return 0, err
	}
	if err := h.validateRequest(ctx, seasonPath{SeasonID: id}); err != nil {
		return 0, err
	}
	return id, nil
}
