package summary

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azmy/lootledger/pkg/response"
)

// Handler handles HTTP requests for run summaries
type Handler struct {
	service *Service
}

// NewHandler creates a new summary handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for summary endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/runs/{runId}", h.GetRunSummary)

	return r
}

// GetRunSummary handles GET /summaries/runs/{runId}
// @Summary      Get a run's financial summary
// @Description  Aggregate entry fee recovery, sale proceeds, disenchant value and per-participant owed amounts
// @Tags         summaries
// @Produce      json
// @Param        runId path int true "Run ID"
// @Success      200 {object} response.APIResponse{data=RunSummary}
// @Failure      404 {object} response.APIResponse
// @Router       /summaries/runs/{runId} [get]
func (h *Handler) GetRunSummary(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "runId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	s, err := h.service.RunSummary(r.Context(), runID)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build run summary")
		return
	}

	response.JSON(w, http.StatusOK, s)
}
