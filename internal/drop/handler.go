package drop

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azmy/lootledger/pkg/response"
)

// Handler handles HTTP requests for drop operations
type Handler struct {
	service *Service
}

// NewHandler creates a new drop handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for drop endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/runs/{runId}/drops", h.ListByRun)
	r.Post("/runs/{runId}/drops", h.Create)
	r.Put("/{dropId}", h.Update)
	r.Post("/{dropId}/disenchant", h.Disenchant)

	return r
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrDropNotFound), errors.Is(err, ErrRunNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrRunNotOpen),
		errors.Is(err, ErrOwnerNotParticipant),
		errors.Is(err, ErrInvalidItemType),
		errors.Is(err, ErrRollOutOfRange),
		errors.Is(err, ErrInvalidDisenchant),
		errors.Is(err, ErrAlreadySold),
		errors.Is(err, ErrAlreadyDisenchanted),
		errors.Is(err, ErrTerminalStatusDirect):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

// ListByRun handles GET /drops/runs/{runId}/drops
// @Summary      List drops for a run
// @Tags         drops
// @Produce      json
// @Param        runId path int true "Run ID"
// @Success      200 {object} response.APIResponse{data=[]Drop}
// @Failure      404 {object} response.APIResponse
// @Router       /drops/runs/{runId}/drops [get]
func (h *Handler) ListByRun(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "runId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	drops, err := h.service.ListByRun(r.Context(), runID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list drops")
		return
	}

	response.JSON(w, http.StatusOK, drops)
}

// Create handles POST /drops/runs/{runId}/drops
// @Summary      Record a drop
// @Description  Record an item drop against an open run; the owner must be a run participant
// @Tags         drops
// @Accept       json
// @Produce      json
// @Param        runId path int true "Run ID"
// @Param        request body CreateDropRequest true "Drop creation request"
// @Success      201 {object} response.APIResponse{data=Drop}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /drops/runs/{runId}/drops [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "runId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	var req CreateDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Create(r.Context(), runID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create drop")
		return
	}

	response.JSON(w, http.StatusCreated, d)
}

// Update handles PUT /drops/{dropId}
// @Summary      Correct a drop
// @Description  Correct a drop's fields; corrections to drops linked to sales replay the affected sales
// @Tags         drops
// @Accept       json
// @Produce      json
// @Param        dropId path int true "Drop ID"
// @Param        request body UpdateDropRequest true "Drop update request"
// @Success      200 {object} response.APIResponse{data=Drop}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /drops/{dropId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	dropID, err := strconv.ParseInt(chi.URLParam(r, "dropId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid drop ID")
		return
	}

	var req UpdateDropRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Update(r.Context(), dropID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update drop")
		return
	}

	response.JSON(w, http.StatusOK, d)
}

// Disenchant handles POST /drops/{dropId}/disenchant
// @Summary      Disenchant a drop
// @Description  Convert an unsold drop into essence or stone value
// @Tags         drops
// @Accept       json
// @Produce      json
// @Param        dropId path int true "Drop ID"
// @Param        request body DisenchantRequest true "Disenchant target"
// @Success      200 {object} response.APIResponse{data=Drop}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /drops/{dropId}/disenchant [post]
func (h *Handler) Disenchant(w http.ResponseWriter, r *http.Request) {
	dropID, err := strconv.ParseInt(chi.URLParam(r, "dropId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid drop ID")
		return
	}

	var req DisenchantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	d, err := h.service.Disenchant(r.Context(), dropID, req.DisenchantInto)
	if err != nil {
		h.writeServiceError(w, err, "Failed to disenchant drop")
		return
	}

	response.JSON(w, http.StatusOK, d)
}
