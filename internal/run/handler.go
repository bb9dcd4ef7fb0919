package run

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azmy/lootledger/pkg/response"
)

// Handler handles HTTP requests for run operations
type Handler struct {
	service *Service
}

// NewHandler creates a new run handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for run endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/splits/paid", h.SetSplitsPaid)

	return r
}

// List handles GET /runs
// @Summary      List runs
// @Tags         runs
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Run}
// @Router       /runs [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	runs, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list runs")
		return
	}

	response.JSON(w, http.StatusOK, runs)
}

// Create handles POST /runs
// @Summary      Create a run
// @Description  Create a run with participants and entry fee configuration; the total entry fee is computed server-side
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        request body CreateRunRequest true "Run creation request"
// @Success      201 {object} response.APIResponse{data=Run}
// @Failure      400 {object} response.APIResponse
// @Router       /runs [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	run, err := h.service.Create(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrHostNotFound):
			response.BadRequest(w, err.Error())
		case errors.Is(err, ErrNegativePrice),
			errors.Is(err, ErrNegativeCount),
			errors.Is(err, ErrNegativeShareModifier):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to create run")
		}
		return
	}

	response.JSON(w, http.StatusCreated, run)
}

// GetByID handles GET /runs/{id}
// @Summary      Get a run
// @Tags         runs
// @Produce      json
// @Param        id path int true "Run ID"
// @Success      200 {object} response.APIResponse{data=Run}
// @Failure      404 {object} response.APIResponse
// @Router       /runs/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	run, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrRunNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get run")
		return
	}

	response.JSON(w, http.StatusOK, run)
}

// Update handles PUT /runs/{id}
// @Summary      Update a run
// @Description  Partial update; participant or price changes replay the run's sales
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        id path int true "Run ID"
// @Param        request body UpdateRunRequest true "Run update request"
// @Success      200 {object} response.APIResponse{data=Run}
// @Failure      404 {object} response.APIResponse
// @Router       /runs/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	var req UpdateRunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	run, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrRunNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, ErrHostNotFound),
			errors.Is(err, ErrNegativePrice),
			errors.Is(err, ErrNegativeCount),
			errors.Is(err, ErrNegativeShareModifier),
			errors.Is(err, ErrInvalidStatus):
			response.BadRequest(w, err.Error())
		default:
			response.InternalError(w, "Failed to update run")
		}
		return
	}

	response.JSON(w, http.StatusOK, run)
}

// Delete handles DELETE /runs/{id}
// @Summary      Delete a run
// @Description  Delete a run along with all of its drops and sales
// @Tags         runs
// @Produce      json
// @Param        id path int true "Run ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /runs/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrRunNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete run")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Run deleted successfully"})
}

// SetSplitsPaid handles POST /runs/{id}/splits/paid
// @Summary      Mark a run's splits paid or unpaid
// @Tags         runs
// @Accept       json
// @Produce      json
// @Param        id path int true "Run ID"
// @Param        request body MarkSplitsPaidRequest false "Paid flag (defaults to true)"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /runs/{id}/splits/paid [post]
func (h *Handler) SetSplitsPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	var req MarkSplitsPaidRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.BadRequest(w, "Invalid request body")
			return
		}
	}

	paid := true
	if req.Paid != nil {
		paid = *req.Paid
	}

	if err := h.service.SetSplitsPaid(r.Context(), id, paid); err != nil {
		if errors.Is(err, ErrRunNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update split payment status")
		return
	}

	response.JSON(w, http.StatusOK, map[string]bool{"success": true})
}
