package sale

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azmy/lootledger/pkg/response"
)

// Handler handles HTTP requests for sale operations
type Handler struct {
	service *Service
}

// NewHandler creates a new sale handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for sale endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Get("/runs/{runId}", h.ListByRun)
	r.Get("/{saleId}", h.Get)
	r.Put("/{saleId}", h.Update)
	r.Delete("/{saleId}", h.Delete)

	return r
}

func (h *Handler) writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrSaleNotFound),
		errors.Is(err, ErrRunNotFound),
		errors.Is(err, ErrDropNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNoDrops),
		errors.Is(err, ErrNegativePrice),
		errors.Is(err, ErrBuyerRequired),
		errors.Is(err, ErrDropWrongRun),
		errors.Is(err, ErrDropNotSellable):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}

// List handles GET /sales
// @Summary      List all sales
// @Tags         sales
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Sale}
// @Router       /sales [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list sales")
		return
	}

	response.JSON(w, http.StatusOK, sales)
}

// ListByRun handles GET /sales/runs/{runId}
// @Summary      List a run's sales in chronological order
// @Tags         sales
// @Produce      json
// @Param        runId path int true "Run ID"
// @Success      200 {object} response.APIResponse{data=[]Sale}
// @Failure      404 {object} response.APIResponse
// @Router       /sales/runs/{runId} [get]
func (h *Handler) ListByRun(w http.ResponseWriter, r *http.Request) {
	runID, err := strconv.ParseInt(chi.URLParam(r, "runId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid run ID")
		return
	}

	sales, err := h.service.ListByRun(r.Context(), runID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to list sales")
		return
	}

	response.JSON(w, http.StatusOK, sales)
}

// Get handles GET /sales/{saleId}
// @Summary      Get a sale
// @Tags         sales
// @Produce      json
// @Param        saleId path int true "Sale ID"
// @Success      200 {object} response.APIResponse{data=Sale}
// @Failure      404 {object} response.APIResponse
// @Router       /sales/{saleId} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.ParseInt(chi.URLParam(r, "saleId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid sale ID")
		return
	}

	sl, err := h.service.Get(r.Context(), saleID)
	if err != nil {
		h.writeServiceError(w, err, "Failed to get sale")
		return
	}

	response.JSON(w, http.StatusOK, sl)
}

// Create handles POST /sales
// @Summary      Record a sale
// @Description  Sell one or more drops; net proceeds and splits are derived by replaying the run's sales
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        request body CreateSaleRequest true "Sale creation request"
// @Success      201 {object} response.APIResponse{data=Sale}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /sales [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sl, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to create sale")
		return
	}

	response.JSON(w, http.StatusCreated, sl)
}

// Update handles PUT /sales/{saleId}
// @Summary      Correct a sale
// @Description  Correct a sale's price, buyer, date or drop set; financial changes replay the run
// @Tags         sales
// @Accept       json
// @Produce      json
// @Param        saleId path int true "Sale ID"
// @Param        request body UpdateSaleRequest true "Sale update request"
// @Success      200 {object} response.APIResponse{data=Sale}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /sales/{saleId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.ParseInt(chi.URLParam(r, "saleId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid sale ID")
		return
	}

	var req UpdateSaleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	sl, err := h.service.Update(r.Context(), saleID, &req)
	if err != nil {
		h.writeServiceError(w, err, "Failed to update sale")
		return
	}

	response.JSON(w, http.StatusOK, sl)
}

// Delete handles DELETE /sales/{saleId}
// @Summary      Delete a sale
// @Description  Remove a sale, release its drops back to unsold and replay the run
// @Tags         sales
// @Produce      json
// @Param        saleId path int true "Sale ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /sales/{saleId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	saleID, err := strconv.ParseInt(chi.URLParam(r, "saleId"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid sale ID")
		return
	}

	if err := h.service.Delete(r.Context(), saleID); err != nil {
		h.writeServiceError(w, err, "Failed to delete sale")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Sale deleted successfully"})
}
