package player

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azmy/lootledger/pkg/response"
)

// Handler handles HTTP requests for player operations
type Handler struct {
	service *Service
}

// NewHandler creates a new player handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for player endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Post("/{id}/splits/paid", h.MarkSplitsPaid)

	return r
}

// List handles GET /players
// @Summary      List players
// @Description  Get all players with their outstanding owed amounts
// @Tags         players
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]Player}
// @Router       /players [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	players, err := h.service.List(r.Context())
	if err != nil {
		response.InternalError(w, "Failed to list players")
		return
	}

	response.JSON(w, http.StatusOK, players)
}

// Create handles POST /players
// @Summary      Create a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        request body CreatePlayerRequest true "Player creation request"
// @Success      201 {object} response.APIResponse{data=Player}
// @Failure      400 {object} response.APIResponse
// @Router       /players [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidCutPercent) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create player")
		return
	}

	response.JSON(w, http.StatusCreated, p)
}

// Update handles PUT /players/{id}
// @Summary      Update a player
// @Tags         players
// @Accept       json
// @Produce      json
// @Param        id path int true "Player ID"
// @Param        request body UpdatePlayerRequest true "Player update request"
// @Success      200 {object} response.APIResponse{data=Player}
// @Failure      404 {object} response.APIResponse
// @Router       /players/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid player ID")
		return
	}

	var req UpdatePlayerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNameRequired) || errors.Is(err, ErrInvalidCutPercent) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update player")
		return
	}

	response.JSON(w, http.StatusOK, p)
}

// MarkSplitsPaid handles POST /players/{id}/splits/paid
// @Summary      Mark a player's splits as paid
// @Description  Settle every unpaid split entry for the player across all sales
// @Tags         players
// @Produce      json
// @Param        id path int true "Player ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /players/{id}/splits/paid [post]
func (h *Handler) MarkSplitsPaid(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid player ID")
		return
	}

	if err := h.service.MarkSplitsPaid(r.Context(), id); err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to mark splits as paid")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Splits marked as paid"})
}
