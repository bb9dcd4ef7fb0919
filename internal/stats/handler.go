package stats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/azmy/lootledger/pkg/response"
)

// Handler handles HTTP requests for earnings profiles
type Handler struct {
	service *Service
}

// NewHandler creates a new stats handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for stats endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/profile", h.Profile)

	return r
}

// Profile handles GET /stats/profile
// @Summary      Get an earnings profile
// @Description  Global earnings totals, monthly buckets and per-run series; pass player_id to scope to one player's shares
// @Tags         stats
// @Produce      json
// @Param        player_id query int false "Player ID"
// @Success      200 {object} response.APIResponse{data=ProfileStats}
// @Failure      404 {object} response.APIResponse
// @Router       /stats/profile [get]
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("player_id")
	if raw == "" {
		stats, err := h.service.Global(r.Context())
		if err != nil {
			response.InternalError(w, "Failed to build stats")
			return
		}
		response.JSON(w, http.StatusOK, stats)
		return
	}

	playerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		response.BadRequest(w, "Invalid player ID")
		return
	}

	stats, err := h.service.ForPlayer(r.Context(), playerID)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to build stats")
		return
	}

	response.JSON(w, http.StatusOK, stats)
}
