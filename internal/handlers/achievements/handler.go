package achievements

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/achievement"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers"
)

// Handler handles achievement API requests
type Handler struct {
	achievementService achievement.IAchievementService
	logger             primary.Logger
}

// NewHandler creates a new achievements handler
func NewHandler(achievementService achievement.IAchievementService, logger primary.Logger) *Handler {
	return &Handler{
		achievementService: achievementService,
		logger:             logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/profiles/{profileId}/achievements", h.List).Methods("GET")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(mux.Vars(r)["profileId"])
	if err != nil {
		handlers.ResponseError(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	items, err := h.achievementService.ListForProfile(r.Context(), profileID)
	if err != nil {
		h.logger.Error("Failed to list achievements", "error", err, "profile", profileID)
		handlers.ResponseError(w, "failed to list achievements", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string][]*domain.Achievement{"achievements": items})
}
