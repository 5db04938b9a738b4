package rankings

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/ranking"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers"
)

const defaultLeaderboardSize = 20

// Handler handles league ranking API requests
type Handler struct {
	rankingService ranking.IRankingService
	logger         primary.Logger
}

// NewHandler creates a new rankings handler
func NewHandler(rankingService ranking.IRankingService, logger primary.Logger) *Handler {
	return &Handler{
		rankingService: rankingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/leagues/{league}/leaderboard", h.Leaderboard).Methods("GET")
	router.HandleFunc("/api/profiles/{profileId}/standing", h.Standing).Methods("GET")
	router.HandleFunc("/api/leagues/rollover", h.Rollover).Methods("POST")
}

func (h *Handler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	league := mux.Vars(r)["league"]

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}

	standings, err := h.rankingService.Leaderboard(r.Context(), league, limit)
	if err != nil {
		h.logger.Error("Failed to load leaderboard", "error", err, "league", league)
		handlers.ResponseError(w, "failed to load leaderboard", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string][]*domain.LeagueStanding{"standings": standings})
}

func (h *Handler) Standing(w http.ResponseWriter, r *http.Request) {
	profileID, err := uuid.Parse(mux.Vars(r)["profileId"])
	if err != nil {
		handlers.ResponseError(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	standing, err := h.rankingService.StandingOf(r.Context(), profileID)
	if err != nil {
		h.logger.Error("Failed to load standing", "error", err, "profile", profileID)
		handlers.ResponseError(w, "failed to load standing", http.StatusInternalServerError)
		return
	}
	if standing == nil {
		handlers.ResponseError(w, "profile has no standing", http.StatusNotFound)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, standing)
}

// Rollover triggers the weekly league promotion/demotion pass. Intended to
// be called by a scheduler, not by end users.
func (h *Handler) Rollover(w http.ResponseWriter, r *http.Request) {
	if err := h.rankingService.RolloverWeek(r.Context()); err != nil {
		h.logger.Error("Failed to roll over leagues", "error", err)
		handlers.ResponseError(w, "failed to roll over leagues", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
