package grading

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/grading"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers"
)

// Handler handles AI grading API requests
type Handler struct {
	gradingService grading.IGradingService
	logger         primary.Logger
}

// NewHandler creates a new grading handler
func NewHandler(gradingService grading.IGradingService, logger primary.Logger) *Handler {
	return &Handler{
		gradingService: gradingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/grade", h.Grade).Methods("POST")
}

// GradeRequest represents a request to grade a submission
type GradeRequest struct {
	ProfileID   string `json:"profileId"`
	ChallengeID string `json:"challengeId"`
	Language    string `json:"language"`
	Code        string `json:"code"`
	Explanation string `json:"explanation"`
}

// Grade handles grading requests
func (h *Handler) Grade(w http.ResponseWriter, r *http.Request) {
	var req GradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		handlers.ResponseError(w, "code is required", http.StatusBadRequest)
		return
	}

	// The authenticated identity wins over the body field
	profileRaw := req.ProfileID
	if id, ok := handlers.ProfileIDFromContext(r.Context()); ok {
		profileRaw = id
	}
	profileID, err := uuid.Parse(profileRaw)
	if err != nil {
		handlers.ResponseError(w, "invalid profile id", http.StatusBadRequest)
		return
	}

	submission := domain.NewSubmission(
		profileID, req.ChallengeID, domain.Language(req.Language), req.Code, req.Explanation)

	evaluation, err := h.gradingService.GradeSubmission(r.Context(), submission)
	if err != nil {
		h.logger.Error("Failed to grade submission", "error", err, "submission", submission.ID)
		handlers.ResponseError(w, "failed to grade submission", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, evaluation)
}
