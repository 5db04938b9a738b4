package feedback

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/feedback"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers"
)

// Handler handles feedback thread API requests
type Handler struct {
	feedbackService feedback.IFeedbackService
	logger          primary.Logger
}

// NewHandler creates a new feedback handler
func NewHandler(feedbackService feedback.IFeedbackService, logger primary.Logger) *Handler {
	return &Handler{
		feedbackService: feedbackService,
		logger:          logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/channels/{channelId}/messages", h.PostMessage).Methods("POST")
	router.HandleFunc("/api/channels/{channelId}/messages", h.ListChannel).Methods("GET")
	router.HandleFunc("/api/messages/{messageId}", h.DeleteMessage).Methods("DELETE")
	router.HandleFunc("/api/messages/{messageId}/reactions", h.React).Methods("POST")
	router.HandleFunc("/api/messages/{messageId}/reactions", h.Unreact).Methods("DELETE")
	router.HandleFunc("/api/messages/{messageId}/bookmark", h.Bookmark).Methods("POST")
	router.HandleFunc("/api/messages/{messageId}/bookmark", h.Unbookmark).Methods("DELETE")
	router.HandleFunc("/api/bookmarks", h.ListBookmarks).Methods("GET")
}

// PostMessageRequest represents a request to post a feedback message
type PostMessageRequest struct {
	Body     string  `json:"body"`
	ParentID *string `json:"parentId,omitempty"`
}

// ReactRequest carries the emoji of a reaction
type ReactRequest struct {
	Emoji string `json:"emoji"`
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]

	var req PostMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Body == "" {
		handlers.ResponseError(w, "message body is required", http.StatusBadRequest)
		return
	}

	authorID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var parentID *uuid.UUID
	if req.ParentID != nil {
		parsed, err := uuid.Parse(*req.ParentID)
		if err != nil {
			handlers.ResponseError(w, "invalid parent id", http.StatusBadRequest)
			return
		}
		parentID = &parsed
	}

	message, err := h.feedbackService.PostMessage(r.Context(), channelID, authorID, req.Body, parentID)
	if err != nil {
		h.logger.Error("Failed to post message", "error", err, "channel", channelID)
		handlers.ResponseError(w, "failed to post message", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusCreated, message)
}

func (h *Handler) ListChannel(w http.ResponseWriter, r *http.Request) {
	channelID := mux.Vars(r)["channelId"]
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	messages, err := h.feedbackService.ListChannel(r.Context(), channelID, limit)
	if err != nil {
		h.logger.Error("Failed to list channel", "error", err, "channel", channelID)
		handlers.ResponseError(w, "failed to list channel", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string][]*domain.FeedbackMessage{"messages": messages})
}

func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID, err := uuid.Parse(mux.Vars(r)["messageId"])
	if err != nil {
		handlers.ResponseError(w, "invalid message id", http.StatusBadRequest)
		return
	}
	moderatorID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.feedbackService.DeleteMessage(r.Context(), messageID, moderatorID); err != nil {
		h.logger.Error("Failed to delete message", "error", err, "message", messageID)
		handlers.ResponseError(w, "failed to delete message", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) React(w http.ResponseWriter, r *http.Request) {
	h.toggleReaction(w, r, h.feedbackService.React)
}

func (h *Handler) Unreact(w http.ResponseWriter, r *http.Request) {
	h.toggleReaction(w, r, h.feedbackService.Unreact)
}

func (h *Handler) toggleReaction(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, messageID, profileID uuid.UUID, emoji string) error) {
	messageID, err := uuid.Parse(mux.Vars(r)["messageId"])
	if err != nil {
		handlers.ResponseError(w, "invalid message id", http.StatusBadRequest)
		return
	}
	profileID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	var req ReactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Emoji == "" {
		handlers.ResponseError(w, "emoji is required", http.StatusBadRequest)
		return
	}

	if err := op(r.Context(), messageID, profileID, req.Emoji); err != nil {
		h.logger.Error("Failed to toggle reaction", "error", err, "message", messageID)
		handlers.ResponseError(w, "failed to toggle reaction", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Bookmark(w http.ResponseWriter, r *http.Request) {
	h.toggleBookmark(w, r, h.feedbackService.Bookmark)
}

func (h *Handler) Unbookmark(w http.ResponseWriter, r *http.Request) {
	h.toggleBookmark(w, r, h.feedbackService.Unbookmark)
}

func (h *Handler) toggleBookmark(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, messageID, profileID uuid.UUID) error) {
	messageID, err := uuid.Parse(mux.Vars(r)["messageId"])
	if err != nil {
		handlers.ResponseError(w, "invalid message id", http.StatusBadRequest)
		return
	}
	profileID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := op(r.Context(), messageID, profileID); err != nil {
		h.logger.Error("Failed to toggle bookmark", "error", err, "message", messageID)
		handlers.ResponseError(w, "failed to toggle bookmark", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListBookmarks(w http.ResponseWriter, r *http.Request) {
	profileID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	messages, err := h.feedbackService.ListBookmarks(r.Context(), profileID)
	if err != nil {
		h.logger.Error("Failed to list bookmarks", "error", err, "profile", profileID)
		handlers.ResponseError(w, "failed to list bookmarks", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string][]*domain.FeedbackMessage{"bookmarks": messages})
}

func authenticatedProfile(r *http.Request) (uuid.UUID, bool) {
	raw, ok := handlers.ProfileIDFromContext(r.Context())
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
