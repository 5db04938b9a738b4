package notifications

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/notification"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers"
)

// Handler handles notification API requests
type Handler struct {
	notificationService notification.INotificationService
	logger              primary.Logger
}

// NewHandler creates a new notifications handler
func NewHandler(notificationService notification.INotificationService, logger primary.Logger) *Handler {
	return &Handler{
		notificationService: notificationService,
		logger:              logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/notifications", h.List).Methods("GET")
	router.HandleFunc("/api/notifications/{notificationId}/read", h.MarkRead).Methods("POST")
	router.HandleFunc("/api/notifications/read-all", h.MarkAllRead).Methods("POST")
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	unreadOnly := r.URL.Query().Get("unread") == "true"
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.notificationService.List(r.Context(), recipientID, unreadOnly, limit)
	if err != nil {
		h.logger.Error("Failed to list notifications", "error", err, "recipient", recipientID)
		handlers.ResponseError(w, "failed to list notifications", http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, map[string][]*domain.Notification{"notifications": items})
}

func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	notificationID, err := uuid.Parse(mux.Vars(r)["notificationId"])
	if err != nil {
		handlers.ResponseError(w, "invalid notification id", http.StatusBadRequest)
		return
	}

	if err := h.notificationService.MarkRead(r.Context(), notificationID); err != nil {
		h.logger.Error("Failed to mark notification read", "error", err, "notification", notificationID)
		handlers.ResponseError(w, "failed to mark notification read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	recipientID, ok := authenticatedProfile(r)
	if !ok {
		handlers.ResponseError(w, "unauthenticated", http.StatusUnauthorized)
		return
	}

	if err := h.notificationService.MarkAllRead(r.Context(), recipientID); err != nil {
		h.logger.Error("Failed to mark notifications read", "error", err, "recipient", recipientID)
		handlers.ResponseError(w, "failed to mark notifications read", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
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
