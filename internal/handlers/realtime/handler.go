package realtime

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/realtime"
	"gitlab.com/inteleval.net/internal/handlers"
)

// Handler streams realtime channel events to clients over SSE
type Handler struct {
	channels *realtime.ChannelManager
	logger   primary.Logger
}

// NewHandler creates a new realtime stream handler
func NewHandler(channels *realtime.ChannelManager, logger primary.Logger) *Handler {
	return &Handler{
		channels: channels,
		logger:   logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/stream/{channel}", h.Stream).Methods("GET")
}

// Stream subscribes to the named channel and forwards every event as an SSE
// data frame until the client disconnects.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	channelName := mux.Vars(r)["channel"]

	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.ResponseError(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	handle, err := h.channels.Acquire(r.Context(), channelName)
	if err != nil {
		h.logger.Error("Failed to acquire channel", "error", err, "channel", channelName)
		handlers.ResponseError(w, "failed to subscribe", http.StatusInternalServerError)
		return
	}
	defer handle.Close()

	// Lift the server-wide write timeout for this connection: the stream
	// stays open until the client disconnects.
	if err := http.NewResponseController(w).SetWriteDeadline(time.Time{}); err != nil {
		h.logger.Warn("Failed to clear write deadline for stream", "error", err)
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, open := <-handle.Messages():
			if !open {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
