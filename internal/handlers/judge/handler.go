package judge

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/judging"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers"
	"gitlab.com/inteleval.net/internal/static/errs"
)

// Handler handles code judging API requests
type Handler struct {
	judgingService judging.IJudgingService
	logger         primary.Logger
}

// NewHandler creates a new judge handler
func NewHandler(judgingService judging.IJudgingService, logger primary.Logger) *Handler {
	return &Handler{
		judgingService: judgingService,
		logger:         logger,
	}
}

// RegisterRoutes registers the API routes for Handler
func (h *Handler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/judge", h.Run).Methods("POST")
	router.HandleFunc("/api/judge", h.Preflight).Methods("OPTIONS")
	router.HandleFunc("/api/judge/languages", h.Languages).Methods("GET")
}

// Preflight answers browser CORS preflight requests
func (h *Handler) Preflight(w http.ResponseWriter, r *http.Request) {
	handlers.AllowCORS(w)
	w.WriteHeader(http.StatusOK)
}

// Run handles judging requests: the submitted code runs against the public
// and hidden test sets and the aggregated report is returned.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	handlers.AllowCORS(w)

	var req RunRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("Failed to decode request", "error", err)
		handlers.ResponseError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Code == "" {
		handlers.ResponseError(w, "code is required", http.StatusBadRequest)
		return
	}

	publicTests := withDefaultInput(req.TestCases, req.Input)
	hiddenTests := withDefaultInput(req.HiddenTestCases, req.Input)

	report, err := h.judgingService.RunTestCases(
		r.Context(), domain.Language(req.Language), req.Code, publicTests, hiddenTests)
	if err != nil {
		if errors.Is(err, errs.UnsupportedLanguage) {
			handlers.ResponseError(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("Judging run failed", "error", err, "language", req.Language)
		handlers.ResponseError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	handlers.ResponseWithJson(w, http.StatusOK, report)
}

// Languages handles supported-language listing requests
func (h *Handler) Languages(w http.ResponseWriter, r *http.Request) {
	handlers.AllowCORS(w)
	handlers.ResponseWithJson(w, http.StatusOK, LanguagesResponse{
		Languages: domain.SupportedLanguages(),
	})
}

// withDefaultInput fills the request-level stdin into test cases that carry
// none of their own.
func withDefaultInput(cases []domain.TestCase, input string) []domain.TestCase {
	if input == "" {
		return cases
	}
	out := make([]domain.TestCase, len(cases))
	for i, tc := range cases {
		if tc.Input == "" {
			tc.Input = input
		}
		out[i] = tc
	}
	return out
}
