package auth

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/services/auth"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/handlers/response"
)

// GoogleAuthenticator is the Google sign-in flow: consent URL plus the
// code-for-token exchange.
type GoogleAuthenticator interface {
	auth.IAuthService
	AuthCodeURL(state string) string
	LoginWithCode(ctx context.Context, code string) (string, error)
}

// LocalAuthenticator is username/password login plus registration
type LocalAuthenticator interface {
	auth.IAuthService
	Register(ctx context.Context, userName, email, password string) (*domain.Profile, error)
}

type ServiceDependencies struct {
	GGAuthService    GoogleAuthenticator
	LocalAuthService LocalAuthenticator
}

type Handler struct {
	ggAuth    GoogleAuthenticator
	localAuth LocalAuthenticator
	logger    primary.Logger
}

func NewHandler(logger primary.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) RegisterRoutes(router *mux.Router, svcDep *ServiceDependencies) {
	h.ggAuth = svcDep.GGAuthService
	h.localAuth = svcDep.LocalAuthService
	router.HandleFunc("/auth/google", h.GoogleLoginHandler).Methods("GET")
	router.HandleFunc("/auth/callback", h.GoogleCallbackHandler).Methods("GET")
	router.HandleFunc("/auth/login", h.LoginHandler).Methods("POST")
	router.HandleFunc("/auth/register", h.RegisterHandler).Methods("POST")
}

// GoogleLoginHandler redirects the user to the Google consent page
func (h *Handler) GoogleLoginHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.ggAuth.AuthCodeURL("state"), http.StatusTemporaryRedirect)
}

// GoogleCallbackHandler handles the oauth2 redirect back from Google
func (h *Handler) GoogleCallbackHandler(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		response.WriteError(w, response.ErrorMessage{
			Message:    "no code in URL",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	token, err := h.ggAuth.LoginWithCode(r.Context(), code)
	if err != nil {
		h.logger.Error("Google login failed", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusUnauthorized,
		})
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: token})
}

// LoginRequest represents a local login request
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginHandler handles username/password login
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    "invalid request body",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	token, err := h.localAuth.Login(r.Context(), &domain.Profile{
		UserName:     req.Username,
		PasswordHash: &req.Password,
		AuthProvider: string(domain.ProviderLocal),
	})
	if err != nil {
		h.logger.Error("Local login failed", "error", err, "username", req.Username)
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusUnauthorized,
		})
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: token})
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler handles new local account registration
func (h *Handler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.WriteError(w, response.ErrorMessage{
			Message:    "invalid request body",
			StatusCode: http.StatusBadRequest,
		})
		return
	}
	if req.Username == "" || req.Password == "" {
		response.WriteError(w, response.ErrorMessage{
			Message:    "username and password are required",
			StatusCode: http.StatusBadRequest,
		})
		return
	}

	profile, err := h.localAuth.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Registration failed", "error", err, "username", req.Username)
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusConflict,
		})
		return
	}

	token, err := h.localAuth.Login(r.Context(), &domain.Profile{
		UserName:     profile.UserName,
		PasswordHash: &req.Password,
		AuthProvider: string(domain.ProviderLocal),
	})
	if err != nil {
		h.logger.Error("Post-registration login failed", "error", err)
		response.WriteError(w, response.ErrorMessage{
			Message:    err.Error(),
			StatusCode: http.StatusInternalServerError,
		})
		return
	}

	response.WriteSuccess(w, domain.LoginResponse{Token: token})
}
