package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/config"
	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/global/logger"
	"gitlab.com/inteleval.net/internal/static/errs"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var _ IAuthService = (*googleAuthService)(nil)

type googleAuthService struct {
	profilePort secondary.ProfilePort
	jwtProvider primary.JWTService
	Config      *config.GGAuthConfig
}

func NewGoogleAuthService(profilePort secondary.ProfilePort, jwtProvider primary.JWTService, cfg *config.GGAuthConfig) *googleAuthService {
	return &googleAuthService{
		profilePort: profilePort,
		jwtProvider: jwtProvider,
		Config:      cfg,
	}
}

func (g googleAuthService) ProviderName() domain.Provider {
	return domain.ProviderGoogle
}

// AuthCodeURL returns the Google consent page URL for the oauth2 flow
func (g googleAuthService) AuthCodeURL(state string) string {
	return g.Config.OAuth2Config().AuthCodeURL(state)
}

// LoginWithCode exchanges an oauth2 authorization code, fetches the Google
// user info and logs the user in, creating the profile on first sign-in.
func (g googleAuthService) LoginWithCode(ctx context.Context, code string) (string, error) {
	oauthCfg := g.Config.OAuth2Config()
	token, err := oauthCfg.Exchange(ctx, code)
	if err != nil {
		logger.Error("Failed to exchange oauth2 code", "error", err)
		return "", errs.InvalidCredentials
	}

	resp, err := oauthCfg.Client(ctx, token).Get(googleUserInfoURL)
	if err != nil {
		logger.Error("Failed to fetch Google user info", "error", err)
		return "", errs.InternalError
	}
	defer resp.Body.Close()

	var info struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		logger.Error("Failed to decode Google user info", "error", err)
		return "", errs.InternalError
	}

	return g.Login(ctx, &domain.Profile{
		GoogleID:     &info.ID,
		Email:        &info.Email,
		AuthProvider: string(domain.ProviderGoogle),
	})
}

// Login resolves or creates the profile behind a Google identity
func (g googleAuthService) Login(ctx context.Context, profile *domain.Profile) (string, error) {
	if profile.GoogleID == nil {
		return "", errs.InvalidCredentials
	}
	if profile.AuthProvider != string(domain.ProviderGoogle) {
		return "", errs.InvalidCredentials
	}
	if profile.Email == nil {
		return "", errs.EmailRequired
	}
	if !g.emailDomainAllowed(*profile.Email) {
		return "", errs.EmailDomainNotAllowed
	}

	stored, err := g.profilePort.GetByGoogleID(ctx, *profile.GoogleID)
	if err != nil {
		return "", err
	}
	if stored != nil {
		return generateToken(ctx, g.jwtProvider, stored)
	}

	profile.ID = uuid.New()
	profile.PasswordHash = nil
	profile.UserName = strings.Split(*profile.Email, "@")[0]
	profile.League = domain.LeagueBronze
	if err := g.profilePort.Create(ctx, profile); err != nil {
		logger.Error("Failed to create profile from Google identity", "error", err)
		return "", errs.FailedToCreateProfile
	}

	return generateToken(ctx, g.jwtProvider, profile)
}

func (g googleAuthService) emailDomainAllowed(email string) bool {
	if len(g.Config.AllowedDomains) == 0 {
		return true
	}
	for _, domainName := range g.Config.AllowedDomains {
		if strings.HasSuffix(email, fmt.Sprintf("@%s", domainName)) {
			return true
		}
	}
	return false
}
