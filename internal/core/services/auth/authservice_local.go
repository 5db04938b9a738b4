package auth

import (
	"context"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/core/ports/primary"
	"gitlab.com/inteleval.net/internal/core/ports/secondary"
	"gitlab.com/inteleval.net/internal/domain"
	"gitlab.com/inteleval.net/internal/static/errs"
)

var _ IAuthService = (*localAuthService)(nil)

type localAuthService struct {
	profilePort secondary.ProfilePort
	jwtProvider primary.JWTService
}

func NewLocalAuthService(
	profilePort secondary.ProfilePort,
	jwtProvider primary.JWTService,
) *localAuthService {
	return &localAuthService{
		profilePort: profilePort,
		jwtProvider: jwtProvider,
	}
}

func (l localAuthService) ProviderName() domain.Provider {
	return domain.ProviderLocal
}

// Login verifies the supplied username/password against the stored hash.
// The incoming profile carries the plaintext password in PasswordHash.
func (l localAuthService) Login(ctx context.Context, profile *domain.Profile) (string, error) {
	if profile.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}

	stored, err := l.profilePort.GetByUserName(ctx, profile.UserName)
	if err != nil {
		return "", err
	}
	if stored == nil || stored.PasswordHash == nil {
		return "", errs.InvalidCredentials
	}

	valid, err := l.jwtProvider.VerifyPassword(ctx, *stored.PasswordHash, *profile.PasswordHash)
	if err != nil || !valid {
		return "", errs.InvalidCredentials
	}

	return generateToken(ctx, l.jwtProvider, stored)
}

// Register creates a local profile with a bcrypt password hash
func (l localAuthService) Register(ctx context.Context, userName, email, password string) (*domain.Profile, error) {
	existing, err := l.profilePort.GetByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errs.FailedToCreateProfile
	}

	hash, err := l.jwtProvider.EncryptPassword(ctx, password)
	if err != nil {
		return nil, errs.InternalError
	}

	profile := &domain.Profile{
		ID:           uuid.New(),
		UserName:     userName,
		PasswordHash: &hash,
		Email:        &email,
		AuthProvider: string(domain.ProviderLocal),
		League:       domain.LeagueBronze,
	}
	if err := l.profilePort.Create(ctx, profile); err != nil {
		return nil, errs.FailedToCreateProfile
	}

	return profile, nil
}

func generateToken(ctx context.Context, jwtProvider primary.JWTService, profile *domain.Profile) (string, error) {
	claims := map[string]interface{}{
		"username":   profile.UserName,
		"profileId":  profile.ID.String(),
		"permission": []string{"inteleval.submit"},
	}
	token, err := jwtProvider.GenerateTokenHMAC(ctx, jwt.SigningMethodHS256.Name, claims)
	if err != nil {
		return "", errs.GeneratingToken
	}
	return token, nil
}
