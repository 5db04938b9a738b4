package auth

import (
	"context"

	"gitlab.com/inteleval.net/internal/domain"
)

type IAuthService interface {
	ProviderName() domain.Provider
	Login(ctx context.Context, profile *domain.Profile) (string, error)
}
