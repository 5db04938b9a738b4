package secondary

import (
	"context"

	"github.com/google/uuid"

	"gitlab.com/inteleval.net/internal/domain"
)

type ProfilePort interface {
	Create(ctx context.Context, profile *domain.Profile) error
	Get(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	GetByUserName(ctx context.Context, userName string) (*domain.Profile, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.Profile, error)
	AddPoints(ctx context.Context, id uuid.UUID, points int) error
	SetLeague(ctx context.Context, id uuid.UUID, league string) error
}
