package auth

import (
	"context"
	"time"

	"habitflow/internal/domain"
)

// UserRepositoryInterface covers only the methods the auth service uses.
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByGoogleID(ctx context.Context, googleID string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// RefreshTokenRepositoryInterface is storage for refresh token records.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, t *domain.RefreshToken) error
	GetByToken(ctx context.Context, token string) (*domain.RefreshToken, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Identity is the verified result handed back by the external OAuth
// collaborator: an email plus the provider's opaque subject id.
type Identity struct {
	Email    string
	GoogleID string
	Name     string
}

// IdentityVerifier exchanges a provider authorization code for a verified
// identity. The wire-level OAuth flow lives behind this interface.
type IdentityVerifier interface {
	Verify(ctx context.Context, code string) (*Identity, error)
}
