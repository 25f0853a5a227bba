package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"habitflow/internal/domain"
	"habitflow/internal/repository"
)

type accessTokenIssuer interface {
	Generate(userID int64) (string, error)
}

// Service owns the session credential lifecycle: registration and login issue
// a token pair, refresh rotates the opaque token, logout revokes it.
type Service struct {
	users      UserRepositoryInterface
	tokens     RefreshTokenRepositoryInterface
	jwt        accessTokenIssuer
	identity   IdentityVerifier
	refreshTTL time.Duration
	now        func() time.Time
}

// TokenPair is what every successful authentication hands out: a stateless
// signed access token and a server-side refresh token.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

func NewService(
	users UserRepositoryInterface,
	tokens RefreshTokenRepositoryInterface,
	jwt accessTokenIssuer,
	identity IdentityVerifier,
	refreshTTL time.Duration,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		jwt:        jwt,
		identity:   identity,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*domain.User, *TokenPair, error) {
	exists, err := s.users.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, nil, err
	}
	if exists {
		return nil, nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}

	user := &domain.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		Name:         req.Name,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, nil, ErrEmailTaken
		}
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Login folds an unknown email and a wrong password into the same error so
// the response leaks nothing about which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if user.PasswordHash == "" {
		return nil, nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// LoginWithGoogle exchanges the provider code through the identity
// collaborator, then finds or creates the matching account.
func (s *Service) LoginWithGoogle(ctx context.Context, code string) (*domain.User, *TokenPair, error) {
	ident, err := s.identity.Verify(ctx, code)
	if err != nil {
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.users.GetByGoogleID(ctx, ident.GoogleID)
	if errors.Is(err, repository.ErrNotFound) {
		// Fall back to email: a password account may adopt the Google id.
		user, err = s.users.GetByEmail(ctx, ident.Email)
		if errors.Is(err, repository.ErrNotFound) {
			user = &domain.User{
				Email:    ident.Email,
				GoogleID: &ident.GoogleID,
				Name:     ident.Name,
			}
			err = s.users.Create(ctx, user)
		}
	}
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	return user, pair, nil
}

// Refresh rotates the session: the presented token is verified, deleted, and
// replaced by a fresh pair. An expired record is deleted on sight (lazy
// cleanup alongside the periodic sweep).
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	record, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	if record.IsExpired(s.now()) {
		_ = s.tokens.Delete(ctx, refreshToken)
		return nil, ErrRefreshExpired
	}

	if err := s.tokens.Delete(ctx, refreshToken); err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}
	return s.issueTokens(ctx, record.UserID)
}

// Logout revokes one refresh token. Absence is reported as ErrTokenNotFound;
// the handler still answers 200 since the session is gone either way.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	err := s.tokens.Delete(ctx, refreshToken)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTokenNotFound
	}
	return err
}

// LogoutAll revokes every refresh token of the user. Any previously issued
// token fails with not-found afterwards.
func (s *Service) LogoutAll(ctx context.Context, userID int64) error {
	return s.tokens.DeleteByUser(ctx, userID)
}

func (s *Service) CurrentUser(ctx context.Context, userID int64) (*domain.User, error) {
	return s.users.GetByID(ctx, userID)
}

// CleanupExpired deletes all refresh tokens past their expiry.
func (s *Service) CleanupExpired(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

func (s *Service) issueTokens(ctx context.Context, userID int64) (*TokenPair, error) {
	access, err := s.jwt.Generate(userID)
	if err != nil {
		return nil, err
	}

	refresh, err := newRefreshToken()
	if err != nil {
		return nil, err
	}
	record := &domain.RefreshToken{
		UserID:    userID,
		Token:     refresh,
		ExpiresAt: s.now().Add(s.refreshTTL),
	}
	if err := s.tokens.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// newRefreshToken returns 64 random bytes hex-encoded: 128 characters,
// meaningless without the server-side record.
func newRefreshToken() (string, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
