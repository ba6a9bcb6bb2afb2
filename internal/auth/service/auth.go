package service

import (
	"context"
	"errors"
	"strings"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
	"github.com/abuRizq/vegetable-shop/internal/auth/store"
	"github.com/abuRizq/vegetable-shop/pkg/cryptox"
	"github.com/abuRizq/vegetable-shop/pkg/idx"
	"github.com/abuRizq/vegetable-shop/pkg/slogx"
)

// AuthService implements registration, login, and logout on top of the user
// store and token service.
type AuthService struct {
	Store  store.Store
	Tokens *TokenService
}

// Register creates a user with role USER and issues their first token pair.
// Returns ErrEmailTaken for a duplicate email.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, *TokenPair, error) {
	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.User{}, nil, err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Name:         strings.TrimSpace(name),
		Email:        NormalizeEmail(email),
		PasswordHash: hash,
		Role:         domain.RoleUser,
	}

	if err := s.Store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, nil, ErrEmailTaken
		}
		return domain.User{}, nil, err
	}

	pair, err := s.Tokens.IssuePair(ctx, user)
	if err != nil {
		return domain.User{}, nil, err
	}

	slogx.FromContext(ctx).Info("user registered", "user_id", user.ID)
	return user, pair, nil
}

// Login verifies credentials and issues a token pair. Unknown email and wrong
// password both come back as ErrInvalidCredentials so the response does not
// reveal which one it was.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, *TokenPair, error) {
	user, err := s.Store.Users().GetByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison anyway so the timing of the two
			// failure paths stays comparable.
			_ = cryptox.VerifyPassword(password, dummyHash)
			return domain.User{}, nil, ErrInvalidCredentials
		}
		return domain.User{}, nil, err
	}

	if err := cryptox.VerifyPassword(password, user.PasswordHash); err != nil {
		return domain.User{}, nil, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(ctx, user)
	if err != nil {
		return domain.User{}, nil, err
	}

	slogx.FromContext(ctx).Info("user logged in", "user_id", user.ID)
	return user, pair, nil
}

// Logout revokes every refresh token the user holds. Idempotent: logging out
// twice is fine.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	return s.Tokens.RevokeAll(ctx, userID)
}

// NormalizeEmail lowercases and trims an email address. Store lookups and
// uniqueness both work on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// dummyHash is a valid argon2id hash of a random throwaway value, used to
// equalize login timing when the email does not exist.
const dummyHash = "$argon2id$v=19$m=65536,t=3,p=2$AAAAAAAAAAAAAAAAAAAAAA$L9tOwUgVgkdKtYcYZdetqvYZX7qnnbpXUrBRtholXDI"
