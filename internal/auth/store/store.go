package store

import (
	"context"
	"errors"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite today)
// implement it. Sub-repositories keep each concern's queries together and
// make faking a single repo in tests straightforward.
type Store interface {
	Users() Users
	RefreshTokens() RefreshTokens
	ResetTokens() ResetTokens
	Categories() Categories
	Products() Products

	ApplyMigrations() error

	// WithTx runs fn inside a transaction. fn returning an error rolls the
	// transaction back; nil commits it. Multi-step writes (token rotation,
	// password reset) must go through here.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases the underlying database handle.
	Close() error

	// Ping verifies the database is reachable; used by readiness probes.
	Ping(ctx context.Context) error
}

// Tx is a transaction-scoped Store.
type Tx interface {
	Users() Users
	RefreshTokens() RefreshTokens
	ResetTokens() ResetTokens
	Categories() Categories
	Products() Products
}

type Users interface {
	// GetByID returns a user by id.
	GetByID(ctx context.Context, id string) (domain.User, error)

	// GetByEmail looks a user up by lowercased email; used during login.
	GetByEmail(ctx context.Context, email string) (domain.User, error)

	// Create inserts a new user (id supplied by the app as a ULID).
	// Returns ErrAlreadyExists for a duplicate email.
	Create(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the password hash and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// List returns users newest first, for the admin listing.
	List(ctx context.Context, limit, offset int) ([]domain.User, error)

	// Count returns the total number of users.
	Count(ctx context.Context) (int64, error)
}

type RefreshTokens interface {
	// Create stores a new refresh token record.
	Create(ctx context.Context, t domain.RefreshToken) error

	// GetByFingerprint returns the token record for a fingerprint.
	GetByFingerprint(ctx context.Context, fp string) (domain.RefreshToken, error)

	// Revoke flips revoked for a single token.
	Revoke(ctx context.Context, fp string) error

	// RevokeAllForUser revokes every live token a user holds (logout,
	// password reset).
	RevokeAllForUser(ctx context.Context, userID string) error

	// DeleteExpired prunes rows past expiry; housekeeping only.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}

type Categories interface {
	// GetByID returns a category by id.
	GetByID(ctx context.Context, id string) (domain.Category, error)

	// Create inserts a new category. Returns ErrAlreadyExists for a
	// duplicate name.
	Create(ctx context.Context, c domain.Category) error

	// List returns all categories ordered by name.
	List(ctx context.Context) ([]domain.Category, error)
}

type Products interface {
	// GetByID returns a product by id.
	GetByID(ctx context.Context, id string) (domain.Product, error)

	// Create inserts a new product.
	Create(ctx context.Context, p domain.Product) error

	// List returns products newest first, optionally scoped to a category
	// (empty categoryID means all).
	List(ctx context.Context, categoryID string, limit, offset int) ([]domain.Product, error)

	// Count returns the number of products in scope (empty categoryID means
	// all).
	Count(ctx context.Context, categoryID string) (int64, error)
}

type ResetTokens interface {
	// Create stores a new password-reset token record.
	Create(ctx context.Context, t domain.PasswordResetToken) error

	// GetByFingerprint returns the token record for a fingerprint.
	GetByFingerprint(ctx context.Context, fp string) (domain.PasswordResetToken, error)

	// MarkUsed consumes the token. Single use is enforced here, not in the
	// service, so concurrent resets cannot double-spend.
	MarkUsed(ctx context.Context, id string) error

	// DeleteExpired prunes rows past expiry; housekeeping only.
	DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error)
}
