package domain

import "time"

// RefreshToken is the stored record of an opaque refresh credential. Only the
// SHA-256 fingerprint of the token is persisted.
type RefreshToken struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresAt   time.Time
	Revoked     bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Expired reports whether the token is past its expiry at the given time.
func (t RefreshToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

// Usable reports whether the token can still be exchanged.
func (t RefreshToken) Usable(now time.Time) bool {
	return !t.Revoked && !t.Expired(now)
}

// PasswordResetToken is a single-use credential for the forgot-password flow.
// As with refresh tokens, only a fingerprint is stored.
type PasswordResetToken struct {
	ID          string
	UserID      string
	Fingerprint string
	ExpiresAt   time.Time
	Used        bool
	CreatedAt   time.Time
}

// Usable reports whether the reset token can still be consumed.
func (t PasswordResetToken) Usable(now time.Time) bool {
	return !t.Used && now.Before(t.ExpiresAt)
}
