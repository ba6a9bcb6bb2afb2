package sqlite

import (
	"context"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
)

type refreshTokensRepo struct {
	q querier
}

func (r *refreshTokensRepo) Create(ctx context.Context, t domain.RefreshToken) error {
	now := time.Now().UTC()
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO refresh_tokens (id, user_id, fingerprint, expires_at, revoked, created_at, updated_at)
		 VALUES (?, ?, ?, ?, 0, ?, ?)`,
		t.ID, t.UserID, t.Fingerprint, t.ExpiresAt.UTC(), now, now)
	return mapErr(err)
}

func (r *refreshTokensRepo) GetByFingerprint(ctx context.Context, fp string) (domain.RefreshToken, error) {
	var t domain.RefreshToken
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, fingerprint, expires_at, revoked, created_at, updated_at
		 FROM refresh_tokens WHERE fingerprint = ?`, fp).
		Scan(&t.ID, &t.UserID, &t.Fingerprint, &t.ExpiresAt, &t.Revoked, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return domain.RefreshToken{}, mapErr(err)
	}
	return t, nil
}

func (r *refreshTokensRepo) Revoke(ctx context.Context, fp string) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE fingerprint = ? AND revoked = 0`,
		time.Now().UTC(), fp)
	if err != nil {
		return mapErr(err)
	}
	return requireAffected(res)
}

func (r *refreshTokensRepo) RevokeAllForUser(ctx context.Context, userID string) error {
	// No affected-rows check: revoking a user with no live tokens is fine.
	_, err := r.q.ExecContext(ctx,
		`UPDATE refresh_tokens SET revoked = 1, updated_at = ? WHERE user_id = ? AND revoked = 0`,
		time.Now().UTC(), userID)
	return mapErr(err)
}

func (r *refreshTokensRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at < ?`, cutoff)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}
