package sqlite

import (
	"context"
	"time"

	"github.com/abuRizq/vegetable-shop/internal/auth/domain"
)

type resetTokensRepo struct {
	q querier
}

func (r *resetTokensRepo) Create(ctx context.Context, t domain.PasswordResetToken) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO password_reset_tokens (id, user_id, fingerprint, expires_at, used, created_at)
		 VALUES (?, ?, ?, ?, 0, ?)`,
		t.ID, t.UserID, t.Fingerprint, t.ExpiresAt.UTC(), time.Now().UTC())
	return mapErr(err)
}

func (r *resetTokensRepo) GetByFingerprint(ctx context.Context, fp string) (domain.PasswordResetToken, error) {
	var t domain.PasswordResetToken
	err := r.q.QueryRowContext(ctx,
		`SELECT id, user_id, fingerprint, expires_at, used, created_at
		 FROM password_reset_tokens WHERE fingerprint = ?`, fp).
		Scan(&t.ID, &t.UserID, &t.Fingerprint, &t.ExpiresAt, &t.Used, &t.CreatedAt)
	if err != nil {
		return domain.PasswordResetToken{}, mapErr(err)
	}
	return t, nil
}

func (r *resetTokensRepo) MarkUsed(ctx context.Context, id string) error {
	// The used = 0 guard makes consumption atomic: the second of two racing
	// resets sees zero affected rows and fails with ErrNotFound.
	res, err := r.q.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used = 1 WHERE id = ? AND used = 0`, id)
	if err != nil {
		return mapErr(err)
	}
	return requireAffected(res)
}

func (r *resetTokensRepo) DeleteExpired(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at < ?`, cutoff)
	if err != nil {
		return 0, mapErr(err)
	}
	return res.RowsAffected()
}
