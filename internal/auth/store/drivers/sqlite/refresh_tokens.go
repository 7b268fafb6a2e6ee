package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/lumeva/authcore/internal/auth/domain"
)

type refreshTokensRepo struct {
	db *sql.DB
}

func (r *refreshTokensRepo) Add(ctx context.Context, t domain.RefreshToken) error {
	// INSERT OR IGNORE keeps Add idempotent on the fingerprint PK.
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO refresh_tokens (token_hash, user_id, username, expires_at)
		 VALUES (?, ?, ?, ?)`,
		t.TokenHash, t.UserID, t.Username, t.ExpiresAt)
	return err
}

func (r *refreshTokensRepo) Exists(ctx context.Context, tokenHash string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM refresh_tokens WHERE token_hash = ?`, tokenHash).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *refreshTokensRepo) Remove(ctx context.Context, tokenHash string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE token_hash = ?`, tokenHash)
	return err
}

func (r *refreshTokensRepo) DeleteExpired(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM refresh_tokens WHERE expires_at <= ?`, time.Now().UTC())
	return err
}
