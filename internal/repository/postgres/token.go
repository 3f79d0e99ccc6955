package postgres

import (
	"context"
	"database/sql"
	"time"

	"linguista/internal/domain"

	"github.com/google/uuid"
)

// TokenRepo implements repository.TokenRepository
type TokenRepo struct {
	db *sql.DB
}

// NewTokenRepo creates a new token repository
func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{db: db}
}

// Create stores an issued token
func (r *TokenRepo) Create(ctx context.Context, t *domain.AuthToken) error {
	query := `INSERT INTO auth_tokens (id, user_id, created, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, t.ID, t.UserID, t.Created, t.ExpiresAt)
	return wrap("create token", err)
}

// Get returns a stored token
func (r *TokenRepo) Get(ctx context.Context, id uuid.UUID) (*domain.AuthToken, error) {
	var t domain.AuthToken
	query := `SELECT id, user_id, created, expires_at FROM auth_tokens WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&t.ID, &t.UserID, &t.Created, &t.ExpiresAt)
	if err != nil {
		return nil, wrap("get token", err)
	}
	return &t, nil
}

// Delete revokes a token
func (r *TokenRepo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE id = $1`, id)
	return wrap("delete token", err)
}

// DeleteExpired purges tokens past their expiry
func (r *TokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM auth_tokens WHERE expires_at < $1`, now)
	if err != nil {
		return 0, wrap("delete expired tokens", err)
	}
	return res.RowsAffected()
}

// ConfirmationRepo implements repository.ConfirmationRepository
type ConfirmationRepo struct {
	db *sql.DB
}

// NewConfirmationRepo creates a new email confirmation repository
func NewConfirmationRepo(db *sql.DB) *ConfirmationRepo {
	return &ConfirmationRepo{db: db}
}

// Create stores a confirmation key
func (r *ConfirmationRepo) Create(ctx context.Context, c *domain.EmailConfirmation) error {
	query := `INSERT INTO email_confirmations (key, user_id, created, expires_at) VALUES ($1, $2, $3, $4)`
	_, err := r.db.ExecContext(ctx, query, c.Key, c.UserID, c.Created, c.ExpiresAt)
	return wrap("create confirmation", err)
}

// Get returns a confirmation by key
func (r *ConfirmationRepo) Get(ctx context.Context, key string) (*domain.EmailConfirmation, error) {
	var c domain.EmailConfirmation
	query := `SELECT key, user_id, created, expires_at FROM email_confirmations WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&c.Key, &c.UserID, &c.Created, &c.ExpiresAt)
	if err != nil {
		return nil, wrap("get confirmation", err)
	}
	return &c, nil
}

// Delete removes a used confirmation
func (r *ConfirmationRepo) Delete(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM email_confirmations WHERE key = $1`, key)
	return wrap("delete confirmation", err)
}

// DeleteExpired purges stale confirmations
func (r *ConfirmationRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM email_confirmations WHERE expires_at < $1`, now)
	if err != nil {
		return 0, wrap("delete expired confirmations", err)
	}
	return res.RowsAffected()
}
