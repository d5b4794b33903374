// internal/storage/postgres/token_repo.go
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
)

var tokenTracer = otel.Tracer("auth/storage/tokens")

type tokenRepo struct {
	db *pgxpool.Pool
}

func NewTokenRepo(db *pgxpool.Pool) TokenRepository {
	return &tokenRepo{db: db}
}

func (r *tokenRepo) Issue(ctx context.Context, userID string, ttl time.Duration) (*RefreshToken, error) {
	ctx, span := tokenTracer.Start(ctx, "Issue")
	defer span.End()

	now := time.Now().UTC()
	token := &RefreshToken{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO refresh_tokens (id, token, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		token.ID, token.Token, token.UserID, token.CreatedAt, token.ExpiresAt)
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("insert refresh token: %w", err)
	}
	return token, nil
}

// Rotate выполняется одной транзакцией: условный UPDATE по отзыву старого
// токена служит compare-and-revoke примитивом — из двух конкурентных вызовов
// на одном значении строку изменит ровно один, второй увидит ErrNotFound.
func (r *tokenRepo) Rotate(ctx context.Context, token string, ttl time.Duration) (*RefreshToken, *User, error) {
	ctx, span := tokenTracer.Start(ctx, "Rotate")
	defer span.End()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	tag, err := tx.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now()
		 WHERE token = $1 AND revoked_at IS NULL AND expires_at > now()`,
		token)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("revoke old token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, nil, ErrNotFound
	}

	row := tx.QueryRow(ctx,
		`SELECT u.id, u.username, u.email, u.password_hash, u.role, u.created_at
		 FROM users u JOIN refresh_tokens rt ON rt.user_id = u.id
		 WHERE rt.token = $1`,
		token)
	user, err := scanUser(row)
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	next := &RefreshToken{
		ID:        uuid.NewString(),
		Token:     uuid.NewString(),
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	_, err = tx.Exec(ctx,
		`INSERT INTO refresh_tokens (id, token, user_id, created_at, expires_at) VALUES ($1, $2, $3, $4, $5)`,
		next.ID, next.Token, next.UserID, next.CreatedAt, next.ExpiresAt)
	if err != nil {
		span.RecordError(err)
		return nil, nil, fmt.Errorf("insert replacement token: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, nil, fmt.Errorf("commit: %w", err)
	}
	return next, user, nil
}

// Revoke отзывает токен без проверки expires_at: logout должен гасить
// и уже просроченные значения.
func (r *tokenRepo) Revoke(ctx context.Context, token string) error {
	ctx, span := tokenTracer.Start(ctx, "Revoke")
	defer span.End()

	tag, err := r.db.Exec(ctx,
		`UPDATE refresh_tokens SET revoked_at = now() WHERE token = $1 AND revoked_at IS NULL`,
		token)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("revoke token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
