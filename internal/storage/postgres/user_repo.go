// internal/storage/postgres/user_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel"
)

var userTracer = otel.Tracer("auth/storage/users")

type userRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, username, email, password_hash, role, created_at`

func scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *userRepo) FindByLogin(ctx context.Context, usernameOrEmail string) (*User, error) {
	ctx, span := userTracer.Start(ctx, "FindByLogin")
	defer span.End()

	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = $1 OR email = $1`,
		usernameOrEmail)
	return scanUser(row)
}

func (r *userRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	ctx, span := userTracer.Start(ctx, "FindByEmail")
	defer span.End()

	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (r *userRepo) FindAny(ctx context.Context) (*User, error) {
	ctx, span := userTracer.Start(ctx, "FindAny")
	defer span.End()

	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at LIMIT 1`)
	return scanUser(row)
}

func (r *userRepo) Create(ctx context.Context, user *User) error {
	ctx, span := userTracer.Start(ctx, "Create")
	defer span.End()

	_, err := r.db.Exec(ctx,
		`INSERT INTO users (id, username, email, password_hash, role) VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Username, user.Email, user.PasswordHash, user.Role)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}
