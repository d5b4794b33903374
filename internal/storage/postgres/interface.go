// internal/storage/postgres/interface.go
package postgres

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound возвращается, когда запись отсутствует либо уже недействительна.
var ErrNotFound = errors.New("storage: not found")

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

type RefreshToken struct {
	ID        string
	Token     string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

type UserRepository interface {
	// FindByLogin ищет пользователя по username ИЛИ email.
	FindByLogin(ctx context.Context, usernameOrEmail string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	// FindAny возвращает произвольного существующего пользователя
	// (dev-заглушка LinkedIn-обмена).
	FindAny(ctx context.Context) (*User, error)
	Create(ctx context.Context, user *User) error
}

type TokenRepository interface {
	// Issue создаёт и сохраняет новый refresh-токен для пользователя.
	Issue(ctx context.Context, userID string, ttl time.Duration) (*RefreshToken, error)

	// Rotate атомарно отзывает токен и выпускает замену для того же
	// владельца. Отсутствующий, просроченный или уже отозванный токен,
	// как и отсутствующий владелец — ErrNotFound; из двух конкурентных
	// ротаций одного значения успешной будет ровно одна.
	Rotate(ctx context.Context, token string, ttl time.Duration) (*RefreshToken, *User, error)

	// Revoke отзывает токен независимо от срока его действия.
	Revoke(ctx context.Context, token string) error
}
