// internal/storage/postgres/seed.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/YaganovValera/todo-auth/internal/password"
	"github.com/YaganovValera/todo-auth/pkg/logger"
)

// Seed наполняет пустую БД стартовыми пользователями. Вызывается только
// в development-окружении; на непустой базе ничего не делает.
func Seed(ctx context.Context, users UserRepository, log *logger.Logger) error {
	if _, err := users.FindAny(ctx); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("seed: probe users: %w", err)
	}

	seedUsers := []struct {
		username string
		email    string
		pass     string
		role     string
	}{
		{"admin", "admin@example.com", "admin123!", "Admin"},
		{"demo", "demo@example.com", "password123", "User"},
	}

	for _, su := range seedUsers {
		hash, err := password.Hash(su.pass)
		if err != nil {
			return fmt.Errorf("seed: hash password: %w", err)
		}
		u := &User{
			ID:           uuid.NewString(),
			Username:     su.username,
			Email:        su.email,
			PasswordHash: hash,
			Role:         su.role,
		}
		if err := users.Create(ctx, u); err != nil {
			return fmt.Errorf("seed: create %s: %w", su.username, err)
		}
		log.Info("seeded user", zap.String("username", su.username), zap.String("role", su.role))
	}
	return nil
}
