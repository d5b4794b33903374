// internal/usecase/login.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/YaganovValera/todo-auth/internal/jwt"
	"github.com/YaganovValera/todo-auth/internal/metrics"
	"github.com/YaganovValera/todo-auth/internal/password"
	"github.com/YaganovValera/todo-auth/internal/storage/postgres"
	"github.com/YaganovValera/todo-auth/pkg/backoff"
	"github.com/YaganovValera/todo-auth/pkg/logger"
)

var loginTracer = otel.Tracer("auth/usecase/login")

type loginHandler struct {
	users      postgres.UserRepository
	tokens     postgres.TokenRepository
	signer     jwt.Signer
	accessTTL  time.Duration
	refreshTTL time.Duration
	decoyHash  string
	log        *logger.Logger
}

// fallbackDecoyHash — корректный по формату хеш (16-байтовая соль и
// 32-байтовый ключ из нулей), чтобы Verify прогонял полный PBKDF2, даже
// если генерация случайной соли на старте не удалась.
const fallbackDecoyHash = "AAAAAAAAAAAAAAAAAAAAAA==.AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA="

func NewLoginHandler(users postgres.UserRepository, tokens postgres.TokenRepository, signer jwt.Signer, accessTTL, refreshTTL time.Duration, log *logger.Logger) LoginHandler {
	// decoyHash сжигает PBKDF2-итерации при неизвестном логине, чтобы
	// ответ по времени не отличался от случая неверного пароля.
	decoy, err := password.Hash(uuid.NewString())
	if err != nil {
		log.Error("decoy hash generation failed", zap.Error(err))
		decoy = fallbackDecoyHash
	}
	return &loginHandler{
		users:      users,
		tokens:     tokens,
		signer:     signer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		decoyHash:  decoy,
		log:        log.Named("login"),
	}
}

func (h *loginHandler) Handle(ctx context.Context, usernameOrEmail, pass string) (*LoginResult, Outcome) {
	ctx, span := loginTracer.Start(ctx, "Login")
	defer span.End()

	if strings.TrimSpace(usernameOrEmail) == "" || pass == "" {
		metrics.LoginTotal.WithLabelValues("invalid").Inc()
		return nil, OutcomeInvalidInput
	}

	user, err := h.users.FindByLogin(ctx, usernameOrEmail)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		_ = password.Verify(pass, h.decoyHash)
		h.log.WithContext(ctx).Warn("login failed: invalid credentials", zap.String("login", usernameOrEmail))
		metrics.LoginTotal.WithLabelValues("invalid").Inc()
		return nil, OutcomeInvalidCredentials
	case err != nil:
		h.log.WithContext(ctx).Error("user lookup failed", zap.Error(err))
		metrics.LoginTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	if !password.Verify(pass, user.PasswordHash) {
		h.log.WithContext(ctx).Warn("login failed: invalid credentials", zap.String("login", usernameOrEmail))
		metrics.LoginTotal.WithLabelValues("invalid").Inc()
		return nil, OutcomeInvalidCredentials
	}

	if !jwt.IsValidRole(user.Role) {
		// Повреждённая роль — отказ в аутентификации, а не 500.
		h.log.WithContext(ctx).Warn("login failed: missing or invalid role",
			zap.String("username", user.Username), zap.String("role", user.Role))
		metrics.LoginTotal.WithLabelValues("invalid").Inc()
		return nil, OutcomeInvalidCredentials
	}

	access, _, err := h.signer.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		metrics.LoginTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	var refresh *postgres.RefreshToken
	err = backoff.Execute(ctx, backoff.Config{MaxElapsedTime: 2 * time.Second}, h.log, func(ctx context.Context) error {
		var issueErr error
		refresh, issueErr = h.tokens.Issue(ctx, user.ID, h.refreshTTL)
		return issueErr
	})
	if err != nil {
		h.log.WithContext(ctx).Error("store refresh failed", zap.Error(err))
		metrics.LoginTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	metrics.IssuedTokens.WithLabelValues("access").Inc()
	metrics.IssuedTokens.WithLabelValues("refresh").Inc()
	metrics.LoginTotal.WithLabelValues("ok").Inc()

	h.log.WithContext(ctx).Info("user logged in",
		zap.String("username", user.Username),
		zap.String("access_token", logger.Truncate(access)),
		zap.String("refresh_token", logger.Truncate(refresh.Token)),
	)

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: refresh.Token,
		ExpiresIn:    int64(h.accessTTL.Seconds()),
	}, OutcomeSuccess
}
