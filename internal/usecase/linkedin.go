// internal/usecase/linkedin.go
package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/YaganovValera/todo-auth/internal/jwt"
	"github.com/YaganovValera/todo-auth/internal/linkedin"
	"github.com/YaganovValera/todo-auth/internal/metrics"
	"github.com/YaganovValera/todo-auth/internal/password"
	"github.com/YaganovValera/todo-auth/internal/storage/postgres"
	"github.com/YaganovValera/todo-auth/pkg/logger"
)

var linkedInTracer = otel.Tracer("auth/usecase/linkedin")

// LinkedInClient — исходящие вызовы к провайдеру.
type LinkedInClient interface {
	ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error)
	FetchUserInfo(ctx context.Context, accessToken string) (*linkedin.UserInfo, error)
}

type linkedInHandler struct {
	users     postgres.UserRepository
	signer    jwt.Signer
	client    LinkedInClient
	cfg       linkedin.Config
	devMode   bool
	accessTTL time.Duration
	log       *logger.Logger
}

func NewLinkedInHandler(users postgres.UserRepository, signer jwt.Signer, client LinkedInClient, cfg linkedin.Config, devMode bool, accessTTL time.Duration, log *logger.Logger) LinkedInHandler {
	return &linkedInHandler{
		users:     users,
		signer:    signer,
		client:    client,
		cfg:       cfg,
		devMode:   devMode,
		accessTTL: accessTTL,
		log:       log.Named("linkedin"),
	}
}

// Handle проходит обмен по шагам; первый же сбой терминален и отображается
// в конкретный Outcome — исключений, пересекающих границу фасада, нет.
func (h *linkedInHandler) Handle(ctx context.Context, code, codeVerifier string) (*TokenResult, Outcome) {
	ctx, span := linkedInTracer.Start(ctx, "ExchangeLinkedIn")
	defer span.End()

	// Шаг 1: dev-заглушка. Вне development-окружения недостижима.
	if h.devMode {
		return h.devBypass(ctx)
	}

	// Шаг 2: полнота конфигурации. Какие именно ключи отсутствуют —
	// только в серверный лог.
	if err := h.cfg.Validate(); err != nil {
		h.log.WithContext(ctx).Error("linkedin config incomplete", zap.Error(err))
		metrics.LinkedInTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	// Шаг 3: обмен кода на токен провайдера.
	providerToken, err := h.client.ExchangeCode(ctx, code, codeVerifier)
	if err != nil {
		return nil, h.mapExchangeErr(ctx, "token exchange", err)
	}

	// Шаг 4: профиль.
	info, err := h.client.FetchUserInfo(ctx, providerToken)
	if err != nil {
		return nil, h.mapExchangeErr(ctx, "userinfo fetch", err)
	}

	// Шаг 5: локальный пользователь по email, find-or-create.
	user, err := h.users.FindByEmail(ctx, info.Email)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		user = &postgres.User{
			ID:           uuid.NewString(),
			Username:     info.FirstName + info.LastName,
			Email:        info.Email,
			PasswordHash: password.SSOSentinel,
			Role:         string(jwt.RoleUser),
		}
		if err := h.users.Create(ctx, user); err != nil {
			h.log.WithContext(ctx).Error("create linkedin user failed", zap.Error(err))
			metrics.LinkedInTotal.WithLabelValues("error").Inc()
			return nil, OutcomeError
		}
		h.log.WithContext(ctx).Info("new user created from linkedin", zap.String("email", user.Email))
	case err != nil:
		h.log.WithContext(ctx).Error("user lookup failed", zap.Error(err))
		metrics.LinkedInTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	default:
		h.log.WithContext(ctx).Info("linkedin login for existing user", zap.String("email", user.Email))
	}

	// Шаг 6: свой access-токен.
	access, _, err := h.signer.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		metrics.LinkedInTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	metrics.IssuedTokens.WithLabelValues("access").Inc()
	metrics.LinkedInTotal.WithLabelValues("ok").Inc()
	h.log.WithContext(ctx).Info("linkedin login successful",
		zap.String("access_token", logger.Truncate(access)))

	return &TokenResult{AccessToken: access, ExpiresIn: int64(h.accessTTL.Seconds())}, OutcomeSuccess
}

func (h *linkedInHandler) devBypass(ctx context.Context) (*TokenResult, Outcome) {
	devUser, err := h.users.FindAny(ctx)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		h.log.WithContext(ctx).Error("dev linkedin login failed: no local users")
		metrics.LinkedInTotal.WithLabelValues("not_found").Inc()
		return nil, OutcomeUserNotFound
	case err != nil:
		h.log.WithContext(ctx).Error("dev linkedin login failed", zap.Error(err))
		metrics.LinkedInTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	access, _, err := h.signer.Issue(devUser.ID, devUser.Username, devUser.Email, devUser.Role)
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		metrics.LinkedInTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	metrics.LinkedInTotal.WithLabelValues("ok").Inc()
	h.log.WithContext(ctx).Info("mock linkedin login succeeded",
		zap.String("username", devUser.Username),
		zap.String("access_token", logger.Truncate(access)))

	return &TokenResult{AccessToken: access, ExpiresIn: int64(h.accessTTL.Seconds())}, OutcomeSuccess
}

func (h *linkedInHandler) mapExchangeErr(ctx context.Context, step string, err error) Outcome {
	if errors.Is(err, linkedin.ErrExchangeStatus) {
		h.log.WithContext(ctx).Error("linkedin "+step+" rejected by provider", zap.Error(err))
		metrics.LinkedInTotal.WithLabelValues("exchange_failed").Inc()
		return OutcomeLinkedInExchangeFailed
	}
	h.log.WithContext(ctx).Error("linkedin "+step+" failed", zap.Error(err))
	metrics.LinkedInTotal.WithLabelValues("error").Inc()
	return OutcomeError
}
