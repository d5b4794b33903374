// internal/usecase/logout.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/YaganovValera/todo-auth/internal/metrics"
	"github.com/YaganovValera/todo-auth/internal/storage/postgres"
	"github.com/YaganovValera/todo-auth/pkg/logger"
)

var logoutTracer = otel.Tracer("auth/usecase/logout")

type logoutHandler struct {
	tokens postgres.TokenRepository
	log    *logger.Logger
}

func NewLogoutHandler(tokens postgres.TokenRepository, log *logger.Logger) LogoutHandler {
	return &logoutHandler{tokens: tokens, log: log.Named("logout")}
}

func (h *logoutHandler) Handle(ctx context.Context, refreshToken string) Outcome {
	ctx, span := logoutTracer.Start(ctx, "Logout")
	defer span.End()

	// Пустое значение гасится без похода в хранилище.
	if strings.TrimSpace(refreshToken) == "" {
		metrics.LogoutTotal.WithLabelValues("invalid").Inc()
		return OutcomeLogoutInvalidToken
	}

	err := h.tokens.Revoke(ctx, refreshToken)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		h.log.WithContext(ctx).Warn("logout with invalid refresh token",
			zap.String("refresh_token", logger.Truncate(refreshToken)))
		metrics.LogoutTotal.WithLabelValues("invalid").Inc()
		return OutcomeLogoutInvalidToken
	case err != nil:
		h.log.WithContext(ctx).Error("revoke failed", zap.Error(err))
		metrics.LogoutTotal.WithLabelValues("error").Inc()
		return OutcomeError
	}

	metrics.LogoutTotal.WithLabelValues("ok").Inc()
	h.log.WithContext(ctx).Info("user logged out",
		zap.String("refresh_token", logger.Truncate(refreshToken)))
	return OutcomeSuccess
}
