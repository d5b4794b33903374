// internal/usecase/refresh.go
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/YaganovValera/todo-auth/internal/jwt"
	"github.com/YaganovValera/todo-auth/internal/metrics"
	"github.com/YaganovValera/todo-auth/internal/storage/postgres"
	"github.com/YaganovValera/todo-auth/pkg/logger"
)

var refreshTracer = otel.Tracer("auth/usecase/refresh")

type refreshHandler struct {
	tokens     postgres.TokenRepository
	signer     jwt.Signer
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *logger.Logger
}

func NewRefreshHandler(tokens postgres.TokenRepository, signer jwt.Signer, accessTTL, refreshTTL time.Duration, log *logger.Logger) RefreshHandler {
	return &refreshHandler{
		tokens:     tokens,
		signer:     signer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log.Named("refresh"),
	}
}

func (h *refreshHandler) Handle(ctx context.Context, refreshToken string) (*LoginResult, Outcome) {
	ctx, span := refreshTracer.Start(ctx, "Refresh")
	defer span.End()

	if strings.TrimSpace(refreshToken) == "" {
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, OutcomeTokenInvalid
	}

	next, user, err := h.tokens.Rotate(ctx, refreshToken, h.refreshTTL)
	switch {
	case errors.Is(err, postgres.ErrNotFound):
		h.log.WithContext(ctx).Warn("refresh failed: invalid or expired token",
			zap.String("refresh_token", logger.Truncate(refreshToken)))
		metrics.RefreshTotal.WithLabelValues("invalid").Inc()
		return nil, OutcomeTokenInvalid
	case err != nil:
		h.log.WithContext(ctx).Error("token rotation failed", zap.Error(err))
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	access, _, err := h.signer.Issue(user.ID, user.Username, user.Email, user.Role)
	if err != nil {
		h.log.WithContext(ctx).Error("generate access failed", zap.Error(err))
		metrics.RefreshTotal.WithLabelValues("error").Inc()
		return nil, OutcomeError
	}

	metrics.IssuedTokens.WithLabelValues("access").Inc()
	metrics.IssuedTokens.WithLabelValues("refresh").Inc()
	metrics.RefreshTotal.WithLabelValues("ok").Inc()

	return &LoginResult{
		AccessToken:  access,
		RefreshToken: next.Token,
		ExpiresIn:    int64(h.accessTTL.Seconds()),
	}, OutcomeSuccess
}
