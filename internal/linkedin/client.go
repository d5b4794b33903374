// internal/linkedin/client.go
package linkedin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/YaganovValera/todo-auth/pkg/logger"
)

var tracer = otel.Tracer("auth/linkedin")

// ErrExchangeStatus возвращается, когда провайдер ответил не-2xx статусом
// на обмен кода или на запрос профиля.
var ErrExchangeStatus = errors.New("linkedin: provider returned non-success status")

// UserInfo — профиль из OIDC userinfo-эндпоинта LinkedIn.
type UserInfo struct {
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
	Email     string `json:"email"`
}

// Client выполняет два последовательных вызова к LinkedIn: обмен
// authorization code на access token и запрос профиля. Ретраев нет —
// authorization code одноразовый, повтор обмена бессмыслен.
type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

func NewClient(cfg Config, httpClient *http.Client, log *logger.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{cfg: cfg, http: httpClient, log: log.Named("linkedin")}
}

// ExchangeCode обменивает authorization code (+PKCE verifier) на access
// token провайдера.
func (c *Client) ExchangeCode(ctx context.Context, code, codeVerifier string) (string, error) {
	ctx, span := tracer.Start(ctx, "ExchangeCode")
	defer span.End()

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.cfg.RedirectURI)
	form.Set("client_id", c.cfg.ClientID)
	form.Set("client_secret", c.cfg.ClientSecret)
	form.Set("code_verifier", codeVerifier)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenEndpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("linkedin: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("linkedin: token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithContext(ctx).Error("token exchange failed", zap.Int("status", resp.StatusCode))
		span.RecordError(ErrExchangeStatus)
		return "", fmt.Errorf("token endpoint status %d: %w", resp.StatusCode, ErrExchangeStatus)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("linkedin: decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return "", fmt.Errorf("linkedin: token response has no access_token")
	}
	return payload.AccessToken, nil
}

// FetchUserInfo запрашивает профиль с bearer-токеном провайдера.
func (c *Client) FetchUserInfo(ctx context.Context, accessToken string) (*UserInfo, error) {
	ctx, span := tracer.Start(ctx, "FetchUserInfo")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.UserInfoEndpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("linkedin: build userinfo request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("linkedin: userinfo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.WithContext(ctx).Error("userinfo fetch failed", zap.Int("status", resp.StatusCode))
		span.RecordError(ErrExchangeStatus)
		return nil, fmt.Errorf("userinfo endpoint status %d: %w", resp.StatusCode, ErrExchangeStatus)
	}

	var info UserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("linkedin: decode userinfo: %w", err)
	}
	return &info, nil
}
