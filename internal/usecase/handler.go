// internal/usecase/handler.go
package usecase

import "context"

type LoginHandler interface {
	Handle(ctx context.Context, usernameOrEmail, password string) (*LoginResult, Outcome)
}

type RefreshHandler interface {
	Handle(ctx context.Context, refreshToken string) (*LoginResult, Outcome)
}

type LogoutHandler interface {
	Handle(ctx context.Context, refreshToken string) Outcome
}

type LinkedInHandler interface {
	Handle(ctx context.Context, code, codeVerifier string) (*TokenResult, Outcome)
}

// Handler — фасад auth-операций для транспортного слоя.
type Handler struct {
	Login    LoginHandler
	Refresh  RefreshHandler
	Logout   LogoutHandler
	LinkedIn LinkedInHandler
}

func NewHandler(login LoginHandler, refresh RefreshHandler, logout LogoutHandler, linkedIn LinkedInHandler) Handler {
	return Handler{
		Login:    login,
		Refresh:  refresh,
		Logout:   logout,
		LinkedIn: linkedIn,
	}
}
