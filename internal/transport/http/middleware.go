// internal/transport/http/middleware.go
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/YaganovValera/todo-auth/internal/jwt"
)

type ctxKey int

const claimsKey ctxKey = iota

// ClaimsFromContext достаёт claims, положенные JWTMiddleware.
func ClaimsFromContext(ctx context.Context) (*jwt.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*jwt.Claims)
	return claims, ok
}

type Middleware struct {
	signer jwt.Signer
}

func NewMiddleware(signer jwt.Signer) *Middleware {
	return &Middleware{signer: signer}
}

// JWTMiddleware проверяет Bearer-токен и прокидывает claims в контекст.
func (m *Middleware) JWTMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, err := m.signer.Parse(token)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
	})
}

// RBAC пропускает только перечисленные роли. Применяется после JWTMiddleware.
func (m *Middleware) RBAC(roles ...jwt.Role) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[string(r)] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok || !allowed[claims.Role] {
				writeError(w, http.StatusForbidden, "insufficient role")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
