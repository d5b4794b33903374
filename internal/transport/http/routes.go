// internal/transport/http/routes.go
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func Routes(h *Handler, mw *Middleware) http.Handler {
	r := chi.NewRouter()

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", h.Login)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
		r.Post("/exchange-linkedin", h.ExchangeLinkedIn)

		r.Group(func(r chi.Router) {
			r.Use(mw.JWTMiddleware)
			r.Get("/me", h.Me)
		})
	})

	return r
}
