// internal/transport/http/handler.go
package http

import (
	"encoding/json"
	"net/http"

	"github.com/YaganovValera/todo-auth/internal/usecase"
)

type Handler struct {
	auth usecase.Handler
}

func NewHandler(auth usecase.Handler) *Handler {
	return &Handler{auth: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, outcome := h.auth.Login.Handle(r.Context(), req.Username, req.Password)
	if outcome != usecase.OutcomeSuccess {
		writeOutcome(w, outcome)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, outcome := h.auth.Refresh.Handle(r.Context(), req.RefreshToken)
	if outcome != usecase.OutcomeSuccess {
		writeOutcome(w, outcome)
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    res.ExpiresIn,
	})
}

type logoutResponse struct {
	Message string `json:"message"`
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if outcome := h.auth.Logout.Handle(r.Context(), req.RefreshToken); outcome != usecase.OutcomeSuccess {
		writeOutcome(w, outcome)
		return
	}
	writeJSON(w, http.StatusOK, logoutResponse{Message: "logged out"})
}

type linkedInRequest struct {
	Code         string `json:"code"`
	CodeVerifier string `json:"code_verifier"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int64  `json:"expires_in"`
}

func (h *Handler) ExchangeLinkedIn(w http.ResponseWriter, r *http.Request) {
	var req linkedInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	res, outcome := h.auth.LinkedIn.Handle(r.Context(), req.Code, req.CodeVerifier)
	if outcome != usecase.OutcomeSuccess {
		writeOutcome(w, outcome)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: res.AccessToken,
		ExpiresIn:   res.ExpiresIn,
	})
}

type meResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Me возвращает identity из валидного access-токена. Маршрут закрыт
// JWT-middleware, claims кладутся в контекст запроса.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing token claims")
		return
	}
	writeJSON(w, http.StatusOK, meResponse{
		UserID:   claims.Subject,
		Username: claims.Name,
		Email:    claims.Email,
		Role:     claims.Role,
	})
}
