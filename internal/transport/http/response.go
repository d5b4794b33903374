// internal/transport/http/response.go
package http

import (
	"encoding/json"
	"net/http"

	"github.com/YaganovValera/todo-auth/internal/usecase"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeOutcome транслирует исход операции в HTTP-ответ. Тексты намеренно
// общие: детали причин остаются в серверном логе.
func writeOutcome(w http.ResponseWriter, outcome usecase.Outcome) {
	switch outcome {
	case usecase.OutcomeInvalidInput:
		writeError(w, http.StatusBadRequest, "username and password are required")
	case usecase.OutcomeInvalidCredentials:
		writeError(w, http.StatusUnauthorized, "invalid credentials")
	case usecase.OutcomeTokenInvalid:
		writeError(w, http.StatusUnauthorized, "invalid or expired refresh token")
	case usecase.OutcomeLogoutInvalidToken:
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
	case usecase.OutcomeLinkedInExchangeFailed:
		writeError(w, http.StatusUnauthorized, "linkedin authentication failed")
	case usecase.OutcomeUserNotFound:
		writeError(w, http.StatusNotFound, "user not found")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
