// internal/usecase/result.go
package usecase

// Outcome — единый код исхода auth-операции. Полезная нагрузка ответа
// присутствует только при OutcomeSuccess; сопоставление с HTTP-статусом —
// забота транспортного слоя.
type Outcome int

const (
	OutcomeSuccess Outcome = iota
	OutcomeInvalidCredentials
	OutcomeInvalidInput
	OutcomeUserNotFound
	OutcomeTokenInvalid
	OutcomeLinkedInExchangeFailed
	OutcomeLogoutInvalidToken
	OutcomeError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeInvalidCredentials:
		return "invalid_credentials"
	case OutcomeInvalidInput:
		return "invalid_input"
	case OutcomeUserNotFound:
		return "user_not_found"
	case OutcomeTokenInvalid:
		return "token_invalid"
	case OutcomeLinkedInExchangeFailed:
		return "linkedin_exchange_failed"
	case OutcomeLogoutInvalidToken:
		return "logout_invalid_token"
	default:
		return "error"
	}
}

// LoginResult возвращается логином и refresh'ем.
type LoginResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64 // срок жизни access-токена в секундах
}

// TokenResult возвращается LinkedIn-обменом: refresh-токен там не выдаётся.
type TokenResult struct {
	AccessToken string
	ExpiresIn   int64
}
