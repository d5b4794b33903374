// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginTotal — исходы логинов по метке result: ok | invalid | error.
	LoginTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth", Subsystem: "usecase", Name: "login_total",
		Help: "Login attempts by result",
	}, []string{"result"})

	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth", Subsystem: "usecase", Name: "refresh_total",
		Help: "Refresh attempts by result",
	}, []string{"result"})

	LogoutTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth", Subsystem: "usecase", Name: "logout_total",
		Help: "Logout attempts by result",
	}, []string{"result"})

	LinkedInTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth", Subsystem: "usecase", Name: "linkedin_exchange_total",
		Help: "LinkedIn code exchange attempts by result",
	}, []string{"result"})

	// IssuedTokens — счётчик выпущенных токенов по типу: access | refresh.
	IssuedTokens = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "auth", Subsystem: "tokens", Name: "issued_total",
		Help: "Issued tokens by type",
	}, []string{"type"})
)
