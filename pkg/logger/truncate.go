// pkg/logger/truncate.go
package logger

import "strings"

// Truncate сокращает токен до безопасного для логов вида:
// abcdefghijklmnop → abcd...mnop. Полные значения токенов в логи не попадают.
func Truncate(token string) string {
	if strings.TrimSpace(token) == "" {
		return "[empty token]"
	}
	if len(token) <= 8 {
		return token
	}
	return token[:4] + "..." + token[len(token)-4:]
}
