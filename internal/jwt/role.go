// internal/jwt/role.go

package jwt

// Role — роль пользователя в системе.
type Role string

const (
	RoleUser    Role = "User"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// IsValidRole сообщает, входит ли строка в фиксированный набор ролей.
// Повреждённая роль в БД трактуется вызывающим кодом как отказ в аутентификации.
func IsValidRole(r string) bool {
	switch Role(r) {
	case RoleUser, RoleManager, RoleAdmin:
		return true
	default:
		return false
	}
}
