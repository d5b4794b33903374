// internal/password/password.go
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/pbkdf2"
)

const (
	saltLen    = 16
	keyLen     = 32
	iterations = 100_000

	// SSOSentinel хранится вместо хеша у аккаунтов, созданных через
	// LinkedIn SSO. Под формат "salt.key" не подходит, поэтому Verify
	// для таких аккаунтов всегда возвращает false.
	SSOSentinel = "LinkedInSSO"
)

// Hash возвращает хеш пароля в формате base64(salt) + "." + base64(key).
// PBKDF2-HMAC-SHA256, 100000 итераций.
func Hash(password string) (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: generate salt: %w", err)
	}
	key := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return base64.StdEncoding.EncodeToString(salt) + "." + base64.StdEncoding.EncodeToString(key), nil
}

// Verify сверяет пароль с сохранённым хешом. Любой некорректный формат
// хеша трактуется как несовпадение, без ошибки.
func Verify(password, stored string) bool {
	parts := strings.Split(stored, ".")
	if len(parts) != 2 {
		return false
	}
	salt, err := base64.StdEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(parts[1])
	if err != nil {
		return false
	}
	if len(salt) == 0 || len(want) == 0 {
		return false
	}

	got := pbkdf2.Key([]byte(password), salt, iterations, keyLen, sha256.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
