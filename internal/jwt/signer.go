// internal/jwt/signer.go
package jwt

import (
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Config описывает параметры подписи access-токенов.
type Config struct {
	Secret             string `mapstructure:"secret"`
	Issuer             string `mapstructure:"issuer"`
	Audience           string `mapstructure:"audience"`
	AccessTokenMinutes int    `mapstructure:"access_token_minutes"`
}

func (c *Config) ApplyDefaults() {
	if c.AccessTokenMinutes <= 0 {
		c.AccessTokenMinutes = 15
	}
}

func (c Config) Validate() error {
	if c.Secret == "" {
		return fmt.Errorf("jwt: secret is required")
	}
	if c.Issuer == "" || c.Audience == "" {
		return fmt.Errorf("jwt: issuer and audience are required")
	}
	if c.AccessTokenMinutes <= 0 {
		return fmt.Errorf("jwt: access_token_minutes must be positive")
	}
	return nil
}

// AccessTTL возвращает срок жизни access-токена.
func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

// Claims — полезная нагрузка access-токена.
type Claims struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	jwtlib.RegisteredClaims
}

// Signer выпускает и проверяет подписанные access-токены.
type Signer interface {
	Issue(userID, username, email, role string) (string, *Claims, error)
	Parse(token string) (*Claims, error)
}

type hs256Signer struct {
	cfg Config
	key []byte
}

// NewHS256 создаёт подписанта HMAC-SHA256. Отсутствие секрета — ошибка
// конструирования, а не момента вызова.
func NewHS256(cfg Config) (Signer, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &hs256Signer{cfg: cfg, key: []byte(cfg.Secret)}, nil
}

func (s *hs256Signer) Issue(userID, username, email, role string) (string, *Claims, error) {
	now := time.Now().UTC()
	claims := &Claims{
		Name:  username,
		Email: email,
		Role:  role,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Subject:   userID,
			Issuer:    s.cfg.Issuer,
			Audience:  jwtlib.ClaimStrings{s.cfg.Audience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.cfg.AccessTTL())),
			ID:        uuid.NewString(),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", nil, fmt.Errorf("jwt: sign: %w", err)
	}
	return signed, claims, nil
}

func (s *hs256Signer) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwtlib.ParseWithClaims(token, claims,
		func(t *jwtlib.Token) (interface{}, error) { return s.key, nil },
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
		jwtlib.WithIssuer(s.cfg.Issuer),
		jwtlib.WithAudience(s.cfg.Audience),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("jwt: parse: %w", err)
	}
	return claims, nil
}
