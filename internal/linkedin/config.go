// internal/linkedin/config.go
package linkedin

import (
	"fmt"
	"strings"
)

// Config описывает OAuth2-приложение LinkedIn (authorization code + PKCE).
type Config struct {
	ClientID              string `mapstructure:"client_id"`
	ClientSecret          string `mapstructure:"client_secret"`
	RedirectURI           string `mapstructure:"redirect_uri"`
	TokenEndpoint         string `mapstructure:"token_endpoint"`
	UserInfoEndpoint      string `mapstructure:"userinfo_endpoint"`
	AuthorizationEndpoint string `mapstructure:"authorization_endpoint"`
}

func (c *Config) ApplyDefaults() {
	if c.TokenEndpoint == "" {
		c.TokenEndpoint = "https://www.linkedin.com/oauth/v2/accessToken"
	}
	if c.UserInfoEndpoint == "" {
		c.UserInfoEndpoint = "https://api.linkedin.com/v2/userinfo"
	}
	if c.AuthorizationEndpoint == "" {
		c.AuthorizationEndpoint = "https://www.linkedin.com/oauth/v2/authorization"
	}
}

// Validate перечисляет отсутствующие ключи. Текст ошибки предназначен для
// серверного лога и не должен попадать в ответ клиенту.
func (c Config) Validate() error {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "client_id")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "client_secret")
	}
	if c.RedirectURI == "" {
		missing = append(missing, "redirect_uri")
	}
	if c.TokenEndpoint == "" {
		missing = append(missing, "token_endpoint")
	}
	if c.UserInfoEndpoint == "" {
		missing = append(missing, "userinfo_endpoint")
	}
	if len(missing) > 0 {
		return fmt.Errorf("linkedin: missing config keys: %s", strings.Join(missing, ", "))
	}
	return nil
}
