// internal/config/config_test.go
package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !cfg.DevMode() {
		t.Fatal("default environment must be development")
	}
	if cfg.JWT.AccessTTL() != 15*time.Minute {
		t.Fatalf("access ttl = %v, want 15m", cfg.JWT.AccessTTL())
	}
	if cfg.Refresh.TTL() != 7*24*time.Hour {
		t.Fatalf("refresh ttl = %v, want 168h", cfg.Refresh.TTL())
	}
	if cfg.HTTP.Port != 8080 {
		t.Fatalf("http port = %d, want 8080", cfg.HTTP.Port)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("AUTH_JWT_SECRET", "env-secret")
	t.Setenv("AUTH_REFRESH_TOKEN_DAYS", "30")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.JWT.Secret != "env-secret" {
		t.Fatalf("jwt secret = %q, want env override", cfg.JWT.Secret)
	}
	if cfg.Refresh.TTL() != 30*24*time.Hour {
		t.Fatalf("refresh ttl = %v, want 720h", cfg.Refresh.TTL())
	}
}

func TestLoadProductionRequiresLinkedIn(t *testing.T) {
	t.Setenv("AUTH_ENVIRONMENT", "production")

	if _, err := Load(""); err == nil {
		t.Fatal("production without linkedin credentials must fail")
	}

	t.Setenv("AUTH_LINKEDIN_CLIENT_ID", "id")
	t.Setenv("AUTH_LINKEDIN_CLIENT_SECRET", "secret")
	t.Setenv("AUTH_LINKEDIN_REDIRECT_URI", "https://app.example.com/callback")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DevMode() {
		t.Fatal("production must not report dev mode")
	}
}

func TestLoadRejectsUnknownEnvironment(t *testing.T) {
	t.Setenv("AUTH_ENVIRONMENT", "staging")

	if _, err := Load(""); err == nil {
		t.Fatal("unknown environment must fail validation")
	}
}
