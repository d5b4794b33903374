// internal/jwt/signer_test.go
package jwt_test

import (
	"strings"
	"testing"
	"time"

	"github.com/YaganovValera/todo-auth/internal/jwt"
)

func testConfig() jwt.Config {
	return jwt.Config{
		Secret:             "test-secret-key",
		Issuer:             "todo-auth",
		Audience:           "todo-system",
		AccessTokenMinutes: 15,
	}
}

func TestNewHS256_RequiresSecret(t *testing.T) {
	cfg := testConfig()
	cfg.Secret = ""
	if _, err := jwt.NewHS256(cfg); err == nil {
		t.Fatal("expected error for empty secret, got nil")
	}
}

func TestIssue_ClaimsContent(t *testing.T) {
	signer, err := jwt.NewHS256(testConfig())
	if err != nil {
		t.Fatal(err)
	}

	token, claims, err := signer.Issue("user-1", "alice", "alice@example.com", "User")
	if err != nil {
		t.Fatal(err)
	}
	if token == "" {
		t.Fatal("empty signed token")
	}
	if claims.Subject != "user-1" || claims.Name != "alice" || claims.Email != "alice@example.com" || claims.Role != "User" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.ID == "" {
		t.Error("jti must be set")
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl < 14*time.Minute || ttl > 15*time.Minute {
		t.Errorf("expiry horizon = %v, want ~15m", ttl)
	}

	parsed, err := signer.Parse(token)
	if err != nil {
		t.Fatalf("Parse round trip: %v", err)
	}
	if parsed.Subject != claims.Subject || parsed.ID != claims.ID {
		t.Errorf("parsed claims mismatch: %+v vs %+v", parsed, claims)
	}
}

func TestIssue_FreshJTIPerToken(t *testing.T) {
	signer, _ := jwt.NewHS256(testConfig())
	_, c1, _ := signer.Issue("u", "n", "e", "User")
	_, c2, _ := signer.Issue("u", "n", "e", "User")
	if c1.ID == c2.ID {
		t.Error("two tokens share a jti")
	}
}

func TestParse_RejectsTampered(t *testing.T) {
	signer, _ := jwt.NewHS256(testConfig())
	token, _, _ := signer.Issue("user-1", "alice", "a@b.c", "User")

	tampered := token[:len(token)-2] + "xx"
	if _, err := signer.Parse(tampered); err == nil {
		t.Error("tampered token accepted")
	}
}

func TestParse_RejectsForeignAudience(t *testing.T) {
	signer, _ := jwt.NewHS256(testConfig())

	other := testConfig()
	other.Audience = "someone-else"
	otherSigner, _ := jwt.NewHS256(other)

	token, _, _ := otherSigner.Issue("user-1", "alice", "a@b.c", "User")
	if _, err := signer.Parse(token); err == nil {
		t.Error("token with foreign audience accepted")
	}
}

func TestParse_RejectsWrongKey(t *testing.T) {
	signer, _ := jwt.NewHS256(testConfig())

	other := testConfig()
	other.Secret = "a-different-secret"
	otherSigner, _ := jwt.NewHS256(other)

	token, _, _ := otherSigner.Issue("user-1", "alice", "a@b.c", "User")
	if _, err := signer.Parse(token); err == nil {
		t.Error("token signed with a different key accepted")
	}
	if !strings.Contains(token, ".") {
		t.Fatal("not a JWT")
	}
}

func TestIsValidRole(t *testing.T) {
	for _, r := range []string{"User", "Manager", "Admin"} {
		if !jwt.IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = false", r)
		}
	}
	for _, r := range []string{"", "user", "root", "SuperAdmin"} {
		if jwt.IsValidRole(r) {
			t.Errorf("IsValidRole(%q) = true", r)
		}
	}
}
