// internal/transport/http/handler_test.go
package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/YaganovValera/todo-auth/internal/jwt"
	"github.com/YaganovValera/todo-auth/internal/usecase"
)

type stubLogin struct {
	res     *usecase.LoginResult
	outcome usecase.Outcome
}

func (s *stubLogin) Handle(context.Context, string, string) (*usecase.LoginResult, usecase.Outcome) {
	return s.res, s.outcome
}

type stubRefresh struct {
	res     *usecase.LoginResult
	outcome usecase.Outcome
}

func (s *stubRefresh) Handle(context.Context, string) (*usecase.LoginResult, usecase.Outcome) {
	return s.res, s.outcome
}

type stubLogout struct{ outcome usecase.Outcome }

func (s *stubLogout) Handle(context.Context, string) usecase.Outcome { return s.outcome }

type stubLinkedIn struct {
	res     *usecase.TokenResult
	outcome usecase.Outcome
}

func (s *stubLinkedIn) Handle(context.Context, string, string) (*usecase.TokenResult, usecase.Outcome) {
	return s.res, s.outcome
}

func testSigner(t *testing.T) jwt.Signer {
	t.Helper()
	s, err := jwt.NewHS256(jwt.Config{
		Secret:   "test-secret-key-0123456789abcdef",
		Issuer:   "todo-auth-test",
		Audience: "todo-client-test",
	})
	if err != nil {
		t.Fatalf("signer: %v", err)
	}
	return s
}

func newServer(t *testing.T, auth usecase.Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(Routes(NewHandler(auth), NewMiddleware(testSigner(t))))
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, url, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestLoginEndpoint(t *testing.T) {
	ok := &usecase.LoginResult{AccessToken: "acc", RefreshToken: "ref", ExpiresIn: 900}

	cases := []struct {
		name       string
		login      usecase.LoginHandler
		body       string
		wantStatus int
	}{
		{"success", &stubLogin{res: ok, outcome: usecase.OutcomeSuccess}, `{"username":"alice","password":"p"}`, http.StatusOK},
		{"invalid json", &stubLogin{outcome: usecase.OutcomeSuccess}, `{broken`, http.StatusBadRequest},
		{"empty input", &stubLogin{outcome: usecase.OutcomeInvalidInput}, `{}`, http.StatusBadRequest},
		{"bad credentials", &stubLogin{outcome: usecase.OutcomeInvalidCredentials}, `{"username":"alice","password":"x"}`, http.StatusUnauthorized},
		{"infra failure", &stubLogin{outcome: usecase.OutcomeError}, `{"username":"alice","password":"p"}`, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := newServer(t, usecase.Handler{Login: c.login})
			resp := postJSON(t, srv.URL+"/api/auth/login", c.body)
			if resp.StatusCode != c.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, c.wantStatus)
			}
			if c.wantStatus == http.StatusOK {
				var out loginResponse
				if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if out.AccessToken != "acc" || out.RefreshToken != "ref" || out.ExpiresIn != 900 {
					t.Fatalf("body = %+v", out)
				}
			}
		})
	}
}

func TestRefreshEndpoint(t *testing.T) {
	ok := &usecase.LoginResult{AccessToken: "acc2", RefreshToken: "ref2", ExpiresIn: 900}

	srv := newServer(t, usecase.Handler{Refresh: &stubRefresh{res: ok, outcome: usecase.OutcomeSuccess}})
	resp := postJSON(t, srv.URL+"/api/auth/refresh", `{"refresh_token":"ref"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	srv = newServer(t, usecase.Handler{Refresh: &stubRefresh{outcome: usecase.OutcomeTokenInvalid}})
	resp = postJSON(t, srv.URL+"/api/auth/refresh", `{"refresh_token":"stale"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLogoutEndpoint(t *testing.T) {
	srv := newServer(t, usecase.Handler{Logout: &stubLogout{outcome: usecase.OutcomeSuccess}})
	resp := postJSON(t, srv.URL+"/api/auth/logout", `{"refresh_token":"ref"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	srv = newServer(t, usecase.Handler{Logout: &stubLogout{outcome: usecase.OutcomeLogoutInvalidToken}})
	resp = postJSON(t, srv.URL+"/api/auth/logout", `{"refresh_token":"gone"}`)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLinkedInEndpoint(t *testing.T) {
	cases := []struct {
		name       string
		outcome    usecase.Outcome
		wantStatus int
	}{
		{"exchange failed", usecase.OutcomeLinkedInExchangeFailed, http.StatusUnauthorized},
		{"no dev user", usecase.OutcomeUserNotFound, http.StatusNotFound},
		{"infra failure", usecase.OutcomeError, http.StatusInternalServerError},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := newServer(t, usecase.Handler{LinkedIn: &stubLinkedIn{outcome: c.outcome}})
			resp := postJSON(t, srv.URL+"/api/auth/exchange-linkedin", `{"code":"c","code_verifier":"v"}`)
			if resp.StatusCode != c.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, c.wantStatus)
			}
		})
	}

	srv := newServer(t, usecase.Handler{LinkedIn: &stubLinkedIn{
		res:     &usecase.TokenResult{AccessToken: "acc", ExpiresIn: 900},
		outcome: usecase.OutcomeSuccess,
	}})
	resp := postJSON(t, srv.URL+"/api/auth/exchange-linkedin", `{"code":"c","code_verifier":"v"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.AccessToken != "acc" || out.ExpiresIn != 900 {
		t.Fatalf("body = %+v", out)
	}
}

func TestMeEndpoint(t *testing.T) {
	signer := testSigner(t)
	srv := httptest.NewServer(Routes(NewHandler(usecase.Handler{}), NewMiddleware(signer)))
	t.Cleanup(srv.Close)

	// Без токена доступ закрыт.
	resp, err := http.Get(srv.URL + "/api/auth/me")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}

	access, _, err := signer.Issue("u-1", "alice", "alice@example.com", string(jwt.RoleManager))
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	req, _ := http.NewRequest(http.MethodGet, srv.URL+"/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+access)
	resp, err = http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("get with token: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var out meResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.UserID != "u-1" || out.Username != "alice" || out.Role != string(jwt.RoleManager) {
		t.Fatalf("body = %+v", out)
	}
}

func TestRBACMiddleware(t *testing.T) {
	signer := testSigner(t)
	mw := NewMiddleware(signer)

	inner := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	protected := mw.JWTMiddleware(mw.RBAC(jwt.RoleAdmin)(inner))

	issue := func(role jwt.Role) string {
		access, _, err := signer.Issue("u-1", "alice", "alice@example.com", string(role))
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		return access
	}

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issue(jwt.RoleUser))
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user role: status = %d, want 403", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+issue(jwt.RoleAdmin))
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin role: status = %d, want 204", rec.Code)
	}
}
