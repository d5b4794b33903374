// internal/linkedin/client_test.go
package linkedin_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/YaganovValera/todo-auth/internal/linkedin"
	"github.com/YaganovValera/todo-auth/pkg/logger"
)

func testLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "debug", DevMode: true})
	if err != nil {
		t.Fatal(err)
	}
	return log
}

func TestExchangeCode_SendsFormAndParsesToken(t *testing.T) {
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("content-type = %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatal(err)
		}
		gotForm = map[string]string{}
		for k := range r.PostForm {
			gotForm[k] = r.PostForm.Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"provider-token","expires_in":3600}`))
	}))
	defer srv.Close()

	client := linkedin.NewClient(linkedin.Config{
		ClientID:      "cid",
		ClientSecret:  "csecret",
		RedirectURI:   "https://app/callback",
		TokenEndpoint: srv.URL,
	}, srv.Client(), testLogger(t))

	token, err := client.ExchangeCode(context.Background(), "the-code", "the-verifier")
	if err != nil {
		t.Fatal(err)
	}
	if token != "provider-token" {
		t.Errorf("token = %q", token)
	}

	want := map[string]string{
		"grant_type":    "authorization_code",
		"code":          "the-code",
		"redirect_uri":  "https://app/callback",
		"client_id":     "cid",
		"client_secret": "csecret",
		"code_verifier": "the-verifier",
	}
	for k, v := range want {
		if gotForm[k] != v {
			t.Errorf("form[%q] = %q, want %q", k, gotForm[k], v)
		}
	}
}

func TestExchangeCode_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad code", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := linkedin.NewClient(linkedin.Config{TokenEndpoint: srv.URL}, srv.Client(), testLogger(t))
	_, err := client.ExchangeCode(context.Background(), "c", "v")
	if !errors.Is(err, linkedin.ErrExchangeStatus) {
		t.Fatalf("err = %v, want ErrExchangeStatus", err)
	}
}

func TestExchangeCode_MalformedBodyIsHardFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := linkedin.NewClient(linkedin.Config{TokenEndpoint: srv.URL}, srv.Client(), testLogger(t))
	_, err := client.ExchangeCode(context.Background(), "c", "v")
	if err == nil {
		t.Fatal("expected error for malformed body")
	}
	if errors.Is(err, linkedin.ErrExchangeStatus) {
		t.Fatal("malformed body must not be classified as provider status failure")
	}
}

func TestExchangeCode_MissingAccessToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"expires_in":3600}`))
	}))
	defer srv.Close()

	client := linkedin.NewClient(linkedin.Config{TokenEndpoint: srv.URL}, srv.Client(), testLogger(t))
	if _, err := client.ExchangeCode(context.Background(), "c", "v"); err == nil {
		t.Fatal("expected error when access_token is absent")
	}
}

func TestFetchUserInfo_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer provider-token" {
			t.Errorf("authorization header = %q", auth)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"given_name":"Jane","family_name":"Doe","email":"jane@example.com"}`))
	}))
	defer srv.Close()

	client := linkedin.NewClient(linkedin.Config{UserInfoEndpoint: srv.URL}, srv.Client(), testLogger(t))
	info, err := client.FetchUserInfo(context.Background(), "provider-token")
	if err != nil {
		t.Fatal(err)
	}
	if info.FirstName != "Jane" || info.LastName != "Doe" || info.Email != "jane@example.com" {
		t.Errorf("unexpected user info: %+v", info)
	}
}

func TestFetchUserInfo_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := linkedin.NewClient(linkedin.Config{UserInfoEndpoint: srv.URL}, srv.Client(), testLogger(t))
	_, err := client.FetchUserInfo(context.Background(), "t")
	if !errors.Is(err, linkedin.ErrExchangeStatus) {
		t.Fatalf("err = %v, want ErrExchangeStatus", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := linkedin.Config{}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing client credentials")
	}

	cfg.ClientID = "id"
	cfg.ClientSecret = "secret"
	cfg.RedirectURI = "https://app/callback"
	if err := cfg.Validate(); err != nil {
		t.Errorf("complete config rejected: %v", err)
	}
}
