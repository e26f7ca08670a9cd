package session

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

func signedToken(t *testing.T, ttl time.Duration) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return token
}

func TestSignInStoresSessionAndServesToken(t *testing.T) {
	access := signedToken(t, time.Hour)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/token" || r.URL.Query().Get("grant_type") != "password" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL)
		}
		if r.Header.Get("apikey") != "anon-key" {
			t.Errorf("missing apikey header")
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "ana@atelie.com" || body["password"] != "s3nha" {
			t.Errorf("unexpected credentials: %v", body)
		}
		_ = json.NewEncoder(w).Encode(Session{
			AccessToken:  access,
			RefreshToken: "refresh-1",
			ExpiresIn:    3600,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "anon-key", zap.NewNop())

	sess, err := c.SignIn(context.Background(), "ana@atelie.com", "s3nha")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if sess.AccessToken != access {
		t.Errorf("unexpected access token")
	}

	got, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != access {
		t.Errorf("Token should serve the cached access token without a refresh")
	}
}

func TestSignInRejectedCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "anon-key", zap.NewNop())

	_, err := c.SignIn(context.Background(), "ana@atelie.com", "errada")
	var unauth *domain.ErrUnauthorized
	if !errors.As(err, &unauth) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if unauth.Message != "Invalid login credentials" {
		t.Errorf("should carry the provider message, got %q", unauth.Message)
	}
}

func TestTokenWithoutSession(t *testing.T) {
	c := NewClient(http.DefaultClient, "http://unused", "anon-key", zap.NewNop())

	got, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got != "" {
		t.Errorf("no session must yield an empty token, got %q", got)
	}
}

func TestTokenRefreshesNearExpiry(t *testing.T) {
	stale := signedToken(t, 5*time.Second)
	fresh := signedToken(t, time.Hour)

	var refreshed bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("grant_type") != "refresh_token" {
			t.Errorf("expected refresh grant, got %s", r.URL.Query().Get("grant_type"))
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["refresh_token"] != "refresh-1" {
			t.Errorf("unexpected refresh token: %v", body)
		}
		refreshed = true
		_ = json.NewEncoder(w).Encode(Session{
			AccessToken:  fresh,
			RefreshToken: "refresh-2",
			ExpiresIn:    3600,
		})
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "anon-key", zap.NewNop())
	c.setSession(&Session{AccessToken: stale, RefreshToken: "refresh-1"})

	got, err := c.Token(context.Background())
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if !refreshed {
		t.Fatal("a token inside the expiry skew must trigger a refresh")
	}
	if got != fresh {
		t.Errorf("Token should serve the refreshed access token")
	}
	if c.CurrentSession().RefreshToken != "refresh-2" {
		t.Errorf("refresh must rotate the stored refresh token")
	}
}

func TestSignOutRevokesAndClears(t *testing.T) {
	access := signedToken(t, time.Hour)

	var revoked bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/v1/logout" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer "+access {
			t.Errorf("logout must carry the session bearer")
		}
		revoked = true
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), srv.URL, "anon-key", zap.NewNop())
	c.setSession(&Session{AccessToken: access, RefreshToken: "refresh-1"})

	if err := c.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if !revoked {
		t.Error("server-side revoke was not called")
	}
	if c.CurrentSession() != nil {
		t.Error("local session must be dropped")
	}
}

func TestSignOutWithoutSessionIsNoop(t *testing.T) {
	c := NewClient(http.DefaultClient, "http://unused", "anon-key", zap.NewNop())
	if err := c.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut without session: %v", err)
	}
}

func TestSignInValidation(t *testing.T) {
	c := NewClient(http.DefaultClient, "http://unused", "anon-key", zap.NewNop())

	_, err := c.SignIn(context.Background(), "", "x")
	var ve *domain.ErrValidation
	if !errors.As(err, &ve) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

