package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
)

type staticTokens struct{ token string }

func (s staticTokens) Token(context.Context) (string, error) { return s.token, nil }

func newTestGateway(t *testing.T, backend http.HandlerFunc, token string) *Gateway {
	t.Helper()
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)

	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 4}
	return New(srv.Client(), srv.URL, staticTokens{token: token}, resilience.NewCircuitBreaker("test"), cfg, observability.NewMetrics(), zap.NewNop())
}

func TestDoAttachesAuthHeaders(t *testing.T) {
	var gotAuth, gotRequestID string
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`))
	}, "tok-123")

	if _, err := gw.Do(context.Background(), http.MethodGet, "/Materiais", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if gotAuth != "Bearer tok-123" {
		t.Errorf("Authorization = %q, want Bearer tok-123", gotAuth)
	}
	if gotRequestID == "" {
		t.Error("X-Request-ID header missing")
	}
}

func TestDoWithoutSessionSendsNoAuth(t *testing.T) {
	var gotAuth string
	hasAuth := true
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		w.Write([]byte(`{}`))
	}, "")

	if _, err := gw.Do(context.Background(), http.MethodGet, "/Materiais", nil); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if hasAuth {
		t.Errorf("request carried Authorization %q without a session", gotAuth)
	}
}

func TestDoNoContent(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, "tok")

	body, err := gw.Do(context.Background(), http.MethodDelete, "/Materiais/3", nil)
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if body != nil {
		t.Errorf("body = %q, want nil on 204", body)
	}
}

func TestDoMapsStatusToTypedErrors(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		check  func(t *testing.T, err error)
	}{
		{
			name:   "unauthorized",
			status: http.StatusUnauthorized,
			body:   `{"erro":"token expirado"}`,
			check: func(t *testing.T, err error) {
				var e *domain.ErrUnauthorized
				if !errors.As(err, &e) {
					t.Fatalf("err = %v, want ErrUnauthorized", err)
				}
				if e.Message != "token expirado" {
					t.Errorf("message = %q", e.Message)
				}
			},
		},
		{
			name:   "forbidden",
			status: http.StatusForbidden,
			body:   `{}`,
			check: func(t *testing.T, err error) {
				var e *domain.ErrUnauthorized
				if !errors.As(err, &e) {
					t.Fatalf("err = %v, want ErrUnauthorized", err)
				}
			},
		},
		{
			name:   "not found",
			status: http.StatusNotFound,
			body:   ``,
			check: func(t *testing.T, err error) {
				var e *domain.ErrNotFound
				if !errors.As(err, &e) {
					t.Fatalf("err = %v, want ErrNotFound", err)
				}
				if e.Resource != "Materiais" {
					t.Errorf("resource = %q, want Materiais", e.Resource)
				}
			},
		},
		{
			name:   "backend error with mensagem envelope",
			status: http.StatusUnprocessableEntity,
			body:   `{"mensagem":"quantidade insuficiente"}`,
			check: func(t *testing.T, err error) {
				var e *domain.ErrBackend
				if !errors.As(err, &e) {
					t.Fatalf("err = %v, want ErrBackend", err)
				}
				if e.Status != http.StatusUnprocessableEntity || e.Mensagem != "quantidade insuficiente" {
					t.Errorf("got status=%d mensagem=%q", e.Status, e.Mensagem)
				}
			},
		},
		{
			name:   "server error with message envelope",
			status: http.StatusInternalServerError,
			body:   `{"message":"boom"}`,
			check: func(t *testing.T, err error) {
				var e *domain.ErrBackend
				if !errors.As(err, &e) {
					t.Fatalf("err = %v, want ErrBackend", err)
				}
				if e.Mensagem != "boom" {
					t.Errorf("mensagem = %q", e.Mensagem)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}, "tok")

			_, err := gw.Do(context.Background(), http.MethodGet, "/Materiais/9", nil)
			if err == nil {
				t.Fatal("expected error")
			}
			tc.check(t, err)
		})
	}
}

func TestDoCircuitOpens(t *testing.T) {
	gw := newTestGateway(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}, "tok")

	// Drive the breaker past its failure-ratio threshold.
	var err error
	for i := 0; i < 10; i++ {
		_, err = gw.Do(context.Background(), http.MethodGet, "/Vendas", nil)
	}

	var e *domain.ErrCircuitOpen
	if !errors.As(err, &e) {
		t.Fatalf("err after repeated failures = %v, want ErrCircuitOpen", err)
	}
}

func TestResourceOf(t *testing.T) {
	cases := map[string]string{
		"/Materiais/3":                "Materiais",
		"/Materiais":                  "Materiais",
		"/Financeiro/resumo?ano=2025": "Financeiro",
		"/Vendas?inicio=x":            "Vendas",
	}
	for path, want := range cases {
		if got := resourceOf(path); got != want {
			t.Errorf("resourceOf(%q) = %q, want %q", path, got, want)
		}
	}
}
