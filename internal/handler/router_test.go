package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/port"
	"github.com/meuatelie/atelie-bfa-go/internal/service"
	"github.com/meuatelie/atelie-bfa-go/internal/session"
	"github.com/meuatelie/atelie-bfa-go/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type routerAPI struct {
	port.BackendAPI
}

func (routerAPI) ListMateriais(context.Context) ([]domain.Material, error) {
	return []domain.Material{{ID: 1, Nome: "Botão", Quantidade: 10, Valor: 0.5}}, nil
}

func (routerAPI) GetResumoEstoque(context.Context) (*domain.ResumoEstoque, error) {
	return &domain.ResumoEstoque{QuantidadeTotalPecas: 10, ValorTotalEstoque: 5.0}, nil
}

type routerStorage struct{ blobs map[string][]byte }

func (s *routerStorage) Read(key string) ([]byte, error) { return s.blobs[key], nil }
func (s *routerStorage) Write(key string, blob []byte) error {
	s.blobs[key] = blob
	return nil
}
func (s *routerStorage) Delete(key string) error {
	delete(s.blobs, key)
	return nil
}

// newTestRouter wires the full stack against a fake identity provider and a
// canned backend.
func newTestRouter(t *testing.T) (http.Handler, *session.Client) {
	t.Helper()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	gotrue := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(session.Session{
			AccessToken:  access,
			RefreshToken: "refresh-1",
			ExpiresIn:    3600,
		})
	}))
	t.Cleanup(gotrue.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	api := routerAPI{}
	st := store.New(api, &routerStorage{blobs: map[string][]byte{}}, metrics, logger)
	console := service.NewConsole(api, st, time.Minute, 7, metrics, logger)
	sess := session.NewClient(gotrue.Client(), gotrue.URL, "anon-key", logger)

	return NewRouter(console, sess, metrics, logger), sess
}

func TestHealthAndReadiness(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, path := range []string{"/healthz", "/readyz", "/metrics"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	router, _ := newTestRouter(t)

	paths := []string{"/v1/materiais", "/v1/vendas", "/v1/snapshot", "/v1/plano"}
	for _, path := range paths {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without session = %d, want 401", path, rec.Code)
		}
	}
}

func TestLoginThenReadMateriais(t *testing.T) {
	router, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{"email": "ana@atelie.com", "senha": "s3nha"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/materiais", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/materiais = %d: %s", rec.Code, rec.Body.String())
	}

	var m store.Materiais
	if err := json.Unmarshal(rec.Body.Bytes(), &m); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(m.Materiais) != 1 || m.Valor != 5.0 {
		t.Errorf("unexpected payload: %+v", m)
	}
}

func TestRegistrarIsPublic(t *testing.T) {
	router, _ := newTestRouter(t)

	body, _ := json.Marshal(map[string]string{})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/registrar", bytes.NewReader(body)))

	// Empty payload fails validation, not authentication.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("POST /v1/registrar = %d, want 400", rec.Code)
	}
}

func TestNavigationAllowList(t *testing.T) {
	router, sess := newTestRouter(t)

	if _, err := sess.SignIn(context.Background(), "ana@atelie.com", "s3nha"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/navegacao?pagina=segredos", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /v1/navegacao = %d", rec.Code)
	}

	var resp map[string]string
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp["pagina"] != "inicial" {
		t.Errorf("unknown page must resolve to inicial, got %q", resp["pagina"])
	}
}
