package integration_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/handler"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/api"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/gateway"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/resilience"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/storage"
	"github.com/meuatelie/atelie-bfa-go/internal/service"
	"github.com/meuatelie/atelie-bfa-go/internal/session"
	"github.com/meuatelie/atelie-bfa-go/internal/store"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// newBackendServer serves every endpoint the bulk snapshot load touches.
func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	reply := func(path string, v any) {
		mux.HandleFunc(path, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			json.NewEncoder(w).Encode(v)
		})
	}

	reply("/Atelie", domain.Atelie{
		NomeAtelie:     "Ateliê da Ana",
		NomeDono:       "Ana",
		Plano:          "mensal",
		Status:         "ativo",
		DataVencimento: time.Now().AddDate(0, 1, 0).Format(time.RFC3339),
	})
	reply("/Materiais", []domain.Material{{ID: 1, Nome: "Linha de bordado", Quantidade: 20, Valor: 2.5}})
	reply("/Materiais/resumo", domain.ResumoEstoque{QuantidadeTotalPecas: 20, ValorTotalEstoque: 50})
	reply("/PecasProntas", []domain.PecaPronta{{ID: 2, Titulo: "Naninha"}})
	reply("/Vendas", []domain.Venda{{ID: 3, PecaProntaID: 2, ValorVenda: 80, Cliente: "Clara"}})
	reply("/Encomendas", []domain.Encomenda{{ID: 4, Cliente: "Bia", Status: domain.EncomendaPendente}})
	reply("/Financeiro/resumo/mensal", map[string]float64{"receitas": 80, "despesas": 12})
	reply("/Financeiro/resumo/anual", domain.ResumoAnual{TotalEntradas: 80, TotalSaidas: 12})
	reply("/TodoList", []domain.TodoLista{{ID: 5, Titulo: "Feira de sábado"}})
	reply("/Estoque/movimentacoes", []domain.MovimentacaoEstoque{})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newIdentityServer(t *testing.T) *httptest.Server {
	t.Helper()

	access, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("integration-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(session.Session{
			AccessToken:  access,
			RefreshToken: "refresh-1",
			ExpiresIn:    3600,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newConsoleRouter(t *testing.T, backendURL, identityURL string) http.Handler {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	cfg := resilience.Config{MaxRetries: 1, InitialBackoff: 10 * time.Millisecond, MaxConcurrency: 10}
	httpClient := &http.Client{Timeout: 5 * time.Second}

	sess := session.NewClient(httpClient, identityURL, "anon-key", logger)
	gw := gateway.New(httpClient, backendURL, sess, resilience.NewCircuitBreaker("integration"), cfg, metrics, logger)
	backend := api.NewClient(gw)

	fileStore, err := storage.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	st := store.New(backend, fileStore, metrics, logger)
	st.Restore()

	console := service.NewConsole(backend, st, time.Minute, 7, metrics, logger)
	return handler.NewRouter(console, sess, metrics, logger)
}

// TestIntegration_LoginAndBulkLoad drives the full stack: sign in through the
// identity provider, trigger the bulk snapshot load against the mock backend,
// then read the snapshot and the plan status back.
func TestIntegration_LoginAndBulkLoad(t *testing.T) {
	backend := newBackendServer(t)
	identity := newIdentityServer(t)
	router := newConsoleRouter(t, backend.URL, identity.URL)

	// --- Sign in ---
	body, _ := json.Marshal(map[string]string{"email": "ana@atelie.com", "senha": "s3nha"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d: %s", rec.Code, rec.Body.String())
	}

	// --- Bulk load ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/snapshot/load", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot load = %d: %s", rec.Code, rec.Body.String())
	}

	// --- Read the snapshot back ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot = %d: %s", rec.Code, rec.Body.String())
	}

	var snap store.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Atelie.NomeAtelie != "Ateliê da Ana" {
		t.Errorf("atelie = %+v", snap.Atelie)
	}
	if len(snap.Material.Materiais) != 1 || snap.Material.Valor != 50 {
		t.Errorf("material = %+v", snap.Material)
	}
	if len(snap.Vendas) != 1 || snap.Vendas[0].Cliente != "Clara" {
		t.Errorf("vendas = %+v", snap.Vendas)
	}
	if !snap.Carregado.Materiais || !snap.Carregado.Vendas || !snap.Carregado.Listas {
		t.Errorf("loaded flags = %+v", snap.Carregado)
	}

	// --- Plan status ---
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/plano", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("plano = %d: %s", rec.Code, rec.Body.String())
	}

	var plano map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&plano); err != nil {
		t.Fatalf("decode plano: %v", err)
	}
	if plano["status"] != "active" {
		t.Errorf("plan status = %q, want active", plano["status"])
	}
}

// TestIntegration_BackendDownFailsLoad verifies that a dead backend fails the
// bulk load without corrupting the empty snapshot.
func TestIntegration_BackendDownFailsLoad(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(backend.Close)
	identity := newIdentityServer(t)
	router := newConsoleRouter(t, backend.URL, identity.URL)

	body, _ := json.Marshal(map[string]string{"email": "ana@atelie.com", "senha": "s3nha"})
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/auth/login", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("login = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/snapshot/load", nil))
	if rec.Code == http.StatusOK {
		t.Fatal("bulk load against dead backend must fail")
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/snapshot", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("snapshot = %d", rec.Code)
	}

	var snap store.Snapshot
	if err := json.NewDecoder(rec.Body).Decode(&snap); err != nil {
		t.Fatalf("decode snapshot: %v", err)
	}
	if snap.Carregado.Materiais || snap.Carregado.Vendas {
		t.Errorf("failed load must not mark slices loaded: %+v", snap.Carregado)
	}
}
