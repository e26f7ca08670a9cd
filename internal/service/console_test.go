package service

import (
	"context"
	"testing"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/port"
	"github.com/meuatelie/atelie-bfa-go/internal/store"

	"go.uber.org/zap"
)

// fakeAPI counts calls and returns canned data for the accessors the console
// tests exercise. Anything else panics through the embedded nil interface.
type fakeAPI struct {
	port.BackendAPI

	listMateriaisCalls   int
	resumoEstoqueCalls   int
	assinaturaCalls      int
	listVendasCalls      int
	listPecasCalls       int
	createMaterialCalls  int
	createEncomendaCalls int
}

func (f *fakeAPI) ListMateriais(context.Context) ([]domain.Material, error) {
	f.listMateriaisCalls++
	return []domain.Material{{ID: 1, Nome: "Botão", Quantidade: 10, Valor: 0.5}}, nil
}

func (f *fakeAPI) GetResumoEstoque(context.Context) (*domain.ResumoEstoque, error) {
	f.resumoEstoqueCalls++
	return &domain.ResumoEstoque{QuantidadeTotalPecas: 10, ValorTotalEstoque: 5.0}, nil
}

func (f *fakeAPI) AssinaturaAtiva(context.Context) (*domain.AssinaturaAtiva, error) {
	f.assinaturaCalls++
	return &domain.AssinaturaAtiva{Ativa: true}, nil
}

func (f *fakeAPI) ListVendas(context.Context) ([]domain.Venda, error) {
	f.listVendasCalls++
	return []domain.Venda{{ID: 1, ValorVenda: 30}}, nil
}

func (f *fakeAPI) ListPecasProntas(context.Context) ([]domain.PecaPronta, error) {
	f.listPecasCalls++
	return []domain.PecaPronta{{ID: 4, Titulo: "Caixa decorada"}}, nil
}

func (f *fakeAPI) RegistrarVenda(_ context.Context, v *domain.Venda) (*domain.Venda, error) {
	created := *v
	created.ID = 99
	return &created, nil
}

func (f *fakeAPI) CreateMaterial(_ context.Context, m *domain.Material) (*domain.Material, error) {
	f.createMaterialCalls++
	created := *m
	created.ID = 2
	return &created, nil
}

func (f *fakeAPI) CreateEncomenda(_ context.Context, e *domain.Encomenda) (*domain.Encomenda, error) {
	f.createEncomendaCalls++
	created := *e
	created.ID = 7
	return &created, nil
}

type memStorage struct {
	blobs map[string][]byte
}

func newMemStorage() *memStorage { return &memStorage{blobs: map[string][]byte{}} }

func (m *memStorage) Read(key string) ([]byte, error) { return m.blobs[key], nil }
func (m *memStorage) Write(key string, blob []byte) error {
	m.blobs[key] = blob
	return nil
}
func (m *memStorage) Delete(key string) error {
	delete(m.blobs, key)
	return nil
}

func newTestConsole(api port.BackendAPI) (*Console, *memStorage) {
	storage := newMemStorage()
	metrics := observability.NewMetrics()
	logger := zap.NewNop()
	st := store.New(api, storage, metrics, logger)
	return NewConsole(api, st, time.Minute, 7, metrics, logger), storage
}

func TestMateriaisLoadsOnceThenServesFromSnapshot(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestConsole(api)

	first, err := c.Materiais(context.Background())
	if err != nil {
		t.Fatalf("Materiais: %v", err)
	}
	if len(first.Materiais) != 1 || first.Valor != 5.0 {
		t.Fatalf("unexpected first read: %+v", first)
	}
	if api.listMateriaisCalls != 1 {
		t.Fatalf("first read should fetch, got %d calls", api.listMateriaisCalls)
	}

	if _, err := c.Materiais(context.Background()); err != nil {
		t.Fatalf("Materiais: %v", err)
	}
	if api.listMateriaisCalls != 1 {
		t.Errorf("second read must serve from the snapshot, got %d calls", api.listMateriaisCalls)
	}
}

func TestCriarMaterialAppendsWithoutRefetch(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestConsole(api)

	if _, err := c.Materiais(context.Background()); err != nil {
		t.Fatalf("Materiais: %v", err)
	}
	fetchesBefore := api.listMateriaisCalls

	created, err := c.CriarMaterial(context.Background(), &domain.Material{Nome: "Fita", Quantidade: 3, Valor: 1.0})
	if err != nil {
		t.Fatalf("CriarMaterial: %v", err)
	}
	if created.ID == 0 {
		t.Error("created material must carry the backend id")
	}
	if api.listMateriaisCalls != fetchesBefore {
		t.Errorf("create must append locally, not refetch")
	}

	m, _ := c.Materiais(context.Background())
	if len(m.Materiais) != 2 {
		t.Errorf("expected 2 materials after append, got %d", len(m.Materiais))
	}
	if m.Valor != 5.0 {
		t.Errorf("aggregates must stay as the server last reported, got %v", m.Valor)
	}
}

func TestCriarMaterialValidation(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestConsole(api)

	_, err := c.CriarMaterial(context.Background(), &domain.Material{})
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if api.createMaterialCalls != 0 {
		t.Error("validation must run before any network call")
	}
}

func TestCriarEncomendaAppendsLocally(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestConsole(api)

	created, err := c.CriarEncomenda(context.Background(), &domain.Encomenda{Descricao: "Caixa personalizada", Cliente: "Clara"})
	if err != nil {
		t.Fatalf("CriarEncomenda: %v", err)
	}
	if created.ID != 7 {
		t.Errorf("created order must carry the backend id, got %d", created.ID)
	}

	snap := c.Snapshot()
	if len(snap.Encomendas) != 1 {
		t.Errorf("expected the created order in the snapshot, got %d", len(snap.Encomendas))
	}
}

func TestRegistrarVendaRefreshesVendasAndPecas(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestConsole(api)

	if _, err := c.RegistrarVenda(context.Background(), &domain.Venda{PecaProntaID: 4, ValorVenda: 30}); err != nil {
		t.Fatalf("RegistrarVenda: %v", err)
	}
	if api.listVendasCalls != 1 {
		t.Errorf("sale must refresh the sales slice, got %d fetches", api.listVendasCalls)
	}
	if api.listPecasCalls != 1 {
		t.Errorf("sale must refresh the finished-goods slice, got %d fetches", api.listPecasCalls)
	}
}

func TestAssinaturaAtivaIsMemoized(t *testing.T) {
	api := &fakeAPI{}
	c, _ := newTestConsole(api)

	for i := 0; i < 3; i++ {
		resp, err := c.AssinaturaAtiva(context.Background())
		if err != nil {
			t.Fatalf("AssinaturaAtiva: %v", err)
		}
		if !resp.Ativa {
			t.Fatal("expected an active subscription")
		}
	}
	if api.assinaturaCalls != 1 {
		t.Errorf("subscription check must be memoized, got %d calls", api.assinaturaCalls)
	}
}

func TestLogoutWipesStorageAndMemo(t *testing.T) {
	api := &fakeAPI{}
	c, storage := newTestConsole(api)

	if _, err := c.Materiais(context.Background()); err != nil {
		t.Fatalf("Materiais: %v", err)
	}
	if _, err := c.AssinaturaAtiva(context.Background()); err != nil {
		t.Fatalf("AssinaturaAtiva: %v", err)
	}
	if len(storage.blobs) == 0 {
		t.Fatal("load should have persisted the snapshot")
	}

	c.Logout()

	if len(storage.blobs) != 0 {
		t.Error("logout must wipe durable storage")
	}
	if _, err := c.AssinaturaAtiva(context.Background()); err != nil {
		t.Fatalf("AssinaturaAtiva: %v", err)
	}
	if api.assinaturaCalls != 2 {
		t.Errorf("logout must drop the subscription memo, got %d calls", api.assinaturaCalls)
	}
}

func TestIniciarAssinaturaValidation(t *testing.T) {
	c, _ := newTestConsole(&fakeAPI{})

	_, err := c.IniciarAssinatura(context.Background(), "semanal")
	if _, ok := err.(*domain.ErrValidation); !ok {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}
