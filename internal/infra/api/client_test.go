package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/gateway"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/resilience"

	"go.uber.org/zap"
)

type noTokens struct{}

func (noTokens) Token(context.Context) (string, error) { return "", nil }

// recorded captures the last request the fake backend served.
type recorded struct {
	method string
	path   string
	query  string
	body   []byte
}

func newTestClient(t *testing.T, respond func(w http.ResponseWriter, r *http.Request)) (*Client, *recorded) {
	t.Helper()

	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body, _ = io.ReadAll(r.Body)
		r.Body = io.NopCloser(bytes.NewReader(rec.body))
		respond(w, r)
	}))
	t.Cleanup(srv.Close)

	cfg := resilience.Config{MaxRetries: 0, InitialBackoff: time.Millisecond, MaxConcurrency: 4}
	gw := gateway.New(srv.Client(), srv.URL, noTokens{}, resilience.NewCircuitBreaker("api-test"), cfg, observability.NewMetrics(), zap.NewNop())
	return NewClient(gw), rec
}

func TestListMateriaisPath(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]domain.Material{{ID: 1, Nome: "Botão"}})
	})

	rows, err := c.ListMateriais(context.Background())
	if err != nil {
		t.Fatalf("ListMateriais: %v", err)
	}
	if rec.method != http.MethodGet || rec.path != "/Materiais" {
		t.Errorf("request = %s %s, want GET /Materiais", rec.method, rec.path)
	}
	if len(rows) != 1 || rows[0].Nome != "Botão" {
		t.Errorf("rows = %+v", rows)
	}
}

func TestGetResumoEstoquePath(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.ResumoEstoque{QuantidadeTotalPecas: 12, ValorTotalEstoque: 30.5})
	})

	resumo, err := c.GetResumoEstoque(context.Background())
	if err != nil {
		t.Fatalf("GetResumoEstoque: %v", err)
	}
	if rec.path != "/Materiais/resumo" {
		t.Errorf("path = %s, want /Materiais/resumo", rec.path)
	}
	if resumo.ValorTotalEstoque != 30.5 {
		t.Errorf("resumo = %+v", resumo)
	}
}

func TestCreateMaterialSendsBody(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Material{ID: 7, Nome: "Fita"})
	})

	created, err := c.CreateMaterial(context.Background(), &domain.Material{Nome: "Fita", Quantidade: 3})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	if rec.method != http.MethodPost || rec.path != "/Materiais" {
		t.Errorf("request = %s %s, want POST /Materiais", rec.method, rec.path)
	}

	var sent domain.Material
	if err := json.Unmarshal(rec.body, &sent); err != nil {
		t.Fatalf("decode sent body: %v", err)
	}
	if sent.Nome != "Fita" || sent.Quantidade != 3 {
		t.Errorf("sent = %+v", sent)
	}
	if created.ID != 7 {
		t.Errorf("created.ID = %d, want server-assigned 7", created.ID)
	}
}

func TestUpdateStatusEncomendaQuery(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(domain.Encomenda{ID: 3, Status: domain.EncomendaEmProducao})
	})

	updated, err := c.UpdateStatusEncomenda(context.Background(), 3, domain.EncomendaEmProducao)
	if err != nil {
		t.Fatalf("UpdateStatusEncomenda: %v", err)
	}
	if rec.method != http.MethodPatch || rec.path != "/Encomendas/3" {
		t.Errorf("request = %s %s, want PATCH /Encomendas/3", rec.method, rec.path)
	}
	if rec.query != "novoStatus=2" {
		t.Errorf("query = %q, want novoStatus=2", rec.query)
	}
	if updated.Status != domain.EncomendaEmProducao {
		t.Errorf("updated = %+v", updated)
	}
}

func TestGetResumoMensalQuery(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"receitas":100}`))
	})

	raw, err := c.GetResumoMensal(context.Background(), 2025, 8)
	if err != nil {
		t.Fatalf("GetResumoMensal: %v", err)
	}
	if rec.path != "/Financeiro/resumo/mensal" || rec.query != "ano=2025&mes=8" {
		t.Errorf("request = %s?%s", rec.path, rec.query)
	}
	if string(raw) != `{"receitas":100}` {
		t.Errorf("raw = %s, monthly rollup must stay opaque", raw)
	}
}

func TestImportarCSVMultipart(t *testing.T) {
	var field, filename, contentType string
	var csvBody []byte
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		if err := r.ParseMultipartForm(1 << 20); err == nil {
			if f, h, err := r.FormFile("arquivo"); err == nil {
				field = "arquivo"
				filename = h.Filename
				csvBody, _ = io.ReadAll(f)
				f.Close()
			}
		}
		json.NewEncoder(w).Encode(domain.ImportacaoCSVResult{Importadas: 2, Ignoradas: 1})
	})

	result, err := c.ImportarCSV(context.Background(), 2025, 8, "agosto.csv", strings.NewReader("data,valor\n"))
	if err != nil {
		t.Fatalf("ImportarCSV: %v", err)
	}
	if rec.method != http.MethodPost || rec.path != "/Financeiro/importar-csv" {
		t.Errorf("request = %s %s", rec.method, rec.path)
	}
	if rec.query != "ano=2025&mes=8" {
		t.Errorf("query = %q", rec.query)
	}
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		t.Errorf("Content-Type = %q", contentType)
	}
	if field != "arquivo" || filename != "agosto.csv" || string(csvBody) != "data,valor\n" {
		t.Errorf("upload = field %q file %q body %q", field, filename, csvBody)
	}
	if result.Importadas != 2 || result.Ignoradas != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestDeleteMaterialNoContent(t *testing.T) {
	c, rec := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	if err := c.DeleteMaterial(context.Background(), 9); err != nil {
		t.Fatalf("DeleteMaterial: %v", err)
	}
	if rec.method != http.MethodDelete || rec.path != "/Materiais/9" {
		t.Errorf("request = %s %s, want DELETE /Materiais/9", rec.method, rec.path)
	}
}
