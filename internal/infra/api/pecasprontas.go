package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Peças Prontas — finished goods + nested materials sub-resource
// ============================================================

func (c *Client) CreatePecaPronta(ctx context.Context, req *domain.CriarPecaProntaRequest) (*domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.CreatePecaPronta")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, "/PecasProntas", req)
	if err != nil {
		return nil, err
	}
	return decodePeca(body)
}

func (c *Client) ListPecasProntas(ctx context.Context) ([]domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.ListPecasProntas")
	defer span.End()

	return c.listPecas(ctx, "/PecasProntas")
}

func (c *Client) ListPecasNaoVendidas(ctx context.Context) ([]domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.ListPecasNaoVendidas")
	defer span.End()

	return c.listPecas(ctx, "/PecasProntas/nao-vendidas")
}

func (c *Client) ListPecasByTipo(ctx context.Context, tipo domain.TipoPecaPronta) ([]domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.ListPecasByTipo")
	defer span.End()

	return c.listPecas(ctx, fmt.Sprintf("/PecasProntas/tipo/%d", tipo))
}

func (c *Client) listPecas(ctx context.Context, path string) ([]domain.PecaPronta, error) {
	body, err := c.gw.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.PecaPronta
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode pecas prontas: %w", err)
	}
	return rows, nil
}

func (c *Client) GetPecaPronta(ctx context.Context, id int) (*domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.GetPecaPronta")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/PecasProntas/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePeca(body)
}

func (c *Client) UpdatePecaPronta(ctx context.Context, id int, req *domain.AtualizarPecaProntaRequest) (*domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.UpdatePecaPronta")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/PecasProntas/%d", id), req)
	if err != nil {
		return nil, err
	}
	return decodePeca(body)
}

func (c *Client) MarcarComoVendida(ctx context.Context, id int) (*domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.MarcarComoVendida")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/PecasProntas/%d/marcar-como-vendida", id), nil)
	if err != nil {
		return nil, err
	}
	return decodePeca(body)
}

func (c *Client) AdicionarMaterial(ctx context.Context, pecaID int, req *domain.AdicionarMaterialRequest) (*domain.PecaPronta, error) {
	ctx, span := tracer.Start(ctx, "API.AdicionarMaterial")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, fmt.Sprintf("/PecasProntas/%d/materiais", pecaID), req)
	if err != nil {
		return nil, err
	}
	return decodePeca(body)
}

func (c *Client) RemoverMaterial(ctx context.Context, pecaID, materialID int) error {
	ctx, span := tracer.Start(ctx, "API.RemoverMaterial")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/PecasProntas/%d/materiais/%d", pecaID, materialID), nil)
	return err
}

func (c *Client) DeletePecaPronta(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "API.DeletePecaPronta")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/PecasProntas/%d", id), nil)
	return err
}

func decodePeca(body []byte) (*domain.PecaPronta, error) {
	var p domain.PecaPronta
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode peca pronta: %w", err)
	}
	return &p, nil
}
