package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Vendas — sales
// ============================================================

func (c *Client) RegistrarVenda(ctx context.Context, v *domain.Venda) (*domain.Venda, error) {
	ctx, span := tracer.Start(ctx, "API.RegistrarVenda")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, "/Vendas", v)
	if err != nil {
		return nil, err
	}

	var created domain.Venda
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created venda: %w", err)
	}
	return &created, nil
}

func (c *Client) ListVendas(ctx context.Context) ([]domain.Venda, error) {
	ctx, span := tracer.Start(ctx, "API.ListVendas")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Vendas", nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.Venda
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vendas: %w", err)
	}
	return rows, nil
}

func (c *Client) ListVendasPeriodo(ctx context.Context, dataInicio, dataFim string) ([]domain.Venda, error) {
	ctx, span := tracer.Start(ctx, "API.ListVendasPeriodo")
	defer span.End()

	q := url.Values{}
	q.Set("dataInicio", dataInicio)
	q.Set("dataFim", dataFim)

	body, err := c.gw.Do(ctx, http.MethodGet, "/Vendas/periodo?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.Venda
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode vendas: %w", err)
	}
	return rows, nil
}

// GetTotalVendas returns the server-side total; empty bounds mean all-time.
func (c *Client) GetTotalVendas(ctx context.Context, dataInicio, dataFim string) (*domain.TotalVendas, error) {
	ctx, span := tracer.Start(ctx, "API.GetTotalVendas")
	defer span.End()

	q := url.Values{}
	if dataInicio != "" {
		q.Set("dataInicio", dataInicio)
	}
	if dataFim != "" {
		q.Set("dataFim", dataFim)
	}
	path := "/Vendas/total"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	body, err := c.gw.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var total domain.TotalVendas
	if err := json.Unmarshal(body, &total); err != nil {
		return nil, fmt.Errorf("decode total vendas: %w", err)
	}
	return &total, nil
}

func (c *Client) DeleteVenda(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "API.DeleteVenda")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/Vendas/%d", id), nil)
	return err
}
