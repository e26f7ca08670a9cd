package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Encomendas — customer commissions
// ============================================================

func (c *Client) CreateEncomenda(ctx context.Context, e *domain.Encomenda) (*domain.Encomenda, error) {
	ctx, span := tracer.Start(ctx, "API.CreateEncomenda")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, "/Encomendas", e)
	if err != nil {
		return nil, err
	}

	var created domain.Encomenda
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created encomenda: %w", err)
	}
	return &created, nil
}

func (c *Client) ListEncomendas(ctx context.Context) ([]domain.Encomenda, error) {
	ctx, span := tracer.Start(ctx, "API.ListEncomendas")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Encomendas", nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.Encomenda
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode encomendas: %w", err)
	}
	return rows, nil
}

func (c *Client) GetEncomenda(ctx context.Context, id int) (*domain.Encomenda, error) {
	ctx, span := tracer.Start(ctx, "API.GetEncomenda")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/Encomendas/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var e domain.Encomenda
	if err := json.Unmarshal(body, &e); err != nil {
		return nil, fmt.Errorf("decode encomenda: %w", err)
	}
	return &e, nil
}

// UpdateStatusEncomenda advances the order lifecycle. The backend takes the
// new status as a query-string enum value, not a body.
func (c *Client) UpdateStatusEncomenda(ctx context.Context, id int, status domain.StatusEncomenda) (*domain.Encomenda, error) {
	ctx, span := tracer.Start(ctx, "API.UpdateStatusEncomenda")
	defer span.End()

	path := fmt.Sprintf("/Encomendas/%d/status?novoStatus=%d", id, status)
	body, err := c.gw.Do(ctx, http.MethodPatch, path, nil)
	if err != nil {
		return nil, err
	}

	var updated domain.Encomenda
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated encomenda: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteEncomenda(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "API.DeleteEncomenda")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/Encomendas/%d", id), nil)
	return err
}
