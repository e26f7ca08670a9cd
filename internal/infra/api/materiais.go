package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Materiais — /Materiais endpoints
// ============================================================

func (c *Client) ListMateriais(ctx context.Context) ([]domain.Material, error) {
	ctx, span := tracer.Start(ctx, "API.ListMateriais")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Materiais", nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.Material
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode materiais: %w", err)
	}
	return rows, nil
}

func (c *Client) GetMaterial(ctx context.Context, id int) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "API.GetMaterial")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/Materiais/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var m domain.Material
	if err := json.Unmarshal(body, &m); err != nil {
		return nil, fmt.Errorf("decode material: %w", err)
	}
	return &m, nil
}

func (c *Client) ListMateriaisByCategoria(ctx context.Context, cat domain.CategoriaMaterial) ([]domain.Material, error) {
	ctx, span := tracer.Start(ctx, "API.ListMateriaisByCategoria")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/Materiais/categoria/%d", cat), nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.Material
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode materiais: %w", err)
	}
	return rows, nil
}

// GetResumoEstoque fetches the server-computed stock aggregate. The snapshot
// store never recomputes these totals locally.
func (c *Client) GetResumoEstoque(ctx context.Context) (*domain.ResumoEstoque, error) {
	ctx, span := tracer.Start(ctx, "API.GetResumoEstoque")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Materiais/resumo", nil)
	if err != nil {
		return nil, err
	}

	var r domain.ResumoEstoque
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode resumo estoque: %w", err)
	}
	return &r, nil
}

func (c *Client) CreateMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "API.CreateMaterial")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, "/Materiais", m)
	if err != nil {
		return nil, err
	}

	var created domain.Material
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created material: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateMaterial(ctx context.Context, id int, m *domain.Material) (*domain.Material, error) {
	ctx, span := tracer.Start(ctx, "API.UpdateMaterial")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/Materiais/%d", id), m)
	if err != nil {
		return nil, err
	}

	var updated domain.Material
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated material: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteMaterial(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "API.DeleteMaterial")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/Materiais/%d", id), nil)
	return err
}
