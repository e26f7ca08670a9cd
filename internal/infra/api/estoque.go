package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Estoque — stock movements
// ============================================================

func (c *Client) RegistrarEntrada(ctx context.Context, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error) {
	ctx, span := tracer.Start(ctx, "API.RegistrarEntrada")
	defer span.End()

	return c.registrarMovimentacao(ctx, "/Estoque/entrada", req)
}

func (c *Client) RegistrarSaida(ctx context.Context, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error) {
	ctx, span := tracer.Start(ctx, "API.RegistrarSaida")
	defer span.End()

	return c.registrarMovimentacao(ctx, "/Estoque/saida", req)
}

func (c *Client) registrarMovimentacao(ctx context.Context, path string, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error) {
	body, err := c.gw.Do(ctx, http.MethodPost, path, req)
	if err != nil {
		return nil, err
	}

	var mov domain.MovimentacaoEstoque
	if err := json.Unmarshal(body, &mov); err != nil {
		return nil, fmt.Errorf("decode movimentacao: %w", err)
	}
	return &mov, nil
}

// ListMovimentacoes lists stock movements, optionally filtered by material.
// materialID zero means no filter.
func (c *Client) ListMovimentacoes(ctx context.Context, materialID int) ([]domain.MovimentacaoEstoque, error) {
	ctx, span := tracer.Start(ctx, "API.ListMovimentacoes")
	defer span.End()

	path := "/Estoque/movimentacoes"
	if materialID > 0 {
		path += "?materialId=" + strconv.Itoa(materialID)
	}

	body, err := c.gw.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.MovimentacaoEstoque
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode movimentacoes: %w", err)
	}
	return rows, nil
}

func (c *Client) ListMovimentacoesPeriodo(ctx context.Context, dataInicio, dataFim string) ([]domain.MovimentacaoEstoque, error) {
	ctx, span := tracer.Start(ctx, "API.ListMovimentacoesPeriodo")
	defer span.End()

	q := url.Values{}
	q.Set("dataInicio", dataInicio)
	q.Set("dataFim", dataFim)

	body, err := c.gw.Do(ctx, http.MethodGet, "/Estoque/movimentacoes/periodo?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.MovimentacaoEstoque
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode movimentacoes: %w", err)
	}
	return rows, nil
}
