package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Financeiro — finance entries and rollups
// ============================================================

func (c *Client) GetResumoAnual(ctx context.Context, ano int) (*domain.ResumoAnual, error) {
	ctx, span := tracer.Start(ctx, "API.GetResumoAnual")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Financeiro/resumo/anual?ano="+strconv.Itoa(ano), nil)
	if err != nil {
		return nil, err
	}

	var r domain.ResumoAnual
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("decode resumo anual: %w", err)
	}
	return &r, nil
}

// GetResumoMensal returns the monthly rollup as raw JSON. The monthly shape
// changed between backend revisions; the store keeps it opaque.
func (c *Client) GetResumoMensal(ctx context.Context, ano, mes int) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "API.GetResumoMensal")
	defer span.End()

	q := url.Values{}
	q.Set("ano", strconv.Itoa(ano))
	q.Set("mes", strconv.Itoa(mes))

	return c.gw.Do(ctx, http.MethodGet, "/Financeiro/resumo/mensal?"+q.Encode(), nil)
}

func (c *Client) ListMovimentacoesFinanceiras(ctx context.Context, ano, mes int) ([]domain.MovimentacaoFinanceira, error) {
	ctx, span := tracer.Start(ctx, "API.ListMovimentacoesFinanceiras")
	defer span.End()

	q := url.Values{}
	q.Set("ano", strconv.Itoa(ano))
	q.Set("mes", strconv.Itoa(mes))

	body, err := c.gw.Do(ctx, http.MethodGet, "/Financeiro/movimentacoes?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.MovimentacaoFinanceira
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode movimentacoes financeiras: %w", err)
	}
	return rows, nil
}

func (c *Client) CreateMovimentacaoFinanceira(ctx context.Context, m *domain.MovimentacaoFinanceira) (*domain.MovimentacaoFinanceira, error) {
	ctx, span := tracer.Start(ctx, "API.CreateMovimentacaoFinanceira")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, "/Financeiro/movimentacoes", m)
	if err != nil {
		return nil, err
	}

	var created domain.MovimentacaoFinanceira
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created movimentacao: %w", err)
	}
	return &created, nil
}

func (c *Client) UpdateMovimentacaoFinanceira(ctx context.Context, id int, m *domain.MovimentacaoFinanceira) (*domain.MovimentacaoFinanceira, error) {
	ctx, span := tracer.Start(ctx, "API.UpdateMovimentacaoFinanceira")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/Financeiro/movimentacoes/%d", id), m)
	if err != nil {
		return nil, err
	}

	var updated domain.MovimentacaoFinanceira
	if err := json.Unmarshal(body, &updated); err != nil {
		return nil, fmt.Errorf("decode updated movimentacao: %w", err)
	}
	return &updated, nil
}

func (c *Client) DeleteMovimentacaoFinanceira(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "API.DeleteMovimentacaoFinanceira")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/Financeiro/movimentacoes/%d", id), nil)
	return err
}

// ImportarCSV uploads a CSV of finance entries for the given month as
// multipart/form-data, field name "arquivo".
func (c *Client) ImportarCSV(ctx context.Context, ano, mes int, filename string, file io.Reader) (*domain.ImportacaoCSVResult, error) {
	ctx, span := tracer.Start(ctx, "API.ImportarCSV")
	defer span.End()

	q := url.Values{}
	q.Set("ano", strconv.Itoa(ano))
	q.Set("mes", strconv.Itoa(mes))

	body, err := c.gw.DoMultipart(ctx, "/Financeiro/importar-csv", "arquivo", filename, file, q)
	if err != nil {
		return nil, err
	}

	var result domain.ImportacaoCSVResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode import result: %w", err)
	}
	return &result, nil
}
