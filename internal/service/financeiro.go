package service

import (
	"context"
	"io"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Financeiro
// ============================================================

// Resumo returns the monthly and yearly rollups. The current period serves
// from the snapshot; asking for another period always refetches and makes
// that period the cached one.
func (c *Console) Resumo(ctx context.Context, ano, mes int) (domain.ResumoFinanceiro, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Resumo")
	defer span.End()

	if ano == 0 && mes == 0 && c.store.Carregado().Resumo {
		c.metrics.IncrCacheHit("resumo")
		return c.store.Resumo(), nil
	}
	c.metrics.IncrCacheMiss("resumo")
	if err := c.store.LoadResumo(ctx, ano, mes); err != nil {
		return domain.ResumoFinanceiro{}, err
	}
	return c.store.Resumo(), nil
}

// MovimentacoesFinanceiras lists the finance entries of one period straight
// from the backend; the entry list is never part of the snapshot.
func (c *Console) MovimentacoesFinanceiras(ctx context.Context, ano, mes int) ([]domain.MovimentacaoFinanceira, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.MovimentacoesFinanceiras")
	defer span.End()

	return c.api.ListMovimentacoesFinanceiras(ctx, ano, mes)
}

// CriarMovimentacaoFinanceira records a finance entry and refreshes the
// rollups.
func (c *Console) CriarMovimentacaoFinanceira(ctx context.Context, m *domain.MovimentacaoFinanceira) (*domain.MovimentacaoFinanceira, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.CriarMovimentacaoFinanceira")
	defer span.End()

	created, err := c.api.CreateMovimentacaoFinanceira(ctx, m)
	if err != nil {
		return nil, err
	}
	c.refreshResumo(ctx)
	return created, nil
}

// AtualizarMovimentacaoFinanceira edits a finance entry and refreshes the
// rollups.
func (c *Console) AtualizarMovimentacaoFinanceira(ctx context.Context, id int, m *domain.MovimentacaoFinanceira) (*domain.MovimentacaoFinanceira, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AtualizarMovimentacaoFinanceira")
	defer span.End()

	updated, err := c.api.UpdateMovimentacaoFinanceira(ctx, id, m)
	if err != nil {
		return nil, err
	}
	c.refreshResumo(ctx)
	return updated, nil
}

// ExcluirMovimentacaoFinanceira removes a finance entry and refreshes the
// rollups.
func (c *Console) ExcluirMovimentacaoFinanceira(ctx context.Context, id int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirMovimentacaoFinanceira")
	defer span.End()

	if err := c.api.DeleteMovimentacaoFinanceira(ctx, id); err != nil {
		return err
	}
	c.refreshResumo(ctx)
	return nil
}

// ImportarCSV uploads a bank statement export and refreshes the rollups with
// whatever the import produced.
func (c *Console) ImportarCSV(ctx context.Context, ano, mes int, filename string, file io.Reader) (*domain.ImportacaoCSVResult, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.ImportarCSV")
	defer span.End()

	result, err := c.api.ImportarCSV(ctx, ano, mes, filename, file)
	if err != nil {
		return nil, err
	}
	if err := c.store.LoadResumo(ctx, ano, mes); err != nil {
		c.logger.Warn("financeiro: rollup refresh after import failed", zap.Error(err))
	}
	return result, nil
}

func (c *Console) refreshResumo(ctx context.Context) {
	if err := c.store.LoadResumo(ctx, 0, 0); err != nil {
		c.logger.Warn("financeiro: rollup refresh failed", zap.Error(err))
	}
}
