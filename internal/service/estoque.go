package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Estoque
// ============================================================

// Movimentacoes returns the stock movement history, loading it on first read.
func (c *Console) Movimentacoes(ctx context.Context) ([]domain.MovimentacaoEstoque, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Movimentacoes")
	defer span.End()

	if err := c.ensure(ctx, "movimentacoes", c.store.Carregado().Movimentacoes, c.store.LoadMovimentacoes); err != nil {
		return nil, err
	}
	return c.store.Movimentacoes(), nil
}

// RegistrarEntrada records a stock entry. Both the movement history and the
// material quantities change server-side, so both slices are refreshed.
func (c *Console) RegistrarEntrada(ctx context.Context, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.RegistrarEntrada")
	defer span.End()

	mov, err := c.api.RegistrarEntrada(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshEstoque(ctx)
	return mov, nil
}

// RegistrarSaida records a stock exit.
func (c *Console) RegistrarSaida(ctx context.Context, req *domain.RegistrarMovimentacaoRequest) (*domain.MovimentacaoEstoque, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.RegistrarSaida")
	defer span.End()

	mov, err := c.api.RegistrarSaida(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshEstoque(ctx)
	return mov, nil
}

func (c *Console) refreshEstoque(ctx context.Context) {
	if err := c.store.LoadMovimentacoes(ctx); err != nil {
		c.logger.Warn("estoque: movement refresh failed", zap.Error(err))
	}
	if err := c.store.LoadMateriais(ctx); err != nil {
		c.logger.Warn("estoque: material refresh failed", zap.Error(err))
	}
}

// MovimentacoesPeriodo is a filtered listing straight from the backend.
func (c *Console) MovimentacoesPeriodo(ctx context.Context, dataInicio, dataFim string) ([]domain.MovimentacaoEstoque, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.MovimentacoesPeriodo")
	defer span.End()

	return c.api.ListMovimentacoesPeriodo(ctx, dataInicio, dataFim)
}
