package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Vendas
// ============================================================

// Vendas returns the sales list, loading it on first read.
func (c *Console) Vendas(ctx context.Context) ([]domain.Venda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Vendas")
	defer span.End()

	if err := c.ensure(ctx, "vendas", c.store.Carregado().Vendas, c.store.LoadVendas); err != nil {
		return nil, err
	}
	return c.store.Vendas(), nil
}

// RegistrarVenda records a sale. The sold piece flips to vendida on the
// backend, so both the sales and the finished-goods slices are refreshed.
func (c *Console) RegistrarVenda(ctx context.Context, v *domain.Venda) (*domain.Venda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.RegistrarVenda")
	defer span.End()

	created, err := c.api.RegistrarVenda(ctx, v)
	if err != nil {
		return nil, err
	}
	if err := c.store.LoadVendas(ctx); err != nil {
		c.logger.Warn("vendas: refresh after sale failed", zap.Error(err))
	}
	if err := c.store.LoadPecasProntas(ctx); err != nil {
		c.logger.Warn("vendas: finished-goods refresh after sale failed", zap.Error(err))
	}
	return created, nil
}

// VendasPeriodo is a filtered listing straight from the backend.
func (c *Console) VendasPeriodo(ctx context.Context, dataInicio, dataFim string) ([]domain.Venda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.VendasPeriodo")
	defer span.End()

	return c.api.ListVendasPeriodo(ctx, dataInicio, dataFim)
}

// TotalVendas returns the server-side sales total for a period.
func (c *Console) TotalVendas(ctx context.Context, dataInicio, dataFim string) (*domain.TotalVendas, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.TotalVendas")
	defer span.End()

	return c.api.GetTotalVendas(ctx, dataInicio, dataFim)
}

// ExcluirVenda removes a sale and refreshes the slice.
func (c *Console) ExcluirVenda(ctx context.Context, id int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirVenda")
	defer span.End()

	if err := c.api.DeleteVenda(ctx, id); err != nil {
		return err
	}
	if err := c.store.LoadVendas(ctx); err != nil {
		c.logger.Warn("vendas: refresh after delete failed", zap.Error(err))
	}
	return nil
}
