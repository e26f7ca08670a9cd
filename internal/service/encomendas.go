package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Encomendas
// ============================================================

// Encomendas returns the commission list, loading it on first read.
func (c *Console) Encomendas(ctx context.Context) ([]domain.Encomenda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Encomendas")
	defer span.End()

	if err := c.ensure(ctx, "encomendas", c.store.Carregado().Encomendas, c.store.LoadEncomendas); err != nil {
		return nil, err
	}
	return c.store.Encomendas(), nil
}

// GetEncomenda fetches one commission straight from the backend.
func (c *Console) GetEncomenda(ctx context.Context, id int) (*domain.Encomenda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.GetEncomenda")
	defer span.End()

	return c.api.GetEncomenda(ctx, id)
}

// CriarEncomenda creates the commission on the backend and appends the
// created row locally, no refetch.
func (c *Console) CriarEncomenda(ctx context.Context, e *domain.Encomenda) (*domain.Encomenda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.CriarEncomenda")
	defer span.End()

	if e.Descricao == "" {
		return nil, &domain.ErrValidation{Field: "descricao", Message: "obrigatório"}
	}

	created, err := c.api.CreateEncomenda(ctx, e)
	if err != nil {
		return nil, err
	}
	c.store.AppendEncomenda(*created)
	return created, nil
}

// AtualizarStatusEncomenda moves a commission through its lifecycle and
// refreshes the slice.
func (c *Console) AtualizarStatusEncomenda(ctx context.Context, id int, status domain.StatusEncomenda) (*domain.Encomenda, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AtualizarStatusEncomenda")
	defer span.End()

	if !domain.ValidStatusEncomenda(status) {
		return nil, &domain.ErrValidation{Field: "novoStatus", Message: "status desconhecido"}
	}

	updated, err := c.api.UpdateStatusEncomenda(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if err := c.store.LoadEncomendas(ctx); err != nil {
		c.logger.Warn("encomendas: refresh after status change failed", zap.Error(err))
	}
	return updated, nil
}

// ExcluirEncomenda removes a commission and refreshes the slice.
func (c *Console) ExcluirEncomenda(ctx context.Context, id int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirEncomenda")
	defer span.End()

	if err := c.api.DeleteEncomenda(ctx, id); err != nil {
		return err
	}
	if err := c.store.LoadEncomendas(ctx); err != nil {
		c.logger.Warn("encomendas: refresh after delete failed", zap.Error(err))
	}
	return nil
}
