package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/store"

	"go.uber.org/zap"
)

// ============================================================
// Materiais
// ============================================================

// Materiais returns the material list with the server-computed aggregates,
// loading them on the first read.
func (c *Console) Materiais(ctx context.Context) (store.Materiais, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Materiais")
	defer span.End()

	if err := c.ensure(ctx, "materiais", c.store.Carregado().Materiais, c.store.LoadMateriais); err != nil {
		return store.Materiais{}, err
	}
	return c.store.Materiais(), nil
}

// CriarMaterial creates the material on the backend and appends the created
// row locally. The stock aggregates are not recomputed; they stay as the
// server last reported them until the next full reload.
func (c *Console) CriarMaterial(ctx context.Context, m *domain.Material) (*domain.Material, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.CriarMaterial")
	defer span.End()

	if m.Nome == "" {
		return nil, &domain.ErrValidation{Field: "nome", Message: "obrigatório"}
	}

	created, err := c.api.CreateMaterial(ctx, m)
	if err != nil {
		return nil, err
	}
	c.store.AppendMaterial(*created)
	return created, nil
}

// AtualizarMaterial updates the material and refreshes the whole slice, as
// an edit can move the server-side aggregates.
func (c *Console) AtualizarMaterial(ctx context.Context, id int, m *domain.Material) (*domain.Material, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AtualizarMaterial")
	defer span.End()

	updated, err := c.api.UpdateMaterial(ctx, id, m)
	if err != nil {
		return nil, err
	}
	if err := c.store.LoadMateriais(ctx); err != nil {
		c.logger.Warn("materiais: refresh after update failed", zap.Error(err))
	}
	return updated, nil
}

// ExcluirMaterial deletes the material and refreshes the slice.
func (c *Console) ExcluirMaterial(ctx context.Context, id int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirMaterial")
	defer span.End()

	if err := c.api.DeleteMaterial(ctx, id); err != nil {
		return err
	}
	if err := c.store.LoadMateriais(ctx); err != nil {
		c.logger.Warn("materiais: refresh after delete failed", zap.Error(err))
	}
	return nil
}

// MateriaisPorCategoria is a filtered listing straight from the backend; it
// does not touch the snapshot.
func (c *Console) MateriaisPorCategoria(ctx context.Context, cat domain.CategoriaMaterial) ([]domain.Material, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.MateriaisPorCategoria")
	defer span.End()

	return c.api.ListMateriaisByCategoria(ctx, cat)
}

// RefreshMateriais forces a reload, bringing the aggregates back in sync.
func (c *Console) RefreshMateriais(ctx context.Context) error {
	ctx, span := consoleTracer.Start(ctx, "Console.RefreshMateriais")
	defer span.End()

	return c.store.LoadMateriais(ctx)
}
