package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// Peças Prontas
// ============================================================

// PecasProntas returns the finished-goods list, loading it on first read.
func (c *Console) PecasProntas(ctx context.Context) ([]domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.PecasProntas")
	defer span.End()

	if err := c.ensure(ctx, "pecasProntas", c.store.Carregado().PecasProntas, c.store.LoadPecasProntas); err != nil {
		return nil, err
	}
	return c.store.PecasProntas(), nil
}

// PecasNaoVendidas is a filtered listing straight from the backend.
func (c *Console) PecasNaoVendidas(ctx context.Context) ([]domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.PecasNaoVendidas")
	defer span.End()

	return c.api.ListPecasNaoVendidas(ctx)
}

// PecasPorTipo is a filtered listing straight from the backend.
func (c *Console) PecasPorTipo(ctx context.Context, tipo domain.TipoPecaPronta) ([]domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.PecasPorTipo")
	defer span.End()

	return c.api.ListPecasByTipo(ctx, tipo)
}

// GetPecaPronta fetches one piece straight from the backend.
func (c *Console) GetPecaPronta(ctx context.Context, id int) (*domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.GetPecaPronta")
	defer span.End()

	return c.api.GetPecaPronta(ctx, id)
}

// CriarPecaPronta creates a piece and refreshes the slice. Creating a piece
// consumes materials, so the stock slices are refreshed too.
func (c *Console) CriarPecaPronta(ctx context.Context, req *domain.CriarPecaProntaRequest) (*domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.CriarPecaPronta")
	defer span.End()

	created, err := c.api.CreatePecaPronta(ctx, req)
	if err != nil {
		return nil, err
	}
	c.refreshPecas(ctx)
	c.refreshEstoque(ctx)
	return created, nil
}

// AtualizarPecaPronta edits a piece and refreshes the slice.
func (c *Console) AtualizarPecaPronta(ctx context.Context, id int, req *domain.AtualizarPecaProntaRequest) (*domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AtualizarPecaPronta")
	defer span.End()

	updated, err := c.api.UpdatePecaPronta(ctx, id, req)
	if err != nil {
		return nil, err
	}
	c.refreshPecas(ctx)
	return updated, nil
}

// MarcarPecaComoVendida flips a piece to sold and refreshes the slice.
func (c *Console) MarcarPecaComoVendida(ctx context.Context, id int) (*domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.MarcarPecaComoVendida")
	defer span.End()

	updated, err := c.api.MarcarComoVendida(ctx, id)
	if err != nil {
		return nil, err
	}
	c.refreshPecas(ctx)
	return updated, nil
}

// AdicionarMaterialPeca attaches a material to a piece; material stock moves
// server-side, so both families refresh.
func (c *Console) AdicionarMaterialPeca(ctx context.Context, pecaID int, req *domain.AdicionarMaterialRequest) (*domain.PecaPronta, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AdicionarMaterialPeca")
	defer span.End()

	updated, err := c.api.AdicionarMaterial(ctx, pecaID, req)
	if err != nil {
		return nil, err
	}
	c.refreshPecas(ctx)
	c.refreshEstoque(ctx)
	return updated, nil
}

// RemoverMaterialPeca detaches a material from a piece.
func (c *Console) RemoverMaterialPeca(ctx context.Context, pecaID, materialID int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.RemoverMaterialPeca")
	defer span.End()

	if err := c.api.RemoverMaterial(ctx, pecaID, materialID); err != nil {
		return err
	}
	c.refreshPecas(ctx)
	c.refreshEstoque(ctx)
	return nil
}

// ExcluirPecaPronta removes a piece and refreshes the slice.
func (c *Console) ExcluirPecaPronta(ctx context.Context, id int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirPecaPronta")
	defer span.End()

	if err := c.api.DeletePecaPronta(ctx, id); err != nil {
		return err
	}
	c.refreshPecas(ctx)
	return nil
}

func (c *Console) refreshPecas(ctx context.Context) {
	if err := c.store.LoadPecasProntas(ctx); err != nil {
		c.logger.Warn("pecas: refresh failed", zap.Error(err))
	}
}
