package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// ============================================================
// TodoList
// ============================================================

// Listas returns the to-do lists, loading them on first read.
func (c *Console) Listas(ctx context.Context) ([]domain.TodoLista, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Listas")
	defer span.End()

	if err := c.ensure(ctx, "listas", c.store.Carregado().Listas, c.store.LoadListas); err != nil {
		return nil, err
	}
	return c.store.Listas(), nil
}

// GetLista fetches one list with its tasks straight from the backend.
func (c *Console) GetLista(ctx context.Context, id int) (*domain.TodoLista, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.GetLista")
	defer span.End()

	return c.api.GetLista(ctx, id)
}

// CriarLista creates a list and refreshes the slice.
func (c *Console) CriarLista(ctx context.Context, titulo string) (*domain.TodoLista, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.CriarLista")
	defer span.End()

	if titulo == "" {
		return nil, &domain.ErrValidation{Field: "titulo", Message: "obrigatório"}
	}

	created, err := c.api.CreateLista(ctx, titulo)
	if err != nil {
		return nil, err
	}
	c.refreshListas(ctx)
	return created, nil
}

// AdicionarTarefa appends a task to a list and refreshes the slice.
func (c *Console) AdicionarTarefa(ctx context.Context, listaID int, descricao string) (*domain.Tarefa, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AdicionarTarefa")
	defer span.End()

	if descricao == "" {
		return nil, &domain.ErrValidation{Field: "descricao", Message: "obrigatório"}
	}

	created, err := c.api.AdicionarTarefa(ctx, listaID, descricao)
	if err != nil {
		return nil, err
	}
	c.refreshListas(ctx)
	return created, nil
}

// ConcluirTarefa marks a task done and refreshes the slice.
func (c *Console) ConcluirTarefa(ctx context.Context, tarefaID int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ConcluirTarefa")
	defer span.End()

	if err := c.api.ConcluirTarefa(ctx, tarefaID); err != nil {
		return err
	}
	c.refreshListas(ctx)
	return nil
}

// DesmarcarTarefa reopens a task and refreshes the slice.
func (c *Console) DesmarcarTarefa(ctx context.Context, tarefaID int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.DesmarcarTarefa")
	defer span.End()

	if err := c.api.DesmarcarTarefa(ctx, tarefaID); err != nil {
		return err
	}
	c.refreshListas(ctx)
	return nil
}

// AtualizarTarefa rewrites a task description and refreshes the slice.
func (c *Console) AtualizarTarefa(ctx context.Context, tarefaID int, descricao string) error {
	ctx, span := consoleTracer.Start(ctx, "Console.AtualizarTarefa")
	defer span.End()

	if err := c.api.UpdateTarefa(ctx, tarefaID, descricao); err != nil {
		return err
	}
	c.refreshListas(ctx)
	return nil
}

// ExcluirTarefa removes a task and refreshes the slice.
func (c *Console) ExcluirTarefa(ctx context.Context, tarefaID int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirTarefa")
	defer span.End()

	if err := c.api.DeleteTarefa(ctx, tarefaID); err != nil {
		return err
	}
	c.refreshListas(ctx)
	return nil
}

// ExcluirLista removes a list and refreshes the slice.
func (c *Console) ExcluirLista(ctx context.Context, id int) error {
	ctx, span := consoleTracer.Start(ctx, "Console.ExcluirLista")
	defer span.End()

	if err := c.api.DeleteLista(ctx, id); err != nil {
		return err
	}
	c.refreshListas(ctx)
	return nil
}

func (c *Console) refreshListas(ctx context.Context) {
	if err := c.store.LoadListas(ctx); err != nil {
		c.logger.Warn("todo: refresh failed", zap.Error(err))
	}
}
