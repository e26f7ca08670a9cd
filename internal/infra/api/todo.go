package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// TodoList — lists + nested task sub-resource
// ============================================================

func (c *Client) CreateLista(ctx context.Context, titulo string) (*domain.TodoLista, error) {
	ctx, span := tracer.Start(ctx, "API.CreateLista")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, "/TodoList", map[string]string{"titulo": titulo})
	if err != nil {
		return nil, err
	}

	var created domain.TodoLista
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("decode created lista: %w", err)
	}
	return &created, nil
}

func (c *Client) ListListas(ctx context.Context) ([]domain.TodoLista, error) {
	ctx, span := tracer.Start(ctx, "API.ListListas")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/TodoList", nil)
	if err != nil {
		return nil, err
	}

	var rows []domain.TodoLista
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode listas: %w", err)
	}
	return rows, nil
}

func (c *Client) GetLista(ctx context.Context, id int) (*domain.TodoLista, error) {
	ctx, span := tracer.Start(ctx, "API.GetLista")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, fmt.Sprintf("/TodoList/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var lista domain.TodoLista
	if err := json.Unmarshal(body, &lista); err != nil {
		return nil, fmt.Errorf("decode lista: %w", err)
	}
	return &lista, nil
}

func (c *Client) AdicionarTarefa(ctx context.Context, listaID int, descricao string) (*domain.Tarefa, error) {
	ctx, span := tracer.Start(ctx, "API.AdicionarTarefa")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPost, fmt.Sprintf("/TodoList/%d/tarefas", listaID), map[string]string{"descricao": descricao})
	if err != nil {
		return nil, err
	}

	var t domain.Tarefa
	if err := json.Unmarshal(body, &t); err != nil {
		return nil, fmt.Errorf("decode tarefa: %w", err)
	}
	return &t, nil
}

func (c *Client) ConcluirTarefa(ctx context.Context, tarefaID int) error {
	ctx, span := tracer.Start(ctx, "API.ConcluirTarefa")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodPatch, fmt.Sprintf("/TodoList/tarefas/%d/concluir", tarefaID), nil)
	return err
}

func (c *Client) DesmarcarTarefa(ctx context.Context, tarefaID int) error {
	ctx, span := tracer.Start(ctx, "API.DesmarcarTarefa")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodPatch, fmt.Sprintf("/TodoList/tarefas/%d/desmarcar", tarefaID), nil)
	return err
}

func (c *Client) UpdateTarefa(ctx context.Context, tarefaID int, descricao string) error {
	ctx, span := tracer.Start(ctx, "API.UpdateTarefa")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodPut, fmt.Sprintf("/TodoList/tarefas/%d", tarefaID), map[string]string{"descricao": descricao})
	return err
}

func (c *Client) DeleteTarefa(ctx context.Context, tarefaID int) error {
	ctx, span := tracer.Start(ctx, "API.DeleteTarefa")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/TodoList/tarefas/%d", tarefaID), nil)
	return err
}

func (c *Client) DeleteLista(ctx context.Context, id int) error {
	ctx, span := tracer.Start(ctx, "API.DeleteLista")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodDelete, fmt.Sprintf("/TodoList/%d", id), nil)
	return err
}
