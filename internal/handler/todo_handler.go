package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// TodoList — /v1/listas
// ============================================================

func listListasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/listas")
		defer span.End()

		rows, err := console.Listas(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func createListaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/listas")
		defer span.End()

		var body struct {
			Titulo string `json:"titulo"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}

		created, err := console.CriarLista(ctx, body.Titulo)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getListaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/listas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		lista, err := console.GetLista(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, lista)
	}
}

func deleteListaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/listas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirLista(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func adicionarTarefaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/listas/{id}/tarefas")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		var body struct {
			Descricao string `json:"descricao"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}

		created, err := console.AdicionarTarefa(ctx, id, body.Descricao)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func concluirTarefaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/listas/tarefas/{id}/concluir")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ConcluirTarefa(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func desmarcarTarefaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/listas/tarefas/{id}/desmarcar")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.DesmarcarTarefa(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func updateTarefaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/listas/tarefas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		var body struct {
			Descricao string `json:"descricao"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}

		if err := console.AtualizarTarefa(ctx, id, body.Descricao); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deleteTarefaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/listas/tarefas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirTarefa(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
