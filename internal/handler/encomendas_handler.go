package handler

import (
	"net/http"
	"strconv"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Encomendas — /v1/encomendas
// ============================================================

func listEncomendasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/encomendas")
		defer span.End()

		rows, err := console.Encomendas(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func createEncomendaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/encomendas")
		defer span.End()

		var e domain.Encomenda
		if err := decodeBody(w, r, &e); err != nil {
			return
		}

		created, err := console.CriarEncomenda(ctx, &e)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func getEncomendaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/encomendas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		e, err := console.GetEncomenda(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

// updateStatusEncomendaHandler moves a commission through its lifecycle. The
// new status rides in the novoStatus query parameter, as the backend expects.
func updateStatusEncomendaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PATCH /v1/encomendas/{id}/status")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		status, err := strconv.Atoi(r.URL.Query().Get("novoStatus"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "novoStatus inválido")
			return
		}

		updated, err := console.AtualizarStatusEncomenda(ctx, id, domain.StatusEncomenda(status))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteEncomendaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/encomendas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirEncomenda(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
