package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Vendas — /v1/vendas
// ============================================================

func listVendasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vendas")
		defer span.End()

		rows, err := console.Vendas(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func registrarVendaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/vendas")
		defer span.End()

		var v domain.Venda
		if err := decodeBody(w, r, &v); err != nil {
			return
		}

		created, err := console.RegistrarVenda(ctx, &v)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func vendasPeriodoHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vendas/periodo")
		defer span.End()

		dataInicio := r.URL.Query().Get("dataInicio")
		dataFim := r.URL.Query().Get("dataFim")
		if dataInicio == "" || dataFim == "" {
			writeError(w, http.StatusBadRequest, "dataInicio e dataFim são obrigatórios")
			return
		}

		rows, err := console.VendasPeriodo(ctx, dataInicio, dataFim)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func totalVendasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/vendas/total")
		defer span.End()

		total, err := console.TotalVendas(ctx, r.URL.Query().Get("dataInicio"), r.URL.Query().Get("dataFim"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, total)
	}
}

func deleteVendaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/vendas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirVenda(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
