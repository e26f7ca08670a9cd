package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Estoque — /v1/estoque
// ============================================================

func listMovimentacoesHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/estoque/movimentacoes")
		defer span.End()

		rows, err := console.Movimentacoes(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func movimentacoesPeriodoHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/estoque/movimentacoes/periodo")
		defer span.End()

		dataInicio := r.URL.Query().Get("dataInicio")
		dataFim := r.URL.Query().Get("dataFim")
		if dataInicio == "" || dataFim == "" {
			writeError(w, http.StatusBadRequest, "dataInicio e dataFim são obrigatórios")
			return
		}

		rows, err := console.MovimentacoesPeriodo(ctx, dataInicio, dataFim)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func registrarEntradaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/estoque/entrada")
		defer span.End()

		var req domain.RegistrarMovimentacaoRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}

		mov, err := console.RegistrarEntrada(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, mov)
	}
}

func registrarSaidaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/estoque/saida")
		defer span.End()

		var req domain.RegistrarMovimentacaoRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}

		mov, err := console.RegistrarSaida(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, mov)
	}
}
