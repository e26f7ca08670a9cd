package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"go.uber.org/zap"
)

// maxCSVSize bounds statement uploads at 5 MiB.
const maxCSVSize = 5 << 20

// ============================================================
// Financeiro — /v1/financeiro
// ============================================================

func resumoHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/financeiro/resumo")
		defer span.End()

		resumo, err := console.Resumo(ctx, queryInt(r, "ano"), queryInt(r, "mes"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resumo)
	}
}

func listMovFinanceirasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/financeiro/movimentacoes")
		defer span.End()

		rows, err := console.MovimentacoesFinanceiras(ctx, queryInt(r, "ano"), queryInt(r, "mes"))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func createMovFinanceiraHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/financeiro/movimentacoes")
		defer span.End()

		var m domain.MovimentacaoFinanceira
		if err := decodeBody(w, r, &m); err != nil {
			return
		}

		created, err := console.CriarMovimentacaoFinanceira(ctx, &m)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateMovFinanceiraHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/financeiro/movimentacoes/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		var m domain.MovimentacaoFinanceira
		if err := decodeBody(w, r, &m); err != nil {
			return
		}

		updated, err := console.AtualizarMovimentacaoFinanceira(ctx, id, &m)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteMovFinanceiraHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/financeiro/movimentacoes/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirMovimentacaoFinanceira(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// importarCSVHandler accepts a multipart upload under the field "arquivo"
// and relays it to the backend import.
func importarCSVHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/financeiro/importar-csv")
		defer span.End()

		if err := r.ParseMultipartForm(maxCSVSize); err != nil {
			writeError(w, http.StatusBadRequest, "upload inválido")
			return
		}
		file, header, err := r.FormFile("arquivo")
		if err != nil {
			writeError(w, http.StatusBadRequest, "campo 'arquivo' é obrigatório")
			return
		}
		defer file.Close()

		result, err := console.ImportarCSV(ctx, queryInt(r, "ano"), queryInt(r, "mes"), header.Filename, file)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, result)
	}
}
