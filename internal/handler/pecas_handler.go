package handler

import (
	"net/http"
	"strconv"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ============================================================
// Peças Prontas — /v1/pecas-prontas
// ============================================================

func listPecasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/pecas-prontas")
		defer span.End()

		rows, err := console.PecasProntas(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func createPecaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/pecas-prontas")
		defer span.End()

		var req domain.CriarPecaProntaRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}
		if req.Titulo == "" {
			writeError(w, http.StatusBadRequest, "titulo é obrigatório")
			return
		}

		created, err := console.CriarPecaPronta(ctx, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func pecasNaoVendidasHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/pecas-prontas/nao-vendidas")
		defer span.End()

		rows, err := console.PecasNaoVendidas(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func pecasPorTipoHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/pecas-prontas/tipo/{tipo}")
		defer span.End()

		tipo, err := strconv.Atoi(chi.URLParam(r, "tipo"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "tipo inválido")
			return
		}

		rows, err := console.PecasPorTipo(ctx, domain.TipoPecaPronta(tipo))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func getPecaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/pecas-prontas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		p, err := console.GetPecaPronta(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, p)
	}
}

func updatePecaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/pecas-prontas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		var req domain.AtualizarPecaProntaRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}

		updated, err := console.AtualizarPecaPronta(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func marcarVendidaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/pecas-prontas/{id}/marcar-como-vendida")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		updated, err := console.MarcarPecaComoVendida(ctx, id)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func adicionarMaterialPecaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/pecas-prontas/{id}/materiais")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		var req domain.AdicionarMaterialRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}

		updated, err := console.AdicionarMaterialPeca(ctx, id, &req)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func removerMaterialPecaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/pecas-prontas/{id}/materiais/{materialId}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		materialID, ok := urlID(w, r, "materialId")
		if !ok {
			return
		}
		if err := console.RemoverMaterialPeca(ctx, id, materialID); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func deletePecaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/pecas-prontas/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirPecaPronta(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
