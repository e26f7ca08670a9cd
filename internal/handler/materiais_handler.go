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
// Materiais — /v1/materiais
// ============================================================

func listMateriaisHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/materiais")
		defer span.End()

		m, err := console.Materiais(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}

func createMaterialHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/materiais")
		defer span.End()

		var m domain.Material
		if err := decodeBody(w, r, &m); err != nil {
			return
		}

		created, err := console.CriarMaterial(ctx, &m)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	}
}

func updateMaterialHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/materiais/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		var m domain.Material
		if err := decodeBody(w, r, &m); err != nil {
			return
		}

		updated, err := console.AtualizarMaterial(ctx, id, &m)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func deleteMaterialHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "DELETE /v1/materiais/{id}")
		defer span.End()

		id, ok := urlID(w, r, "id")
		if !ok {
			return
		}
		if err := console.ExcluirMaterial(ctx, id); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func materiaisPorCategoriaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/materiais/categoria/{categoria}")
		defer span.End()

		cat, err := strconv.Atoi(chi.URLParam(r, "categoria"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "categoria inválida")
			return
		}

		rows, err := console.MateriaisPorCategoria(ctx, domain.CategoriaMaterial(cat))
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, rows)
	}
}

func refreshMateriaisHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/materiais/refresh")
		defer span.End()

		if err := console.RefreshMateriais(ctx); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		m, err := console.Materiais(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, m)
	}
}
