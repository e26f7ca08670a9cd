package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"

	"go.uber.org/zap"
)

// ============================================================
// Ateliê — /v1/atelie + /v1/assinatura
// ============================================================

func getAtelieHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/atelie")
		defer span.End()

		a, err := console.Atelie(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, a)
	}
}

func updateAtelieHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "PUT /v1/atelie")
		defer span.End()

		var upd domain.AtelieUpdate
		if err := decodeBody(w, r, &upd); err != nil {
			return
		}

		updated, err := console.AtualizarAtelie(ctx, &upd)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	}
}

func assinaturaAtivaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/atelie/assinatura-ativa")
		defer span.End()

		resp, err := console.AssinaturaAtiva(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}

func iniciarAssinaturaHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/assinatura/iniciar")
		defer span.End()

		var body struct {
			Periodicidade string `json:"periodicidade"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}

		resp, err := console.IniciarAssinatura(ctx, body.Periodicidade)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
