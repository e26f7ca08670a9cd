package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/service"
	"github.com/meuatelie/atelie-bfa-go/internal/session"

	"go.uber.org/zap"
)

// ============================================================
// Autenticação — /v1/auth + /v1/registrar
// ============================================================

func authLoginHandler(sess *session.Client, console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/login")
		defer span.End()

		var body struct {
			Email string `json:"email"`
			Senha string `json:"senha"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}

		s, err := sess.SignIn(ctx, body.Email, body.Senha)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken":  s.AccessToken,
			"refreshToken": s.RefreshToken,
			"expiresIn":    s.ExpiresIn,
		})
	}
}

func authRefreshHandler(sess *session.Client, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/refresh")
		defer span.End()

		s, err := sess.Refresh(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"accessToken":  s.AccessToken,
			"refreshToken": s.RefreshToken,
			"expiresIn":    s.ExpiresIn,
		})
	}
}

// authLogoutHandler revokes the session and wipes the durable snapshot. The
// revoke failing does not keep the user signed in locally.
func authLogoutHandler(sess *session.Client, console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/logout")
		defer span.End()

		if err := sess.SignOut(ctx); err != nil {
			logger.Warn("logout: revoke failed", zap.Error(err))
		}
		console.Logout()

		w.WriteHeader(http.StatusNoContent)
	}
}

func authRecoverHandler(sess *session.Client, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/auth/password/recover")
		defer span.End()

		var body struct {
			Email string `json:"email"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}
		if body.Email == "" {
			writeError(w, http.StatusBadRequest, "email é obrigatório")
			return
		}

		if err := sess.Recover(ctx, body.Email); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, domain.SuccessResponse{Success: true})
	}
}

func registrarHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/registrar")
		defer span.End()

		var req domain.RegistrarAtelieRequest
		if err := decodeBody(w, r, &req); err != nil {
			return
		}

		if err := console.RegistrarAtelie(ctx, &req); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusCreated, domain.SuccessResponse{Success: true})
	}
}
