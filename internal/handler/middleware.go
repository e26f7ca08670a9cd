package handler

import (
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/session"

	"go.uber.org/zap"
)

// SessionRequiredMiddleware rejects requests while nobody is signed in. The
// backend still verifies the bearer on every call; this gate only saves the
// round trip when there is no session at all.
func SessionRequiredMiddleware(sess *session.Client, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if sess.CurrentSession() == nil {
				logger.Warn("session: unauthenticated request",
					zap.String("path", r.URL.Path),
					zap.String("remote_addr", r.RemoteAddr),
				)
				writeError(w, http.StatusUnauthorized, "Sessão não iniciada")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
