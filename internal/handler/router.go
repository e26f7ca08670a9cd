package handler

import (
	"net/http"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/service"
	"github.com/meuatelie/atelie-bfa-go/internal/session"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("handler")

// NewRouter creates the HTTP router with all routes and middleware. The
// /v1 surface mirrors the console operations one to one; everything except
// registration and the auth endpoints requires a session.
func NewRouter(console *service.Console, sess *session.Client, metrics *observability.Metrics, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// --- Middleware ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(observability.ZapLoggerMiddleware(logger))
	r.Use(observability.TracingMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Heartbeat("/ping"))

	// --- Operational endpoints ---
	r.Get("/healthz", healthzHandler(sess))
	r.Get("/readyz", readyzHandler())
	r.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	// --- API v1 ---
	r.Route("/v1", func(r chi.Router) {

		// =============================================
		// Autenticação & registro (public)
		// =============================================
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authLoginHandler(sess, console, logger))
			r.Post("/refresh", authRefreshHandler(sess, logger))
			r.Post("/logout", authLogoutHandler(sess, console, logger))
			r.Post("/password/recover", authRecoverHandler(sess, logger))
		})
		r.Post("/registrar", registrarHandler(console, logger))

		// =============================================
		// Console (session required)
		// =============================================
		r.Group(func(r chi.Router) {
			r.Use(SessionRequiredMiddleware(sess, logger))

			// Snapshot & preferences
			r.Get("/snapshot", snapshotHandler(console))
			r.Post("/snapshot/load", loadAllHandler(console, logger))
			r.Get("/preferencias/mostrar-valor", getMostrarValorHandler(console))
			r.Put("/preferencias/mostrar-valor", setMostrarValorHandler(console, logger))

			// Navigation & plan gate
			r.Get("/navegacao", navigationHandler())
			r.Get("/plano", planoHandler(console, logger))

			// Materiais
			r.Route("/materiais", func(r chi.Router) {
				r.Get("/", listMateriaisHandler(console, logger))
				r.Post("/", createMaterialHandler(console, logger))
				r.Post("/refresh", refreshMateriaisHandler(console, logger))
				r.Get("/categoria/{categoria}", materiaisPorCategoriaHandler(console, logger))
				r.Put("/{id}", updateMaterialHandler(console, logger))
				r.Delete("/{id}", deleteMaterialHandler(console, logger))
			})

			// Estoque
			r.Route("/estoque", func(r chi.Router) {
				r.Get("/movimentacoes", listMovimentacoesHandler(console, logger))
				r.Get("/movimentacoes/periodo", movimentacoesPeriodoHandler(console, logger))
				r.Post("/entrada", registrarEntradaHandler(console, logger))
				r.Post("/saida", registrarSaidaHandler(console, logger))
			})

			// Financeiro
			r.Route("/financeiro", func(r chi.Router) {
				r.Get("/resumo", resumoHandler(console, logger))
				r.Get("/movimentacoes", listMovFinanceirasHandler(console, logger))
				r.Post("/movimentacoes", createMovFinanceiraHandler(console, logger))
				r.Put("/movimentacoes/{id}", updateMovFinanceiraHandler(console, logger))
				r.Delete("/movimentacoes/{id}", deleteMovFinanceiraHandler(console, logger))
				r.Post("/importar-csv", importarCSVHandler(console, logger))
			})

			// Vendas
			r.Route("/vendas", func(r chi.Router) {
				r.Get("/", listVendasHandler(console, logger))
				r.Post("/", registrarVendaHandler(console, logger))
				r.Get("/periodo", vendasPeriodoHandler(console, logger))
				r.Get("/total", totalVendasHandler(console, logger))
				r.Delete("/{id}", deleteVendaHandler(console, logger))
			})

			// Encomendas
			r.Route("/encomendas", func(r chi.Router) {
				r.Get("/", listEncomendasHandler(console, logger))
				r.Post("/", createEncomendaHandler(console, logger))
				r.Get("/{id}", getEncomendaHandler(console, logger))
				r.Patch("/{id}/status", updateStatusEncomendaHandler(console, logger))
				r.Delete("/{id}", deleteEncomendaHandler(console, logger))
			})

			// Peças prontas
			r.Route("/pecas-prontas", func(r chi.Router) {
				r.Get("/", listPecasHandler(console, logger))
				r.Post("/", createPecaHandler(console, logger))
				r.Get("/nao-vendidas", pecasNaoVendidasHandler(console, logger))
				r.Get("/tipo/{tipo}", pecasPorTipoHandler(console, logger))
				r.Get("/{id}", getPecaHandler(console, logger))
				r.Put("/{id}", updatePecaHandler(console, logger))
				r.Put("/{id}/marcar-como-vendida", marcarVendidaHandler(console, logger))
				r.Post("/{id}/materiais", adicionarMaterialPecaHandler(console, logger))
				r.Delete("/{id}/materiais/{materialId}", removerMaterialPecaHandler(console, logger))
				r.Delete("/{id}", deletePecaHandler(console, logger))
			})

			// TodoList
			r.Route("/listas", func(r chi.Router) {
				r.Get("/", listListasHandler(console, logger))
				r.Post("/", createListaHandler(console, logger))
				r.Get("/{id}", getListaHandler(console, logger))
				r.Delete("/{id}", deleteListaHandler(console, logger))
				r.Post("/{id}/tarefas", adicionarTarefaHandler(console, logger))
				r.Patch("/tarefas/{id}/concluir", concluirTarefaHandler(console, logger))
				r.Patch("/tarefas/{id}/desmarcar", desmarcarTarefaHandler(console, logger))
				r.Put("/tarefas/{id}", updateTarefaHandler(console, logger))
				r.Delete("/tarefas/{id}", deleteTarefaHandler(console, logger))
			})

			// Ateliê profile & subscription
			r.Route("/atelie", func(r chi.Router) {
				r.Get("/", getAtelieHandler(console, logger))
				r.Put("/", updateAtelieHandler(console, logger))
				r.Get("/assinatura-ativa", assinaturaAtivaHandler(console, logger))
			})
			r.Post("/assinatura/iniciar", iniciarAssinaturaHandler(console, logger))

			// Cache metrics
			r.Get("/metrics/cache", cacheMetricsHandler(metrics))
		})
	})

	return r
}

// ============================================================
// Operational & snapshot endpoints
// ============================================================

func healthzHandler(sess *session.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		now := time.Now().Format(time.RFC3339)

		sessionStatus := "unauthenticated"
		if sess.CurrentSession() != nil {
			sessionStatus = "authenticated"
		}

		writeJSON(w, http.StatusOK, domain.HealthStatus{
			Status: "healthy",
			Services: []domain.ServiceHealth{
				{Name: "atelie-bfa", Status: "healthy", LastChecked: now},
				{Name: "session", Status: sessionStatus, LastChecked: now},
			},
		})
	}
}

func readyzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func snapshotHandler(console *service.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, console.Snapshot())
	}
}

func loadAllHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "POST /v1/snapshot/load")
		defer span.End()

		if err := console.LoadAll(ctx); err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, console.Snapshot())
	}
}

func getMostrarValorHandler(console *service.Console) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"mostrarValor": console.MostrarValor()})
	}
}

func setMostrarValorHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			MostrarValor bool `json:"mostrarValor"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			return
		}
		console.SetMostrarValor(body.MostrarValor)
		writeJSON(w, http.StatusOK, map[string]bool{"mostrarValor": console.MostrarValor()})
	}
}

func navigationHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := service.ResolvePage(r.URL.Query().Get("pagina"))
		writeJSON(w, http.StatusOK, map[string]string{"pagina": page})
	}
}

func planoHandler(console *service.Console, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), "GET /v1/plano")
		defer span.End()

		status, err := console.Plano(ctx)
		if err != nil {
			handleServiceError(w, err, logger)
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": status.String()})
	}
}

func cacheMetricsHandler(metrics *observability.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, metrics.GetCacheStats())
	}
}
