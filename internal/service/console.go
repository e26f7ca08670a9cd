// Package service provides the console use cases on top of the snapshot
// store and the backend accessors. Reads serve from the store, triggering
// the matching loader the first time a slice is asked for; writes go to the
// backend first and then patch or refresh the snapshot.
package service

import (
	"context"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/cache"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/port"
	"github.com/meuatelie/atelie-bfa-go/internal/store"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var consoleTracer = otel.Tracer("service/console")

// Console orchestrates the backend accessors and the session snapshot.
type Console struct {
	api        port.BackendAPI
	store      *store.Store
	assinatura *cache.InMemory[domain.AssinaturaAtiva]
	avisoDias  int
	metrics    *observability.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewConsole creates the console service. assinaturaTTL bounds how long a
// subscription check is memoized; avisoDias is the expiring-soon window.
func NewConsole(api port.BackendAPI, st *store.Store, assinaturaTTL time.Duration, avisoDias int, metrics *observability.Metrics, logger *zap.Logger) *Console {
	return &Console{
		api:        api,
		store:      st,
		assinatura: cache.New[domain.AssinaturaAtiva](assinaturaTTL),
		avisoDias:  avisoDias,
		metrics:    metrics,
		logger:     logger,
		now:        time.Now,
	}
}

// LoadAll refreshes the whole snapshot in one parallel sweep.
func (c *Console) LoadAll(ctx context.Context) error {
	ctx, span := consoleTracer.Start(ctx, "Console.LoadAll")
	defer span.End()

	return c.store.LoadAll(ctx)
}

// Snapshot exposes the current aggregate for the overview endpoint.
func (c *Console) Snapshot() store.Snapshot {
	return c.store.Snapshot()
}

// MostrarValor reports the show-financial-values preference.
func (c *Console) MostrarValor() bool {
	return c.store.MostrarValor()
}

// SetMostrarValor flips the preference and persists it.
func (c *Console) SetMostrarValor(v bool) {
	c.store.SetMostrarValor(v)
}

// Logout wipes the durable snapshot and the memoized subscription check.
// The identity-provider revoke happens in the session client; the in-memory
// snapshot is discarded with the process, as it always was.
func (c *Console) Logout() {
	c.store.Clear()
	c.assinatura.Delete(assinaturaKey)
}

// ensure serves the hit/miss accounting shared by every cached read: when
// the slice is already loaded it counts a hit, otherwise it counts a miss
// and runs the loader.
func (c *Console) ensure(ctx context.Context, slice string, loaded bool, load func(context.Context) error) error {
	if loaded {
		c.metrics.IncrCacheHit(slice)
		return nil
	}
	c.metrics.IncrCacheMiss(slice)
	return load(ctx)
}
