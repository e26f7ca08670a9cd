package service

import (
	"context"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"go.uber.org/zap"
)

// assinaturaKey is the single memo-cache key for the subscription check.
const assinaturaKey = "assinatura-ativa"

// ============================================================
// Ateliê profile & subscription
// ============================================================

// Atelie returns the studio profile, loading it on first read.
func (c *Console) Atelie(ctx context.Context) (domain.Atelie, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.Atelie")
	defer span.End()

	if err := c.ensure(ctx, "atelie", c.store.Carregado().Atelie, c.store.LoadAtelie); err != nil {
		return domain.Atelie{}, err
	}
	return c.store.Atelie(), nil
}

// AtualizarAtelie edits the profile and refreshes it.
func (c *Console) AtualizarAtelie(ctx context.Context, upd *domain.AtelieUpdate) (*domain.Atelie, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AtualizarAtelie")
	defer span.End()

	updated, err := c.api.UpdateAtelie(ctx, upd)
	if err != nil {
		return nil, err
	}
	if err := c.store.LoadAtelie(ctx); err != nil {
		c.logger.Warn("atelie: refresh after update failed", zap.Error(err))
	}
	return updated, nil
}

// AssinaturaAtiva answers the subscription check, memoized for the
// configured TTL so gated pages do not refetch it on every request.
func (c *Console) AssinaturaAtiva(ctx context.Context) (domain.AssinaturaAtiva, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.AssinaturaAtiva")
	defer span.End()

	if cached, ok := c.assinatura.Get(assinaturaKey); ok {
		return cached, nil
	}

	resp, err := c.api.AssinaturaAtiva(ctx)
	if err != nil {
		return domain.AssinaturaAtiva{}, err
	}
	c.assinatura.Set(assinaturaKey, *resp)
	return *resp, nil
}

// RegistrarAtelie signs up a new studio. Unauthenticated by design.
func (c *Console) RegistrarAtelie(ctx context.Context, req *domain.RegistrarAtelieRequest) error {
	ctx, span := consoleTracer.Start(ctx, "Console.RegistrarAtelie")
	defer span.End()

	if req.Email == "" {
		return &domain.ErrValidation{Field: "email", Message: "obrigatório"}
	}
	if req.Senha == "" {
		return &domain.ErrValidation{Field: "senha", Message: "obrigatório"}
	}
	if req.NomeAtelie == "" {
		return &domain.ErrValidation{Field: "nomeAtelie", Message: "obrigatório"}
	}

	return c.api.RegistrarAtelie(ctx, req)
}

// IniciarAssinatura starts a subscription checkout and returns the URL to
// redirect to. The memoized check is dropped so the next gate sees the new
// subscription as soon as the backend does.
func (c *Console) IniciarAssinatura(ctx context.Context, periodicidade string) (*domain.IniciarAssinaturaResponse, error) {
	ctx, span := consoleTracer.Start(ctx, "Console.IniciarAssinatura")
	defer span.End()

	if periodicidade != "mensal" && periodicidade != "anual" {
		return nil, &domain.ErrValidation{Field: "periodicidade", Message: "deve ser mensal ou anual"}
	}

	resp, err := c.api.IniciarAssinatura(ctx, periodicidade)
	if err != nil {
		return nil, err
	}
	c.assinatura.Delete(assinaturaKey)
	return resp, nil
}

// Plano evaluates the plan banner state from the cached profile.
func (c *Console) Plano(ctx context.Context) (PlanStatus, error) {
	atelie, err := c.Atelie(ctx)
	if err != nil {
		return PlanExpired, err
	}
	return EvaluatePlan(atelie, c.now(), c.avisoDias), nil
}
