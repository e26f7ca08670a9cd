package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
)

// ============================================================
// Ateliê — tenant profile & subscription
// ============================================================

func (c *Client) GetAtelie(ctx context.Context) (*domain.Atelie, error) {
	ctx, span := tracer.Start(ctx, "API.GetAtelie")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Atelie", nil)
	if err != nil {
		return nil, err
	}

	var a domain.Atelie
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("decode atelie: %w", err)
	}
	return &a, nil
}

func (c *Client) UpdateAtelie(ctx context.Context, upd *domain.AtelieUpdate) (*domain.Atelie, error) {
	ctx, span := tracer.Start(ctx, "API.UpdateAtelie")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodPut, "/Atelie", upd)
	if err != nil {
		return nil, err
	}

	var a domain.Atelie
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("decode atelie: %w", err)
	}
	return &a, nil
}

func (c *Client) AssinaturaAtiva(ctx context.Context) (*domain.AssinaturaAtiva, error) {
	ctx, span := tracer.Start(ctx, "API.AssinaturaAtiva")
	defer span.End()

	body, err := c.gw.Do(ctx, http.MethodGet, "/Atelie/assinatura-ativa", nil)
	if err != nil {
		return nil, err
	}

	var a domain.AssinaturaAtiva
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("decode assinatura: %w", err)
	}
	return &a, nil
}

// RegistrarAtelie creates the identity-provider user and the tenant row in one
// backend call. This is the only unauthenticated accessor.
func (c *Client) RegistrarAtelie(ctx context.Context, req *domain.RegistrarAtelieRequest) error {
	ctx, span := tracer.Start(ctx, "API.RegistrarAtelie")
	defer span.End()

	_, err := c.gw.Do(ctx, http.MethodPost, "/Atelie/registrar", req)
	return err
}

func (c *Client) IniciarAssinatura(ctx context.Context, periodicidade string) (*domain.IniciarAssinaturaResponse, error) {
	ctx, span := tracer.Start(ctx, "API.IniciarAssinatura")
	defer span.End()

	req := &domain.IniciarAssinaturaRequest{Periodicidade: periodicidade}
	body, err := c.gw.Do(ctx, http.MethodPost, "/assinatura/iniciar", req)
	if err != nil {
		return nil, err
	}

	var resp domain.IniciarAssinaturaResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode assinatura response: %w", err)
	}
	return &resp, nil
}
