// Package api contains the resource accessors: thin 1:1 mappers from domain
// operations to ateliê REST endpoints. Each function performs exactly one
// gateway call and returns the parsed body; failures propagate unchanged to
// the caller — no validation, no retries, no batching here.
package api

import (
	"github.com/meuatelie/atelie-bfa-go/internal/infra/gateway"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("api")

// Client implements port.BackendAPI against the real backend.
type Client struct {
	gw *gateway.Gateway
}

// NewClient creates the accessor client on top of the shared gateway.
func NewClient(gw *gateway.Gateway) *Client {
	return &Client{gw: gw}
}
