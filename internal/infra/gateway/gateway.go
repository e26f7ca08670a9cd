// Package gateway is the single configured HTTP client for the ateliê
// backend. Every request passes through it: it attaches the current session
// bearer token, a correlation id, and the circuit breaker; accessors never
// touch net/http directly.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/observability"
	"github.com/meuatelie/atelie-bfa-go/internal/infra/resilience"
	"github.com/meuatelie/atelie-bfa-go/internal/port"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// Gateway wraps HTTP calls to the ateliê REST API.
type Gateway struct {
	httpClient *http.Client
	baseURL    string
	tokens     port.TokenSource
	cb         *gobreaker.CircuitBreaker
	bulkhead   *resilience.Bulkhead
	cfg        resilience.Config
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// New creates a gateway against baseURL. The base URL is environment-fixed;
// it is never rewritten at runtime.
func New(httpClient *http.Client, baseURL string, tokens port.TokenSource, cb *gobreaker.CircuitBreaker, cfg resilience.Config, metrics *observability.Metrics, logger *zap.Logger) *Gateway {
	concurrency := cfg.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 16
	}
	return &Gateway{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
		cb:         cb,
		bulkhead:   resilience.NewBulkhead(concurrency),
		cfg:        cfg,
		metrics:    metrics,
		logger:     logger,
	}
}

// Do executes one request against the backend. A non-nil body is JSON-encoded.
// It returns the raw response body; 204/404-with-empty-body conventions are
// handled by the callers, typed errors by errorFromResponse.
func (g *Gateway) Do(ctx context.Context, method, path string, body any) ([]byte, error) {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	var respBody []byte
	_, err := g.cb.Execute(func() (any, error) {
		return nil, resilience.RetryWithBackoff(ctx, g.cfg, func() error {
			var reader io.Reader
			if payload != nil {
				reader = bytes.NewReader(payload)
			}
			req, err := http.NewRequestWithContext(ctx, method, g.baseURL+path, reader)
			if err != nil {
				return err
			}
			if payload != nil {
				req.Header.Set("Content-Type", "application/json")
			}

			b, err := g.send(req, path)
			if err != nil {
				return err
			}
			respBody = b
			return nil
		})
	})
	if err != nil {
		return nil, g.mapError(method, path, err)
	}
	return respBody, nil
}

// DoMultipart uploads a file as multipart/form-data (CSV import). params are
// appended to the query string.
func (g *Gateway) DoMultipart(ctx context.Context, path, field, filename string, file io.Reader, params url.Values) ([]byte, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(fw, file); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	fullPath := path
	if len(params) > 0 {
		fullPath += "?" + params.Encode()
	}

	var respBody []byte
	_, err = g.cb.Execute(func() (any, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+fullPath, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", mw.FormDataContentType())

		b, err := g.send(req, path)
		if err != nil {
			return nil, err
		}
		respBody = b
		return nil, nil
	})
	if err != nil {
		return nil, g.mapError(http.MethodPost, path, err)
	}
	return respBody, nil
}

// send attaches auth + correlation headers, runs the request under the
// bulkhead, and converts non-2xx statuses into typed errors.
func (g *Gateway) send(req *http.Request, path string) ([]byte, error) {
	ctx := req.Context()
	start := time.Now()

	token, err := g.tokens.Token(ctx)
	if err != nil {
		g.logger.Error("gateway: token source failed", zap.Error(err))
		return nil, err
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-ID", uuid.NewString())

	if err := g.bulkhead.Acquire(ctx); err != nil {
		return nil, err
	}
	defer g.bulkhead.Release()

	resp, err := g.httpClient.Do(req)
	if err != nil {
		g.logger.Error("gateway: request failed",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	operation := req.Method + " " + resourceOf(path)
	g.metrics.RecordBackendDuration(operation, time.Since(start))

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		g.metrics.IncrBackendError(resourceOf(path))
		g.logger.Warn("gateway: non-2xx response",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)),
		)
		return nil, errorFromResponse(resp.StatusCode, body, path)
	}

	g.logger.Debug("gateway: request OK",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
	)
	return body, nil
}

// mapError normalizes breaker and context errors into domain errors.
func (g *Gateway) mapError(method, path string, err error) error {
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return &domain.ErrCircuitOpen{Service: "atelie-api"}
	case errors.Is(err, context.DeadlineExceeded):
		return &domain.ErrTimeout{Operation: fmt.Sprintf("%s %s", method, path)}
	default:
		return err
	}
}

// backendError is the error envelope the backend uses on 4xx/5xx. Field
// naming drifted across backend revisions, so all three spellings are read.
type backendError struct {
	Erro     string `json:"erro"`
	Message  string `json:"message"`
	Mensagem string `json:"mensagem"`
}

func errorFromResponse(status int, body []byte, path string) error {
	var be backendError
	_ = json.Unmarshal(body, &be)
	msg := be.Erro
	if msg == "" {
		msg = be.Message
	}
	if msg == "" {
		msg = be.Mensagem
	}

	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &domain.ErrUnauthorized{Message: msg}
	case http.StatusNotFound:
		return &domain.ErrNotFound{Resource: resourceOf(path), ID: path}
	default:
		return &domain.ErrBackend{Status: status, Mensagem: msg}
	}
}

// resourceOf extracts the first path segment ("/Materiais/3" -> "Materiais").
func resourceOf(path string) string {
	p := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(p, '/'); i >= 0 {
		p = p[:i]
	}
	if i := strings.IndexByte(p, '?'); i >= 0 {
		p = p[:i]
	}
	return p
}
