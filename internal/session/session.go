// Package session talks to the GoTrue identity provider: sign-up, password
// and refresh-token grants, logout and password recovery. It also implements
// port.TokenSource, handing the gateway a valid access token and refreshing
// it transparently when it is about to expire.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/meuatelie/atelie-bfa-go/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// refreshSkew is how close to expiry a token may get before Token refreshes
// it instead of handing it out.
const refreshSkew = 30 * time.Second

// Session is the GoTrue token payload.
type Session struct {
	AccessToken  string          `json:"access_token"`
	TokenType    string          `json:"token_type"`
	ExpiresIn    int             `json:"expires_in"`
	RefreshToken string          `json:"refresh_token"`
	User         json.RawMessage `json:"user,omitempty"`
}

// Client is a minimal GoTrue REST client holding at most one session.
type Client struct {
	httpClient *http.Client
	baseURL    string
	anonKey    string
	logger     *zap.Logger

	mu      sync.Mutex
	session *Session
}

func NewClient(httpClient *http.Client, baseURL, anonKey string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		anonKey:    anonKey,
		logger:     logger,
	}
}

// ============================================================
// Grants
// ============================================================

// SignIn performs the password grant and stores the resulting session.
func (c *Client) SignIn(ctx context.Context, email, senha string) (*Session, error) {
	if email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "obrigatório"}
	}
	if senha == "" {
		return nil, &domain.ErrValidation{Field: "senha", Message: "obrigatório"}
	}

	sess, err := c.tokenGrant(ctx, "password", map[string]string{
		"email":    email,
		"password": senha,
	})
	if err != nil {
		return nil, err
	}

	c.setSession(sess)
	c.logger.Info("session: signed in")
	return sess, nil
}

// Refresh exchanges the stored refresh token for a new session. Callers
// normally never need this: Token refreshes on demand.
func (c *Client) Refresh(ctx context.Context) (*Session, error) {
	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	if current == nil || current.RefreshToken == "" {
		return nil, &domain.ErrUnauthorized{Message: "sem sessão para renovar"}
	}

	sess, err := c.tokenGrant(ctx, "refresh_token", map[string]string{
		"refresh_token": current.RefreshToken,
	})
	if err != nil {
		return nil, err
	}

	c.setSession(sess)
	c.logger.Debug("session: token refreshed")
	return sess, nil
}

func (c *Client) tokenGrant(ctx context.Context, grantType string, body map[string]string) (*Session, error) {
	respBody, err := c.post(ctx, "/auth/v1/token?grant_type="+grantType, body, "")
	if err != nil {
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(respBody, &sess); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if sess.AccessToken == "" {
		return nil, &domain.ErrUnauthorized{Message: "resposta sem token de acesso"}
	}
	return &sess, nil
}

// SignUp registers a new identity-provider user. GoTrue may return a session
// right away or require email confirmation first; either way nothing is
// stored until the user signs in.
func (c *Client) SignUp(ctx context.Context, email, senha string) error {
	_, err := c.post(ctx, "/auth/v1/signup", map[string]string{
		"email":    email,
		"password": senha,
	}, "")
	return err
}

// Recover triggers the password recovery email.
func (c *Client) Recover(ctx context.Context, email string) error {
	_, err := c.post(ctx, "/auth/v1/recover", map[string]string{"email": email}, "")
	return err
}

// SignOut revokes the session server-side and drops it locally. The local
// session is dropped even when the revoke call fails: from the console's
// point of view the user is out either way.
func (c *Client) SignOut(ctx context.Context) error {
	c.mu.Lock()
	current := c.session
	c.session = nil
	c.mu.Unlock()

	if current == nil {
		return nil
	}

	_, err := c.post(ctx, "/auth/v1/logout", nil, current.AccessToken)
	if err != nil {
		c.logger.Warn("session: server-side logout failed", zap.Error(err))
		return err
	}
	c.logger.Info("session: signed out")
	return nil
}

// ============================================================
// TokenSource
// ============================================================

// Token returns the current access token, refreshing first when it expires
// within refreshSkew. No session means an empty token with nil error; the
// gateway then sends the request unauthenticated and the backend answers 401.
func (c *Client) Token(ctx context.Context) (string, error) {
	c.mu.Lock()
	current := c.session
	c.mu.Unlock()

	if current == nil {
		return "", nil
	}

	if !expiringSoon(current.AccessToken) {
		return current.AccessToken, nil
	}

	sess, err := c.Refresh(ctx)
	if err != nil {
		return "", err
	}
	return sess.AccessToken, nil
}

// expiringSoon reads the exp claim without verifying the signature: the
// backend is the verifier, this side only needs the timestamp. Tokens whose
// exp cannot be read are treated as expiring so a refresh is attempted.
func expiringSoon(token string) bool {
	var claims jwt.RegisteredClaims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return true
	}
	if claims.ExpiresAt == nil {
		return false
	}
	return time.Until(claims.ExpiresAt.Time) < refreshSkew
}

// CurrentSession returns the stored session, or nil when signed out.
func (c *Client) CurrentSession() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

func (c *Client) setSession(sess *Session) {
	c.mu.Lock()
	c.session = sess
	c.mu.Unlock()
}

// ============================================================
// Transport
// ============================================================

// gotrueError is the provider's error envelope. Older and newer GoTrue
// versions disagree on the field names, so all three are tried.
type gotrueError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	Msg              string `json:"msg"`
}

func (c *Client) post(ctx context.Context, path string, body any, bearer string) ([]byte, error) {
	var buf io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "gotrue", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.ErrExternalService{Service: "gotrue", Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	var ge gotrueError
	_ = json.Unmarshal(respBody, &ge)
	msg := ge.ErrorDescription
	if msg == "" {
		msg = ge.Msg
	}
	if msg == "" {
		msg = ge.Error
	}

	if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized ||
		resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusUnprocessableEntity {
		if msg == "" {
			msg = "credenciais inválidas"
		}
		return nil, &domain.ErrUnauthorized{Message: msg}
	}
	return nil, &domain.ErrBackend{Status: resp.StatusCode, Mensagem: msg}
}
