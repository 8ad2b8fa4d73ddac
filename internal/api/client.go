package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forumhq/forumctl/internal/model"
)

// TokenStore abstracts durable token persistence. The store is
// authoritative; the client's in-memory token is a cache seeded by
// Initialize and kept in step by SetToken/ClearToken.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	Clear() error
}

// Client is the single point of contact with the forum backend. It owns the
// bearer token and exposes one method per endpoint.
type Client struct {
	baseURL string
	httpc   *http.Client
	store   TokenStore
	logger  *slog.Logger
	token   string
}

// Config holds client construction settings
type Config struct {
	BaseURL string
	Timeout time.Duration
	Store   TokenStore
	Logger  *slog.Logger

	// HTTPClient overrides the transport, used by tests.
	HTTPClient *http.Client
}

// New creates an API client. The token is not loaded until Initialize.
func New(cfg Config) *Client {
	httpc := cfg.HTTPClient
	if httpc == nil {
		httpc = &http.Client{Timeout: cfg.Timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		httpc:   httpc,
		store:   cfg.Store,
		logger:  logger,
	}
}

// Initialize adopts a previously persisted token, if any. It makes no
// network call; the token is confirmed lazily by the first request.
func (c *Client) Initialize() (bool, error) {
	token, err := c.store.Load()
	if err != nil {
		return false, err
	}
	if token == "" {
		return false, nil
	}
	c.token = token
	return true, nil
}

// SetToken stores the token in memory and durably. Empty tokens are
// rejected with a log entry and no state change. A "Bearer " prefix, if a
// caller passed the raw header value, is stripped.
func (c *Client) SetToken(token string) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		c.logger.Warn("ignoring empty token")
		return
	}
	c.token = token
	if err := c.store.Save(token); err != nil {
		c.logger.Error("persisting token failed", slog.String("error", err.Error()))
	}
}

// ClearToken removes the token from memory and durable storage. Idempotent.
func (c *Client) ClearToken() {
	c.token = ""
	if err := c.store.Clear(); err != nil {
		c.logger.Error("clearing persisted token failed", slog.String("error", err.Error()))
	}
}

// Token returns the active bearer token, or "".
func (c *Client) Token() string {
	return c.token
}

// IsAuthenticated reports whether a token is held.
func (c *Client) IsAuthenticated() bool {
	return c.token != ""
}

// do runs one request/response exchange: it marshals body (when non-nil),
// attaches the bearer token and a correlation id, maps failure statuses to
// the model error taxonomy, and decodes into out (when non-nil).
//
// A 401 from any endpoint clears the token before the error is returned.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.decorate(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		c.logger.Debug("request failed", slog.String("method", method), slog.String("path", path), slog.String("error", err.Error()))
		return model.NewNetworkError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.NewNetworkError(err)
	}

	c.logger.Debug("response",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode))

	if resp.StatusCode >= 400 {
		if resp.StatusCode == http.StatusUnauthorized {
			c.ClearToken()
		}
		return model.NewStatusError(resp.StatusCode, respBody)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return model.NewMalformedError(fmt.Sprintf("decoding %s %s response: %v", method, path, err))
		}
	}
	return nil
}

// decorate attaches the standard per-request headers.
func (c *Client) decorate(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}

// pageQuery builds the pagination query, substituting defaults for
// out-of-range values. Pages are zero-based.
func pageQuery(page, size int) url.Values {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = model.DefaultPageSize
	}
	q := url.Values{}
	q.Set("page", fmt.Sprintf("%d", page))
	q.Set("size", fmt.Sprintf("%d", size))
	return q
}
