// Package api is the thin REST client behind the SDK's read paths. It owns
// no business logic: endpoints, pagination defaults and auth tokens are all
// supplied by collaborators.
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

	"github.com/google/uuid"

	"github.com/LendzLabs/nftfi-go/types"
)

// TokenSource supplies the bearer token attached to requests. Implementations
// are expected to cache and refresh as needed; nil means unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client talks to one network's REST backend.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	tokens     TokenSource
	log        *slog.Logger
}

// Option mutates the client during construction.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client used for requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTokenSource attaches an auth token source.
func WithTokenSource(tokens TokenSource) Option {
	return func(c *Client) { c.tokens = tokens }
}

// WithLogger overrides the default logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New constructs a client for the given base URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		return nil, fmt.Errorf("api: base url required")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("api: invalid base url: %w", err)
	}
	client := &Client{
		baseURL:    parsed,
		httpClient: http.DefaultClient,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Get performs a GET with query params, decoding the JSON body into out.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	rel := &url.URL{Path: endpoint, RawQuery: params.Encode()}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.ResolveReference(rel).String(), nil)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	return c.do(req, out)
}

// Post sends a JSON payload, decoding the response into out.
func (c *Client) Post(ctx context.Context, endpoint string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("api: marshal payload: %w", err)
	}
	rel := &url.URL{Path: endpoint}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.ResolveReference(rel).String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())
	if c.tokens != nil {
		token, err := c.tokens.Token(req.Context())
		if err != nil {
			return fmt.Errorf("api: token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("api: do request: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("api: read response: %w", err)
	}
	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, body)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

// apiError preserves the backend's field-keyed validation shape when present
// so callers can match on it; anything else becomes a flat status error.
func apiError(status int, body []byte) error {
	var verr types.ValidationError
	if err := json.Unmarshal(body, &verr); err == nil && !verr.Empty() {
		return &verr
	}
	return fmt.Errorf("api: status %d: %s", status, strings.TrimSpace(string(body)))
}
