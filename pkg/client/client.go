package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Hooks receive global navigation signals from the transport layer, the
// counterpart of the browser's auth-error interceptor. A 401 on any
// non-login call triggers OnUnauthenticated; a 403 triggers OnForbidden.
// Neither retries the request.
type Hooks struct {
	OnUnauthenticated func()
	OnForbidden       func()
}

// Client talks to the admin console API, storing and attaching the session
// token transparently.
type Client struct {
	baseURL string
	store   TokenStore
	http    *http.Client
	now     func() time.Time
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient swaps the underlying HTTP client. Its transport is still
// wrapped to attach tokens and observe auth failures.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithTokenStore swaps the token storage.
func WithTokenStore(store TokenStore) Option {
	return func(c *Client) {
		c.store = store
	}
}

// New builds a client for the given API base URL.
func New(baseURL string, hooks Hooks, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		store:   NewMemoryStore(),
		http:    &http.Client{Timeout: 30 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	// Shallow copy so the caller's client is not mutated.
	wrapped := *c.http
	wrapped.Transport = &authTransport{base: base, store: c.store, hooks: hooks}
	c.http = &wrapped

	return c
}

// authTransport attaches the bearer token to every outgoing request and
// fires the navigation hooks on authentication failures.
type authTransport struct {
	base  http.RoundTripper
	store TokenStore
	hooks Hooks
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if token, _, ok := t.store.Get(); ok {
		clone := req.Clone(req.Context())
		clone.Header.Set("Authorization", "Bearer "+token)
		req = clone
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// The login call handles its own 401; redirecting there would loop.
	if !strings.HasSuffix(req.URL.Path, "/auth/login") {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			if t.hooks.OnUnauthenticated != nil {
				t.hooks.OnUnauthenticated()
			}
		case http.StatusForbidden:
			if t.hooks.OnForbidden != nil {
				t.hooks.OnForbidden()
			}
		}
	}
	return resp, nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresAt   string `json:"expires_at"`
}

// Login authenticates and stores the returned token for subsequent calls.
func (c *Client) Login(ctx context.Context, email, password string) error {
	body, err := json.Marshal(loginRequest{Email: email, Password: password})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("login failed: %s", resp.Status)
	}

	var payload loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return err
	}
	if payload.AccessToken == "" {
		return fmt.Errorf("login response missing access token")
	}

	c.store.Set(payload.AccessToken, expiresAtOrZero(payload.ExpiresAt))
	return nil
}

// Logout discards the stored token. Purely client-local: the token itself
// stays valid until it expires.
func (c *Client) Logout() {
	c.store.Clear()
}

// Do sends a request through the token-attaching transport.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	return c.http.Do(req)
}

// Get issues a GET against an API path.
func (c *Client) Get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.http.Do(req)
}
