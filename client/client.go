// Package client talks to the site API on behalf of the admin dashboard.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const csrfHeader = "X-CSRF-Token"

// APIError is a non-2xx answer from the API.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("api error %d (%s): %s", e.Status, e.Field, e.Message)
	}
	return fmt.Sprintf("api error %d: %s", e.Status, e.Message)
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type errorBody struct {
	Error   string `json:"error"`
	Field   string `json:"field"`
	Details string `json:"details"`
}

// Client keeps the CSRF cookie and token and the admin bearer token between calls.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     zerolog.Logger

	mu        sync.Mutex
	token     string
	csrfToken string
}

type Option func(*Client)

// WithHTTPClient replaces the default client. A cookie jar is added when it has none.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithToken starts the client with an admin token obtained earlier.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func New(baseURL string, opts ...Option) (*Client, error) {
	c := &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     log.With().Str("clientName", "siteAPI").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("creating cookie jar: %w", err)
		}
		c.httpClient.Jar = jar
	}
	return c, nil
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.token
}

// Login exchanges the admin password for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, password string) error {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", map[string]string{"password": password}, &resp); err != nil {
		return err
	}
	c.SetToken(resp.Token)
	return nil
}

// refreshCSRF fetches a fresh token. The matching cookie lands in the jar.
func (c *Client) refreshCSRF(ctx context.Context) (string, error) {
	var resp struct {
		CSRFToken string `json:"csrf_token"`
	}
	if err := c.send(ctx, http.MethodGet, "/api/csrf-token", nil, "", &resp); err != nil {
		return "", fmt.Errorf("fetching CSRF token: %w", err)
	}

	c.mu.Lock()
	c.csrfToken = resp.CSRFToken
	c.mu.Unlock()
	return resp.CSRFToken, nil
}

func (c *Client) currentCSRF(ctx context.Context) (string, error) {
	c.mu.Lock()
	token := c.csrfToken
	c.mu.Unlock()
	if token != "" {
		return token, nil
	}
	return c.refreshCSRF(ctx)
}

// doJSON encodes payload as the request body and decodes the answer into out.
func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body []byte
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = encoded
	}
	return c.do(ctx, method, path, body, "application/json", out)
}

// do sends a request, attaching the CSRF token to mutating verbs. A CSRF
// rejection is retried once with a fresh token, which covers a server restart
// with a new key.
func (c *Client) do(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	if method == http.MethodGet {
		return c.send(ctx, method, path, body, contentType, out)
	}

	if _, err := c.currentCSRF(ctx); err != nil {
		return err
	}
	err := c.send(ctx, method, path, body, contentType, out)

	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Status == http.StatusForbidden && apiErr.Field == "csrf" {
		c.logger.Debug().Str("path", path).Msg("CSRF token rejected, refreshing")
		if _, err := c.refreshCSRF(ctx); err != nil {
			return err
		}
		return c.send(ctx, method, path, body, contentType, out)
	}
	return err
}

func (c *Client) send(ctx context.Context, method, path string, body []byte, contentType string, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}

	c.mu.Lock()
	token, csrfToken := c.token, c.csrfToken
	c.mu.Unlock()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet && csrfToken != "" {
		req.Header.Set(csrfHeader, csrfToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response of %s %s: %w", method, path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	if raw, ok := out.(*json.RawMessage); ok {
		*raw = append((*raw)[:0], respBody...)
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("decoding response of %s %s: %w", method, path, err)
	}
	return nil
}

func decodeError(status int, body []byte) error {
	apiErr := &APIError{Status: status, Message: http.StatusText(status)}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && parsed.Error != "" {
		apiErr.Message = parsed.Error
		apiErr.Field = parsed.Field
	} else if text := strings.TrimSpace(string(body)); text != "" {
		apiErr.Message = text
	}
	return apiErr
}
