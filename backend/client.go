// Package backend is the HTTP client for the computer-use demo backend.
//
// The backend owns model invocation, tool execution and the remote desktop;
// this package only speaks its JSON surface: the streaming chat endpoint
// (stream.go), the event decoding rules (events.go) and the plain
// request/response configuration calls below.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	// Count of stream lines dropped because they failed to decode.
	// Diagnostics only, never fatal.
	decodeFailures atomic.Int64
}

func NewClient(baseURL string) (*Client, error) {
	if baseURL == "" {
		baseURL = "http://localhost:8000"
	}
	baseURL = strings.TrimRight(baseURL, "/")

	if _, err := url.Parse(baseURL); err != nil {
		return nil, fmt.Errorf("invalid backend URL: %w", err)
	}

	return &Client{
		baseURL: baseURL,
		// No timeout on the shared client: the stream endpoint stays open
		// for the whole turn. The simple calls bound themselves per request.
		httpClient: &http.Client{},
	}, nil
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// DecodeFailures returns how many stream lines were dropped as undecodable.
func (c *Client) DecodeFailures() int64 {
	return c.decodeFailures.Load()
}

// Health checks GET /api/health.
func (c *Client) Health(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var out struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/api/health", nil, &out); err != nil {
		return err
	}
	if out.Status != "healthy" {
		return fmt.Errorf("backend unhealthy: %q", out.Status)
	}
	return nil
}

// GetConfig fetches the available providers, default models, tool versions
// and per-model capability tables.
func (c *Client) GetConfig(ctx context.Context) (*ConfigResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out := &ConfigResponse{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/config", nil, out); err != nil {
		return nil, fmt.Errorf("failed to fetch backend config: %w", err)
	}
	return out, nil
}

// GetAPIKeyStatus reports whether the backend already has an API key from its
// environment, with a masked rendering for display.
func (c *Client) GetAPIKeyStatus(ctx context.Context) (*APIKeyStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	out := &APIKeyStatus{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/api-key", nil, out); err != nil {
		return nil, fmt.Errorf("failed to fetch API key status: %w", err)
	}
	return out, nil
}

// ValidateAuth asks the backend to validate the provider credentials.
func (c *Client) ValidateAuth(ctx context.Context, provider, apiKey string) (*AuthValidateResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	req := AuthValidateRequest{Provider: provider, APIKey: apiKey}
	out := &AuthValidateResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/validate", req, out); err != nil {
		return nil, fmt.Errorf("auth validation failed: %w", err)
	}
	return out, nil
}

// ResetEnvironment asks the backend to restart the desktop environment.
func (c *Client) ResetEnvironment(ctx context.Context) (*ResetResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	out := &ResetResponse{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/reset", nil, out); err != nil {
		return nil, fmt.Errorf("environment reset failed: %w", err)
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
