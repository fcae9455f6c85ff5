// Package client talks to the CRM query/mutation endpoint over HTTP.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

var (
	// ErrTransport wraps failures to reach the endpoint at all.
	ErrTransport = errors.New("transport error")
	// ErrResponse wraps non-200 statuses, undecodable bodies and reported errors.
	ErrResponse = errors.New("response error")
)

const apiKeyHeader = "X-API-Key"

// Category names the kind of failure for log lines.
func Category(err error) string {
	switch {
	case errors.Is(err, ErrTransport):
		return "network"
	case errors.Is(err, ErrResponse):
		return "response"
	default:
		return "unknown"
	}
}

type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

type Option func(*Client)

// WithAPIKey sends key on every request.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.apiKey = key }
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// New returns a client for endpoint. timeout bounds each request.
func New(endpoint string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type request struct {
	Operation string `json:"operation"`
	Variables any    `json:"variables,omitempty"`
}

type response struct {
	Data   map[string]json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// Do runs operation and decodes its result into out, which may be nil.
func (c *Client) Do(ctx context.Context, operation string, variables any, out any) error {
	body, err := json.Marshal(request{Operation: operation, Variables: variables})
	if err != nil {
		return fmt.Errorf("encode %s request: %w", operation, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set(apiKeyHeader, c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: %s returned status %d", ErrResponse, operation, resp.StatusCode)
	}

	var decoded response
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrResponse, operation, err)
	}
	if len(decoded.Errors) > 0 {
		return fmt.Errorf("%w: %s", ErrResponse, decoded.Errors[0].Message)
	}

	result, ok := decoded.Data[operation]
	if !ok {
		return fmt.Errorf("%w: %s missing from data", ErrResponse, operation)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(result, out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrResponse, operation, err)
	}
	return nil
}
