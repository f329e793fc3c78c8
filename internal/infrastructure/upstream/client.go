// Package upstream talks to the temple backend REST API.
package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sangkips/temple-api/pkg/apperror"
	"go.uber.org/zap"
)

// ErrNotFound is returned when the backend answers 404
var ErrNotFound = errors.New("upstream: not found")

// maxErrorBody caps how much of an error response is read
const maxErrorBody = 64 << 10

// envelope is the backend's standard response wrapper
type envelope struct {
	Success *bool           `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Errors  json.RawMessage `json:"errors,omitempty"`
}

// Client is a backend API client. The caller's Authorization header is
// taken from the request context.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

// Config configures a Client
type Config struct {
	BaseURL string
	Timeout time.Duration
	// HTTPClient overrides the default client. Used by tests.
	HTTPClient *http.Client
}

// NewClient creates a backend client
func NewClient(cfg Config, logger *zap.Logger) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 15 * time.Second
		}
		hc = &http.Client{Timeout: timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    hc,
		logger:  logger.Named("upstream"),
	}
}

// URL builds an absolute backend URL for path and query
func (c *Client) URL(path string, query url.Values) string {
	u := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// ResolveURL resolves a backend-relative reference such as
// "/uploads/logo.png" against the backend origin. Absolute and data URLs are
// returned unchanged.
func (c *Client) ResolveURL(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	target, err := url.Parse(ref)
	if err != nil || target.IsAbs() {
		return ref
	}
	base, err := url.Parse(c.baseURL + "/")
	if err != nil || !base.IsAbs() {
		return ref
	}
	return base.ResolveReference(target).String()
}

// Get decodes the data field of GET path into out
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the data field into out
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the data field into out
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.Do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues DELETE path
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.Do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Do performs one request. Transport failures and 5xx answers map to
// apperror.ErrUpstreamUnavailable; 404 maps to ErrNotFound; other 4xx
// answers keep the backend's status and message. No retries.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("upstream: encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.URL(path, query), reader)
	if err != nil {
		return fmt.Errorf("upstream: build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth, ok := Authorization(ctx); ok {
		req.Header.Set("Authorization", auth)
	}
	if rid, ok := RequestID(ctx); ok {
		req.Header.Set("X-Request-ID", rid)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("backend request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", apperror.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug("backend request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s %s answered %d", apperror.ErrUpstreamUnavailable, method, path, resp.StatusCode)
	case resp.StatusCode >= 400:
		return c.clientError(resp)
	}

	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		if errors.Is(err, io.EOF) && out == nil {
			return nil
		}
		return fmt.Errorf("%w: decode %s %s: %v", apperror.ErrUpstreamUnavailable, method, path, err)
	}
	if env.Success != nil && !*env.Success {
		msg := env.Message
		if msg == "" {
			msg = "Temple backend rejected the request"
		}
		return apperror.NewAppError(http.StatusBadGateway, msg)
	}
	if out == nil || len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("%w: decode %s %s data: %v", apperror.ErrUpstreamUnavailable, method, path, err)
	}
	return nil
}

func (c *Client) clientError(resp *http.Response) error {
	var env struct {
		Message string                `json:"message"`
		Errors  []apperror.FieldError `json:"errors"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	_ = json.Unmarshal(raw, &env)

	msg := env.Message
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &apperror.AppError{
		Code:    resp.StatusCode,
		Message: msg,
		Errors:  env.Errors,
	}
}

// decodeList accepts either a bare array or an object wrapping it under
// "items" or "data".
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return []T{}, nil
	}
	if raw[0] == '[' {
		var items []T
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var wrapped struct {
		Items []T `json:"items"`
		Data  []T `json:"data"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, err
	}
	if wrapped.Items != nil {
		return wrapped.Items, nil
	}
	if wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return []T{}, nil
}
