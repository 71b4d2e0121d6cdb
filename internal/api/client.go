// Package api provides the HTTP gateway client for the travel-planning API.
// It centralizes the base URL, bearer authentication, and error decoding;
// typed operations live in the auth and trips service packages.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	requestTimeout = 15 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
	userAgent      = "wayfarer/1.0"
)

var (
	// ErrUnauthorized indicates a missing, expired, or rejected session token.
	ErrUnauthorized = errors.New("api: unauthorized (log in again)")
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("api: not found")
)

// APIError is a non-2xx response, carrying the server's detail message
// when it supplied one.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (status %d)", e.Detail, e.Status)
	}
	return fmt.Sprintf("api: unexpected status %d", e.Status)
}

// Detail returns the server-provided detail string from err, or "" if err
// carries none.
func Detail(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Detail
	}
	return ""
}

// Client is the configured transport shared by all service wrappers.
// The token func is consulted per request so a login during the process
// lifetime takes effect immediately.
type Client struct {
	baseURL string
	token   func() string
	http    *http.Client
}

// NewClient creates a gateway client for the given base URL. token returns
// the current session token, or "" when anonymous; it may be nil.
func NewClient(baseURL string, token func() string) *Client {
	if token == nil {
		token = func() string { return "" }
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// Get performs GET and decodes the 2xx body into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post performs POST with a JSON body and decodes the 2xx body into out.
// out may be nil when the response body is irrelevant.
func (c *Client) Post(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPost, path, in, out)
}

// Put performs PUT with a JSON body and decodes the 2xx body into out.
func (c *Client) Put(ctx context.Context, path string, in, out any) error {
	return c.do(ctx, http.MethodPut, path, in, out)
}

// Delete performs DELETE, ignoring any response body.
func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("api: encoding request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("api: creating request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if tok := c.token(); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	slog.Debug("api call", "method", method, "path", path, "status", resp.StatusCode)

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return fmt.Errorf("api: reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{Status: resp.StatusCode, Detail: parseDetail(raw)}
	}

	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("api: parsing response: %w", err)
	}
	return nil
}

// parseDetail extracts the server's {"detail": "..."} message. Validation
// errors arrive as a detail array; those are flattened to their raw JSON so
// something readable still surfaces.
func parseDetail(raw []byte) string {
	var probe struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || len(probe.Detail) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(probe.Detail, &s); err == nil {
		return s
	}
	return string(probe.Detail)
}
