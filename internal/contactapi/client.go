// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package contactapi is the HTTP client for the remote contact submissions API.
package contactapi

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

	"github.com/olegiv/contactdesk/internal/model"
)

// Client configuration constants
const (
	DefaultUserAgent = "contactdesk/dev" // User-Agent header value when none is configured
	MaxDrainLen      = 64 * 1024         // Maximum error response body drained before closing
)

// Client talks to the contact submissions API rooted at a base URL.
// It does not retry and applies no timeout of its own: callers bound each
// call with their context.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	userAgent  string
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client for the API at baseURL (for example "https://host/api").
func New(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base URL must be http or https, got %q", baseURL)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("base URL has no host: %q", baseURL)
	}

	c := &Client{
		baseURL:    u,
		httpClient: http.DefaultClient,
		userAgent:  DefaultUserAgent,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the API root the client was built with.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// ListAll fetches every contact in server order (GET {base}/all).
func (c *Client) ListAll(ctx context.Context) ([]model.Contact, error) {
	const op = "list"
	endpoint := c.endpoint("all")

	resp, err := c.do(ctx, op, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	var contacts []model.Contact
	if err := json.NewDecoder(resp.Body).Decode(&contacts); err != nil {
		return nil, &NetworkError{
			Op:         op,
			Method:     http.MethodGet,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("decoding response: %w", err),
		}
	}
	if contacts == nil {
		contacts = []model.Contact{}
	}
	return contacts, nil
}

// Remove deletes the contact with the given id (DELETE {base}/{id}).
func (c *Client) Remove(ctx context.Context, id string) error {
	resp, err := c.do(ctx, "remove", http.MethodDelete, c.endpoint(id), nil)
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// Update replaces the stored contact with contact (PUT {base}/{id}).
// The full record is sent, including its server-assigned ID and CreatedAt.
func (c *Client) Update(ctx context.Context, contact model.Contact) error {
	const op = "update"
	endpoint := c.endpoint(contact.ID)

	body, err := json.Marshal(contact)
	if err != nil {
		return &NetworkError{Op: op, Method: http.MethodPut, URL: endpoint, Err: fmt.Errorf("encoding body: %w", err)}
	}

	resp, err := c.do(ctx, op, http.MethodPut, endpoint, body)
	if err != nil {
		return err
	}
	drainAndClose(resp.Body)
	return nil
}

// endpoint joins the base URL with a single escaped path segment.
func (c *Client) endpoint(segment string) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(c.baseURL.Path, "/") + "/" + segment
	u.RawPath = strings.TrimRight(c.baseURL.EscapedPath(), "/") + "/" + url.PathEscape(segment)
	return u.String()
}

// do sends a request and returns the response for 2xx statuses.
// Any other outcome is reported as a *NetworkError with the body already closed.
func (c *Client) do(ctx context.Context, op, method, endpoint string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &NetworkError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.DebugContext(ctx, "contact api request failed",
			"op", op, "method", method, "url", endpoint, "error", err)
		return nil, &NetworkError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("request failed: %w", err)}
	}
	if resp == nil {
		return nil, &NetworkError{Op: op, Method: method, URL: endpoint, Err: fmt.Errorf("nil response from server")}
	}

	c.logger.DebugContext(ctx, "contact api request",
		"op", op,
		"method", method,
		"url", endpoint,
		"status", resp.StatusCode,
		"latency", time.Since(start).String())

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		drainAndClose(resp.Body)
		return nil, &NetworkError{Op: op, Method: method, URL: endpoint, StatusCode: resp.StatusCode}
	}
	return resp, nil
}

// drainAndClose discards a bounded amount of body so the connection can be reused.
func drainAndClose(body io.ReadCloser) {
	_, _ = io.Copy(io.Discard, io.LimitReader(body, MaxDrainLen))
	_ = body.Close()
}
