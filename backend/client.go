package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Client is the single path every request to the restaurant backend takes.
// Its one augmentation over a plain HTTP call is the Authorization header:
// when a bearer credential is present it is attached to the outgoing request.
// No retries, no backoff, no client-side timeout beyond what the caller's
// context carries.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    http.DefaultClient,
	}
}

// Error carries the upstream status code and body of a non-2xx response.
// Callers decide whether 401/403 means force-logout or a plain error banner.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("backend: %d: %s", e.Status, e.Body)
}

// AuthFailure reports whether the backend rejected the credential.
func (e *Error) AuthFailure() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// IsAuthFailure reports whether err is an upstream 401/403. A transport
// failure (no response at all) is never an auth failure.
func IsAuthFailure(err error) bool {
	be, ok := err.(*Error)
	return ok && be.AuthFailure()
}

// IsStatus reports whether err is an upstream response with the given code.
func IsStatus(err error, status int) bool {
	be, ok := err.(*Error)
	return ok && be.Status == status
}

// Do issues one request. body may be nil; out, when non-nil, receives the
// decoded JSON response. contentType is only applied when body is non-nil.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType, token string, out any) error {
	u := c.BaseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// GetJSON fetches path and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, token string, out any) error {
	return c.Do(ctx, http.MethodGet, path, query, nil, "", token, out)
}

// PostJSON sends v (or nothing when nil) as a JSON body.
func (c *Client) PostJSON(ctx context.Context, path string, query url.Values, v any, token string, out any) error {
	var body io.Reader
	if v != nil {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = strings.NewReader(string(data))
	}
	return c.Do(ctx, http.MethodPost, path, query, body, "application/json", token, out)
}

// PutJSON sends v as a JSON body via PUT. The admin status endpoint expects a
// raw JSON string literal, which a plain string v produces.
func (c *Client) PutJSON(ctx context.Context, path string, v any, token string, out any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	return c.Do(ctx, http.MethodPut, path, nil, strings.NewReader(string(data)), "application/json", token, out)
}

// Delete issues a DELETE with optional query parameters.
func (c *Client) Delete(ctx context.Context, path string, query url.Values, token string) error {
	return c.Do(ctx, http.MethodDelete, path, query, nil, "", token, nil)
}
