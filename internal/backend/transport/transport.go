// Package transport is the JSON-over-HTTP plumbing shared by the remote
// backends.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// DefaultTimeout bounds a whole request when the caller sets none.
const DefaultTimeout = 5 * time.Minute

const maxErrorBody = 512

// StatusError is returned for non-2xx responses.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("status %d", e.StatusCode)
	}
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Client posts JSON documents below a base URL.
type Client struct {
	base   *url.URL
	http   *http.Client
	header http.Header
}

// New parses baseURL and returns a client with the given timeout. A zero
// timeout selects DefaultTimeout.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, fmt.Errorf("endpoint is required")
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse endpoint: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("endpoint %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	return &Client{
		base:   u,
		http:   &http.Client{Timeout: timeout},
		header: h,
	}, nil
}

// SetBearer sends token as a bearer credential. An empty token is ignored.
func (c *Client) SetBearer(token string) {
	if token != "" {
		c.header.Set("Authorization", "Bearer "+token)
	}
}

// URL resolves path against the base URL. An empty path is the base itself.
func (c *Client) URL(path string) string {
	if path == "" {
		return c.base.String()
	}
	return c.base.JoinPath(path).String()
}

// PostJSON encodes in, posts it to path and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	data, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL(path), bytes.NewReader(data))
	if err != nil {
		return err
	}
	for k, v := range c.header {
		req.Header[k] = v
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w (body: %s)", err, truncate(string(body)))
	}
	return nil
}

// errorMessage extracts a readable message from the error payloads used by
// text-generation servers: {"error": "..."}, {"error": ["..."]} and
// {"error": {"message": "..."}}.
func errorMessage(body []byte) string {
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && len(payload.Error) > 0 {
		var s string
		if json.Unmarshal(payload.Error, &s) == nil && s != "" {
			return s
		}
		var list []string
		if json.Unmarshal(payload.Error, &list) == nil && len(list) > 0 {
			return strings.Join(list, "; ")
		}
		var obj struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(payload.Error, &obj) == nil && obj.Message != "" {
			return obj.Message
		}
	}
	return truncate(strings.TrimSpace(string(body)))
}

func truncate(s string) string {
	if len(s) <= maxErrorBody {
		return s
	}
	n := maxErrorBody
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "..."
}
