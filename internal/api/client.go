// Package api provides the HTTP client for the Verse backend. It is the
// single point of outbound REST calls: it attaches bearer-token auth to
// every request, decodes the response envelope, and fires a global
// unauthorized hook whenever any response comes back 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout is the fixed request timeout. There are no retries; a
// timed-out request surfaces as a RequestError to the caller.
const DefaultTimeout = 15 * time.Second

// APIPrefix is prepended to every request path.
const APIPrefix = "/api/v1"

// TokenSource yields the current session token. An empty string means
// the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

// Options configures the client.
type Options struct {
	Timeout time.Duration
	// Tokens supplies the bearer token attached to each request.
	Tokens TokenSource
	// OnUnauthorized runs whenever any response is a 401, before the
	// error is returned to the caller. It is global: a 401 anywhere
	// means the session is invalid.
	OnUnauthorized func()
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() *Options {
	return &Options{Timeout: DefaultTimeout}
}

// Client performs envelope-decoded calls against the backend.
type Client struct {
	baseURL        string
	http           *http.Client
	tokens         TokenSource
	onUnauthorized func()
}

// New creates a client for the given base URL.
func New(baseURL string, opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		http:           &http.Client{Timeout: opts.Timeout},
		tokens:         opts.Tokens,
		onUnauthorized: opts.OnUnauthorized,
	}
}

// File is an attachment for multipart requests.
type File struct {
	Field   string
	Name    string
	Content io.Reader
}

// Get performs a GET and unmarshals the envelope payload into out.
// A nil out discards the payload.
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	target := c.baseURL + APIPrefix + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return &RequestError{Path: path, Message: "failed to create request", Cause: err}
	}
	return c.do(req, path, out)
}

// Post marshals body as JSON, performs a POST, and unmarshals the
// envelope payload into out. A nil body sends an empty JSON object.
func (c *Client) Post(ctx context.Context, path string, body any, out any) error {
	if body == nil {
		body = struct{}{}
	}
	encoded, err := json.Marshal(body)
	if err != nil {
		return &RequestError{Path: path, Message: "failed to encode request body", Cause: err}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+APIPrefix+path, bytes.NewReader(encoded))
	if err != nil {
		return &RequestError{Path: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

// PostMultipart performs a POST with a multipart form body, used for
// endpoints that accept file uploads alongside plain fields.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []File, out any) error {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return &RequestError{Path: path, Message: "failed to write form field", Cause: err}
		}
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.Field, f.Name)
		if err != nil {
			return &RequestError{Path: path, Message: "failed to create form file", Cause: err}
		}
		if _, err := io.Copy(part, f.Content); err != nil {
			return &RequestError{Path: path, Message: "failed to copy file content", Cause: err}
		}
	}
	if err := writer.Close(); err != nil {
		return &RequestError{Path: path, Message: "failed to finalize form", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+APIPrefix+path, &buf)
	if err != nil {
		return &RequestError{Path: path, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Path: path, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &RequestError{Path: path, Message: "failed to read response body", Cause: err}
	}

	if resp.StatusCode == http.StatusUnauthorized {
		if c.onUnauthorized != nil {
			c.onUnauthorized()
		}
		return &ServerError{Path: path, StatusCode: resp.StatusCode, Message: envelopeMessage(body, "unauthorized")}
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return &ServerError{Path: path, StatusCode: resp.StatusCode}
		}
		return &RequestError{Path: path, Message: "failed to decode response envelope", Cause: err}
	}

	if env.Status == StatusError || resp.StatusCode >= 400 {
		code := env.StatusCode
		if code == 0 {
			code = resp.StatusCode
		}
		return &ServerError{Path: path, StatusCode: code, Message: env.Message}
	}

	if out != nil && len(env.Payload) > 0 {
		if err := json.Unmarshal(env.Payload, out); err != nil {
			return &RequestError{Path: path, Message: "failed to decode payload", Cause: err}
		}
	}
	return nil
}

// envelopeMessage pulls the message out of an error body, falling back
// when the body is not an envelope.
func envelopeMessage(body []byte, fallback string) string {
	var env Envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Message != "" {
		return env.Message
	}
	return fallback
}

// Message extracts a human-readable message from any client error, for
// stores that record failures as display strings.
func Message(err error) string {
	if err == nil {
		return ""
	}
	switch e := err.(type) {
	case *ServerError:
		if e.Message != "" {
			return e.Message
		}
		return fmt.Sprintf("request failed with status %d", e.StatusCode)
	case *RequestError:
		return "network error, please try again"
	default:
		return err.Error()
	}
}
