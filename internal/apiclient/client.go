// Package apiclient is the HTTP adapter between the stores and the todolist
// backend. Request bodies are sent with snake_case keys and responses are
// handed back with camelCase keys.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/idilsaglam/todolist/internal/keycase"
	"github.com/idilsaglam/todolist/internal/logging"
)

// DefaultBaseURL is used when no API URL is configured.
const DefaultBaseURL = "http://localhost:8000"

// Client talks to the backend rooted at baseURL.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string // optional bearer token
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithToken sets the bearer token sent with every request.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a client. No timeout is set; the transport default applies.
func New(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the root every endpoint is appended to.
func (c *Client) BaseURL() string { return c.baseURL }

// Options shape a single request.
type Options struct {
	Method  string            // defaults to GET
	Headers map[string]string // extra headers; override the defaults
	JSON    any               // request payload; nil means no body
}

// Request performs one call against endpoint and returns the decoded body
// with camelCase keys. An empty response body yields (nil, nil).
func (c *Client) Request(ctx context.Context, endpoint string, opts Options) (any, error) {
	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	fail := func(kind Kind, err error) *Error {
		return &Error{Kind: kind, Method: method, Endpoint: endpoint, Err: err}
	}

	var body io.Reader
	if opts.JSON != nil {
		b, err := encodeBody(opts.JSON)
		if err != nil {
			return nil, fail(KindEncode, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fail(KindTransport, err)
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Debug("request failed", "method", method, "endpoint", endpoint, "request_id", reqID, "error", err)
		return nil, fail(KindTransport, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fail(KindTransport, err)
	}
	c.logger.Debug("request",
		"method", method,
		"endpoint", endpoint,
		"status", resp.StatusCode,
		"bytes", len(raw),
		"request_id", reqID,
	)

	text := strings.TrimSpace(string(raw))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		e := fail(KindStatus, nil)
		e.StatusCode = resp.StatusCode
		if text != "" {
			if v, err := decodeBody(text); err == nil {
				e.Detail = v
			} else {
				e.Detail = text
			}
		}
		return nil, e
	}

	if text == "" {
		return nil, nil
	}
	v, err := decodeBody(text)
	if err != nil {
		return nil, fail(KindDecode, err)
	}
	return v, nil
}

// Fetch is Request decoded into T. It returns (nil, nil) for an empty body.
func Fetch[T any](ctx context.Context, c *Client, endpoint string, opts Options) (*T, error) {
	v, err := c.Request(ctx, endpoint, opts)
	if err != nil || v == nil {
		return nil, err
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, &Error{Kind: KindDecode, Method: methodOr(opts.Method), Endpoint: endpoint, Err: err}
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, &Error{Kind: KindDecode, Method: methodOr(opts.Method), Endpoint: endpoint, Err: err}
	}
	return &out, nil
}

func methodOr(m string) string {
	if m == "" {
		return http.MethodGet
	}
	return m
}

// encodeBody serializes payload with snake_case keys.
func encodeBody(payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	tree, err := decodeTree(b)
	if err != nil {
		return nil, err
	}
	return json.Marshal(keycase.ToSnake(tree, keycase.DefaultDepth))
}

// decodeBody parses a response body and camelCases its keys.
func decodeBody(text string) (any, error) {
	tree, err := decodeTree([]byte(text))
	if err != nil {
		return nil, err
	}
	return keycase.ToCamel(tree, keycase.DefaultDepth), nil
}

// decodeTree keeps numbers as json.Number so int64 identifiers survive.
func decodeTree(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
