// Package httpclient implements the HTTP client port used by the remote
// repository adapters. It hides the transport library behind a small
// request/response contract so repositories never touch net/http directly.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

const defaultTimeout = 30 * time.Second

// Request describes a single call through the port.
type Request struct {
	Method  string
	Path    string            // Joined onto the client's base URL.
	Headers map[string]string // Per-call headers, merged over the client defaults.
	Query   url.Values
	Body    any // Serialized as JSON when non-nil.
}

// Response carries the outcome of a successful call.
type Response struct {
	Status int
	Header http.Header
	Data   []byte
}

// DecodeJSON unmarshals the response body into v.
func (r *Response) DecodeJSON(v any) error {
	if err := json.Unmarshal(r.Data, v); err != nil {
		return errors.Wrap(err, "failed to decode response body")
	}

	return nil
}

// Client is the HTTP client port: one generic entry point plus the usual
// convenience verbs. Implementations carry no retry, pooling or caching
// policy of their own; callers wanting those wrap the port externally.
type Client interface {
	Do(ctx context.Context, req *Request) (*Response, error)

	Get(ctx context.Context, path string, query url.Values) (*Response, error)
	Post(ctx context.Context, path string, body any) (*Response, error)
	Put(ctx context.Context, path string, body any) (*Response, error)
	Patch(ctx context.Context, path string, body any) (*Response, error)
	Delete(ctx context.Context, path string) (*Response, error)
}

// TransportError reports a response whose status indicates failure.
type TransportError struct {
	Status int
	Body   string
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("unexpected response status %d %s", e.Status, http.StatusText(e.Status))
}

// IsNotFound reports whether err is a TransportError with status 404.
func IsNotFound(err error) bool {
	status, ok := StatusOf(err)

	return ok && status == http.StatusNotFound
}

// StatusOf extracts the status code from a TransportError in err's tree.
func StatusOf(err error) (int, bool) {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return transportErr.Status, true
	}

	return 0, false
}

// Option customizes a client at construction time.
type Option func(*client)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *client) {
		c.httpClient = httpClient
	}
}

// WithDefaultHeader adds an instance-default header, e.g. an
// Authorization bearer token attached by an external collaborator.
func WithDefaultHeader(key, value string) Option {
	return func(c *client) {
		c.defaultHeaders[key] = value
	}
}

// client is the net/http-backed implementation of the port.
type client struct {
	baseURL        string
	defaultHeaders map[string]string
	httpClient     *http.Client
}

// New creates a client rooted at baseURL.
func New(baseURL string, opts ...Option) Client {
	c := &client{
		baseURL:        strings.TrimRight(baseURL, "/"),
		defaultHeaders: make(map[string]string),
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Do executes the request and returns the response, or a TransportError
// when the response status is outside the 2xx range.
func (c *client) Do(ctx context.Context, req *Request) (*Response, error) {
	target := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "failed to encode request body")
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	// Instance defaults first, then per-call headers on top.
	for key, value := range c.defaultHeaders {
		httpReq.Header.Set(key, value)
	}
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.Body != nil && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read response body")
	}

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, errors.WithStack(&TransportError{
			Status: httpResp.StatusCode,
			Body:   string(data),
		})
	}

	return &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Data:   data,
	}, nil
}

func (c *client) Get(ctx context.Context, path string, query url.Values) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodGet, Path: path, Query: query})
}

func (c *client) Post(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPost, Path: path, Body: body})
}

func (c *client) Put(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPut, Path: path, Body: body})
}

func (c *client) Patch(ctx context.Context, path string, body any) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body})
}

func (c *client) Delete(ctx context.Context, path string) (*Response, error) {
	return c.Do(ctx, &Request{Method: http.MethodDelete, Path: path})
}
