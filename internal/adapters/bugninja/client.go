package bugninja

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"bugninjaplatform/internal/domain"
	"bugninjaplatform/internal/metrics"
)

// DefaultTimeout bounds every backend call unless overridden with WithTimeout.
const DefaultTimeout = 10 * time.Second

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 16 << 20

// Result describes one completed backend call as seen by response interceptors.
type Result struct {
	Method  string
	Path    string
	Status  int
	Err     *domain.APIError
	Elapsed time.Duration
}

// RequestInterceptor may modify every outgoing request before it is sent.
type RequestInterceptor func(req *http.Request)

// ResponseInterceptor observes every completed call. It cannot change the outcome.
type ResponseInterceptor func(res Result)

// Client is a thin JSON client for the Bugninja REST backend.
// It never retries; errors come back as *domain.APIError.
type Client struct {
	baseURL  string
	timeout  time.Duration
	http     *http.Client
	logger   *slog.Logger
	requests []RequestInterceptor
	results  []ResponseInterceptor
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides DefaultTimeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger used by the built-in diagnostic interceptor.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithRequestInterceptor appends a request interceptor.
func WithRequestInterceptor(fn RequestInterceptor) Option {
	return func(c *Client) { c.requests = append(c.requests, fn) }
}

// WithResponseInterceptor appends a response interceptor.
func WithResponseInterceptor(fn ResponseInterceptor) Option {
	return func(c *Client) { c.results = append(c.results, fn) }
}

// WithMetrics records every call on m.
func WithMetrics(m *metrics.Metrics) Option {
	return WithResponseInterceptor(func(res Result) {
		m.RecordUpstream(res.Method, outcome(res), res.Elapsed.Seconds())
	})
}

// NewClient returns a client rooted at baseURL.
// The diagnostic interceptor that logs 401, 5xx and timeouts is always installed first.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		timeout: DefaultTimeout,
		http:    &http.Client{},
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	c.results = append(c.results, c.logDiagnostics)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get decodes the JSON response of GET path?query into out (which may be nil).
func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

// Post sends body as JSON and decodes the response into out.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

// Put sends body as JSON and decodes the response into out.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

// Delete issues DELETE path and decodes any response body into out.
func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, intercept := range c.requests {
		intercept(req)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		apiErr := transportError(ctx, err)
		c.observe(Result{Method: method, Path: path, Err: apiErr, Elapsed: time.Since(start)})
		return apiErr
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		apiErr := transportError(ctx, err)
		c.observe(Result{Method: method, Path: path, Status: resp.StatusCode, Err: apiErr, Elapsed: time.Since(start)})
		return apiErr
	}

	res := Result{Method: method, Path: path, Status: resp.StatusCode, Elapsed: time.Since(start)}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		res.Err = errorFromBody(resp.StatusCode, data)
		c.observe(res)
		return res.Err
	}
	c.observe(res)

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) observe(res Result) {
	for _, fn := range c.results {
		fn(res)
	}
}

func (c *Client) logDiagnostics(res Result) {
	switch {
	case res.Status == http.StatusUnauthorized:
		c.logger.Warn("bugninja api unauthorized", "method", res.Method, "path", res.Path)
	case res.Status >= 500:
		c.logger.Error("bugninja api server error", "method", res.Method, "path", res.Path,
			"status", res.Status, "detail", res.Err.Message)
	case res.Err != nil && res.Err.IsTimeout():
		c.logger.Error("bugninja api timeout", "method", res.Method, "path", res.Path,
			"elapsed_ms", res.Elapsed.Milliseconds())
	}
}

func transportError(ctx context.Context, err error) *domain.APIError {
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded), errors.As(err, &netErr) && netErr.Timeout():
		return &domain.APIError{Code: domain.CodeTimeout, Message: err.Error()}
	case errors.Is(err, context.Canceled) || errors.Is(ctx.Err(), context.Canceled):
		return &domain.APIError{Code: domain.CodeCanceled, Message: err.Error()}
	default:
		return &domain.APIError{Code: domain.CodeNetworkError, Message: err.Error()}
	}
}

// errorFromBody maps a non-2xx response to an APIError.
// The message is the body's "detail": a string, or the first "msg" of a validation list.
func errorFromBody(status int, body []byte) *domain.APIError {
	apiErr := &domain.APIError{Status: status, Message: http.StatusText(status)}
	var envelope struct {
		Detail json.RawMessage `json:"detail"`
		Code   string          `json:"code"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return apiErr
	}
	apiErr.Code = envelope.Code

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil && detail != "" {
		apiErr.Message = detail
		return apiErr
	}
	var issues []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(envelope.Detail, &issues); err == nil && len(issues) > 0 && issues[0].Msg != "" {
		apiErr.Message = issues[0].Msg
	}
	return apiErr
}

func outcome(res Result) string {
	if res.Status != 0 {
		return strconv.Itoa(res.Status)
	}
	if res.Err != nil && res.Err.Code != "" {
		return res.Err.Code
	}
	return "unknown"
}
