package splunk

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"
)

// Connection defaults for the Splunk management port.
const (
	DefaultPort   = 8089
	DefaultScheme = "https"
)

// Job polling defaults.
const (
	DefaultPollInitialInterval = 250 * time.Millisecond
	DefaultPollMaxInterval     = 2 * time.Second
)

// Client is a Splunk REST API client bound to one management endpoint.
// A Client is safe for concurrent use once Login has returned.
type Client struct {
	baseURL    string
	httpClient *http.Client

	insecureSkipVerify bool
	timeout            time.Duration

	pollInitial time.Duration
	pollMax     time.Duration
	jobTimeout  time.Duration

	mu         sync.RWMutex
	sessionKey string
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. It takes precedence over
// WithInsecureSkipVerify and WithTimeout.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithInsecureSkipVerify disables TLS certificate verification. Splunk ships
// with a self-signed certificate on the management port.
func WithInsecureSkipVerify(skip bool) Option {
	return func(c *Client) {
		c.insecureSkipVerify = skip
	}
}

// WithTimeout sets a per-request timeout. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithPollInterval sets the initial and maximum delay between job status polls.
func WithPollInterval(initial, maxInterval time.Duration) Option {
	return func(c *Client) {
		if initial > 0 {
			c.pollInitial = initial
		}
		if maxInterval > 0 {
			c.pollMax = maxInterval
		}
	}
}

// WithJobTimeout bounds how long WaitForJob keeps polling. Zero means
// polling continues until the context is done.
func WithJobTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.jobTimeout = d
	}
}

// BaseURL builds the management endpoint URL from its parts.
func BaseURL(scheme, host string, port int) string {
	if scheme == "" {
		scheme = DefaultScheme
	}
	if port == 0 {
		port = DefaultPort
	}
	return scheme + "://" + net.JoinHostPort(host, strconv.Itoa(port))
}

// New creates a new Splunk client for the given management base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		pollInitial: DefaultPollInitialInterval,
		pollMax:     DefaultPollMaxInterval,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		c.httpClient = c.defaultHTTPClient()
	}
	return c
}

func (c *Client) defaultHTTPClient() *http.Client {
	if !c.insecureSkipVerify && c.timeout == 0 {
		return http.DefaultClient
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if c.insecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in for self-signed management certs
	}
	return &http.Client{Transport: transport, Timeout: c.timeout}
}

// Authenticated reports whether the client holds a session key.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessionKey != ""
}

func (c *Client) setSessionKey(key string) {
	c.mu.Lock()
	c.sessionKey = key
	c.mu.Unlock()
}

func (c *Client) authHeader() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.sessionKey == "" {
		return ""
	}
	return "Splunk " + c.sessionKey
}

// get performs a GET request and decodes the JSON response.
func (c *Client) get(ctx context.Context, path string, query url.Values, result any) error {
	body, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return err
	}
	return decode(body, result)
}

// post performs a form-encoded POST request and decodes the JSON response.
func (c *Client) post(ctx context.Context, path string, form url.Values, result any) error {
	body, err := c.do(ctx, http.MethodPost, path, nil, form)
	if err != nil {
		return err
	}
	return decode(body, result)
}

func decode(body []byte, result any) error {
	if result == nil {
		return nil
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// do executes a request and returns the raw response body. output_mode
// defaults to json unless the caller set it.
func (c *Client) do(ctx context.Context, method, path string, query, form url.Values) ([]byte, error) {
	start := time.Now()

	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return nil, fmt.Errorf("parsing URL: %w", err)
	}
	if query == nil {
		query = make(url.Values)
	}
	if query.Get("output_mode") == "" {
		query.Set("output_mode", OutputJSON)
	}
	u.RawQuery = query.Encode()

	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if auth := c.authHeader(); auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("splunk request failed",
			slog.String("method", method),
			slog.String("path", path),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		slog.Debug("splunk request returned error",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return nil, parseError(resp.StatusCode, body)
	}

	slog.Debug("splunk request completed",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return body, nil
}
