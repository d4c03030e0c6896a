package w3c

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/time/rate"

	"w3cv/internal/trace"
	"w3cv/internal/version"
)

const (
	// DefaultHTMLEndpoint is the Nu HTML checker, asked for JSON output.
	DefaultHTMLEndpoint = "https://validator.w3.org/nu/?out=json"

	// DefaultCSSEndpoint is the Jigsaw CSS validator.
	DefaultCSSEndpoint = "http://jigsaw.w3.org/css-validator/validator"
)

// maxErrorBody bounds how much of a failed response ends up in StatusError.
const maxErrorBody = 512

// Client is a client for both validation services.
// The zero timeout means requests wait as long as the service takes.
type Client struct {
	htmlEndpoint string
	cssEndpoint  string
	cssProfile   string
	userAgent    string
	httpClient   *http.Client
	timeout      time.Duration
	limiter      *rate.Limiter
}

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTMLEndpoint overrides the HTML checker URL.
func WithHTMLEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.htmlEndpoint = endpoint
		}
	}
}

// WithCSSEndpoint overrides the CSS validator URL.
func WithCSSEndpoint(endpoint string) ClientOption {
	return func(c *Client) {
		if endpoint != "" {
			c.cssEndpoint = endpoint
		}
	}
}

// WithCSSProfile sends a "profile" field (css3, css3svg, ...) with CSS uploads.
func WithCSSProfile(profile string) ClientOption {
	return func(c *Client) {
		c.cssProfile = profile
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

// WithTimeout bounds every request; zero disables the bound.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRateLimit spaces requests to at most requestsPerSecond. Zero or a
// negative value removes the limit.
func WithRateLimit(requestsPerSecond float64) ClientOption {
	return func(c *Client) {
		if requestsPerSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
	}
}

// NewClient creates a client for the default endpoints.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		htmlEndpoint: DefaultHTMLEndpoint,
		cssEndpoint:  DefaultCSSEndpoint,
		userAgent:    version.UserAgent(),
		httpClient:   &http.Client{},
		limiter:      rate.NewLimiter(rate.Inf, 1),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		// копия, чтобы не менять переданный через WithHTTPClient клиент
		clone := *c.httpClient
		clone.Timeout = c.timeout
		c.httpClient = &clone
	}

	return c
}

// HTMLEndpoint returns the configured HTML checker URL.
func (c *Client) HTMLEndpoint() string { return c.htmlEndpoint }

// CSSEndpoint returns the configured CSS validator URL.
func (c *Client) CSSEndpoint() string { return c.cssEndpoint }

// post sends body to endpoint and decodes the JSON answer into result.
func (c *Client) post(ctx context.Context, name, endpoint, contentType string, body io.Reader, result any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("waiting for rate limiter: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeRequest, "POST "+name, trace.CurrentSpan(ctx))
	span.WithExtra("endpoint", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		span.Fail().End(err.Error())
		return &TransportError{Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	span.WithExtra("status", strconv.Itoa(resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		span.Fail().End(resp.Status)
		return &StatusError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Endpoint:   endpoint,
			Body:       string(snippet),
		}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		span.Fail().End(err.Error())
		return &TransportError{Endpoint: endpoint, Err: fmt.Errorf("reading response: %w", err)}
	}
	trace.Point(tracer, trace.ScopePayload, "response", strconv.Itoa(len(data))+" bytes", span.ID())

	if err := json.Unmarshal(data, result); err != nil {
		span.Fail().End(err.Error())
		return &DecodeError{Endpoint: endpoint, ContentType: resp.Header.Get("Content-Type"), Err: err}
	}

	span.End("")
	return nil
}
