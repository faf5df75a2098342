// Package naver provides a client for the Naver movie search API.
package naver

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/moviesearch/internal/ratelimit"
)

const (
	// DefaultBaseURL is the movie search endpoint.
	DefaultBaseURL = "https://openapi.naver.com/v1/search/movie.json"

	defaultMaxAttempts   = 2
	defaultRatePerSecond = 10
	defaultTimeout       = 10 * time.Second
	defaultUserAgent     = "moviesearch/0.1"

	headerClientID     = "X-Naver-Client-Id"
	headerClientSecret = "X-Naver-Client-Secret"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Credentials are the application keys sent with every request.
type Credentials struct {
	ClientID     string
	ClientSecret string
}

// Client is a Naver movie search API client.
type Client struct {
	credentials   Credentials
	baseURL       string
	userAgent     string
	httpClient    HTTPDoer
	timeout       time.Duration
	rateLimiter   *ratelimit.Limiter
	cooldown      time.Duration
	logger        *slog.Logger
	retryAttempts int
}

// NewClient creates a new search client.
func NewClient(credentials Credentials, opts ...Option) *Client {
	client := &Client{
		credentials:   credentials,
		baseURL:       DefaultBaseURL,
		userAgent:     defaultUserAgent,
		timeout:       defaultTimeout,
		rateLimiter:   ratelimit.New("Naver", defaultRatePerSecond),
		retryAttempts: defaultMaxAttempts,
	}

	for _, opt := range opts {
		opt(client)
	}

	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: client.timeout}
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client. It has no
// effect when WithHTTPClient supplies the client.
func WithTimeout(d time.Duration) Option {
	return func(client *Client) {
		if d > 0 {
			client.timeout = d
		}
	}
}

// WithBaseURL sets a custom endpoint, e.g. an httptest server.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRetryAttempts sets the number of attempts for transport failures.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithRateLimitCooldown makes the client refuse requests for d after the
// API reports rate limiting. Zero disables the cooldown.
func WithRateLimitCooldown(d time.Duration) Option {
	return func(client *Client) {
		if d >= 0 {
			client.cooldown = d
		}
	}
}

// WithLogger routes the client's notices to logger instead of slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(client *Client) {
		client.logger = logger
	}
}

func (c *Client) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
