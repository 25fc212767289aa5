package exmo

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/evgenii/bitbar-trademan/internal/auth"
)

// API endpoint paths, relative to the configured base URL.
const (
	pathTicker      = "/v1/ticker"
	pathUserInfo    = "/v1/user_info"
	pathOrderCreate = "/v1/order_create"
)

// Client provides access to the EXMO REST API. Credentials may be nil for
// public-only use (the ticker feed); signed endpoints then fail with
// ErrCredentialsRequired.
type Client struct {
	baseURL    string
	creds      *auth.Credentials
	httpClient *http.Client
	logger     *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// NewClient creates a new REST API client.
func NewClient(baseURL string, creds *auth.Credentials, opts ...ClientOption) *Client {
	c := &Client{
		baseURL: baseURL,
		creds:   creds,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}
