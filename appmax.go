// Package appmax is a client library for the Appmax payment-gateway REST
// API (v3). It covers customer, order, and payment creation plus tracking,
// refunds, installment lookup, and card tokenization.
//
// Every operation validates its input locally before any request is made,
// transforms it into the API wire format, and returns either a typed result
// or an *APIError. Calls are synchronous, one request each, with no retries;
// a Client is safe for concurrent use.
package appmax

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/appmaxhq/appmax-go/internal/logging"
)

// apiVersion is the API version segment appended to the base URL.
const apiVersion = "v3"

// Base URLs per environment, resolved once at construction time.
const (
	productionBaseURL = "https://admin.appmax.com.br/api"
	sandboxBaseURL    = "https://homolog.sandboxappmax.com.br/api"
)

// Client is the entry point to the SDK. Construct it with New; the zero
// value is not usable. Configuration is immutable after construction.
type Client struct {
	// Customers creates customer resources.
	Customers *CustomersManager

	// Orders creates orders and manages tracking codes and refunds.
	Orders *OrdersManager

	// Payments creates payments, looks up installments, and tokenizes cards.
	Payments *PaymentsManager

	gw *gateway
}

// options collects construction-time settings.
type options struct {
	sandbox    bool
	timeout    time.Duration
	httpClient *http.Client
	logger     *slog.Logger
}

// Option configures a Client at construction time.
type Option func(*options)

// WithSandbox points the client at the sandbox environment instead of
// production.
func WithSandbox() Option {
	return func(o *options) {
		o.sandbox = true
	}
}

// WithTimeout overrides the default 30s total request timeout. Ignored when
// a custom HTTP client is supplied.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		o.timeout = timeout
	}
}

// WithHTTPClient supplies a custom HTTP client. The caller then owns the
// transport settings, including timeout and redirect policy.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// WithLogger supplies a structured logger. Without it the SDK logs at warn
// level only. Loggers built outside internal defaults should redact
// credentials themselves; the payload maps handed to slog contain card data
// on tokenize calls.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// New creates a Client for the given API key.
//
//	client, err := appmax.New(apiKey, appmax.WithSandbox())
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, newErrorf(ErrCodeMissingField, "Field 'apiKey' is required")
	}

	o := options{timeout: defaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	if o.logger == nil {
		o.logger = logging.New(logging.Config{
			Level:   "warn",
			Format:  "json",
			Service: "appmax-go",
		})
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = newHTTPClient(o.timeout)
	}

	baseURL := productionBaseURL
	if o.sandbox {
		baseURL = sandboxBaseURL
	}

	gw, err := newGateway(baseURL+"/"+apiVersion+"/", apiKey, httpClient, o.logger)
	if err != nil {
		return nil, err
	}

	return &Client{
		Customers: &CustomersManager{gw: gw},
		Orders:    &OrdersManager{gw: gw},
		Payments:  &PaymentsManager{gw: gw},
		gw:        gw,
	}, nil
}

// BaseURL returns the resolved API base URL, including the version segment.
func (c *Client) BaseURL() string {
	return c.gw.baseURL
}
