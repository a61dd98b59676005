package coingecko

import (
	"net/http"
	"net/url"
	"time"

	"golang.org/x/sync/singleflight"

	"coindash/internal/cache"
)

const (
	// DefaultBaseURL is the public CoinGecko API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// TTL classes. Short covers price/ticker/chart data, long covers
	// lists, metadata and other slow-moving reference data.
	DefaultShortTTL = 90 * time.Second
	DefaultLongTTL  = 300 * time.Second

	defaultMaxRetries = 3
	defaultBaseDelay  = 1 * time.Second
	maxBackoff        = 30 * time.Second
)

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=coingecko_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the CoinGecko API. One method per upstream endpoint;
// every method consults the cache first and returns a result Envelope
// instead of a bare error.
type Client struct {
	// baseURL is the base URL for the API.
	baseURL string
	// httpClient performs the actual requests.
	httpClient HTTPClient
	// header contains additional headers sent with each request.
	header http.Header
	// query contains additional query parameters sent with each request.
	query url.Values

	store *cache.Store

	maxRetries int
	baseDelay  time.Duration
	shortTTL   time.Duration
	longTTL    time.Duration

	// flight coalesces concurrent fetches per cache key when enabled.
	// Nil by default: two concurrent misses on the same cold key both
	// go upstream, last write wins.
	flight *singleflight.Group
}

// Option is a configuration option for the Client.
type Option func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) Option {
	return func(c *Client) {
		for key, values := range header {
			for _, value := range values {
				c.header.Add(key, value)
			}
		}
	}
}

// WithRetryPolicy overrides the retry budget and the base backoff delay.
func WithRetryPolicy(maxRetries int, baseDelay time.Duration) Option {
	return func(c *Client) {
		if maxRetries >= 0 {
			c.maxRetries = maxRetries
		}
		if baseDelay > 0 {
			c.baseDelay = baseDelay
		}
	}
}

// WithTTLs overrides the short and long cache TTL classes.
func WithTTLs(short, long time.Duration) Option {
	return func(c *Client) {
		if short > 0 {
			c.shortTTL = short
		}
		if long > 0 {
			c.longTTL = long
		}
	}
}

// WithRequestCoalescing enables at-most-one-concurrent-fetch-per-key.
// The in-flight registry is keyed identically to the cache.
func WithRequestCoalescing() Option {
	return func(c *Client) {
		c.flight = new(singleflight.Group)
	}
}

// NewClient creates a new CoinGecko API client backed by store.
// An API key, if given, travels as a query parameter on every request.
func NewClient(store *cache.Store, key string, options ...Option) *Client {
	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: http.DefaultClient,
		header:     http.Header{},
		query:      url.Values{},
		store:      store,
		maxRetries: defaultMaxRetries,
		baseDelay:  defaultBaseDelay,
		shortTTL:   DefaultShortTTL,
		longTTL:    DefaultLongTTL,
	}
	if key != "" {
		// https://docs.coingecko.com/reference/authentication
		c.query.Add("x_cg_demo_api_key", key)
	}
	if store == nil {
		c.store = cache.New()
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// ClearCache drops cached payloads whose key contains pattern; an empty
// pattern drops everything.
func (c *Client) ClearCache(pattern string) {
	c.store.Clear(pattern)
}
