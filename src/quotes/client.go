// Package quotes fetches last close prices from the EODHD API.
package quotes

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"finance-tracker-server/src/cache"
	"finance-tracker-server/src/logging"

	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://eodhd.com/api"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 5 // requests per second
	DefaultExchange  = "US"
)

// ErrNoPrice is returned when the API answers but carries no usable close.
var ErrNoPrice = errors.New("no price available")

type Client struct {
	baseURL    string
	apiKey     string
	exchange   string
	httpClient *http.Client
	logger     *logging.Logger
	limiter    *rate.Limiter
	cache      *cache.Cache
	cacheTTL   time.Duration
}

type ClientOption func(*Client)

func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

func WithLogger(logger *logging.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit caps outgoing calls at requestsPerSecond. Values below one
// keep the default.
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		if requestsPerSecond < 1 {
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithCache keeps each symbol's price in c for ttl.
func WithCache(c *cache.Cache, ttl time.Duration) ClientOption {
	return func(cl *Client) {
		cl.cache = c
		cl.cacheTTL = ttl
	}
}

// WithDefaultExchange sets the suffix appended to symbols that carry none,
// so "AAPL" is requested as "AAPL.US".
func WithDefaultExchange(exchange string) ClientOption {
	return func(c *Client) {
		c.exchange = strings.ToUpper(exchange)
	}
}

func NewClient(apiKey string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:  DefaultBaseURL,
		apiKey:   apiKey,
		exchange: DefaultExchange,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  logging.NewSilent(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type APIError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("EODHD API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

type realTimeResponse struct {
	Code          string          `json:"code"`
	Close         json.RawMessage `json:"close"`
	PreviousClose json.RawMessage `json:"previousClose"`
}

// ticker maps a user-entered symbol onto the EODHD code.
func (c *Client) ticker(symbol string) string {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" || c.exchange == "" || strings.Contains(symbol, ".") {
		return symbol
	}
	return symbol + "." + c.exchange
}

// LastClose returns the latest close for symbol.
func (c *Client) LastClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	code := c.ticker(symbol)
	if code == "" {
		return decimal.Zero, fmt.Errorf("symbol is required")
	}

	if c.cache != nil {
		if v, ok := c.cache.Get(cache.Quotes, code); ok {
			if price, ok := v.(decimal.Decimal); ok {
				c.logger.Debug().Str("symbol", code).Msg("Quote cache hit")
				return price, nil
			}
		}
	}

	var resp realTimeResponse
	if err := c.get(ctx, "/real-time/"+url.PathEscape(code), nil, &resp); err != nil {
		return decimal.Zero, err
	}

	price, ok := parsePrice(resp.Close)
	if !ok {
		price, ok = parsePrice(resp.PreviousClose)
	}
	if !ok {
		return decimal.Zero, fmt.Errorf("%s: %w", code, ErrNoPrice)
	}

	if c.cache != nil {
		c.cache.Set(cache.Quotes, code, price, c.cacheTTL)
	}
	return price, nil
}

// parsePrice accepts a number or a numeric string. EODHD sends "NA" for
// symbols that have not traded.
func parsePrice(raw json.RawMessage) (decimal.Decimal, bool) {
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero, false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Zero, false
	}
	return d, true
}

// get performs a rate-limited GET request
func (c *Client) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("api_token", c.apiKey)
	params.Set("fmt", "json")

	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	c.logger.Debug().Str("url", c.baseURL+path).Msg("EODHD API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    strings.TrimSpace(string(body)),
			Endpoint:   path,
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
