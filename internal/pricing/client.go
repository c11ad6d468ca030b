package pricing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"qrdxscope/internal/model"
)

// ErrNotFound means the pricing service has no quote for the token.
var ErrNotFound = errors.New("price not found")

// TokenPrice is a quote from the exchange pricing API.
type TokenPrice struct {
	Token       string  `json:"token"`
	PriceUSD    float64 `json:"price_usd"`
	PriceQRDX   float64 `json:"price_qrdx,omitempty"`
	Volume24h   float64 `json:"volume_24h,omitempty"`
	Change24h   float64 `json:"change_24h,omitempty"`
	MarketCap   float64 `json:"market_cap,omitempty"`
	LastUpdated int64   `json:"last_updated"`
}

// HistoricalPricePoint is one point of a price history series.
type HistoricalPricePoint struct {
	Timestamp int64   `json:"timestamp"`
	PriceUSD  float64 `json:"price_usd"`
	Volume    float64 `json:"volume,omitempty"`
}

// HistoricalPriceData is a price history response.
type HistoricalPriceData struct {
	Token    string                 `json:"token"`
	Interval string                 `json:"interval"`
	Data     []HistoricalPricePoint `json:"data"`
}

// Config holds pricing client settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Cache   *Cache
	Logger  *zap.Logger
}

// Client fetches USD prices from the exchange API. Lookups go through the
// injected cache; a miss or fetch failure surfaces as the -1 sentinel in
// batch results, never as a zero price.
type Client struct {
	baseURL    string
	httpClient *http.Client
	cache      *Cache
	logger     *zap.Logger
}

// NewClient builds a pricing client. A nil cache gets a default 30s cache.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("pricing url is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	cache := cfg.Cache
	if cache == nil {
		cache = NewCache(0, nil)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		logger:     logger,
	}, nil
}

// Price returns the current quote for a token symbol or contract address,
// matched case-insensitively. Returns ErrNotFound for unknown tokens.
func (c *Client) Price(ctx context.Context, token string) (TokenPrice, error) {
	if cached, ok := c.cache.Get(token); ok {
		return cached, nil
	}

	endpoint := c.baseURL + "/" + url.PathEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return TokenPrice{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return TokenPrice{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return TokenPrice{}, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return TokenPrice{}, fmt.Errorf("pricing service returned %d", resp.StatusCode)
	}

	var price TokenPrice
	if err := json.NewDecoder(resp.Body).Decode(&price); err != nil {
		return TokenPrice{}, fmt.Errorf("decode price: %w", err)
	}

	c.cache.Set(token, price)
	return price, nil
}

// PriceMap fetches quotes for many tokens concurrently. Every requested
// token gets an entry keyed by its lowercased name; tokens that fail or
// are unknown map to the unknown-price sentinel so callers can tell
// "unavailable" from a real zero price.
func (c *Client) PriceMap(ctx context.Context, tokens []string) map[string]float64 {
	prices := make(map[string]float64, len(tokens))

	var mu sync.Mutex
	var wg sync.WaitGroup
	for _, token := range tokens {
		wg.Add(1)
		go func(token string) {
			defer wg.Done()

			value := model.PriceUnknown
			price, err := c.Price(ctx, token)
			if err != nil {
				if !errors.Is(err, ErrNotFound) {
					c.logger.Warn("price fetch failed", zap.String("token", token), zap.Error(err))
				}
			} else {
				value = price.PriceUSD
			}

			mu.Lock()
			prices[strings.ToLower(token)] = value
			mu.Unlock()
		}(token)
	}
	wg.Wait()

	return prices
}

// PriceWithFallback returns the live price, then the stub table, then 0.
// Meant for display contexts where a best-effort number beats an error.
func (c *Client) PriceWithFallback(ctx context.Context, token string) float64 {
	price, err := c.Price(ctx, token)
	if err == nil {
		return price.PriceUSD
	}
	if stub, ok := StubPrices[strings.ToUpper(token)]; ok {
		return stub
	}
	return 0
}

// History returns historical prices for a token. Interval is one of
// 1h, 1d, 1w, 1m.
func (c *Client) History(ctx context.Context, token, interval string, limit int) (HistoricalPriceData, error) {
	if interval == "" {
		interval = "1d"
	}
	if limit <= 0 {
		limit = 7
	}

	endpoint := fmt.Sprintf("%s/%s/history?interval=%s&limit=%s",
		c.baseURL, url.PathEscape(token), url.QueryEscape(interval), strconv.Itoa(limit))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return HistoricalPriceData{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return HistoricalPriceData{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return HistoricalPriceData{}, ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return HistoricalPriceData{}, fmt.Errorf("pricing service returned %d", resp.StatusCode)
	}

	var data HistoricalPriceData
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return HistoricalPriceData{}, fmt.Errorf("decode history: %w", err)
	}
	return data, nil
}
