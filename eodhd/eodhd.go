// Package eodhd implements the price gateway on top of the EOD Historical
// Data API.
package eodhd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/go-resty/resty/v2"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the root of the EODHD API.
const DefaultBaseURL = "https://eodhd.com/api"

// Options configures a Client.
type Options struct {
	APIKey   string
	BaseURL  string // defaults to DefaultBaseURL
	Exchange string // defaults to "US"
	Currency string // defaults to "USD"

	// CacheDir holds the daily disk cache of responses. The cache is disabled
	// when empty.
	CacheDir string

	// RequestsPerSecond limits outgoing requests, 0 means unlimited.
	RequestsPerSecond float64

	Timeout time.Duration
	Logger  *slog.Logger
}

// Client is a [stockbook.Prices] backed by the EODHD API.
type Client struct {
	http     *resty.Client
	apiKey   string
	exchange string
	currency string
	closes   *cache.Cache // close prices by "TICKER DATE"
	limiter  *rate.Limiter
	log      *slog.Logger
}

// New returns a client.
func New(opts Options) *Client {
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Exchange == "" {
		opts.Exchange = "US"
	}
	if opts.Currency == "" {
		opts.Currency = "USD"
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	client := resty.New().
		SetTimeout(opts.Timeout).
		SetBaseURL(opts.BaseURL).
		SetHeader("Accept", "application/json").
		SetQueryParam("fmt", "json")
	if opts.CacheDir != "" {
		client.SetTransport(&diskCache{base: http.DefaultTransport, dir: opts.CacheDir, log: opts.Logger})
	}
	return &Client{
		http:     client,
		apiKey:   opts.APIKey,
		exchange: opts.Exchange,
		currency: opts.Currency,
		closes:   cache.New(24*time.Hour, 48*time.Hour),
		limiter:  rate.NewLimiter(limit, 1),
		log:      opts.Logger,
	}
}

// symbol returns the exchange qualified EODHD symbol.
func (c *Client) symbol(ticker string) string { return ticker + "." + c.exchange }

// get performs a GET request and returns the body and the status code.
func (c *Client) get(ctx context.Context, path string, params map[string]string) ([]byte, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, 0, err
	}
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("api_token", c.apiKey).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		c.log.Error("error while dialing eodhd", "path", path, "error", err)
		return nil, 0, fmt.Errorf("cannot GET %s: %w", path, err)
	}
	c.log.Debug("eodhd request complete", "path", path, "status", resp.StatusCode())
	return resp.Body(), resp.StatusCode(), nil
}

// ClosePrice returns the close of ticker on day.
func (c *Client) ClosePrice(ctx context.Context, ticker string, on date.Date) (stockbook.Money, error) {
	key := ticker + " " + on.String()
	if v, found := c.closes.Get(key); found {
		return stockbook.M(v.(decimal.Decimal), c.currency), nil
	}

	path := "/eod/" + c.symbol(ticker)
	body, status, err := c.get(ctx, path, map[string]string{"from": on.String(), "to": on.String()})
	if err != nil {
		return stockbook.Money{}, err
	}
	switch {
	case status == http.StatusNotFound:
		return stockbook.Money{}, fmt.Errorf("%w for %s on %s", stockbook.ErrNoTradingData, ticker, on)
	case status != http.StatusOK:
		return stockbook.Money{}, fmt.Errorf("cannot GET %s: status %d", path, status)
	}

	var bars []struct {
		Date  date.Date       `json:"date"`
		Close decimal.Decimal `json:"close"`
	}
	if err := json.Unmarshal(body, &bars); err != nil {
		return stockbook.Money{}, fmt.Errorf("invalid eod response for %s: %w", ticker, err)
	}
	for _, bar := range bars {
		if bar.Date == on {
			c.closes.SetDefault(key, bar.Close)
			return stockbook.M(bar.Close, c.currency), nil
		}
	}
	return stockbook.Money{}, fmt.Errorf("%w for %s on %s", stockbook.ErrNoTradingData, ticker, on)
}

// CurrentPrice returns the real time price of ticker.
func (c *Client) CurrentPrice(ctx context.Context, ticker string) (stockbook.Money, error) {
	path := "/real-time/" + c.symbol(ticker)
	body, status, err := c.get(ctx, path, nil)
	if err != nil {
		return stockbook.Money{}, err
	}
	if status != http.StatusOK {
		return stockbook.Money{}, fmt.Errorf("%w: GET %s: status %d", stockbook.ErrPriceUnavailable, path, status)
	}
	var jobj any
	if err := json.Unmarshal(body, &jobj); err != nil {
		return stockbook.Money{}, fmt.Errorf("invalid real-time response for %s: %w", ticker, err)
	}
	jval, err := jsonpath.Get("$.close", jobj)
	if err != nil {
		return stockbook.Money{}, fmt.Errorf("%w: %s: %v", stockbook.ErrPriceUnavailable, ticker, err)
	}
	val, ok := jval.(float64)
	if !ok {
		// the API returns "NA" for untraded symbols
		return stockbook.Money{}, fmt.Errorf("%w: %s real-time close is %v", stockbook.ErrPriceUnavailable, ticker, jval)
	}
	return stockbook.M(val, c.currency), nil
}

// IsValidSymbol reports whether ticker is listed on the client exchange.
// Currency returns the currency prices are quoted in.
func (c *Client) Currency() string { return c.currency }

func (c *Client) IsValidSymbol(ctx context.Context, ticker string) bool {
	body, status, err := c.get(ctx, "/search/"+ticker, nil)
	if err != nil || status != http.StatusOK {
		c.log.Debug("symbol search failed", "ticker", ticker, "status", status, "error", err)
		return false
	}
	var results []struct {
		Code     string `json:"Code"`
		Exchange string `json:"Exchange"`
	}
	if err := json.Unmarshal(body, &results); err != nil {
		c.log.Debug("invalid search response", "ticker", ticker, "error", err)
		return false
	}
	for _, r := range results {
		if strings.EqualFold(r.Code, ticker) && strings.EqualFold(r.Exchange, c.exchange) {
			return true
		}
	}
	return false
}

var _ stockbook.Prices = (*Client)(nil)
