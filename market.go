package stockbook

import (
	"context"
	"fmt"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

// Market is an in-memory [Prices] holding daily close prices and a last
// price for a set of securities.
type Market struct {
	cur    string
	closes map[string]*date.History[decimal.Decimal]
	last   map[string]decimal.Decimal
}

// NewMarket returns a new empty market quoting prices in currency.
func NewMarket(currency string) *Market {
	return &Market{
		cur:    currency,
		closes: make(map[string]*date.History[decimal.Decimal]),
		last:   make(map[string]decimal.Decimal),
	}
}

// Has reports whether the ticker is listed.
func (m *Market) Has(ticker string) bool {
	_, ok := m.closes[ticker]
	return ok
}

// List declares tickers as tradable, without any price.
func (m *Market) List(tickers ...string) *Market {
	for _, t := range tickers {
		if !m.Has(t) {
			m.closes[t] = new(date.History[decimal.Decimal])
		}
	}
	return m
}

// AppendClose records the close price of ticker on a given day.
func (m *Market) AppendClose(ticker string, on date.Date, price float64) *Market {
	m.List(ticker)
	m.closes[ticker].Append(on, decimal.NewFromFloat(price))
	return m
}

// SetLast records the real time price of ticker.
func (m *Market) SetLast(ticker string, price float64) *Market {
	m.List(ticker)
	m.last[ticker] = decimal.NewFromFloat(price)
	return m
}

// ClosePrice returns the close price of ticker on the given day.
func (m *Market) ClosePrice(ctx context.Context, ticker string, on date.Date) (Money, error) {
	h, ok := m.closes[ticker]
	if !ok {
		return Money{}, fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
	}
	v, ok := h.Get(on)
	if !ok {
		return Money{}, fmt.Errorf("%w for %s on %s", ErrNoTradingData, ticker, on)
	}
	return M(v, m.cur), nil
}

// CurrentPrice returns the last price of ticker, or its latest close when no
// last price was set.
func (m *Market) CurrentPrice(ctx context.Context, ticker string) (Money, error) {
	if v, ok := m.last[ticker]; ok {
		return M(v, m.cur), nil
	}
	h, ok := m.closes[ticker]
	if !ok || h.Len() == 0 {
		return Money{}, fmt.Errorf("%w: no price for %s", ErrPriceUnavailable, ticker)
	}
	_, v := h.Latest()
	return M(v, m.cur), nil
}

// Currency returns the currency prices are quoted in.
func (m *Market) Currency() string { return m.cur }

// IsValidSymbol reports whether the ticker is listed.
func (m *Market) IsValidSymbol(ctx context.Context, ticker string) bool { return m.Has(ticker) }

var _ Prices = (*Market)(nil)
