package stockbook

import (
	"context"

	"github.com/etnz/stockbook/date"
)

// Calendar tells on which days the exchange is open.
type Calendar interface {
	IsTradingDay(day date.Date) bool
	// TradingDays returns the ordered trading days in [from, to].
	TradingDays(from, to date.Date) []date.Date
}

// Prices resolves security prices.
//
// ClosePrice returns an error wrapping [ErrNoTradingData] when the exchange
// has no bar for that day, any other error is a gateway failure. Every price
// is quoted in Currency.
type Prices interface {
	Currency() string
	ClosePrice(ctx context.Context, ticker string, on date.Date) (Money, error)
	CurrentPrice(ctx context.Context, ticker string) (Money, error)
	IsValidSymbol(ctx context.Context, ticker string) bool
}

var _ Calendar = (*date.Weekdays)(nil)
