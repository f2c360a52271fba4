package stockbook

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/stockbook/date"
)

// Event is one step of a [Timeline].
//
// The set of events is closed: [BuyEvent], [SellEvent] and [BoundaryEvent].
type Event interface {
	Date() date.Date
	isEvent()
}

// BuyEvent is a purchase inside the window.
type BuyEvent struct {
	Ticker   string
	Quantity Quantity
	Price    Money
	On       date.Date
}

// SellEvent is a sale inside the window.
type SellEvent struct {
	Ticker   string
	Quantity Quantity
	Price    Money
	On       date.Date
}

// BoundaryEvent closes the window; it is priced at the window end close.
type BoundaryEvent struct {
	Ticker string
	On     date.Date
}

func (e BuyEvent) Date() date.Date      { return e.On }
func (e SellEvent) Date() date.Date     { return e.On }
func (e BoundaryEvent) Date() date.Date { return e.On }

func (BuyEvent) isEvent()      {}
func (SellEvent) isEvent()     {}
func (BoundaryEvent) isEvent() {}

// WindowState is the position of a ticker at some point of a window.
type WindowState struct {
	Quantity  Quantity
	CostBasis Money // per share
	Value     Money
}

// Timeline is the history of a ticker over a window: the state held at the
// window start, then the trades of the window ending with a [BoundaryEvent].
type Timeline struct {
	Ticker string
	Window date.Range
	Start  WindowState
	Events []Event

	// Degraded is set when the window start price could not be resolved and
	// was replaced by zero.
	Degraded bool
}

// startPriceAttempts is the number of days to look back for a close price.
const startPriceAttempts = 10

// Reconstruct builds the timeline of ticker over window.
//
// The starting quantity counts every trade dated on or before window.From.
// When it is positive, the starting cost basis is the close price of window.From,
// or of the closest previous day that has one. Trades strictly after
// window.From and up to window.To inclusive are the window events.
func Reconstruct(ctx context.Context, l *Ledger, prices Prices, ticker string, window date.Range) (*Timeline, error) {
	if !window.Valid() {
		return nil, fmt.Errorf("%w: window %s", ErrInvalidDate, window)
	}
	held := l.HeldAt(ticker, window.From)
	tl := &Timeline{
		Ticker: ticker,
		Window: window,
		Start:  WindowState{Quantity: held},
	}
	if held.IsPositive() {
		price, degraded, err := startPrice(ctx, prices, ticker, window.From)
		if err != nil {
			return nil, err
		}
		tl.Degraded = degraded
		tl.Start.CostBasis = price
		tl.Start.Value = price.Mul(held)
	}
	tl.Events = append(l.Between(ticker, window.From, window.To), BoundaryEvent{Ticker: ticker, On: window.To})
	return tl, nil
}

// startPrice looks for the close price of ticker on day, stepping one day back
// while the gateway reports no trading data.
func startPrice(ctx context.Context, prices Prices, ticker string, day date.Date) (price Money, degraded bool, err error) {
	for range startPriceAttempts {
		price, err = prices.ClosePrice(ctx, ticker, day)
		if err == nil {
			return price, false, nil
		}
		if !errors.Is(err, ErrNoTradingData) {
			return Money{}, false, fmt.Errorf("start price of %s: %w", ticker, err)
		}
		day = day.Add(-1)
	}
	return Money{}, true, nil
}
