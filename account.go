package stockbook

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/etnz/stockbook/date"
)

// AllTickers selects every ledger ticker in [Account.ProfitReport].
const AllTickers = "ALL"

// Order is a request to record a trade.
//
// At least one of Price or Date must be set. A missing Date means today, a
// missing Price is resolved to the close price of Date.
type Order struct {
	Ticker   string
	Quantity Quantity
	Price    *Money
	Date     string // in any layout accepted by date.Normalize
}

// Account is the ledger, the positions and their collaborators.
//
// Every operation holds the account lock for its whole duration.
type Account struct {
	mu        sync.Mutex
	prices    Prices
	calendar  Calendar
	ledger    *Ledger
	positions *Positions
	journal   Journal
	log       *slog.Logger
	today     func() date.Date
}

// Option configures an Account.
type Option func(*Account)

// WithJournal persists every recorded trade to j.
func WithJournal(j Journal) Option { return func(a *Account) { a.journal = j } }

// WithLogger sets the account logger.
func WithLogger(l *slog.Logger) Option { return func(a *Account) { a.log = l } }

// WithToday sets the function returning the current day.
func WithToday(today func() date.Date) Option { return func(a *Account) { a.today = today } }

// NewAccount returns an empty account.
func NewAccount(prices Prices, calendar Calendar, opts ...Option) *Account {
	a := &Account{
		prices:    prices,
		calendar:  calendar,
		ledger:    NewLedger(),
		positions: NewPositions(prices),
		log:       slog.Default(),
		today:     date.Today,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Restore replays entries into an empty account. Prices are refreshed once at
// the end. On error the account is left empty.
func (a *Account) Restore(ctx context.Context, entries []Entry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.ledger.Len() > 0 {
		return errors.New("cannot restore a non empty account")
	}
	ledger, positions := NewLedger(), NewPositions(a.prices)
	quote := M(0, a.prices.Currency())
	for i, e := range entries {
		if !e.Trade.Price.compatible(quote) {
			return fmt.Errorf("entry %d: %w: %s priced in %s, prices are quoted in %s", i+1, ErrInvalidPrice, e.Ticker, e.Trade.Price.Currency(), quote.Currency())
		}
		switch e.Side {
		case Buy:
			if err := positions.buy(e.Ticker, e.Trade.Quantity, e.Trade.Price); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
		case Sell:
			if err := positions.sell(e.Ticker, e.Trade.Quantity); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
		default:
			return fmt.Errorf("entry %d: unknown trade side %q", i+1, e.Side)
		}
		ledger.Record(e.Side, e.Ticker, e.Trade.Quantity, e.Trade.Price, e.Trade.Date)
	}
	if err := positions.Refresh(ctx); err != nil {
		return err
	}
	a.ledger, a.positions = ledger, positions
	a.log.Debug("account restored", "trades", len(entries), "positions", positions.Len())
	return nil
}

// RecordBuy validates and records a purchase.
func (a *Account) RecordBuy(ctx context.Context, o Order) (Trade, error) {
	return a.record(ctx, Buy, o)
}

// RecordSell validates and records a sale.
func (a *Account) RecordSell(ctx context.Context, o Order) (Trade, error) {
	return a.record(ctx, Sell, o)
}

func (a *Account) record(ctx context.Context, side Side, o Order) (Trade, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ticker, on, err := a.validate(ctx, side, o)
	if err != nil {
		return Trade{}, err
	}
	var price Money
	if o.Price != nil {
		price = *o.Price
	} else {
		price, err = a.prices.ClosePrice(ctx, ticker, on)
		if err != nil {
			return Trade{}, fmt.Errorf("cannot price %s %s on %s: %w", side, ticker, on, err)
		}
	}

	next := a.positions.Clone()
	switch side {
	case Buy:
		err = next.ApplyBuy(ctx, ticker, o.Quantity, price)
	case Sell:
		err = next.ApplySell(ctx, ticker, o.Quantity)
	}
	if err != nil {
		return Trade{}, err
	}

	trade := a.ledger.Next(side, ticker, o.Quantity, price, on)
	if a.journal != nil {
		if err := a.journal.Append(Entry{Side: side, Ticker: ticker, Trade: trade}); err != nil {
			return Trade{}, fmt.Errorf("cannot persist %s of %s: %w", side, ticker, err)
		}
	}
	trade = a.ledger.Record(side, ticker, o.Quantity, price, on)
	a.positions = next
	a.log.Info("trade recorded", "side", side, "ticker", ticker, "seq", trade.Seq,
		"quantity", trade.Quantity, "price", trade.Price.Decimal(), "date", trade.Date)
	return trade, nil
}

// validate checks an order and returns its normalized ticker and date.
func (a *Account) validate(ctx context.Context, side Side, o Order) (string, date.Date, error) {
	ticker := strings.ToUpper(strings.TrimSpace(o.Ticker))
	if o.Price == nil && strings.TrimSpace(o.Date) == "" {
		return "", date.Date{}, fmt.Errorf("%w: %s of %s needs a price or a date", ErrMissingArgument, side, ticker)
	}
	if !o.Quantity.IsPositive() || !o.Quantity.IsInteger() {
		return "", date.Date{}, fmt.Errorf("%w: %s must be a positive integer", ErrInvalidQuantity, o.Quantity)
	}
	if o.Price != nil && o.Price.IsNegative() {
		return "", date.Date{}, fmt.Errorf("%w: %s", ErrInvalidPrice, o.Price.Decimal())
	}
	if quote := M(0, a.prices.Currency()); o.Price != nil && !o.Price.compatible(quote) {
		return "", date.Date{}, fmt.Errorf("%w: %s priced in %s, prices are quoted in %s", ErrInvalidPrice, ticker, o.Price.Currency(), quote.Currency())
	}
	if ticker == "" || ticker == TotalTicker || ticker == AllTickers {
		return "", date.Date{}, fmt.Errorf("%w: %q", ErrUnknownTicker, o.Ticker)
	}
	switch side {
	case Buy:
		if !a.prices.IsValidSymbol(ctx, ticker) {
			return "", date.Date{}, fmt.Errorf("%w: %q", ErrUnknownTicker, ticker)
		}
	case Sell:
		if held := a.positions.Held(ticker); o.Quantity.GreaterThan(held) {
			return "", date.Date{}, fmt.Errorf("%w: cannot sell %s %s, holding %s", ErrOverdraft, o.Quantity, ticker, held)
		}
	}

	if strings.TrimSpace(o.Date) == "" {
		return ticker, a.today(), nil
	}
	on, ok := date.Normalize(o.Date)
	if !ok {
		return "", date.Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, o.Date)
	}
	if on.Before(date.NasdaqInception) {
		return "", date.Date{}, fmt.Errorf("%w: %s is before %s", ErrInvalidDate, on, date.NasdaqInception)
	}
	if !a.calendar.IsTradingDay(on) {
		return "", date.Date{}, fmt.Errorf("%w: %s is not a trading day", ErrInvalidDate, on)
	}
	return ticker, on, nil
}

// PositionSnapshot returns the current positions and their total.
func (a *Account) PositionSnapshot() Holding {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.positions.Holding()
}

// Tickers returns every traded ticker, sorted.
func (a *Account) Tickers() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ledger.Tickers()
}

// Trades returns the buys and the sells of ticker in recording order.
func (a *Account) Trades(ticker string) (buys, sells []Trade) {
	a.mu.Lock()
	defer a.mu.Unlock()
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	return a.ledger.Trades(Buy, ticker), a.ledger.Trades(Sell, ticker)
}

// Window resolves report bounds. An empty start is the first trade date, an
// empty end is the last trading day up to today.
func (a *Account) Window(start, end string) (date.Range, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.window(start, end)
}

// LastTradingDay returns today, or the closest trading day before it.
func (a *Account) LastTradingDay() date.Date {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.lastTradingDay()
}

func (a *Account) lastTradingDay() date.Date {
	today := a.today()
	if days := a.calendar.TradingDays(today.Add(1-startPriceAttempts), today); len(days) > 0 {
		return days[len(days)-1]
	}
	return today
}

func (a *Account) window(start, end string) (date.Range, error) {
	var w date.Range
	var ok bool
	if strings.TrimSpace(end) == "" {
		w.To = a.lastTradingDay()
	} else if w.To, ok = date.Normalize(end); !ok {
		return w, fmt.Errorf("%w: end %q", ErrInvalidDate, end)
	}
	if strings.TrimSpace(start) == "" {
		w.From = a.ledger.FirstDate()
		if w.From.IsZero() || w.From.After(w.To) {
			w.From = w.To
		}
	} else if w.From, ok = date.Normalize(start); !ok {
		return w, fmt.Errorf("%w: start %q", ErrInvalidDate, start)
	}
	if w.From.After(w.To) {
		return w, fmt.Errorf("%w: start %s is after end %s", ErrInvalidDate, w.From, w.To)
	}
	return w, nil
}

// ProfitReport computes the profit of the window [start, end] for one ticker
// or for [AllTickers].
//
// For a single ticker any failure is returned. For all tickers a failing
// ticker is reported in Failures and excluded from the summary.
func (a *Account) ProfitReport(ctx context.Context, target, start, end string) (*ProfitReport, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	window, err := a.window(start, end)
	if err != nil {
		return nil, err
	}
	target = strings.ToUpper(strings.TrimSpace(target))
	all := target == "" || target == AllTickers
	tickers := []string{target}
	if all {
		tickers = a.ledger.Tickers()
	} else if !a.ledger.Has(target) {
		return nil, fmt.Errorf("%w: %q was never traded", ErrUnknownTicker, target)
	}

	report := &ProfitReport{Window: window}
	records := make([]ProfitRecord, 0, len(tickers))
	for _, ticker := range tickers {
		rec, err := a.profit(ctx, ticker, window)
		if err != nil {
			if !all {
				return nil, err
			}
			a.log.Warn("ticker excluded from profit report", "ticker", ticker, "window", window.String(), "error", err)
			report.Failures = append(report.Failures, TickerError{Ticker: ticker, Err: err})
			continue
		}
		if rec.Degraded {
			a.log.Warn("start price unavailable, using zero", "ticker", ticker, "date", window.From)
			report.Degraded = append(report.Degraded, ticker)
		}
		records = append(records, rec)
	}
	report.Records, report.Total = Summarize(records)
	return report, nil
}

func (a *Account) profit(ctx context.Context, ticker string, window date.Range) (ProfitRecord, error) {
	tl, err := Reconstruct(ctx, a.ledger, a.prices, ticker, window)
	if err != nil {
		return ProfitRecord{}, err
	}
	return Walk(ctx, a.prices, tl)
}

// Err returns the failures of the report joined, or nil.
func (r *ProfitReport) Err() error {
	errs := make([]error, len(r.Failures))
	for i, f := range r.Failures {
		errs[i] = f
	}
	return errors.Join(errs...)
}
