package stockbook

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
)

// Position is the current holding of one ticker.
type Position struct {
	Ticker      string
	Quantity    Quantity
	CostBasis   Money // weighted average purchase price per share
	LastPrice   Money
	MarketValue Money
	Change      Money // unrealized gain
	ChangePct   Percent
	Weight      Percent // share of the portfolio market value
}

// Cost returns the quantity times the cost basis.
func (p Position) Cost() Money { return p.CostBasis.Mul(p.Quantity) }

// Holding is a snapshot of every position plus their total.
type Holding struct {
	Positions []Position // by ticker
	Total     Position
}

// Positions tracks the currently held tickers.
//
// A position is created by its first buy and removed when sold down to zero.
// Every successful update refreshes the price of all positions.
type Positions struct {
	prices Prices
	held   map[string]Position
}

// NewPositions returns an empty set of positions priced with prices.
func NewPositions(prices Prices) *Positions {
	return &Positions{prices: prices, held: make(map[string]Position)}
}

// Clone returns an independent copy of p.
func (p *Positions) Clone() *Positions {
	return &Positions{prices: p.prices, held: maps.Clone(p.held)}
}

// Get returns the position of ticker.
func (p *Positions) Get(ticker string) (Position, bool) {
	pos, ok := p.held[ticker]
	return pos, ok
}

// Held returns the quantity of ticker currently held.
func (p *Positions) Held(ticker string) Quantity { return p.held[ticker].Quantity }

// Len returns the number of held tickers.
func (p *Positions) Len() int { return len(p.held) }

// ApplyBuy adds q shares of ticker bought at price, then refreshes prices.
// On error p is left unchanged.
func (p *Positions) ApplyBuy(ctx context.Context, ticker string, q Quantity, price Money) error {
	next := p.Clone()
	if err := next.buy(ticker, q, price); err != nil {
		return err
	}
	if err := next.Refresh(ctx); err != nil {
		return err
	}
	*p = *next
	return nil
}

// ApplySell removes q shares of ticker, then refreshes prices.
// It returns [ErrOverdraft] when q exceeds the held quantity. On error p is
// left unchanged.
func (p *Positions) ApplySell(ctx context.Context, ticker string, q Quantity) error {
	next := p.Clone()
	if err := next.sell(ticker, q); err != nil {
		return err
	}
	if err := next.Refresh(ctx); err != nil {
		return err
	}
	*p = *next
	return nil
}

func (p *Positions) buy(ticker string, q Quantity, price Money) error {
	pos, ok := p.held[ticker]
	if !ok {
		p.held[ticker] = Position{Ticker: ticker, Quantity: q, CostBasis: price, LastPrice: price}
		return nil
	}
	if !price.compatible(pos.CostBasis) {
		return fmt.Errorf("%w: %s bought in %s, held in %s", ErrInvalidPrice, ticker, price.Currency(), pos.CostBasis.Currency())
	}
	total := pos.Quantity.Add(q)
	pos.CostBasis = pos.Cost().Add(price.Mul(q)).Div(total)
	pos.Quantity = total
	p.held[ticker] = pos
	return nil
}

func (p *Positions) sell(ticker string, q Quantity) error {
	pos := p.held[ticker]
	if q.GreaterThan(pos.Quantity) {
		return fmt.Errorf("%w: cannot sell %s %s, holding %s", ErrOverdraft, q, ticker, pos.Quantity)
	}
	pos.Quantity = pos.Quantity.Sub(q)
	if pos.Quantity.IsZero() {
		delete(p.held, ticker)
		return nil
	}
	p.held[ticker] = pos
	return nil
}

// Refresh fetches the current price of every position and recomputes values
// and weights. On error p is left unchanged.
func (p *Positions) Refresh(ctx context.Context) error {
	refreshed := make(map[string]Position, len(p.held))
	var errs []error
	var total Money
	for ticker, pos := range p.held {
		price, err := p.prices.CurrentPrice(ctx, ticker)
		if err != nil {
			if !errors.Is(err, ErrPriceUnavailable) {
				err = fmt.Errorf("%w: %w", ErrPriceUnavailable, err)
			}
			errs = append(errs, fmt.Errorf("current price of %s: %w", ticker, err))
			continue
		}
		if !price.compatible(pos.CostBasis) || !price.compatible(total) {
			errs = append(errs, fmt.Errorf("%w: current price of %s in %s, held in %s", ErrInvalidPrice, ticker, price.Currency(), pos.CostBasis.Currency()))
			continue
		}
		pos.LastPrice = price
		pos.MarketValue = price.Mul(pos.Quantity)
		pos.Change = pos.MarketValue.Sub(pos.Cost())
		pos.ChangePct = percentOf(pos.Change, pos.Cost())
		total = total.Add(pos.MarketValue)
		refreshed[ticker] = pos
	}
	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	for ticker, pos := range refreshed {
		pos.Weight = percentOf(pos.MarketValue, total)
		refreshed[ticker] = pos
	}
	p.held = refreshed
	return nil
}

// Holding returns a snapshot of the positions sorted by ticker, and their total.
func (p *Positions) Holding() Holding {
	h := Holding{Total: Position{Ticker: TotalTicker, Weight: 100}}
	var cost Money
	for _, ticker := range slices.Sorted(maps.Keys(p.held)) {
		pos := p.held[ticker]
		h.Positions = append(h.Positions, pos)
		h.Total.Quantity = h.Total.Quantity.Add(pos.Quantity)
		h.Total.MarketValue = h.Total.MarketValue.Add(pos.MarketValue)
		h.Total.Change = h.Total.Change.Add(pos.Change)
		cost = cost.Add(pos.Cost())
	}
	if h.Total.Quantity.IsZero() {
		return h
	}
	h.Total.CostBasis = cost.Div(h.Total.Quantity)
	h.Total.LastPrice = h.Total.MarketValue.Div(h.Total.Quantity)
	h.Total.ChangePct = percentOf(h.Total.MarketValue.Sub(cost), cost)
	return h
}
