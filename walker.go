package stockbook

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// sellRealization is the share of the price move on sold quantity that is
// counted as realized profit.
var sellRealization = decimal.RequireFromString("0.75")

// ProfitRecord is the profit attributed to one ticker over a window.
type ProfitRecord struct {
	Ticker          string
	InitialQuantity Quantity
	InitialPrice    Money
	InitialValue    Money
	FinalQuantity   Quantity
	FinalPrice      Money
	FinalValue      Money
	Profit          Money
	ProfitPct       Percent
	Weight          Percent // share of the portfolio final value

	// Degraded is set when the starting price could not be resolved.
	Degraded bool
}

// Active reports whether the record carries an initial price. Inactive records
// are not part of a report.
func (r ProfitRecord) Active() bool { return !r.InitialPrice.IsZero() }

// Walk consumes a timeline and attributes profit to each event.
//
// A buy first realizes the move of the held quantity from the running cost
// basis to the buy price, then resets the cost basis to the buy price. A sell
// realizes 75% of the move on the sold quantity and the full move on the
// quantity kept. The final boundary event realizes the move of what is left up
// to the window end close price.
func Walk(ctx context.Context, prices Prices, tl *Timeline) (ProfitRecord, error) {
	st := tl.Start
	rec := ProfitRecord{
		Ticker:          tl.Ticker,
		InitialQuantity: st.Quantity,
		InitialPrice:    st.CostBasis,
		InitialValue:    st.Value,
		Degraded:        tl.Degraded,
	}
	invested := st.Value
	var profit Money
	closed := false

	for _, e := range tl.Events {
		if closed {
			return rec, fmt.Errorf("%w: %s event after the boundary of %s", ErrMalformedTimeline, e.Date(), tl.Ticker)
		}
		switch ev := e.(type) {
		case BuyEvent:
			if st.Quantity.IsPositive() {
				profit = profit.Add(ev.Price.Sub(st.CostBasis).Mul(st.Quantity))
			}
			st.CostBasis = ev.Price
			st.Quantity = st.Quantity.Add(ev.Quantity)
			st.Value = ev.Price.Mul(st.Quantity)
			invested = invested.Add(ev.Price.Mul(ev.Quantity))
			if rec.InitialPrice.IsZero() {
				// first buy of a window that started empty
				rec.InitialQuantity = st.Quantity
				rec.InitialPrice = ev.Price
				rec.InitialValue = st.Value
			}

		case SellEvent:
			move := ev.Price.Sub(st.CostBasis)
			profit = profit.Add(move.Mul(ev.Quantity).Scale(sellRealization))
			profit = profit.Add(move.Mul(st.Quantity.Sub(ev.Quantity)))
			st.CostBasis = ev.Price
			st.Quantity = st.Quantity.Sub(ev.Quantity)
			st.Value = ev.Price.Mul(st.Quantity)

		case BoundaryEvent:
			price, err := prices.ClosePrice(ctx, tl.Ticker, ev.On)
			if err != nil {
				return rec, fmt.Errorf("%w: close of %s on %s: %w", ErrPriceUnavailable, tl.Ticker, ev.On, err)
			}
			profit = profit.Add(price.Sub(st.CostBasis).Mul(st.Quantity))
			st.CostBasis = price
			st.Value = price.Mul(st.Quantity)
			rec.FinalQuantity = st.Quantity
			rec.FinalPrice = price
			rec.FinalValue = st.Value
			closed = true

		default:
			return rec, fmt.Errorf("%w: unexpected event %T", ErrMalformedTimeline, e)
		}
	}
	if !closed {
		return rec, fmt.Errorf("%w: no boundary event for %s", ErrMalformedTimeline, tl.Ticker)
	}
	rec.Profit = profit
	rec.ProfitPct = percentOf(profit, invested)
	return rec, nil
}
