package stockbook

import (
	"slices"
	"strings"

	"github.com/etnz/stockbook/date"
)

// TotalTicker is the ticker of the portfolio wide records.
const TotalTicker = "TOTAL"

// TickerError is the failure of one ticker in a portfolio wide report.
type TickerError struct {
	Ticker string
	Err    error
}

func (e TickerError) Error() string { return e.Ticker + ": " + e.Err.Error() }
func (e TickerError) Unwrap() error { return e.Err }

// ProfitReport is the profit of a window, per ticker and in total.
type ProfitReport struct {
	Window  date.Range
	Records []ProfitRecord // active records, by ticker
	Total   ProfitRecord

	// Failures lists the tickers that could not be walked.
	Failures []TickerError
	// Degraded lists the tickers whose start price was replaced by zero.
	Degraded []string
}

// Summarize aggregates the active records into a portfolio total and sets the
// weight of every record.
//
// It returns the active records sorted by ticker, inactive ones are dropped.
// The input slice is not modified.
func Summarize(records []ProfitRecord) ([]ProfitRecord, ProfitRecord) {
	active := make([]ProfitRecord, 0, len(records))
	for _, r := range records {
		if r.Active() {
			active = append(active, r)
		}
	}
	slices.SortFunc(active, func(a, b ProfitRecord) int { return strings.Compare(a.Ticker, b.Ticker) })

	total := ProfitRecord{Ticker: TotalTicker, Weight: 100}
	var initialCost, finalCost Money
	for _, r := range active {
		total.InitialQuantity = total.InitialQuantity.Add(r.InitialQuantity)
		total.FinalQuantity = total.FinalQuantity.Add(r.FinalQuantity)
		total.InitialValue = total.InitialValue.Add(r.InitialValue)
		total.FinalValue = total.FinalValue.Add(r.FinalValue)
		total.Profit = total.Profit.Add(r.Profit)
		initialCost = initialCost.Add(r.InitialPrice.Mul(r.InitialQuantity))
		finalCost = finalCost.Add(r.FinalPrice.Mul(r.FinalQuantity))
	}
	if len(active) == 0 {
		return active, total
	}

	if total.InitialQuantity.IsZero() {
		total.InitialPrice = active[len(active)-1].InitialPrice
	} else {
		total.InitialPrice = initialCost.Div(total.InitialQuantity)
	}
	if !total.FinalQuantity.IsZero() {
		total.FinalPrice = finalCost.Div(total.FinalQuantity)
	}

	var blended float64
	for i := range active {
		active[i].Weight = percentOf(active[i].FinalValue, total.FinalValue)
		blended += float64(active[i].ProfitPct) * float64(active[i].Weight)
	}
	total.ProfitPct = Percent(blended / 100)
	return active, total
}
