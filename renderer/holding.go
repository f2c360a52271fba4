package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
)

// HoldingMarkdown renders the current positions and their total.
func HoldingMarkdown(h stockbook.Holding) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Holding\n\n")
	if len(h.Positions) == 0 {
		fmt.Fprintln(&b, "No position held.")
		return b.String()
	}
	fmt.Fprintln(&b, "| Ticker | Quantity | Cost Basis | Last Price | Market Value | Change | Change % | Weight |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|")
	row := func(ticker string, p stockbook.Position) {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s |\n",
			ticker,
			qty(p.Quantity),
			p.CostBasis,
			p.LastPrice,
			p.MarketValue,
			p.Change.SignedString(),
			p.ChangePct.SignedString(),
			p.Weight,
		)
	}
	for _, p := range h.Positions {
		row(p.Ticker, p)
	}
	row("**Total**", h.Total)
	return b.String()
}
