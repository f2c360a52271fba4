package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/stockbook"
)

// OrdersMarkdown renders the buys and the sells of a ticker in recording order.
func OrdersMarkdown(ticker string, buys, sells []stockbook.Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n", ticker)
	book := func(title string, trades []stockbook.Trade) {
		fmt.Fprintf(&b, "\n### %s\n\n", title)
		if len(trades) == 0 {
			fmt.Fprintln(&b, "None.")
			return
		}
		fmt.Fprintln(&b, "| # | Date | Quantity | Price | Value |")
		fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|")
		for _, t := range trades {
			fmt.Fprintf(&b, "| %d | %s | %s | %s | %s |\n", t.Seq, t.Date, qty(t.Quantity), t.Price, t.Value())
		}
	}
	book("Buys", buys)
	book("Sells", sells)
	return b.String()
}
