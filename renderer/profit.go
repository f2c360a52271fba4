package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/stockbook"
)

// ProfitMarkdown renders a profit report: the per ticker table, its total,
// then the tickers that failed or were degraded.
func ProfitMarkdown(r *stockbook.ProfitReport) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Profit from %s to %s\n\n", r.Window.From, r.Window.To)

	if len(r.Records) == 0 {
		fmt.Fprintln(&b, "No position held during the period.")
	} else {
		fmt.Fprintln(&b, "| Ticker | Initial Quantity | Initial Price | Initial Value | Final Quantity | Final Price | Final Value | Profit | Profit % | Weight |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|---:|---:|---:|---:|---:|---:|")
		row := func(ticker string, rec stockbook.ProfitRecord) {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s | %s | %s | %s |\n",
				ticker,
				qty(rec.InitialQuantity),
				rec.InitialPrice,
				rec.InitialValue,
				qty(rec.FinalQuantity),
				rec.FinalPrice,
				rec.FinalValue,
				rec.Profit.SignedString(),
				rec.ProfitPct.SignedString(),
				rec.Weight,
			)
		}
		for _, rec := range r.Records {
			row(rec.Ticker, rec)
		}
		row("**Total**", r.Total)
	}

	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Failures\n\n")
		for _, f := range r.Failures {
			fmt.Fprintf(w, "- %s: %s\n", f.Ticker, cell(f.Err.Error()))
		}
		return len(r.Failures) > 0
	})
	ConditionalBlock(&b, func(w io.Writer) bool {
		fmt.Fprintf(w, "\n## Degraded\n\nNo start price found for: %s.\n", strings.Join(r.Degraded, ", "))
		return len(r.Degraded) > 0
	})
	return b.String()
}
