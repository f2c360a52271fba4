package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

type profitCmd struct {
	ticker string
	start  string
	end    string
	period string
	raw    bool
}

func (*profitCmd) Name() string     { return "profit" }
func (*profitCmd) Synopsis() string { return "report the profit of a window" }
func (*profitCmd) Usage() string {
	return `sbk profit [-s <ticker>|ALL] [-start <date>] [-end <date>] [-period <period>]

Reports the profit made on each ticker between two dates. Without -start the
window begins at the first trade. Without -end it stops on the last trading
day up to today.

-period sets the start to the beginning of the day, week, month, quarter or
year containing the end date. It cannot be combined with -start.

`
}

func (c *profitCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", stockbook.AllTickers, "ticker to report on, or ALL")
	f.StringVar(&c.start, "start", "", "first day of the window, defaults to the first trade")
	f.StringVar(&c.end, "end", "", "last day of the window, defaults to the last trading day")
	f.StringVar(&c.period, "period", "", "day, week, month, quarter or year ending on -end")
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of rendering it")
}

// bounds resolves the window flags into start and end, as accepted by the
// account. A period without -end stops on last.
func (c *profitCmd) bounds(last date.Date) (start, end string, err error) {
	if c.period == "" {
		return c.start, c.end, nil
	}
	if c.start != "" {
		return "", "", fmt.Errorf("-period and -start are mutually exclusive")
	}
	p, err := date.ParsePeriod(c.period)
	if err != nil {
		return "", "", err
	}
	if c.end != "" {
		var ok bool
		if last, ok = date.Normalize(c.end); !ok {
			return "", "", fmt.Errorf("%w: end %q", stockbook.ErrInvalidDate, c.end)
		}
	}
	r := p.Range(last)
	return r.From.String(), r.To.String(), nil
}

func (c *profitCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	start, end, err := c.bounds(s.account.LastTradingDay())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	report, err := s.account.ProfitReport(ctx, c.ticker, start, end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error computing profit: %v\n", err)
		return subcommands.ExitFailure
	}
	show(renderer.ProfitMarkdown(report), c.raw)
	return subcommands.ExitSuccess
}
