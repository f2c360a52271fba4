package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

type ordersCmd struct {
	ticker string
	raw    bool
}

func (*ordersCmd) Name() string     { return "orders" }
func (*ordersCmd) Synopsis() string { return "list the recorded buys and sells" }
func (*ordersCmd) Usage() string {
	return `sbk orders [-s <ticker>]

Lists the buys and the sells recorded for one ticker, or for every ticker.
It reads the ledger only and never fetches prices.

`
}

func (c *ordersCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "ticker to list, defaults to every ticker")
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of rendering it")
}

// ordersMarkdown replays entries in a ledger and renders the orders of ticker,
// or of every ticker when it is empty.
func ordersMarkdown(entries []stockbook.Entry, ticker string) (string, error) {
	l := stockbook.NewLedger()
	for _, e := range entries {
		l.Record(e.Side, e.Ticker, e.Trade.Quantity, e.Trade.Price, e.Trade.Date)
	}
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	tickers := l.Tickers()
	if ticker != "" && ticker != stockbook.AllTickers {
		if !l.Has(ticker) {
			return "", fmt.Errorf("%w: %q was never traded", stockbook.ErrUnknownTicker, ticker)
		}
		tickers = []string{ticker}
	}
	if len(tickers) == 0 {
		return "No trade recorded.\n", nil
	}
	var b strings.Builder
	for i, t := range tickers {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(renderer.OrdersMarkdown(t, l.Trades(stockbook.Buy, t), l.Trades(stockbook.Sell, t)))
	}
	return b.String(), nil
}

func (c *ordersCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return subcommands.ExitFailure
	}
	journal, closer, err := openJournal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer closer()
	entries, err := journal.Entries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	md, err := ordersMarkdown(entries, c.ticker)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	show(md, c.raw)
	return subcommands.ExitSuccess
}
