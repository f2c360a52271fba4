package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/stockbook"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

// tradeCmd records a buy or a sell, depending on side.
type tradeCmd struct {
	side     stockbook.Side
	ticker   string
	quantity string
	price    string
	date     string
}

func (c *tradeCmd) Name() string { return string(c.side) }
func (c *tradeCmd) Synopsis() string {
	return fmt.Sprintf("record a %s of shares", c.side)
}
func (c *tradeCmd) Usage() string {
	return fmt.Sprintf(`sbk %s -s <ticker> -q <quantity> [-p <price>] [-d <date>]

Records a %s. Without a price, the close of the trade date is used.
Without a date, the trade is dated today.

`, c.side, c.side)
}

func (c *tradeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "s", "", "ticker symbol, e.g. VOO")
	f.StringVar(&c.quantity, "q", "", "number of shares, a positive integer")
	f.StringVar(&c.price, "p", "", "price per share, defaults to the close of the trade date")
	f.StringVar(&c.date, "d", "", "trade date, defaults to today")
}

// order turns the flags into an Order priced in currency.
func (c *tradeCmd) order(currency string) (stockbook.Order, error) {
	o := stockbook.Order{Ticker: c.ticker, Date: c.date}
	if strings.TrimSpace(c.quantity) == "" {
		return o, fmt.Errorf("%w: -q is required", stockbook.ErrInvalidQuantity)
	}
	q, err := decimal.NewFromString(strings.TrimSpace(c.quantity))
	if err != nil {
		return o, fmt.Errorf("%w: %q", stockbook.ErrInvalidQuantity, c.quantity)
	}
	o.Quantity = stockbook.Q(q)
	if strings.TrimSpace(c.price) != "" {
		p, err := decimal.NewFromString(strings.TrimSpace(c.price))
		if err != nil {
			return o, fmt.Errorf("%w: %q", stockbook.ErrInvalidPrice, c.price)
		}
		price := stockbook.M(p, currency)
		o.Price = &price
	}
	return o, nil
}

func (c *tradeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -s flag is required.")
		f.Usage()
		return subcommands.ExitUsageError
	}
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	o, err := c.order(s.currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	record := s.account.RecordBuy
	if c.side == stockbook.Sell {
		record = s.account.RecordSell
	}
	t, err := record(ctx, o)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error recording %s: %v\n", c.side, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Recorded %s #%d of %s %s at %s on %s.\n", c.side, t.Seq, t.Quantity, strings.ToUpper(strings.TrimSpace(c.ticker)), t.Price, t.Date)
	return subcommands.ExitSuccess
}
