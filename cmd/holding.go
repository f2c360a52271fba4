package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/stockbook/renderer"
	"github.com/google/subcommands"
)

type holdingCmd struct {
	raw bool
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "display the positions currently held" }
func (*holdingCmd) Usage() string {
	return `sbk holding [-raw]

Displays every position held with its cost basis, last price, market value,
change and weight in the portfolio.

`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.raw, "raw", false, "print raw markdown instead of rendering it")
}

func (c *holdingCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	s, err := openSession(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	defer s.close()

	md := renderer.HoldingMarkdown(s.account.PositionSnapshot())
	show(md, c.raw)
	return subcommands.ExitSuccess
}
