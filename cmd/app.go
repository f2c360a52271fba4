// Package cmd implements the sbk CLI application to record trades and report
// on positions and profits.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/config"
	"github.com/etnz/stockbook/date"
	"github.com/etnz/stockbook/eodhd"
	"github.com/etnz/stockbook/sqlstore"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&tradeCmd{side: stockbook.Buy}, "trades")
	c.Register(&tradeCmd{side: stockbook.Sell}, "trades")
	c.Register(&ordersCmd{}, "trades")

	c.Register(&holdingCmd{}, "reports")
	c.Register(&profitCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the YAML config file. Defaults to "+config.DefaultFile+" when present.")
var ledgerFile = flag.String("ledger", "", "Path to the trades ledger. Overrides the config.")
var storeType = flag.String("store", "", "Ledger store, jsonl or sqlite. Overrides the config.")

// LoadConfig reads the configuration and applies the global flags.
func LoadConfig() (*config.Config, error) {
	path := *configFile
	if path == "" {
		if _, err := os.Stat(config.DefaultFile); err == nil {
			path = config.DefaultFile
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if *ledgerFile != "" {
		cfg.LedgerFile = *ledgerFile
	}
	if *storeType != "" {
		cfg.Store = *storeType
	}
	return cfg, cfg.Validate()
}

// newLogger returns the text logger writing on stderr at the configured level.
func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.Level()
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// openJournal opens the configured ledger store.
func openJournal(cfg *config.Config) (stockbook.Journal, func() error, error) {
	switch cfg.Store {
	case config.StoreSQLite:
		j, err := sqlstore.Open(cfg.LedgerFile)
		if err != nil {
			return nil, nil, err
		}
		return j, j.Close, nil
	default:
		return stockbook.NewFileJournal(cfg.LedgerFile), func() error { return nil }, nil
	}
}

// session is an account restored from the ledger.
type session struct {
	account  *stockbook.Account
	currency string
	close    func() error
}

// openSession loads the configuration, the ledger and restores the account.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)
	slog.SetDefault(logger)

	holidays, err := cfg.HolidayDates()
	if err != nil {
		return nil, err
	}
	prices := eodhd.New(eodhd.Options{
		APIKey:            cfg.EODHD.APIKey,
		BaseURL:           cfg.EODHD.BaseURL,
		Currency:          cfg.Currency,
		CacheDir:          cfg.EODHD.CacheDir,
		RequestsPerSecond: cfg.EODHD.RequestsPerSecond,
		Logger:            logger,
	})

	journal, closer, err := openJournal(cfg)
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", cfg.LedgerFile, err)
	}
	entries, err := journal.Entries()
	if err != nil {
		return nil, errors.Join(err, closer())
	}
	account := stockbook.NewAccount(prices, date.NewWeekdays(holidays...),
		stockbook.WithJournal(journal),
		stockbook.WithLogger(logger),
	)
	if err := account.Restore(ctx, entries); err != nil {
		return nil, errors.Join(fmt.Errorf("cannot restore ledger %q: %w", cfg.LedgerFile, err), closer())
	}
	return &session{account: account, currency: cfg.Currency, close: closer}, nil
}

// show prints md raw, or rendered for the terminal when it can.
func show(md string, raw bool) {
	if raw {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(100))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}
