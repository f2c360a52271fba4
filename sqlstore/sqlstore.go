// Package sqlstore persists the trades of an account in a SQLite database.
package sqlstore

import (
	"database/sql"
	"fmt"

	"github.com/etnz/stockbook"
	"github.com/etnz/stockbook/date"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
)

// Schema creates the trades table. Rows are read back in id order, which is
// the recording order.
const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	side     TEXT    NOT NULL CHECK (side IN ('buy', 'sell')),
	ticker   TEXT    NOT NULL,
	seq      INTEGER NOT NULL,
	quantity TEXT    NOT NULL,
	price    TEXT    NOT NULL,
	currency TEXT    NOT NULL,
	date     TEXT    NOT NULL
);
CREATE INDEX IF NOT EXISTS trades_ticker ON trades (ticker, date);
`

// Journal is a [stockbook.Journal] stored in SQLite.
type Journal struct {
	db *sql.DB
}

// Open opens, and creates if needed, the database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot create schema in %q: %w", path, err)
	}
	return &Journal{db: db}, nil
}

// Append inserts one trade.
func (j *Journal) Append(e stockbook.Entry) error {
	_, err := j.db.Exec(`
		INSERT INTO trades
		(side, ticker, seq, quantity, price, currency, date)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		string(e.Side), e.Ticker, e.Trade.Seq, e.Trade.Quantity.String(),
		e.Trade.Price.Decimal().String(), e.Trade.Price.Currency(), e.Trade.Date.String(),
	)
	return err
}

// Entries returns every trade in recording order.
func (j *Journal) Entries() ([]stockbook.Entry, error) {
	rows, err := j.db.Query(`SELECT side, ticker, seq, quantity, price, currency, date FROM trades ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []stockbook.Entry
	for rows.Next() {
		var (
			side, ticker, quantity, price, currency, on string
			seq                                         int
		)
		if err := rows.Scan(&side, &ticker, &seq, &quantity, &price, &currency, &on); err != nil {
			return nil, err
		}
		e, err := entry(side, ticker, seq, quantity, price, currency, on)
		if err != nil {
			return nil, fmt.Errorf("trade %d of %s: %w", seq, ticker, err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func entry(side, ticker string, seq int, quantity, price, currency, on string) (stockbook.Entry, error) {
	s, err := stockbook.ParseSide(side)
	if err != nil {
		return stockbook.Entry{}, err
	}
	q, err := decimal.NewFromString(quantity)
	if err != nil {
		return stockbook.Entry{}, fmt.Errorf("invalid quantity: %w", err)
	}
	p, err := decimal.NewFromString(price)
	if err != nil {
		return stockbook.Entry{}, fmt.Errorf("invalid price: %w", err)
	}
	d, err := date.Parse(on)
	if err != nil {
		return stockbook.Entry{}, err
	}
	return stockbook.Entry{
		Side:   s,
		Ticker: ticker,
		Trade:  stockbook.Trade{Seq: seq, Quantity: stockbook.Q(q), Price: stockbook.M(p, currency), Date: d},
	}, nil
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

var _ stockbook.Journal = (*Journal)(nil)
