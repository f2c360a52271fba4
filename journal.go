package stockbook

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/etnz/stockbook/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Entry is a recorded trade, as persisted by a [Journal].
type Entry struct {
	Side   Side
	Ticker string
	Trade  Trade
}

// Journal persists the trades of an account, in recording order.
type Journal interface {
	Append(Entry) error
	Entries() ([]Entry, error)
}

// entryLine is the JSON representation of an Entry.
type entryLine struct {
	Command  Side            `json:"command"`
	Seq      int             `json:"seq"`
	Date     date.Date       `json:"date"`
	Ticker   string          `json:"ticker"`
	Quantity decimal.Decimal `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// EncodeEntry writes a single entry to w as one JSON line.
func EncodeEntry(w io.Writer, e Entry) error {
	line := entryLine{
		Command:  e.Side,
		Seq:      e.Trade.Seq,
		Date:     e.Trade.Date,
		Ticker:   e.Ticker,
		Quantity: e.Trade.Quantity.Decimal(),
		Price:    e.Trade.Price.Decimal(),
		Currency: e.Trade.Price.Currency(),
	}
	data, err := json.Marshal(line)
	if err != nil {
		return fmt.Errorf("failed to marshal %s of %s: %w", e.Side, e.Ticker, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}
	return nil
}

// DecodeEntries reads a stream of JSON lines, written by EncodeEntry.
func DecodeEntries(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		data := scanner.Bytes()
		if len(data) == 0 {
			continue // Skip empty lines
		}
		var line entryLine
		if err := json.Unmarshal(data, &line); err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		side, err := ParseSide(string(line.Command))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		entries = append(entries, Entry{
			Side:   side,
			Ticker: line.Ticker,
			Trade: Trade{
				Seq:      line.Seq,
				Quantity: Q(line.Quantity),
				Price:    M(line.Price, line.Currency),
				Date:     line.Date,
			},
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// FileJournal is a [Journal] stored as a JSON lines file.
type FileJournal struct {
	path string
}

// NewFileJournal returns a journal stored in the file at path. The file is
// created on the first Append.
func NewFileJournal(path string) *FileJournal { return &FileJournal{path: path} }

// Path returns the journal file name.
func (j *FileJournal) Path() string { return j.path }

// Append adds an entry at the end of the file.
func (j *FileJournal) Append(e Entry) (err error) {
	f, err := os.OpenFile(j.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("cannot open journal: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return EncodeEntry(f, e)
}

// Entries reads every entry of the file. A missing file is an empty journal.
func (j *FileJournal) Entries() ([]Entry, error) {
	f, err := os.Open(j.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open journal: %w", err)
	}
	defer f.Close()
	entries, err := DecodeEntries(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read journal %q: %w", j.path, err)
	}
	return entries, nil
}

// MemoryJournal is a [Journal] kept in memory.
type MemoryJournal struct {
	entries []Entry
}

func (j *MemoryJournal) Append(e Entry) error {
	j.entries = append(j.entries, e)
	return nil
}

func (j *MemoryJournal) Entries() ([]Entry, error) { return j.entries, nil }
