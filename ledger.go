package stockbook

import (
	"fmt"
	"slices"
	"sort"

	"github.com/etnz/stockbook/date"
)

// Side is the direction of a trade.
type Side string

const (
	Buy  Side = "buy"
	Sell Side = "sell"
)

// ParseSide parses "buy" or "sell".
func ParseSide(s string) (Side, error) {
	switch Side(s) {
	case Buy, Sell:
		return Side(s), nil
	default:
		return "", fmt.Errorf("unknown trade side %q", s)
	}
}

// Trade is one buy or sell of a ticker.
type Trade struct {
	// Seq is 1 plus the number of trades recorded before it for the same ticker
	// and side.
	Seq      int
	Quantity Quantity
	Price    Money
	Date     date.Date

	ord int // position among all trades of the ticker, both sides
}

// Value returns the trade quantity times its price.
func (t Trade) Value() Money { return t.Price.Mul(t.Quantity) }

// trades holds the trades of one side of a ticker.
type trades struct {
	list   []Trade    // insertion order
	byDate []int      // indexes into list, by date then insertion
	cumul  []Quantity // cumul[i] is the quantity of byDate[:i+1]
}

// cut returns the number of trades dated on or before day.
func (s *trades) cut(day date.Date) int {
	return sort.Search(len(s.byDate), func(k int) bool {
		return s.list[s.byDate[k]].Date.After(day)
	})
}

func (s *trades) add(t Trade) {
	s.list = append(s.list, t)
	i := s.cut(t.Date)
	s.byDate = slices.Insert(s.byDate, i, len(s.list)-1)
	s.cumul = slices.Insert(s.cumul, i, Quantity{})
	for k := i; k < len(s.byDate); k++ {
		var prev Quantity
		if k > 0 {
			prev = s.cumul[k-1]
		}
		s.cumul[k] = prev.Add(s.list[s.byDate[k]].Quantity)
	}
}

// upTo returns the total quantity traded on or before day.
func (s *trades) upTo(day date.Date) Quantity {
	n := s.cut(day)
	if n == 0 {
		return Quantity{}
	}
	return s.cumul[n-1]
}

// between returns the trades dated in (from, to], by date.
func (s *trades) between(from, to date.Date) []Trade {
	lo, hi := s.cut(from), s.cut(to)
	if hi <= lo {
		return nil
	}
	res := make([]Trade, 0, hi-lo)
	for _, k := range s.byDate[lo:hi] {
		res = append(res, s.list[k])
	}
	return res
}

type book struct {
	buys, sells trades
	count       int
}

func (b *book) side(s Side) *trades {
	if s == Sell {
		return &b.sells
	}
	return &b.buys
}

// Ledger is the append-only record of every trade, indexed by ticker.
//
// Within a ticker and a side, trades keep their insertion order. Trades are
// never reordered nor removed.
type Ledger struct {
	books   map[string]*book
	tickers []string // in first trade order
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{books: make(map[string]*book)}
}

// Next returns the trade that Record would append, without recording it.
func (l *Ledger) Next(s Side, ticker string, q Quantity, price Money, on date.Date) Trade {
	t := Trade{Seq: 1, Quantity: q, Price: price, Date: on}
	if b, ok := l.books[ticker]; ok {
		t.Seq = len(b.side(s).list) + 1
		t.ord = b.count
	}
	return t
}

// Record appends a trade to the ledger and returns it.
//
// Record does not validate anything, callers are expected to check the
// quantity, the price and the date beforehand.
func (l *Ledger) Record(s Side, ticker string, q Quantity, price Money, on date.Date) Trade {
	t := l.Next(s, ticker, q, price, on)
	b, ok := l.books[ticker]
	if !ok {
		b = new(book)
		l.books[ticker] = b
		l.tickers = append(l.tickers, ticker)
	}
	b.side(s).add(t)
	b.count++
	return t
}

// Has reports whether ticker was ever traded.
func (l *Ledger) Has(ticker string) bool {
	_, ok := l.books[ticker]
	return ok
}

// Tickers returns every traded ticker, sorted.
func (l *Ledger) Tickers() []string {
	res := slices.Clone(l.tickers)
	slices.Sort(res)
	return res
}

// Trades returns the trades of a ticker on one side, in insertion order.
func (l *Ledger) Trades(s Side, ticker string) []Trade {
	b, ok := l.books[ticker]
	if !ok {
		return nil
	}
	return slices.Clone(b.side(s).list)
}

// Len returns the total number of trades.
func (l *Ledger) Len() int {
	n := 0
	for _, b := range l.books {
		n += b.count
	}
	return n
}

// FirstDate returns the earliest trade date of the whole ledger, or the zero
// Date for an empty ledger.
func (l *Ledger) FirstDate() date.Date {
	var first date.Date
	for _, b := range l.books {
		for _, s := range []*trades{&b.buys, &b.sells} {
			if len(s.byDate) == 0 {
				continue
			}
			d := s.list[s.byDate[0]].Date
			if first.IsZero() || d.Before(first) {
				first = d
			}
		}
	}
	return first
}

// HeldAt returns the quantity of ticker held at the end of day: bought on or
// before day minus sold on or before day.
func (l *Ledger) HeldAt(ticker string, day date.Date) Quantity {
	b, ok := l.books[ticker]
	if !ok {
		return Quantity{}
	}
	return b.buys.upTo(day).Sub(b.sells.upTo(day))
}

// Between returns the buy and sell events of ticker dated in (from, to],
// ordered by date. Same day events keep their insertion order.
func (l *Ledger) Between(ticker string, from, to date.Date) []Event {
	b, ok := l.books[ticker]
	if !ok {
		return nil
	}
	buys, sells := b.buys.between(from, to), b.sells.between(from, to)
	type dated struct {
		ord int
		e   Event
	}
	all := make([]dated, 0, len(buys)+len(sells))
	for _, t := range buys {
		all = append(all, dated{t.ord, BuyEvent{Ticker: ticker, Quantity: t.Quantity, Price: t.Price, On: t.Date}})
	}
	for _, t := range sells {
		all = append(all, dated{t.ord, SellEvent{Ticker: ticker, Quantity: t.Quantity, Price: t.Price, On: t.Date}})
	}
	slices.SortFunc(all, func(a, b dated) int {
		if c := a.e.Date().Compare(b.e.Date()); c != 0 {
			return c
		}
		return a.ord - b.ord
	})
	events := make([]Event, len(all))
	for i, d := range all {
		events[i] = d.e
	}
	return events
}
