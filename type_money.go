package stockbook

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money represents a monetary value, either a price per share or an amount.
//
// The zero Money has no currency, which makes it compatible with any other.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

// M returns a Money.
func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value.
func (m Money) String() string {
	cur := m.currency()
	dec := m.value.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(dec.IntPart())
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

func (m Money) Currency() string              { return m.cur }
func (m Money) Decimal() decimal.Decimal      { return m.value }
func (m Money) Equal(n Money) bool            { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool                  { return m.value.IsZero() }
func (m Money) IsPositive() bool              { return m.value.IsPositive() }
func (m Money) IsNegative() bool              { return m.value.IsNegative() }
func (m Money) LessThan(n Money) bool         { return m.value.LessThan(n.value) }
func (m Money) GreaterThan(n Money) bool      { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                    { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Mul(q Quantity) Money          { return Money{value: m.value.Mul(q.value), cur: m.cur} }
func (m Money) Scale(f decimal.Decimal) Money { return Money{value: m.value.Mul(f), cur: m.cur} }

// Div divides m by a non zero quantity.
func (m Money) Div(q Quantity) Money { return Money{value: m.value.Div(q.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// compatible reports whether m and n can be added, the "" currency being
// compatible with any other.
func (m Money) compatible(n Money) bool { return m.cur == "" || n.cur == "" || m.cur == n.cur }

// makes the "" currency totally weak.
func cur(a, b Money) string {
	if a.cur == "" {
		return b.cur
	}
	if b.cur == "" {
		return a.cur
	}
	if a.cur != b.cur {
		panic("currency mismatch " + a.cur + "!=" + b.cur)
	}
	return a.cur
}
