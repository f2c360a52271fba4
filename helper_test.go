package stockbook

import (
	"math"
	"testing"

	"github.com/etnz/stockbook/date"
)

func day(s string) date.Date { return date.MustParse(s) }

func usd(v float64) Money { return M(v, "USD") }

func usdRef(v float64) *Money {
	m := usd(v)
	return &m
}

func eurRef(v float64) *Money {
	m := M(v, "EUR")
	return &m
}

// assertMoney checks got against a float with a cent tolerance.
func assertMoney(t *testing.T, name string, got Money, want float64) {
	t.Helper()
	if math.Abs(got.Decimal().InexactFloat64()-want) > 0.005 {
		t.Errorf("%s = %v, want %v", name, got.Decimal(), want)
	}
}

func assertQuantity(t *testing.T, name string, got Quantity, want float64) {
	t.Helper()
	if !got.Equal(Q(want)) {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}
