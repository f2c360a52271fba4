package stockbook

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a percentage, 100 means the whole.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", float64(p))
}

func (p Percent) SignedString() string {
	res := fmt.Sprintf("%+.2f%%", float64(p))
	if res == "+0.00%" {
		return "-"
	}
	return res
}

var hundred = decimal.NewFromInt(100)

// percentOf returns part/whole*100, or 0 when whole is zero.
func percentOf(part, whole Money) Percent {
	if whole.IsZero() {
		return 0
	}
	return Percent(part.value.Div(whole.value).Mul(hundred).InexactFloat64())
}
