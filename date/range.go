package date

import (
	"fmt"
	"iter"
)

// Range represents a closed range of dates.
type Range struct{ From, To Date }

// Valid reports whether both bounds are set and From is not after To.
func (r Range) Valid() bool {
	return !r.From.IsZero() && !r.To.IsZero() && !r.From.After(r.To)
}

// Days iterates over every calendar day of the range in order.
func (r Range) Days() iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := r.From; !d.After(r.To); d = d.Add(1) {
			if !yield(d) {
				return
			}
		}
	}
}

func (r Range) String() string { return fmt.Sprintf("%s..%s", r.From, r.To) }
