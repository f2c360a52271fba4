// Package date provides a day-granularity Date used by every ledger and report
// of stockbook, along with ranges, periods, dated histories and the trading
// calendar.
package date

import (
	"cmp"
	"fmt"
	"time"
)

// Layout is the ISO-8601 layout dates are written with.
const Layout = "2006-01-02"

// readLayout also accepts single-digit months and days.
const readLayout = "2006-1-2"

// Date is a calendar day, without time or location.
//
// The zero Date is the unset value and prints as "".
type Date struct {
	y int
	m time.Month
	d int
}

// New returns the Date of year, month and day, normalized like time.Date:
// February 30 is March 1 or 2.
func New(year int, month time.Month, day int) Date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return Date{y, m, d}
}

// Today returns the current local date.
func Today() Date { return New(time.Now().Date()) }

func (d Date) Year() int             { return d.y }
func (d Date) Month() time.Month     { return d.m }
func (d Date) Day() int              { return d.d }
func (d Date) IsZero() bool          { return d == Date{} }
func (d Date) Weekday() time.Weekday { return d.time().Weekday() }

// time is midnight UTC of d.
func (d Date) time() time.Time { return time.Date(d.y, d.m, d.d, 0, 0, 0, 0, time.UTC) }

// Add returns d moved by days, which may be negative.
func (d Date) Add(days int) Date { return New(d.y, d.m, d.d+days) }

// Compare returns -1, 0 or +1 depending on whether d is before, equal or after x.
func (d Date) Compare(x Date) int {
	if c := cmp.Compare(d.y, x.y); c != 0 {
		return c
	}
	if c := cmp.Compare(d.m, x.m); c != 0 {
		return c
	}
	return cmp.Compare(d.d, x.d)
}

func (d Date) Before(x Date) bool { return d.Compare(x) < 0 }
func (d Date) After(x Date) bool  { return d.Compare(x) > 0 }

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.y, d.m, d.d)
}

// Parse reads a date in the ISO layout, allowing "2025-7-1". Other layouts
// go through [Normalize].
func Parse(s string) (Date, error) {
	t, err := time.Parse(readLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q want format %q: %w", s, Layout, err)
	}
	return New(t.Date()), nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// MarshalText writes d in the ISO layout, so d is a JSON string.
func (d Date) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

// UnmarshalText reads an ISO date. An empty text is the zero Date.
func (d *Date) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Date{}
		return nil
	}
	v, err := Parse(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
