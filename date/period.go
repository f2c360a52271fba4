package date

import (
	"fmt"
	"strings"
	"time"
)

// Period is a well known calendar period used to derive report windows.
type Period int

const (
	Daily Period = iota
	Weekly
	Monthly
	Quarterly
	Yearly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "day"
	case Weekly:
		return "week"
	case Monthly:
		return "month"
	case Quarterly:
		return "quarter"
	case Yearly:
		return "year"
	default:
		panic(fmt.Sprintf("unknown period %d", int(p)))
	}
}

// ParsePeriod accepts both the noun ("month") and the adjective ("monthly").
func ParsePeriod(p string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(p)) {
	case "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	case "quarterly", "quarter":
		return Quarterly, nil
	case "yearly", "year":
		return Yearly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", p)
	}
}

// Range returns the range of the period that starts at the beginning of the
// period containing end, and stops at end.
func (p Period) Range(end Date) Range {
	return Range{From: end.StartOf(p), To: end}
}

// StartOf returns the first day of the period containing d. Weeks start on
// Monday.
func (d Date) StartOf(p Period) Date {
	switch p {
	case Daily:
		return d
	case Weekly:
		return d.Add(-((int(d.Weekday()) + 6) % 7))
	case Monthly:
		return New(d.y, d.m, 1)
	case Quarterly:
		return New(d.y, d.m-(d.m-1)%3, 1)
	case Yearly:
		return New(d.y, time.January, 1)
	default:
		panic(fmt.Sprintf("unknown period %d", int(p)))
	}
}

