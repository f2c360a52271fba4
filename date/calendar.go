package date

import "time"

// Weekdays is a trading calendar open Monday to Friday, from NASDAQ inception,
// except on the listed holidays.
type Weekdays struct {
	holidays map[Date]struct{}
}

// NewWeekdays returns a weekday calendar closed on the given holidays.
func NewWeekdays(holidays ...Date) *Weekdays {
	w := &Weekdays{holidays: make(map[Date]struct{}, len(holidays))}
	for _, h := range holidays {
		w.holidays[h] = struct{}{}
	}
	return w
}

// IsTradingDay reports whether the market is open on day.
func (w *Weekdays) IsTradingDay(day Date) bool {
	if day.IsZero() || day.Before(NasdaqInception) {
		return false
	}
	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	_, closed := w.holidays[day]
	return !closed
}

// TradingDays returns the ordered trading days between from and to, both included.
func (w *Weekdays) TradingDays(from, to Date) []Date {
	var days []Date
	for d := range (Range{From: from, To: to}).Days() {
		if w.IsTradingDay(d) {
			days = append(days, d)
		}
	}
	return days
}
