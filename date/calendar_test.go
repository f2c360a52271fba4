package date

import (
	"testing"
	"time"
)

func TestWeekdays_IsTradingDay(t *testing.T) {
	christmas := New(2024, time.December, 25)
	cal := NewWeekdays(christmas)

	testCases := []struct {
		name string
		on   Date
		want bool
	}{
		{"Tuesday", New(2024, time.December, 10), true},
		{"Saturday", New(2024, time.December, 14), false},
		{"Sunday", New(2024, time.December, 15), false},
		{"Holiday", christmas, false},
		{"Inception", NasdaqInception, true},
		{"Before inception", New(1971, time.February, 5), false},
		{"Zero", Date{}, false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := cal.IsTradingDay(tc.on); got != tc.want {
				t.Errorf("IsTradingDay(%v) = %v, want %v", tc.on, got, tc.want)
			}
		})
	}
}

func TestWeekdays_TradingDays(t *testing.T) {
	cal := NewWeekdays(New(2024, time.December, 25))
	got := cal.TradingDays(New(2024, time.December, 21), New(2024, time.December, 27))
	want := []Date{New(2024, 12, 23), New(2024, 12, 24), New(2024, 12, 26), New(2024, 12, 27)}
	if len(got) != len(want) {
		t.Fatalf("TradingDays() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("TradingDays()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
