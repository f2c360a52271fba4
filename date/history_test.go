package date

import "testing"

func TestHistory_Append(t *testing.T) {
	h := new(History[string])
	d1, v1 := New(2025, 07, 01), "25 Jul 1"
	d2, v2 := New(2024, 07, 01), "24 Jul 1"

	// Appending in reverse order must keep the history sorted.
	h.Append(d1, v1)
	h.Append(d2, v2)
	if h.Len() != 2 {
		t.Fatalf("History.Len() = %v want 2", h.Len())
	}
	if h.points[0].on != d2 || h.points[1].on != d1 {
		t.Errorf("history days = [%v %v], want [%v %v]", h.points[0].on, h.points[1].on, d2, d1)
	}

	h.Append(d1, "replaced")
	if got, _ := h.Get(d1); got != "replaced" || h.Len() != 2 {
		t.Errorf("Append() on existing day = %q (len %d), want replaced (len 2)", got, h.Len())
	}
}

func TestHistory_GetLatest(t *testing.T) {
	h := new(History[float64])
	h.Append(New(2024, 1, 2), 10).Append(New(2024, 1, 5), 12)

	testCases := []struct {
		on     Date
		want   float64
		wantOk bool
	}{
		{New(2024, 1, 1), 0, false},
		{New(2024, 1, 2), 10, true},
		{New(2024, 1, 4), 0, false},
		{New(2024, 1, 5), 12, true},
	}
	for _, tc := range testCases {
		got, ok := h.Get(tc.on)
		if got != tc.want || ok != tc.wantOk {
			t.Errorf("Get(%v) = %v, %v want %v, %v", tc.on, got, ok, tc.want, tc.wantOk)
		}
	}
	if day, v := h.Latest(); day != New(2024, 1, 5) || v != 12 {
		t.Errorf("Latest() = %v, %v want 2024-01-05, 12", day, v)
	}
}
