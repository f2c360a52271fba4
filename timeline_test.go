package stockbook

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/etnz/stockbook/date"
)

// brokenPrices fails every lookup with err.
type brokenPrices struct{ err error }

func (b brokenPrices) ClosePrice(context.Context, string, date.Date) (Money, error) {
	return Money{}, b.err
}
func (b brokenPrices) CurrentPrice(context.Context, string) (Money, error) { return Money{}, b.err }
func (b brokenPrices) IsValidSymbol(context.Context, string) bool          { return false }
func (b brokenPrices) Currency() string                                    { return "USD" }

func vooLedger() *Ledger {
	l := NewLedger()
	l.Record(Buy, "VOO", Q(10), usd(100), day("2024-01-02"))
	l.Record(Buy, "VOO", Q(5), usd(105), day("2024-01-08"))
	l.Record(Sell, "VOO", Q(3), usd(110), day("2024-01-10"))
	return l
}

func vooMarket() *Market {
	return NewMarket("USD").
		AppendClose("VOO", day("2024-01-02"), 100).
		AppendClose("VOO", day("2024-01-05"), 102).
		AppendClose("VOO", day("2024-01-10"), 112)
}

func TestReconstruct(t *testing.T) {
	window := date.Range{From: day("2024-01-06"), To: day("2024-01-10")}
	tl, err := Reconstruct(context.Background(), vooLedger(), vooMarket(), "VOO", window)
	if err != nil {
		t.Fatalf("Reconstruct() unexpected error: %v", err)
	}
	assertQuantity(t, "Start.Quantity", tl.Start.Quantity, 10)
	// saturday start falls back to friday close
	assertMoney(t, "Start.CostBasis", tl.Start.CostBasis, 102)
	assertMoney(t, "Start.Value", tl.Start.Value, 1020)
	if tl.Degraded {
		t.Errorf("Degraded = true, want false")
	}

	want := []Event{
		BuyEvent{Ticker: "VOO", Quantity: Q(5), Price: usd(105), On: day("2024-01-08")},
		SellEvent{Ticker: "VOO", Quantity: Q(3), Price: usd(110), On: day("2024-01-10")},
		BoundaryEvent{Ticker: "VOO", On: day("2024-01-10")},
	}
	if !reflect.DeepEqual(tl.Events, want) {
		t.Errorf("Events = %v, want %v", tl.Events, want)
	}
}

func TestReconstruct_Idempotent(t *testing.T) {
	ctx := context.Background()
	l, m := vooLedger(), vooMarket()
	window := date.Range{From: day("2024-01-01"), To: day("2024-01-10")}
	first, err := Reconstruct(ctx, l, m, "VOO", window)
	if err != nil {
		t.Fatalf("Reconstruct() unexpected error: %v", err)
	}
	second, err := Reconstruct(ctx, l, m, "VOO", window)
	if err != nil {
		t.Fatalf("Reconstruct() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Reconstruct() is not idempotent: %v != %v", first, second)
	}
}

func TestReconstruct_StartPrice(t *testing.T) {
	ctx := context.Background()
	testCases := []struct {
		name         string
		from         string
		prices       Prices
		wantDegraded bool
		wantErr      error
	}{
		{"nothing held needs no price", "2024-01-01", brokenPrices{errors.New("offline")}, false, nil},
		{"too far from any close", "2024-03-01", vooMarket(), true, nil},
		{"gateway failure", "2024-01-05", brokenPrices{errors.New("offline")}, false, errors.New("offline")},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			window := date.Range{From: day(tc.from), To: day("2024-03-29")}
			tl, err := Reconstruct(ctx, vooLedger(), tc.prices, "VOO", window)
			if tc.wantErr != nil {
				if err == nil {
					t.Fatalf("Reconstruct() error = nil, want %v", tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Reconstruct() unexpected error: %v", err)
			}
			if tl.Degraded != tc.wantDegraded {
				t.Errorf("Degraded = %v, want %v", tl.Degraded, tc.wantDegraded)
			}
		})
	}
}

func TestReconstruct_InvalidWindow(t *testing.T) {
	window := date.Range{From: day("2024-01-10"), To: day("2024-01-01")}
	_, err := Reconstruct(context.Background(), vooLedger(), vooMarket(), "VOO", window)
	if !errors.Is(err, ErrInvalidDate) {
		t.Errorf("Reconstruct() error = %v, want %v", err, ErrInvalidDate)
	}
}
