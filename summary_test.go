package stockbook

import "testing"

func TestSummarize(t *testing.T) {
	records := []ProfitRecord{
		{
			Ticker: "VOO", InitialQuantity: Q(10), InitialPrice: usd(100), InitialValue: usd(1000),
			FinalQuantity: Q(10), FinalPrice: usd(130), FinalValue: usd(1300), Profit: usd(300), ProfitPct: 30,
		},
		{
			Ticker: "GONE", // never held in the window
		},
		{
			Ticker: "QQQ", InitialQuantity: Q(30), InitialPrice: usd(20), InitialValue: usd(600),
			FinalQuantity: Q(35), FinalPrice: usd(20), FinalValue: usd(700), Profit: usd(60), ProfitPct: 10,
		},
	}
	active, total := Summarize(records)
	if len(active) != 2 || active[0].Ticker != "QQQ" || active[1].Ticker != "VOO" {
		t.Fatalf("Summarize() records = %v, want QQQ and VOO", active)
	}
	if records[0].Weight != 0 {
		t.Errorf("Summarize() modified its input")
	}
	if !active[0].Weight.Equal(35) || !active[1].Weight.Equal(65) {
		t.Errorf("weights = %v, %v, want 35%%, 65%%", active[0].Weight, active[1].Weight)
	}

	if total.Ticker != TotalTicker {
		t.Errorf("Total.Ticker = %q, want %q", total.Ticker, TotalTicker)
	}
	assertQuantity(t, "Total.InitialQuantity", total.InitialQuantity, 40)
	assertQuantity(t, "Total.FinalQuantity", total.FinalQuantity, 45)
	assertMoney(t, "Total.InitialPrice", total.InitialPrice, 1600.0/40)
	assertMoney(t, "Total.FinalPrice", total.FinalPrice, 2000.0/45)
	assertMoney(t, "Total.InitialValue", total.InitialValue, 1600)
	assertMoney(t, "Total.FinalValue", total.FinalValue, 2000)
	assertMoney(t, "Total.Profit", total.Profit, 360)
	// 30*0.65 + 10*0.35
	if !total.ProfitPct.Equal(23) {
		t.Errorf("Total.ProfitPct = %v, want 23%%", total.ProfitPct)
	}
	if !total.Weight.Equal(100) {
		t.Errorf("Total.Weight = %v, want 100%%", total.Weight)
	}
}

func TestSummarize_Fallbacks(t *testing.T) {
	records := []ProfitRecord{
		{Ticker: "A", InitialPrice: usd(5)},
		{Ticker: "B", InitialPrice: usd(7)},
	}
	active, total := Summarize(records)
	if len(active) != 2 {
		t.Fatalf("Summarize() returned %d records, want 2", len(active))
	}
	// no initial quantity at all, keep the last record price
	assertMoney(t, "Total.InitialPrice", total.InitialPrice, 7)
	if !total.FinalPrice.IsZero() {
		t.Errorf("Total.FinalPrice = %v, want 0", total.FinalPrice)
	}
	if active[0].Weight != 0 {
		t.Errorf("Weight = %v, want 0 for a worthless portfolio", active[0].Weight)
	}
}

func TestSummarize_Empty(t *testing.T) {
	active, total := Summarize(nil)
	if len(active) != 0 {
		t.Errorf("Summarize(nil) records = %v, want none", active)
	}
	if !total.Profit.IsZero() || total.Ticker != TotalTicker {
		t.Errorf("Summarize(nil) total = %v, want an empty total", total)
	}
}
