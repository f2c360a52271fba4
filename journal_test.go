package stockbook

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestEncodeEntry(t *testing.T) {
	var buf bytes.Buffer
	e := Entry{Side: Sell, Ticker: "VOO", Trade: Trade{Seq: 2, Quantity: Q(5), Price: usd(150.25), Date: day("2024-01-04")}}
	if err := EncodeEntry(&buf, e); err != nil {
		t.Fatalf("EncodeEntry() unexpected error: %v", err)
	}
	want := `{"command":"sell","seq":2,"date":"2024-01-04","ticker":"VOO","quantity":5,"price":150.25,"currency":"USD"}` + "\n"
	if got := buf.String(); got != want {
		t.Errorf("EncodeEntry() = %q, want %q", got, want)
	}
}

func TestDecodeEntries(t *testing.T) {
	input := `{"command":"buy","seq":1,"date":"2024-01-02","ticker":"VOO","quantity":10,"price":100,"currency":"USD"}

{"command":"sell","seq":1,"date":"2024-01-04","ticker":"VOO","quantity":"5","price":"150.25","currency":"USD"}
`
	entries, err := DecodeEntries(strings.NewReader(input))
	if err != nil {
		t.Fatalf("DecodeEntries() unexpected error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("DecodeEntries() returned %d entries, want 2", len(entries))
	}
	sell := entries[1]
	if sell.Side != Sell || sell.Ticker != "VOO" || sell.Trade.Date != day("2024-01-04") {
		t.Errorf("entries[1] = %v, want the VOO sell of 2024-01-04", sell)
	}
	assertQuantity(t, "Quantity", sell.Trade.Quantity, 5)
	assertMoney(t, "Price", sell.Trade.Price, 150.25)

	if _, err := DecodeEntries(strings.NewReader(`{"command":"split"}`)); err == nil {
		t.Errorf("DecodeEntries() of an unknown command error = nil, want an error")
	}
}

func TestFileJournal(t *testing.T) {
	j := NewFileJournal(filepath.Join(t.TempDir(), "trades.jsonl"))
	entries, err := j.Entries()
	if err != nil || len(entries) != 0 {
		t.Fatalf("Entries() of a missing file = %v, %v, want nothing", entries, err)
	}
	want := []Entry{
		{Side: Buy, Ticker: "VOO", Trade: Trade{Seq: 1, Quantity: Q(10), Price: usd(100), Date: day("2024-01-02")}},
		{Side: Sell, Ticker: "VOO", Trade: Trade{Seq: 1, Quantity: Q(4), Price: usd(120), Date: day("2024-01-03")}},
	}
	for _, e := range want {
		if err := j.Append(e); err != nil {
			t.Fatalf("Append() unexpected error: %v", err)
		}
	}
	got, err := j.Entries()
	if err != nil {
		t.Fatalf("Entries() unexpected error: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("Entries() returned %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i].Side != want[i].Side || got[i].Trade.Seq != want[i].Trade.Seq ||
			!got[i].Trade.Quantity.Equal(want[i].Trade.Quantity) || !got[i].Trade.Price.Equal(want[i].Trade.Price) {
			t.Errorf("Entries()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
	if !reflect.DeepEqual(got[0].Trade.Date, want[0].Trade.Date) {
		t.Errorf("Entries()[0].Trade.Date = %v, want %v", got[0].Trade.Date, want[0].Trade.Date)
	}
}
