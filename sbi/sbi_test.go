package sbi

import (
	"strings"
	"testing"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

const sampleCSV = `DATE,PDF FILE,TT BUY,TT SELL,BILL BUY,BILL SELL
2024-06-27 09:00,2024-06-27.pdf,83.12,83.98,83.05,84.10
2024-06-28,2024-06-28.pdf,83.20,84.06,83.13,84.18
2024-07-01,2024-07-01.pdf,0,0,0,0
bogus,?,not-a-rate,,,
`

func TestParse(t *testing.T) {
	table, err := Parse(strings.NewReader(sampleCSV))
	if err != nil {
		t.Fatal(err)
	}
	if table.Len() != 2 {
		t.Fatalf("got %d rows, want 2 (zero and bogus rows skipped)", table.Len())
	}

	rate, ok := table.Get(date.MustParse("2024-06-28"))
	if !ok {
		t.Fatal("no rate for 2024-06-28")
	}
	if want := decimal.NewFromFloat(83.20); !rate.Equal(want) {
		t.Errorf("rate = %s, want %s", rate, want)
	}
	// timestamped date form is accepted too
	if _, ok := table.Get(date.MustParse("2024-06-27")); !ok {
		t.Error("no rate for the timestamped row 2024-06-27")
	}
}

func TestParse_ReorderedColumns(t *testing.T) {
	csv := "PDF FILE,TT BUY,DATE\nx.pdf,82.50,2024-05-31\n"
	table, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	rate, ok := table.Get(date.MustParse("2024-05-31"))
	if !ok || !rate.Equal(decimal.NewFromFloat(82.50)) {
		t.Errorf("rate = %s (found %v), want 82.5", rate, ok)
	}
}

func TestParse_MissingColumn(t *testing.T) {
	if _, err := Parse(strings.NewReader("DATE,TT SELL\n2024-05-31,83.0\n")); err == nil {
		t.Fatal("expected an error on a header without TT BUY")
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse(strings.NewReader("DATE,TT BUY\n")); err == nil {
		t.Fatal("expected an error on a CSV with no usable rows")
	}
}

func TestRawURL(t *testing.T) {
	got := RawURL("https://github.com/sahilgupta/sbi-fx-ratekeeper/blob/main/csv_files/SBI_REFERENCE_RATES_USD.csv")
	want := "https://raw.githubusercontent.com/sahilgupta/sbi-fx-ratekeeper/main/csv_files/SBI_REFERENCE_RATES_USD.csv"
	if got != want {
		t.Errorf("RawURL = %q, want %q", got, want)
	}
	if got := RawURL("https://example.com/rates.csv"); got != "https://example.com/rates.csv" {
		t.Errorf("non-github URL was rewritten: %q", got)
	}
}
