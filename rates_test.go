package rsutax

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

func TestRateTable_Resolve_ExactMonthEnd(t *testing.T) {
	table := NewRateTable()
	table.Append(date.New(2024, time.February, 29), decimal.NewFromFloat(83.0))

	day, rate, ev, err := table.Resolve(date.New(2024, time.March, 10))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if day != date.New(2024, time.February, 29) {
		t.Errorf("Resolve() day = %s, want 2024-02-29", day)
	}
	if !rate.Equal(decimal.NewFromFloat(83.0)) {
		t.Errorf("Resolve() rate = %s, want 83", rate)
	}
	if ev != nil {
		t.Errorf("Resolve() unexpected fallback event %+v", ev)
	}
}

func TestRateTable_Resolve_Fallback(t *testing.T) {
	// Month-end (Sunday, say) is absent, but two days earlier is quoted.
	table := NewRateTable()
	table.Append(date.New(2024, time.June, 28), decimal.NewFromFloat(83.45))

	day, rate, ev, err := table.Resolve(date.New(2024, time.July, 3))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if day != date.New(2024, time.June, 28) {
		t.Errorf("Resolve() day = %s, want 2024-06-28", day)
	}
	if !rate.Equal(decimal.NewFromFloat(83.45)) {
		t.Errorf("Resolve() rate = %s", rate)
	}
	if ev == nil {
		t.Fatal("Resolve() expected a fallback event")
	}
	if ev.Required != date.New(2024, time.June, 30) || ev.Used != date.New(2024, time.June, 28) {
		t.Errorf("fallback event = %+v", ev)
	}
}

func TestRateTable_Resolve_MissingRate(t *testing.T) {
	// Nothing quoted in the whole 7-day window before month-end.
	table := NewRateTable()
	table.Append(date.New(2024, time.June, 20), decimal.NewFromFloat(83.0)) // too far back

	_, _, _, err := table.Resolve(date.New(2024, time.July, 3))
	if err == nil {
		t.Fatal("Resolve() expected error")
	}
	var missing *MissingRateError
	if !errors.As(err, &missing) {
		t.Fatalf("Resolve() error = %T, want *MissingRateError", err)
	}
	if missing.Required != date.New(2024, time.June, 30) {
		t.Errorf("MissingRateError.Required = %s, want 2024-06-30", missing.Required)
	}
}

func TestRateTable_Resolve_WindowBoundary(t *testing.T) {
	// A rate exactly 6 days back is the last one still inside the window.
	table := NewRateTable()
	table.Append(date.New(2024, time.June, 24), decimal.NewFromFloat(83.1))

	day, _, ev, err := table.Resolve(date.New(2024, time.July, 15))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if day != date.New(2024, time.June, 24) {
		t.Errorf("Resolve() day = %s, want 2024-06-24", day)
	}
	if ev == nil {
		t.Error("Resolve() expected a fallback event")
	}

	// One more day back and it is out of reach.
	table = NewRateTable()
	table.Append(date.New(2024, time.June, 23), decimal.NewFromFloat(83.1))
	if _, _, _, err := table.Resolve(date.New(2024, time.July, 15)); err == nil {
		t.Error("Resolve() expected MissingRateError past the window")
	}
}
