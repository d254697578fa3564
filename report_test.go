package rsutax

import (
	"errors"
	"testing"

	"github.com/etnz/rsutax/date"
)

func TestBuildReport_EndToEnd(t *testing.T) {
	rates := ratesFor(t, map[string]float64{
		"2021-12-31": 75.0,
		"2024-01-31": 83.0,
		"2024-05-31": 83.5,
	})
	in := Inputs{
		Sales: []SaleTransaction{
			NewSale(date.MustParse("2024-02-10"), d(160), d(50)),
		},
		Lots: []AcquisitionLot{
			NewLot(date.MustParse("2022-01-10"), d(100), d(100)),
		},
		Rates:          rates,
		LatestPriceUSD: M(80, USD),
		Today:          date.MustParse("2024-06-20"),
		Config:         DefaultConfig(),
	}

	rep, err := BuildReport(in)
	if err != nil {
		t.Fatal(err)
	}

	if len(rep.Disposals) != 1 {
		t.Fatalf("got %d disposals, want 1", len(rep.Disposals))
	}
	if rep.Disposals[0].Class != LongTerm {
		t.Errorf("disposal class = %s, want LTCG", rep.Disposals[0].Class)
	}
	if len(rep.Schedule) != 4 {
		t.Errorf("got %d installments, want 4", len(rep.Schedule))
	}
	// 50 shares left at cost 100 valued at 80: an unrealized loss to harvest.
	if len(rep.Harvest) != 1 {
		t.Errorf("got %d harvest candidates, want 1", len(rep.Harvest))
	}
	if rep.Checks.Failed() {
		t.Errorf("validation failed: %+v", rep.Checks)
	}
	if !rep.Matched.Equal(Q(50)) {
		t.Errorf("Matched = %s, want 50", rep.Matched)
	}
}

func TestBuildReport_MissingRateAborts(t *testing.T) {
	rates := ratesFor(t, map[string]float64{"2024-01-31": 83.0})
	in := Inputs{
		Sales:  []SaleTransaction{NewSale(date.MustParse("2024-02-10"), d(160), d(50))},
		Lots:   []AcquisitionLot{NewLot(date.MustParse("2022-01-10"), d(100), d(100))},
		Rates:  rates,
		Today:  date.MustParse("2024-06-20"),
		Config: DefaultConfig(),
	}

	rep, err := BuildReport(in)
	var missing *MissingRateError
	if !errors.As(err, &missing) {
		t.Fatalf("err = %v, want a *MissingRateError", err)
	}
	if rep != nil {
		t.Errorf("got a partial report alongside the error: %+v", rep)
	}
}
