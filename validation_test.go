package rsutax

import (
	"testing"

	"github.com/etnz/rsutax/date"
)

func checkByName(t *testing.T, cs Checks, name string) Check {
	t.Helper()
	for _, c := range cs {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("no check named %q in %v", name, cs)
	return Check{}
}

func TestValidate_AllPass(t *testing.T) {
	rates := ratesFor(t, map[string]float64{
		"2021-12-31": 74.0,
		"2024-01-31": 83.0,
	})
	sales := []SaleTransaction{NewSale(date.MustParse("2024-02-10"), d(160), d(50))}
	lots := []AcquisitionLot{NewLot(date.MustParse("2022-01-10"), d(100), d(100))}

	res, err := Match(sales, lots, rates)
	if err != nil {
		t.Fatal(err)
	}
	c := Compute(res.Disposals, M(0, INR), DefaultConfig().TaxRates, DefaultConfig().Slabs, CliffSurcharge)

	checks := Validate(sales, lots, res, c)
	if checks.Failed() {
		t.Errorf("clean run failed validation: %+v", checks)
	}
}

func TestValidate_FlagsOverselling(t *testing.T) {
	rates := ratesFor(t, map[string]float64{
		"2021-12-31": 74.0,
		"2024-01-31": 83.0,
	})
	sales := []SaleTransaction{NewSale(date.MustParse("2024-02-10"), d(160), d(100))}
	lots := []AcquisitionLot{NewLot(date.MustParse("2022-01-10"), d(100), d(30))}

	res, err := Match(sales, lots, rates)
	if err != nil {
		t.Fatal(err)
	}
	c := Compute(res.Disposals, M(0, INR), DefaultConfig().TaxRates, DefaultConfig().Slabs, CliffSurcharge)

	checks := Validate(sales, lots, res, c)
	if !checks.Failed() {
		t.Fatal("oversold run passed validation")
	}
	if chk := checkByName(t, checks, "Overselling"); chk.Passed {
		t.Errorf("Overselling check passed on 70 unmatched shares: %+v", chk)
	}
	if chk := checkByName(t, checks, "Share count match"); !chk.Passed {
		t.Errorf("Share count match should still hold, unmatched shares are accounted for: %+v", chk)
	}
}

func TestValidate_FlagsEmptyInputs(t *testing.T) {
	rates := NewRateTable()
	res, err := Match(nil, nil, rates)
	if err != nil {
		t.Fatal(err)
	}
	c := Compute(nil, M(0, INR), DefaultConfig().TaxRates, DefaultConfig().Slabs, CliffSurcharge)

	checks := Validate(nil, nil, res, c)
	if chk := checkByName(t, checks, "Input sanity"); chk.Passed {
		t.Errorf("Input sanity passed with no sales and no lots: %+v", chk)
	}
}

func TestValidate_FlagsBrokenTaxTotal(t *testing.T) {
	rates := ratesFor(t, map[string]float64{
		"2021-12-31": 74.0,
		"2024-01-31": 83.0,
	})
	sales := []SaleTransaction{NewSale(date.MustParse("2024-02-10"), d(160), d(50))}
	lots := []AcquisitionLot{NewLot(date.MustParse("2022-01-10"), d(100), d(100))}

	res, err := Match(sales, lots, rates)
	if err != nil {
		t.Fatal(err)
	}
	c := Compute(res.Disposals, M(0, INR), DefaultConfig().TaxRates, DefaultConfig().Slabs, CliffSurcharge)
	c.TotalTax = c.TotalTax.Add(M(1, INR))

	checks := Validate(sales, lots, res, c)
	if chk := checkByName(t, checks, "Tax integrity"); chk.Passed {
		t.Errorf("Tax integrity passed on a tampered total: %+v", chk)
	}
}
