package rsutax

import (
	"reflect"
	"testing"
)

// disposalOf builds a bare disposal carrying only what Compute reads.
func disposalOf(class GainClass, gainINR float64) Disposal {
	return Disposal{Class: class, GainINR: M(gainINR, INR)}
}

func fy2425() (TaxRates, []SurchargeSlab) {
	cfg := DefaultConfig()
	return cfg.TaxRates, cfg.Slabs
}

func TestCompute_SetOffLaw(t *testing.T) {
	// stcg=100, stcl=40, ltcg=50, ltcl=80:
	// LTCL wipes LTCG; STCL is fully absorbed by STCG, so nothing else
	// reaches the long-term side.
	disposals := []Disposal{
		disposalOf(ShortTerm, 100),
		disposalOf(ShortTerm, -40),
		disposalOf(LongTerm, 50),
		disposalOf(LongTerm, -80),
	}
	rates, slabs := fy2425()
	c := Compute(disposals, M(0, INR), rates, slabs, CliffSurcharge)

	if want := M(60, INR); !c.NetTaxableSTCG.Equal(want) {
		t.Errorf("NetTaxableSTCG = %s, want %s", c.NetTaxableSTCG, want)
	}
	if !c.NetTaxableLTCG.IsZero() {
		t.Errorf("NetTaxableLTCG = %s, want 0", c.NetTaxableLTCG)
	}
}

func TestCompute_ExcessSTCLOffsetsLTCG(t *testing.T) {
	// STCL exceeds STCG; the excess eats into LTCG.
	disposals := []Disposal{
		disposalOf(ShortTerm, 100),
		disposalOf(ShortTerm, -150),
		disposalOf(LongTerm, 200),
	}
	rates, slabs := fy2425()
	c := Compute(disposals, M(0, INR), rates, slabs, CliffSurcharge)

	if !c.NetTaxableSTCG.IsZero() {
		t.Errorf("NetTaxableSTCG = %s, want 0", c.NetTaxableSTCG)
	}
	if want := M(150, INR); !c.NetTaxableLTCG.Equal(want) {
		t.Errorf("NetTaxableLTCG = %s, want %s", c.NetTaxableLTCG, want)
	}
}

func TestCompute_LTCLNeverOffsetsSTCG(t *testing.T) {
	disposals := []Disposal{
		disposalOf(ShortTerm, 100),
		disposalOf(LongTerm, -500),
	}
	rates, slabs := fy2425()
	c := Compute(disposals, M(0, INR), rates, slabs, CliffSurcharge)

	if want := M(100, INR); !c.NetTaxableSTCG.Equal(want) {
		t.Errorf("NetTaxableSTCG = %s, want %s: a long-term loss must not touch it", c.NetTaxableSTCG, want)
	}
}

func TestCompute_Liability(t *testing.T) {
	// 1,000,000 STCG and 400,000 LTCG with no other income: no surcharge,
	// base = 300,000 + 50,000, cess 4%.
	disposals := []Disposal{
		disposalOf(ShortTerm, 1_000_000),
		disposalOf(LongTerm, 400_000),
	}
	rates, slabs := fy2425()
	c := Compute(disposals, M(0, INR), rates, slabs, CliffSurcharge)

	if want := M(350_000, INR); !c.BaseTax.Equal(want) {
		t.Errorf("BaseTax = %s, want %s", c.BaseTax, want)
	}
	if !c.SurchargeRate.IsZero() {
		t.Errorf("SurchargeRate = %s, want 0", c.SurchargeRate)
	}
	if !c.Surcharge.IsZero() {
		t.Errorf("Surcharge = %s, want 0", c.Surcharge)
	}
	if want := M(14_000, INR); !c.Cess.Equal(want) {
		t.Errorf("Cess = %s, want %s", c.Cess, want)
	}
	if want := M(364_000, INR); !c.TotalTax.Equal(want) {
		t.Errorf("TotalTax = %s, want %s", c.TotalTax, want)
	}
}

func TestCompute_SurchargeCliff(t *testing.T) {
	// Other income pushes the total past the 1 Cr threshold: 15% on the whole
	// base tax, not just the part above the threshold.
	disposals := []Disposal{disposalOf(ShortTerm, 2_000_000)}
	rates, slabs := fy2425()
	c := Compute(disposals, M(9_000_000, INR), rates, slabs, CliffSurcharge)

	if want := Percent(0.15); !c.SurchargeRate.Equal(want) {
		t.Errorf("SurchargeRate = %s, want %s", c.SurchargeRate, want)
	}
	if want := M(90_000, INR); !c.Surcharge.Equal(want) {
		t.Errorf("Surcharge = %s, want %s (15%% of the whole base tax)", c.Surcharge, want)
	}
}

func TestCliffSurcharge_ThresholdNotExceeded(t *testing.T) {
	_, slabs := fy2425()
	// Exactly at a threshold is not "strictly exceeded".
	if got := CliffSurcharge(M(5_000_000, INR), slabs); got != 0 {
		t.Errorf("CliffSurcharge(50L exactly) = %s, want 0", got)
	}
	if got := CliffSurcharge(M(5_000_001, INR), slabs); got != 0.10 {
		t.Errorf("CliffSurcharge(50L+1) = %s, want 10%%", got)
	}
	if got := CliffSurcharge(M(60_000_000, INR), slabs); got != 0.37 {
		t.Errorf("CliffSurcharge(6Cr) = %s, want 37%%", got)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	disposals := []Disposal{
		disposalOf(ShortTerm, 123_456.78),
		disposalOf(LongTerm, -23_456.78),
		disposalOf(LongTerm, 1_000_000),
	}
	rates, slabs := fy2425()
	a := Compute(disposals, M(11_000_000, INR), rates, slabs, CliffSurcharge)
	b := Compute(disposals, M(11_000_000, INR), rates, slabs, CliffSurcharge)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("Compute() is not deterministic:\n%+v\n%+v", a, b)
	}
}

func TestCompute_NoDisposals(t *testing.T) {
	rates, slabs := fy2425()
	c := Compute(nil, M(500_000, INR), rates, slabs, CliffSurcharge)
	if !c.TotalTax.IsZero() {
		t.Errorf("TotalTax = %s, want 0 on no disposals", c.TotalTax)
	}
}
