package rsutax

// TaxRates are the flat statutory rates applied to net taxable gains.
type TaxRates struct {
	STCG Percent `json:"stcg"`
	LTCG Percent `json:"ltcg"`
	Cess Percent `json:"cess"`
}

// SurchargeSlab maps an income threshold to the surcharge rate applying above it.
type SurchargeSlab struct {
	Threshold Money   `json:"threshold"`
	Rate      Percent `json:"rate"`
}

// SurchargePolicy picks the surcharge rate for a total income.
//
// It is a named policy so the statutory marginal-relief smoothing can be
// substituted without touching the set-off logic.
type SurchargePolicy func(totalIncome Money, slabs []SurchargeSlab) Percent

// CliffSurcharge is the default policy: the rate of the highest threshold
// strictly exceeded applies to the entire base tax. This is a cliff-edge
// lookup, not a marginal one — crossing a threshold by one rupee surcharges
// the whole liability at the higher rate. Marginal relief is not modeled.
func CliffSurcharge(totalIncome Money, slabs []SurchargeSlab) Percent {
	var rate Percent
	highest := M(0, INR)
	for _, slab := range slabs {
		if totalIncome.GreaterThan(slab.Threshold) && slab.Threshold.GreaterThanOrEqual(highest) {
			rate, highest = slab.Rate, slab.Threshold
		}
	}
	return rate
}

// TaxComputation aggregates a set of disposals into the final liability.
// All amounts are INR. Derived purely from its inputs: recomputed from
// scratch on every Compute call.
type TaxComputation struct {
	STCG Money // gross short-term gains
	STCL Money // gross short-term losses, as a positive amount
	LTCG Money // gross long-term gains
	LTCL Money // gross long-term losses, as a positive amount

	NetTaxableSTCG Money
	NetTaxableLTCG Money

	SurchargeRate Percent
	BaseTax       Money
	Surcharge     Money
	Cess          Money
	TotalTax      Money
}

// clampZero floors a money value at zero.
func clampZero(m Money) Money {
	if m.IsNegative() {
		return M(0, m.cur)
	}
	return m
}

// Compute aggregates disposals by gain class, applies the statutory set-off
// rules and returns the resulting liability. Pure and deterministic; callable
// on any subset of disposals (the scheduler calls it on quarterly truncations).
//
// Set-off order, which matters:
//  1. long-term loss offsets long-term gain only,
//  2. short-term loss offsets short-term gain first,
//  3. leftover short-term loss then offsets what survives of long-term gain.
//
// Long-term loss never offsets short-term gain.
func Compute(disposals []Disposal, otherIncome Money, rates TaxRates, slabs []SurchargeSlab, policy SurchargePolicy) TaxComputation {
	c := TaxComputation{
		STCG: M(0, INR), STCL: M(0, INR), LTCG: M(0, INR), LTCL: M(0, INR),
	}
	for _, d := range disposals {
		switch {
		case d.Class == ShortTerm && d.GainINR.IsPositive():
			c.STCG = c.STCG.Add(d.GainINR)
		case d.Class == ShortTerm && d.GainINR.IsNegative():
			c.STCL = c.STCL.Add(d.GainINR.Abs())
		case d.Class == LongTerm && d.GainINR.IsPositive():
			c.LTCG = c.LTCG.Add(d.GainINR)
		case d.Class == LongTerm && d.GainINR.IsNegative():
			c.LTCL = c.LTCL.Add(d.GainINR.Abs())
		}
	}

	ltcgAfterLTCL := clampZero(c.LTCG.Sub(c.LTCL))
	stcgAfterSTCL := clampZero(c.STCG.Sub(c.STCL))
	stclRemaining := clampZero(c.STCL.Sub(c.STCG))

	c.NetTaxableLTCG = clampZero(ltcgAfterLTCL.Sub(stclRemaining))
	c.NetTaxableSTCG = stcgAfterSTCL

	totalIncome := otherIncome.Add(c.NetTaxableSTCG).Add(c.NetTaxableLTCG)
	c.SurchargeRate = policy(totalIncome, slabs)

	c.BaseTax = rates.STCG.Of(c.NetTaxableSTCG).Add(rates.LTCG.Of(c.NetTaxableLTCG))
	c.Surcharge = c.SurchargeRate.Of(c.BaseTax)
	c.Cess = rates.Cess.Of(c.BaseTax.Add(c.Surcharge))
	c.TotalTax = c.BaseTax.Add(c.Surcharge).Add(c.Cess)
	return c
}
