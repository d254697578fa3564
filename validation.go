package rsutax

import "fmt"

// Check is one post-computation consistency check.
type Check struct {
	Name   string
	Passed bool
	Detail string
}

// Checks is the validation summary rendered at the end of a report.
type Checks []Check

// Failed reports whether any check failed.
func (cs Checks) Failed() bool {
	for _, c := range cs {
		if !c.Passed {
			return true
		}
	}
	return false
}

// Validate runs the consistency checks on a finished computation.
//
// Oversell intentionally does not fail the matcher (see Match); this is where
// it becomes visible, along with the other reconciliations a filer should see
// before trusting the figures.
func Validate(sales []SaleTransaction, lots []AcquisitionLot, res *MatchResult, c TaxComputation) Checks {
	var checks Checks

	checks = append(checks, Check{
		Name:   "Input sanity",
		Passed: len(sales) > 0 && len(lots) > 0,
		Detail: fmt.Sprintf("%d sales, %d lots", len(sales), len(lots)),
	})

	// Share conservation: every share sold must reappear in a disposal,
	// unless some were oversold.
	requested := Q(0)
	for _, s := range sales {
		requested = requested.Add(s.Shares)
	}
	diff := requested.Sub(res.Matched).Sub(res.Unmatched)
	checks = append(checks, Check{
		Name:   "Share count match",
		Passed: diff.Sub(shareEpsilon).IsNegative() && diff.Add(shareEpsilon).IsPositive(),
		Detail: fmt.Sprintf("sold %s, matched %s", requested, res.Matched),
	})

	oversold := res.Unmatched.GreaterThan(shareEpsilon)
	for _, lot := range res.Lots {
		if lot.Remaining.Add(shareEpsilon).IsNegative() {
			oversold = true
		}
	}
	checks = append(checks, Check{
		Name:   "Overselling",
		Passed: !oversold,
		Detail: fmt.Sprintf("unmatched shares: %s", res.Unmatched),
	})

	components := c.BaseTax.Add(c.Surcharge).Add(c.Cess)
	checks = append(checks, Check{
		Name:   "Tax integrity",
		Passed: components.Equal(c.TotalTax),
		Detail: fmt.Sprintf("base+surcharge+cess = %s, total = %s", components, c.TotalTax),
	})

	return checks
}
