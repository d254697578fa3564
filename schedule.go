package rsutax

import (
	"time"

	"github.com/etnz/rsutax/date"
)

// Installment is one advance-tax payment.
//
// LiabilityCutoff is the date through which disposals count toward the
// cumulative liability; DueDate is when the payment is owed. They differ for
// the fourth installment: the liability runs to fiscal-year-end (31 March)
// while the payment is due mid-March. The statute keeps both dates, so do we.
type Installment struct {
	DueDate         date.Date
	LiabilityCutoff date.Date
	Amount          Money
}

// cumulativeFractions are the statutory cumulative payment fractions per quarter.
var cumulativeFractions = [4]Percent{0.15, 0.45, 0.75, 1.00}

// FiscalYearStart returns the calendar year in which the fiscal year
// containing 'today' started. The fiscal year starts in April.
func FiscalYearStart(today date.Date) int {
	if today.Month() < time.April {
		return today.Year() - 1
	}
	return today.Year()
}

// Schedule derives the four advance-tax installments by the cumulative method:
// for each quarterly cutoff, recompute the full liability on the disposals
// realized so far, and pay the statutory fraction of it less what was already
// paid.
//
// A quarter whose cumulative liability dropped below the amounts already paid
// (losses realized late in the year) yields a zero installment, never a
// negative one: advance tax is not refunded mid-year through this schedule.
//
// 'today' anchors the fiscal year and keeps the schedule deterministic for
// callers and tests; pass date.Today() for the conventional behavior.
func Schedule(disposals []Disposal, otherIncome Money, rates TaxRates, slabs []SurchargeSlab, policy SurchargePolicy, today date.Date) []Installment {
	fy := FiscalYearStart(today)

	cutoffs := [4]date.Date{
		date.New(fy, time.June, 15),
		date.New(fy, time.September, 15),
		date.New(fy, time.December, 15),
		date.New(fy+1, time.March, 31), // liability runs to fiscal-year-end
	}
	dues := [4]date.Date{
		cutoffs[0],
		cutoffs[1],
		cutoffs[2],
		date.New(fy+1, time.March, 15),
	}

	installments := make([]Installment, 0, 4)
	paidSoFar := M(0, INR)
	for q := 0; q < 4; q++ {
		var realized []Disposal
		for _, d := range disposals {
			if !d.SaleDate.After(cutoffs[q]) {
				realized = append(realized, d)
			}
		}
		cumulative := Compute(realized, otherIncome, rates, slabs, policy).TotalTax
		amount := clampZero(cumulativeFractions[q].Of(cumulative).Sub(paidSoFar))
		paidSoFar = paidSoFar.Add(amount)
		installments = append(installments, Installment{
			DueDate:         dues[q],
			LiabilityCutoff: cutoffs[q],
			Amount:          amount,
		})
	}
	return installments
}
