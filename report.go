package rsutax

import (
	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// Inputs bundles everything one advisory run consumes. Each run is a pure
// function of its Inputs: nothing is persisted between runs.
type Inputs struct {
	Sales          []SaleTransaction
	Lots           []AcquisitionLot
	Rates          *RateTable
	LatestPriceUSD Money
	Today          date.Date
	Config         Config

	// Policy selects the surcharge rate; nil means CliffSurcharge.
	Policy SurchargePolicy
}

// Report is the complete output of one run, as plain structured records.
// Formatting (currency symbols, sheets, markdown) belongs to the renderer.
type Report struct {
	Disposals []Disposal
	Lots      []AcquisitionLot
	Tax       TaxComputation
	Schedule  []Installment
	Harvest   []HarvestCandidate

	RatesUsed map[date.Date]decimal.Decimal
	Fallbacks []FallbackEvent
	Matched   Quantity
	Unmatched Quantity

	Checks Checks
}

// BuildReport runs the whole pipeline: FIFO matching, tax computation,
// advance-tax scheduling, loss harvesting, and validation.
//
// The only failure mode is a *MissingRateError, and it aborts the run with no
// partial report.
func BuildReport(in Inputs) (*Report, error) {
	policy := in.Policy
	if policy == nil {
		policy = CliffSurcharge
	}

	match, err := Match(in.Sales, in.Lots, in.Rates)
	if err != nil {
		return nil, err
	}

	tax := Compute(match.Disposals, in.Config.OtherIncome, in.Config.TaxRates, in.Config.Slabs, policy)
	schedule := Schedule(match.Disposals, in.Config.OtherIncome, in.Config.TaxRates, in.Config.Slabs, policy, in.Today)

	harvest, harvestFallbacks, err := Harvest(match.Lots, in.LatestPriceUSD, in.Rates, in.Today)
	if err != nil {
		return nil, err
	}

	return &Report{
		Disposals: match.Disposals,
		Lots:      match.Lots,
		Tax:       tax,
		Schedule:  schedule,
		Harvest:   harvest,
		RatesUsed: match.RatesUsed,
		Fallbacks: append(match.Fallbacks, harvestFallbacks...),
		Matched:   match.Matched,
		Unmatched: match.Unmatched,
		Checks:    Validate(in.Sales, in.Lots, match, tax),
	}, nil
}
