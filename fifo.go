package rsutax

import (
	"slices"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// shareEpsilon absorbs broker rounding: a lot whose remaining balance is below
// it counts as fully consumed, and a sale matched to within it counts as fully matched.
var shareEpsilon = Q(decimal.NewFromFloat(1e-4))

// Disposal is one matched (sale, lot) edge, possibly a partial of either side.
type Disposal struct {
	SaleDate        date.Date
	AcquisitionDate date.Date
	Shares          Quantity
	SalePriceUSD    Money
	AcqPriceUSD     Money
	SaleRate        decimal.Decimal // INR per USD at sale
	AcqRate         decimal.Decimal // INR per USD at acquisition
	ProceedsINR     Money
	CostINR         Money
	GainINR         Money
	HoldingDays     int
	Class           GainClass
}

// MatchResult is everything the matcher produced in one run: the disposal
// ledger, the lot balances after consumption, and the rate audit trail.
//
// Matched and Unmatched make overselling a first-class outcome: when a sale
// requests more shares than all vested lots can supply, the shortfall lands in
// Unmatched instead of failing the run.
type MatchResult struct {
	Disposals []Disposal
	Lots      []AcquisitionLot
	RatesUsed map[date.Date]decimal.Decimal
	Fallbacks []FallbackEvent
	Matched   Quantity
	Unmatched Quantity
}

// resolve looks up the mandated rate for 'on' and threads the audit trail.
func (r *MatchResult) resolve(rates *RateTable, on date.Date) (decimal.Decimal, error) {
	day, rate, ev, err := rates.Resolve(on)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if ev != nil {
		r.Fallbacks = append(r.Fallbacks, *ev)
	}
	r.RatesUsed[day] = rate
	return rate, nil
}

// Match consumes sales against acquisition lots first-in-first-out and prices
// every transfer in INR at the mandated rates.
//
// Both inputs are sorted ascending by date inside this boundary; callers need
// not pre-sort. The caller's slices are not mutated: lots are cloned and the
// clones' Remaining balances decremented.
//
// A lot acquired after a sale's date cannot supply it (those shares were not
// vested yet); such lots are skipped for that sale but stay available for
// later sales. A fully consumed lot is never revisited.
//
// The only error is a *MissingRateError from rate resolution, in which case
// no partial result is returned.
func Match(sales []SaleTransaction, lots []AcquisitionLot, rates *RateTable) (*MatchResult, error) {
	sales = slices.Clone(sales)
	sortSales(sales)

	res := &MatchResult{
		Lots:      slices.Clone(lots),
		RatesUsed: make(map[date.Date]decimal.Decimal),
	}
	sortLots(res.Lots)

	cursor := 0
	for _, sale := range sales {
		toMatch := sale.Shares
		for i := cursor; i < len(res.Lots); i++ {
			if toMatch.LessThanOrEqual(shareEpsilon) {
				break
			}
			lot := &res.Lots[i]
			if lot.Date.After(sale.Date) {
				// Not vested yet for this sale. Do not advance the cursor past
				// it: a later sale may still draw from this lot.
				continue
			}

			take := toMatch.Min(lot.Remaining)
			if take.IsPositive() {
				saleRate, err := res.resolve(rates, sale.Date)
				if err != nil {
					return nil, err
				}
				acqRate, err := res.resolve(rates, lot.Date)
				if err != nil {
					return nil, err
				}

				proceeds := sale.UnitPriceUSD.Mul(take).FX(saleRate, INR)
				cost := lot.UnitCostUSD.Mul(take).FX(acqRate, INR)
				holding := lot.Date.DaysUntil(sale.Date)

				res.Disposals = append(res.Disposals, Disposal{
					SaleDate:        sale.Date,
					AcquisitionDate: lot.Date,
					Shares:          take,
					SalePriceUSD:    sale.UnitPriceUSD,
					AcqPriceUSD:     lot.UnitCostUSD,
					SaleRate:        saleRate,
					AcqRate:         acqRate,
					ProceedsINR:     proceeds,
					CostINR:         cost,
					GainINR:         proceeds.Sub(cost),
					HoldingDays:     holding,
					Class:           classify(holding),
				})

				lot.Remaining = lot.Remaining.Sub(take)
				toMatch = toMatch.Sub(take)
				res.Matched = res.Matched.Add(take)
			}

			if lot.Remaining.LessThanOrEqual(shareEpsilon) {
				cursor = i + 1
			}
		}
		if toMatch.GreaterThan(shareEpsilon) {
			// Oversold: shares ran out. Not an error, see MatchResult.
			res.Unmatched = res.Unmatched.Add(toMatch)
		}
	}
	return res, nil
}
