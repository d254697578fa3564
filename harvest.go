package rsutax

import (
	"slices"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// HarvestCandidate is an unsold position currently under water: selling it
// would realize a loss usable for set-off.
type HarvestCandidate struct {
	AcquisitionDate date.Date
	Remaining       Quantity
	AcqPriceUSD     Money
	MarketPriceUSD  Money
	UnrealizedINR   Money
}

// Harvest evaluates every lot with a remaining balance against the latest
// market price and keeps only those with an unrealized loss, most negative
// first. A suggestion list, not advice.
//
// The current value converts at the rate mandated for 'today' (same
// prior-month-end rule as for transactions), the original cost at the lot's
// own acquisition rate. A zero market price means no market data: return
// nothing rather than a degenerate all-loss list.
//
// Fallback events from rate resolution are returned alongside for the audit
// trail.
func Harvest(lots []AcquisitionLot, marketPriceUSD Money, rates *RateTable, today date.Date) ([]HarvestCandidate, []FallbackEvent, error) {
	if marketPriceUSD.IsZero() {
		return nil, nil, nil
	}

	var fallbacks []FallbackEvent
	resolve := func(on date.Date) (decimal.Decimal, error) {
		_, r, ev, err := rates.Resolve(on)
		if err != nil {
			return decimal.Decimal{}, err
		}
		if ev != nil {
			fallbacks = append(fallbacks, *ev)
		}
		return r, nil
	}

	var candidates []HarvestCandidate
	for _, lot := range lots {
		if !lot.Remaining.IsPositive() {
			continue
		}
		currentRate, err := resolve(today)
		if err != nil {
			return nil, nil, err
		}
		acqRate, err := resolve(lot.Date)
		if err != nil {
			return nil, nil, err
		}

		currentValue := marketPriceUSD.Mul(lot.Remaining).FX(currentRate, INR)
		originalCost := lot.UnitCostUSD.Mul(lot.Remaining).FX(acqRate, INR)
		unrealized := currentValue.Sub(originalCost)
		if !unrealized.IsNegative() {
			continue
		}
		candidates = append(candidates, HarvestCandidate{
			AcquisitionDate: lot.Date,
			Remaining:       lot.Remaining,
			AcqPriceUSD:     lot.UnitCostUSD,
			MarketPriceUSD:  marketPriceUSD,
			UnrealizedINR:   unrealized,
		})
	}

	// deepest loss first
	slices.SortStableFunc(candidates, func(a, b HarvestCandidate) int {
		switch {
		case a.UnrealizedINR.LessThan(b.UnrealizedINR):
			return -1
		case b.UnrealizedINR.LessThan(a.UnrealizedINR):
			return 1
		default:
			return 0
		}
	})
	return candidates, fallbacks, nil
}
