package rsutax

import (
	"fmt"
	"slices"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// fallbackWindow is how many days the resolver walks back from the required
// month-end date before giving up. Covers a weekend run plus up to five
// consecutive non-trading days; a longer gap means the table is incomplete.
const fallbackWindow = 7

// RateTable is a sparse table of daily TTBR reference rates, in INR per USD.
// Only trading days are present. Read-only after load.
type RateTable struct {
	rates map[date.Date]decimal.Decimal
}

// NewRateTable returns an empty rate table.
func NewRateTable() *RateTable {
	return &RateTable{rates: make(map[date.Date]decimal.Decimal)}
}

// Append records the rate for a day, overwriting any previous value.
func (t *RateTable) Append(on date.Date, rate decimal.Decimal) { t.rates[on] = rate }

// Len returns the number of days in the table.
func (t *RateTable) Len() int { return len(t.rates) }

// Get returns the rate quoted on exactly that day, if any.
func (t *RateTable) Get(on date.Date) (decimal.Decimal, bool) {
	r, ok := t.rates[on]
	return r, ok
}

// Days returns all quoted days, ascending.
func (t *RateTable) Days() []date.Date {
	days := make([]date.Date, 0, len(t.rates))
	for d := range t.rates {
		days = append(days, d)
	}
	slices.SortFunc(days, cmpDate)
	return days
}

// FallbackEvent records that the exact required rate date was absent and an
// earlier quoted day was used instead. Accumulated as an audit list; the
// engine does not deduplicate, rendering does.
type FallbackEvent struct {
	Required date.Date
	Used     date.Date
	Rate     decimal.Decimal
	Reason   string
}

// MissingRateError means no rate was quoted in the whole fallback window.
// It is fatal: a defaulted rate would silently corrupt every downstream figure.
type MissingRateError struct {
	Required date.Date
}

func (e *MissingRateError) Error() string {
	return fmt.Sprintf("missing TTBR rate for required date %s (searched %d days back)", e.Required, fallbackWindow)
}

// Resolve returns the conversion rate mandated for a transaction on 'on':
// the rate quoted on the last day of the preceding month (rule 115).
//
// When that exact day is not quoted (holiday, weekend), it walks backward
// day by day for up to fallbackWindow attempts and reports the substitution
// through a non-nil FallbackEvent. The returned day is the one actually used.
func (t *RateTable) Resolve(on date.Date) (date.Date, decimal.Decimal, *FallbackEvent, error) {
	required := on.PrevMonthEnd()
	for i := 0; i < fallbackWindow; i++ {
		day := required.Add(-i)
		rate, ok := t.rates[day]
		if !ok {
			continue
		}
		if i == 0 {
			return day, rate, nil, nil
		}
		ev := &FallbackEvent{
			Required: required,
			Used:     day,
			Rate:     rate,
			Reason:   "exact month-end rate not available (likely holiday/weekend)",
		}
		return day, rate, ev, nil
	}
	return date.Date{}, decimal.Decimal{}, nil, &MissingRateError{Required: required}
}
