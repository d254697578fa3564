package rsutax

import (
	"slices"

	"github.com/etnz/rsutax/date"
	"github.com/shopspring/decimal"
)

// LongTermHoldingDays is the holding-period threshold above which a disposal
// of listed foreign equity qualifies as long-term (24 months).
const LongTermHoldingDays = 730

// GainClass classifies a disposal by holding period.
type GainClass int

const (
	ShortTerm GainClass = iota
	LongTerm
)

func (c GainClass) String() string {
	switch c {
	case ShortTerm:
		return "STCG"
	case LongTerm:
		return "LTCG"
	default:
		return "unknown"
	}
}

// classify returns the gain class for a holding duration in days.
func classify(holdingDays int) GainClass {
	if holdingDays > LongTermHoldingDays {
		return LongTerm
	}
	return ShortTerm
}

// SaleTransaction is a single sale of vested shares, as reported by the broker.
// Immutable once loaded.
type SaleTransaction struct {
	Date         date.Date
	UnitPriceUSD Money
	Shares       Quantity
}

// NewSale returns a sale of 'shares' at 'unitPriceUSD' per share on 'on'.
func NewSale(on date.Date, unitPriceUSD, shares decimal.Decimal) SaleTransaction {
	return SaleTransaction{Date: on, UnitPriceUSD: M(unitPriceUSD, USD), Shares: Q(shares)}
}

// AcquisitionLot is a vesting event: shares acquired on a date at a unit cost.
//
// Remaining starts equal to Acquired and only ever decreases, down to zero.
// Fully consumed lots are kept around as zero-balance records for audit.
type AcquisitionLot struct {
	Date        date.Date
	UnitCostUSD Money
	Acquired    Quantity
	Remaining   Quantity
}

// NewLot returns a fresh lot with all its shares still available.
func NewLot(on date.Date, unitCostUSD, shares decimal.Decimal) AcquisitionLot {
	return AcquisitionLot{Date: on, UnitCostUSD: M(unitCostUSD, USD), Acquired: Q(shares), Remaining: Q(shares)}
}

// Sold returns the number of shares already consumed from this lot.
func (l AcquisitionLot) Sold() Quantity { return l.Acquired.Sub(l.Remaining) }

// cmpDate is an ascending comparator for use with slices.SortStableFunc.
func cmpDate(a, b date.Date) int {
	switch {
	case a.Before(b):
		return -1
	case b.Before(a):
		return 1
	default:
		return 0
	}
}

// sortSales sorts sales ascending by sale date, preserving input order for equal dates.
func sortSales(sales []SaleTransaction) {
	slices.SortStableFunc(sales, func(a, b SaleTransaction) int { return cmpDate(a.Date, b.Date) })
}

// sortLots sorts lots ascending by acquisition date, preserving input order for equal dates.
func sortLots(lots []AcquisitionLot) {
	slices.SortStableFunc(lots, func(a, b AcquisitionLot) int { return cmpDate(a.Date, b.Date) })
}
