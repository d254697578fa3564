package rsutax

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Percent is a fraction: 0.30 means 30%.
type Percent float64

func (p Percent) Equal(q Percent) bool {
	// it has to be compared with some precision
	const precision = 0.0001
	diff := p - q
	if diff < 0 {
		diff = -diff
	}
	return diff < precision
}

func (p Percent) String() string {
	return fmt.Sprintf("%.2f%%", p*100)
}

// Of applies the fraction to a monetary amount.
func (p Percent) Of(m Money) Money {
	return Money{value: m.value.Mul(decimal.NewFromFloat(float64(p))), cur: m.cur}
}

func (p Percent) IsZero() bool { return p == 0 }
