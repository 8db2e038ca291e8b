package pricing

import (
	"github.com/shopspring/decimal"
)

// Quote is the frozen result of a calculator chain, as stored with a shipment
// and returned to API clients.
type Quote struct {
	Total       decimal.Decimal
	Breakdown   []BreakdownItem
	Description string
}

// NewQuote captures the total, breakdown and description of calc.
func NewQuote(calc Calculator) Quote {
	return Quote{
		Total:       calc.Cost(),
		Breakdown:   calc.Breakdown(),
		Description: calc.Description(),
	}
}

// IsConsistent reports whether Total equals the sum of the breakdown.
func (q Quote) IsConsistent() bool {
	return q.Total.Equal(SumBreakdown(q.Breakdown))
}
