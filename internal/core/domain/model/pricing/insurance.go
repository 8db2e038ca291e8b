package pricing

import (
	"fmt"

	"shipping/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// DefaultInsuranceRate is the share of the wrapped cost charged for insurance.
var DefaultInsuranceRate = decimal.RequireFromString("0.05")

// Insurance adds rate × the cost of everything it wraps. Because the base of
// the percentage is the cumulative wrapped cost, its position in the chain
// changes the total.
type Insurance struct {
	decorator
	rate decimal.Decimal
}

var _ Calculator = (*Insurance)(nil)

// NewInsurance wraps calculator with an insurance surcharge.
// The rate must lie in [0, 1].
func NewInsurance(wrapped Calculator, rate decimal.Decimal) (*Insurance, error) {
	if err := validateWrapped(wrapped); err != nil {
		return nil, err
	}
	if err := kernel.ValidateRange("insurance rate", rate, decimal.Zero, decimal.NewFromInt(1)); err != nil {
		return nil, err
	}

	wrappedCost := wrapped.Cost()
	label := fmt.Sprintf("insurance: %s of %s", formatPercent(rate), formatAmount(wrappedCost))
	suffix := fmt.Sprintf("insurance (%s)", formatPercent(rate))

	return &Insurance{
		decorator: newDecorator(wrapped, label, wrappedCost.Mul(rate), suffix),
		rate:      rate,
	}, nil
}

// Kind returns KindInsurance.
func (i *Insurance) Kind() Kind {
	return KindInsurance
}

// Rate returns the insured share.
func (i *Insurance) Rate() decimal.Decimal {
	return i.rate
}
