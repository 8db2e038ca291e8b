package kernel

import (
	"fmt"

	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AmountScale is the number of decimal places kept on every currency amount.
const AmountScale int32 = 2

// RoundAmount rounds a currency amount half away from zero to AmountScale places.
// Breakdown lines are rounded individually and totals are their sums, which keeps
// total == sum(lines) exact.
func RoundAmount(d decimal.Decimal) decimal.Decimal {
	return d.Round(AmountScale)
}

// ValidateNonNegative returns a ValueIsInvalidError when value is below zero.
func ValidateNonNegative(paramName string, value decimal.Decimal) error {
	if value.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause(
			paramName+" is invalid",
			fmt.Errorf("%s is negative", value.String()),
		)
	}
	return nil
}

// ValidateRange returns a ValueIsOutOfRangeError when value is outside [minValue, maxValue].
func ValidateRange(paramName string, value, minValue, maxValue decimal.Decimal) error {
	if value.LessThan(minValue) || value.GreaterThan(maxValue) {
		return errs.NewValueIsOutOfRangeError(paramName, value.String(), minValue.String(), maxValue.String())
	}
	return nil
}

// SumAmounts adds amounts in order. An empty input sums to zero.
func SumAmounts(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(a)
	}
	return total
}
