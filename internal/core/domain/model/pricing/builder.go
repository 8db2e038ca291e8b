package pricing

import (
	"fmt"

	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// AddOnSpec names one decorator to apply and its parameters.
//
// Value is the fee (Signature, Fragile), the rate (Insurance) or the
// multiplier (Priority); when unset the kind's default is used. Level is only
// read for Priority.
type AddOnSpec struct {
	Kind  Kind
	Value decimal.NullDecimal
	Level int
}

// SignatureAddOn returns a spec for a signature fee with the default amount.
func SignatureAddOn() AddOnSpec {
	return AddOnSpec{Kind: KindSignature}
}

// FragileAddOn returns a spec for a fragile handling fee with the default amount.
func FragileAddOn() AddOnSpec {
	return AddOnSpec{Kind: KindFragile}
}

// InsuranceAddOn returns a spec for insurance at the default rate.
func InsuranceAddOn() AddOnSpec {
	return AddOnSpec{Kind: KindInsurance}
}

// PriorityAddOn returns a spec for the given priority level with the default multiplier.
func PriorityAddOn(level int) AddOnSpec {
	return AddOnSpec{Kind: KindPriority, Level: level}
}

// WithValue returns a copy of the spec with an explicit fee, rate or multiplier.
func (s AddOnSpec) WithValue(value decimal.Decimal) AddOnSpec {
	s.Value = decimal.NewNullDecimal(value)
	return s
}

func (s AddOnSpec) valueOr(defaultValue decimal.Decimal) decimal.Decimal {
	if s.Value.Valid {
		return s.Value.Decimal
	}
	return defaultValue
}

// Build creates the base calculator for request priced with strategy and wraps
// it with addOns in the given order; addOns[0] is innermost.
//
// The order is never changed: Insurance and Priority compute on the cumulative
// wrapped cost, so reordering would change the total. Any failure returns no
// calculator at all.
//
// Example:
//
//	calc, err := pricing.Build(tariff.CarProfile(), req, []pricing.AddOnSpec{
//	    pricing.InsuranceAddOn(),
//	    pricing.SignatureAddOn(),
//	})
//	if err != nil {
//	    return err
//	}
//	total := calc.Cost()
func Build(strategy tariff.Strategy, request Request, addOns []AddOnSpec) (Calculator, error) {
	var (
		calc Calculator
		err  error
	)

	calc, err = NewBase(strategy, request)
	if err != nil {
		return nil, err
	}

	for i, spec := range addOns {
		calc, err = apply(calc, spec)
		if err != nil {
			return nil, fmt.Errorf("add-on %d (%s): %w", i, spec.Kind, err)
		}
	}

	return calc, nil
}

func apply(wrapped Calculator, spec AddOnSpec) (Calculator, error) {
	switch spec.Kind {
	case KindSignature:
		return NewSignature(wrapped, spec.valueOr(DefaultSignatureFee))
	case KindFragile:
		return NewFragile(wrapped, spec.valueOr(DefaultFragileFee))
	case KindInsurance:
		return NewInsurance(wrapped, spec.valueOr(DefaultInsuranceRate))
	case KindPriority:
		return NewPriority(wrapped, spec.Level, spec.valueOr(DefaultPriorityMultiplier))
	case UnknownKind, KindBase:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"add-on is invalid",
			fmt.Errorf("%s is not an add-on", spec.Kind),
		)
	default:
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"add-on is invalid",
			fmt.Errorf("%d is not a known add-on kind", spec.Kind),
		)
	}
}
