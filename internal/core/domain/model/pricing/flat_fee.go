package pricing

import (
	"shipping/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

var (
	// DefaultSignatureFee is charged for signature on delivery.
	DefaultSignatureFee = decimal.NewFromInt(8000)

	// DefaultFragileFee is charged for fragile handling.
	DefaultFragileFee = decimal.NewFromInt(15000)
)

// Signature adds a flat fee for signature on delivery, independent of the
// wrapped cost.
type Signature struct {
	decorator
	fee decimal.Decimal
}

var _ Calculator = (*Signature)(nil)

// NewSignature wraps calculator with a signature fee. The fee must be non-negative.
func NewSignature(wrapped Calculator, fee decimal.Decimal) (*Signature, error) {
	if err := validateWrapped(wrapped); err != nil {
		return nil, err
	}
	if err := kernel.ValidateNonNegative("signature fee", fee); err != nil {
		return nil, err
	}

	return &Signature{
		decorator: newDecorator(wrapped, "signature on delivery", fee, "signature on delivery"),
		fee:       fee,
	}, nil
}

// Kind returns KindSignature.
func (s *Signature) Kind() Kind {
	return KindSignature
}

// Fee returns the configured fee.
func (s *Signature) Fee() decimal.Decimal {
	return s.fee
}

// Fragile adds a flat fee for fragile handling, independent of the wrapped cost.
type Fragile struct {
	decorator
	fee decimal.Decimal
}

var _ Calculator = (*Fragile)(nil)

// NewFragile wraps calculator with a fragile handling fee. The fee must be non-negative.
func NewFragile(wrapped Calculator, fee decimal.Decimal) (*Fragile, error) {
	if err := validateWrapped(wrapped); err != nil {
		return nil, err
	}
	if err := kernel.ValidateNonNegative("fragile fee", fee); err != nil {
		return nil, err
	}

	return &Fragile{
		decorator: newDecorator(wrapped, "fragile handling", fee, "fragile handling"),
		fee:       fee,
	}, nil
}

// Kind returns KindFragile.
func (f *Fragile) Kind() Kind {
	return KindFragile
}

// Fee returns the configured fee.
func (f *Fragile) Fee() decimal.Decimal {
	return f.fee
}
