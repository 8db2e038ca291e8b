package pricing

import (
	"fmt"
	"reflect"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Kind tags the closed set of calculator variants.
type Kind int

const (
	// UnknownKind is the zero value and is never valid.
	UnknownKind Kind = iota

	// KindBase is the undecorated calculator built from a tariff and a request.
	KindBase

	// KindSignature adds a flat fee for signature on delivery.
	KindSignature

	// KindFragile adds a flat fee for fragile handling.
	KindFragile

	// KindInsurance adds a percentage of the wrapped cost.
	KindInsurance

	// KindPriority adds a level dependent percentage of the wrapped cost.
	KindPriority
)

func getKindStrings() map[Kind]string {
	return map[Kind]string{
		UnknownKind:   "unknown",
		KindBase:      "base",
		KindSignature: "signature",
		KindFragile:   "fragile",
		KindInsurance: "insurance",
		KindPriority:  "priority",
	}
}

// String returns the lower-case name of the kind.
func (k Kind) String() string {
	if str, ok := getKindStrings()[k]; ok {
		return str
	}
	return "unknown"
}

// IsAddOn reports whether the kind is a surcharge decorator.
func (k Kind) IsAddOn() bool {
	return k >= KindSignature && k <= KindPriority
}

// ParseAddOnKind converts an add-on name into its Kind.
func ParseAddOnKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for kind, str := range getKindStrings() {
		if kind.IsAddOn() && str == name {
			return kind, nil
		}
	}
	return UnknownKind, errs.NewValueIsInvalidErrorWithCause(
		"add-on is invalid",
		fmt.Errorf("%q is not a known add-on", s),
	)
}

// BreakdownItem is one labelled contribution to a cost total.
type BreakdownItem struct {
	Label  string
	Amount decimal.Decimal
}

// Calculator produces the cost of a shipment.
//
// The interface is sealed: its variants are Base, Signature, Fragile,
// Insurance and Priority. Every variant is immutable after construction, so a
// chain can be read from any number of goroutines.
//
// Invariant: Cost() equals the sum of Breakdown() amounts, exactly.
type Calculator interface {
	// Kind identifies the variant.
	Kind() Kind

	// Cost returns the total cost of this calculator and everything it wraps.
	Cost() decimal.Decimal

	// Breakdown returns the ordered line items: the four base lines first,
	// then one line per decorator from innermost to outermost.
	Breakdown() []BreakdownItem

	// Description returns a readable summary, innermost to outermost.
	Description() string

	sealed()
}

// SumBreakdown adds the amounts of items.
func SumBreakdown(items []BreakdownItem) decimal.Decimal {
	amounts := make([]decimal.Decimal, len(items))
	for i, item := range items {
		amounts[i] = item.Amount
	}
	return kernel.SumAmounts(amounts...)
}

// decorator is the shared state of every surcharge variant: the wrapped
// calculator, the single line it contributes and the resulting total.
type decorator struct {
	wrapped Calculator
	item    BreakdownItem
	suffix  string
	total   decimal.Decimal
}

func newDecorator(wrapped Calculator, label string, amount decimal.Decimal, suffix string) decorator {
	item := BreakdownItem{Label: label, Amount: kernel.RoundAmount(amount)}
	return decorator{
		wrapped: wrapped,
		item:    item,
		suffix:  suffix,
		total:   wrapped.Cost().Add(item.Amount),
	}
}

// Wrapped returns the decorated calculator.
func (d decorator) Wrapped() Calculator {
	return d.wrapped
}

// Surcharge returns the amount this decorator adds.
func (d decorator) Surcharge() decimal.Decimal {
	return d.item.Amount
}

func (d decorator) Cost() decimal.Decimal {
	return d.total
}

func (d decorator) Breakdown() []BreakdownItem {
	return append(d.wrapped.Breakdown(), d.item)
}

func (d decorator) Description() string {
	return d.wrapped.Description() + " + " + d.suffix
}

func (decorator) sealed() {}

// validateWrapped rejects nil and typed nil pointers such as (*Base)(nil),
// which would otherwise panic on the first Cost call.
func validateWrapped(wrapped Calculator) error {
	if isNil(wrapped) {
		return errs.NewValueIsRequiredError("wrapped calculator")
	}
	return nil
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(kernel.AmountScale)
}

func formatPercent(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).StringFixed(kernel.AmountScale) + "%"
}
