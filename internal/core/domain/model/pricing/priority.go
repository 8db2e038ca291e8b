package pricing

import (
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const (
	// MinPriorityLevel is the lowest accepted priority level.
	MinPriorityLevel = 1

	// MaxPriorityLevel is the highest accepted priority level.
	MaxPriorityLevel = 5

	// surchargeFreeLevels is the number of levels that add no surcharge.
	surchargeFreeLevels = 3
)

// DefaultPriorityMultiplier is the share of the wrapped cost added per level above 3.
var DefaultPriorityMultiplier = decimal.RequireFromString("0.10")

// PriorityTier returns the readable name of a priority level.
func PriorityTier(level int) string {
	switch level {
	case 1:
		return "Deferred"
	case 2:
		return "Standard"
	case 3:
		return "Expedited"
	case 4:
		return "Urgent"
	case 5:
		return "Critical"
	default:
		return "Unknown"
	}
}

// Priority adds wrapped cost × multiplier × max(0, level−3).
// Levels 1 to 3 add nothing; level 4 adds one multiplier, level 5 two.
type Priority struct {
	decorator
	level      int
	multiplier decimal.Decimal
}

var _ Calculator = (*Priority)(nil)

// NewPriority wraps calculator with a priority surcharge.
// The level must lie in [1, 5] and the multiplier must be non-negative.
func NewPriority(wrapped Calculator, level int, multiplier decimal.Decimal) (*Priority, error) {
	if err := validateWrapped(wrapped); err != nil {
		return nil, err
	}
	if level < MinPriorityLevel || level > MaxPriorityLevel {
		return nil, errs.NewValueIsOutOfRangeError("priority level", level, MinPriorityLevel, MaxPriorityLevel)
	}
	if err := kernel.ValidateNonNegative("priority multiplier", multiplier); err != nil {
		return nil, err
	}

	steps := decimal.NewFromInt(int64(max(0, level-surchargeFreeLevels)))
	wrappedCost := wrapped.Cost()
	label := fmt.Sprintf("priority level %d (%s): %s × %s of %s",
		level, PriorityTier(level), formatPercent(multiplier), steps, formatAmount(wrappedCost))
	suffix := fmt.Sprintf("priority level %d (%s)", level, PriorityTier(level))

	return &Priority{
		decorator:  newDecorator(wrapped, label, wrappedCost.Mul(multiplier).Mul(steps), suffix),
		level:      level,
		multiplier: multiplier,
	}, nil
}

// Kind returns KindPriority.
func (p *Priority) Kind() Kind {
	return KindPriority
}

// Level returns the priority level.
func (p *Priority) Level() int {
	return p.level
}

// Multiplier returns the per-level share.
func (p *Priority) Multiplier() decimal.Decimal {
	return p.multiplier
}
