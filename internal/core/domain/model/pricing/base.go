package pricing

import (
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Base is the undecorated cost of a shipment: base fee plus distance, weight
// and volume costs priced by a tariff Strategy.
type Base struct {
	strategy tariff.Strategy
	request  Request
	items    []BreakdownItem
	total    decimal.Decimal
}

var _ Calculator = (*Base)(nil)

// NewBase prices request with strategy.
//
// Capacity is checked before any cost is computed, so an oversized shipment
// yields no calculator at all.
//
// Returns:
//   - *Base: the calculator
//   - error: ValueIsRequiredError for a nil strategy, ErrRequestIsNotConstructed
//     for a zero value request, CapacityExceededError when weight or volume is
//     above the strategy's limits
func NewBase(strategy tariff.Strategy, request Request) (*Base, error) {
	if isNil(strategy) {
		return nil, errs.NewValueIsRequiredError("tariff strategy")
	}
	if err := request.Validate(); err != nil {
		return nil, err
	}
	if err := strategy.CheckCapacity(request.WeightKg(), request.VolumeM3()); err != nil {
		return nil, err
	}

	weightCost, err := strategy.WeightCost(request.WeightKg())
	if err != nil {
		return nil, err
	}
	volumeCost, err := strategy.VolumeCost(request.VolumeM3())
	if err != nil {
		return nil, err
	}

	items := []BreakdownItem{
		{
			Label:  "base fee",
			Amount: kernel.RoundAmount(strategy.BaseCost()),
		},
		{
			Label: fmt.Sprintf("distance: %s km × %s",
				formatAmount(request.DistanceKm()), formatAmount(strategy.CostPerKilometer())),
			Amount: kernel.RoundAmount(strategy.DistanceCost(request.DistanceKm())),
		},
		{
			Label: fmt.Sprintf("weight: %s kg × %s",
				formatAmount(request.WeightKg()), formatAmount(strategy.CostPerKilogram())),
			Amount: kernel.RoundAmount(weightCost),
		},
		{
			Label: fmt.Sprintf("volume: %s m³ × %s",
				formatAmount(request.VolumeM3()), formatAmount(strategy.CostPerCubicMeter())),
			Amount: kernel.RoundAmount(volumeCost),
		},
	}

	return &Base{
		strategy: strategy,
		request:  request,
		items:    items,
		total:    SumBreakdown(items),
	}, nil
}

// Kind returns KindBase.
func (b *Base) Kind() Kind {
	return KindBase
}

// Cost returns base + distance + weight + volume.
func (b *Base) Cost() decimal.Decimal {
	return b.total
}

// Breakdown returns a copy of the four base lines in fixed order:
// base fee, distance, weight, volume.
func (b *Base) Breakdown() []BreakdownItem {
	items := make([]BreakdownItem, len(b.items))
	copy(items, b.items)
	return items
}

// Description names the tariff and the request magnitudes.
func (b *Base) Description() string {
	return fmt.Sprintf("%s tariff for %s km, %s kg, %s m³",
		b.strategy.Name(),
		formatAmount(b.request.DistanceKm()),
		formatAmount(b.request.WeightKg()),
		formatAmount(b.request.VolumeM3()))
}

// Strategy returns the tariff the base cost was priced with.
func (b *Base) Strategy() tariff.Strategy {
	return b.strategy
}

// Request returns the priced request.
func (b *Base) Request() Request {
	return b.request
}

func (*Base) sealed() {}
