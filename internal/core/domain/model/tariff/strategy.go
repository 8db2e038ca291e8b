package tariff

import "github.com/shopspring/decimal"

// Strategy is the rate capability a base cost calculator prices with.
//
// Implementations are pure: every method is a function of the receiver and
// its arguments only. Profile is the provided implementation; other vehicle
// classes can be priced by supplying another Strategy without touching callers.
type Strategy interface {
	// Name identifies the tariff, e.g. "car" or a generic tariff name.
	Name() string

	// Class is the vehicle class the rates apply to.
	Class() VehicleClass

	// BaseCost is the fixed fee charged regardless of the request.
	BaseCost() decimal.Decimal

	CostPerKilometer() decimal.Decimal
	CostPerKilogram() decimal.Decimal
	CostPerCubicMeter() decimal.Decimal

	// DistanceCost returns distanceKm × CostPerKilometer.
	DistanceCost(distanceKm decimal.Decimal) decimal.Decimal

	// WeightCost returns weightKg × CostPerKilogram or a CapacityExceededError
	// when weightKg is above the weight limit.
	WeightCost(weightKg decimal.Decimal) (decimal.Decimal, error)

	// VolumeCost returns volumeM3 × CostPerCubicMeter or a CapacityExceededError
	// when volumeM3 is above the volume limit.
	VolumeCost(volumeM3 decimal.Decimal) (decimal.Decimal, error)

	// CheckCapacity runs both capacity checks without computing any cost.
	CheckCapacity(weightKg, volumeM3 decimal.Decimal) error
}
