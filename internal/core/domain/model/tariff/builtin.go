package tariff

import "github.com/shopspring/decimal"

// DefaultCostPerCubicMeter is the volume rate shared by every built-in vehicle
// profile. Volume is priced uniformly; only the per-kilometre and per-kilogram
// rates vary by vehicle class.
var DefaultCostPerCubicMeter = decimal.NewFromInt(10000)

// MotorcycleProfile returns the built-in motorcycle tariff.
func MotorcycleProfile() *Profile {
	return mustProfile(ClassMotorcycle, Rates{
		BaseCost:          decimal.NewFromInt(5000),
		CostPerKilometer:  decimal.NewFromInt(500),
		CostPerKilogram:   decimal.NewFromInt(300),
		CostPerCubicMeter: DefaultCostPerCubicMeter,
	}, NewLimits(decimal.NewFromInt(25), decimal.RequireFromString("0.125")))
}

// CarProfile returns the built-in car tariff.
func CarProfile() *Profile {
	return mustProfile(ClassCar, Rates{
		BaseCost:          decimal.NewFromInt(8000),
		CostPerKilometer:  decimal.NewFromInt(800),
		CostPerKilogram:   decimal.NewFromInt(400),
		CostPerCubicMeter: DefaultCostPerCubicMeter,
	}, NewLimits(decimal.NewFromInt(300), decimal.RequireFromString("1.5")))
}

// TruckProfile returns the built-in truck tariff.
func TruckProfile() *Profile {
	return mustProfile(ClassTruck, Rates{
		BaseCost:          decimal.NewFromInt(20000),
		CostPerKilometer:  decimal.NewFromInt(1500),
		CostPerKilogram:   decimal.NewFromInt(200),
		CostPerCubicMeter: DefaultCostPerCubicMeter,
	}, NewLimits(decimal.NewFromInt(10000), decimal.NewFromInt(40)))
}

// BuiltinProfiles returns the motorcycle, car and truck profiles in that order.
func BuiltinProfiles() []*Profile {
	return []*Profile{MotorcycleProfile(), CarProfile(), TruckProfile()}
}

// mustProfile is only used with the constant tables above.
func mustProfile(class VehicleClass, rates Rates, limits Limits) *Profile {
	profile, err := NewProfile(class.String(), class, rates, limits)
	if err != nil {
		panic(err)
	}
	return profile
}
