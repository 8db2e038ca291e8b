package tariff

import (
	"errors"
	"fmt"
	"strings"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrProfileIsNotConstructed is returned when a Profile was not created through NewProfile.
var ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")

// Rates holds the unit prices of a tariff. All values must be non-negative.
type Rates struct {
	BaseCost          decimal.Decimal
	CostPerKilometer  decimal.Decimal
	CostPerKilogram   decimal.Decimal
	CostPerCubicMeter decimal.Decimal
}

// Limits holds the capacity of a vehicle class. An invalid (unset) NullDecimal
// means the dimension is unbounded, which only generic tariffs may use.
type Limits struct {
	MaxWeightKg decimal.NullDecimal
	MaxVolumeM3 decimal.NullDecimal
}

// NewLimits returns limits with both dimensions bounded.
func NewLimits(maxWeightKg, maxVolumeM3 decimal.Decimal) Limits {
	return Limits{
		MaxWeightKg: decimal.NewNullDecimal(maxWeightKg),
		MaxVolumeM3: decimal.NewNullDecimal(maxVolumeM3),
	}
}

// NoLimits returns limits with both dimensions unbounded.
func NoLimits() Limits {
	return Limits{}
}

// Profile is an immutable rate and capacity table for one tariff.
//
// Profile follows these invariants:
//   - Name is non-empty and Class is a valid VehicleClass
//   - All rates and set limits are non-negative
//   - Vehicle classes (motorcycle, car, truck) always carry both limits
//   - Fields never change after NewProfile returns, so a Profile can be
//     shared freely between goroutines
type Profile struct {
	name          string
	class         VehicleClass
	rates         Rates
	limits        Limits
	isConstructed bool
}

var _ Strategy = (*Profile)(nil)

// NewProfile creates a validated Profile.
//
// Parameters:
//   - name: tariff name, stored lower-cased and trimmed
//   - class: vehicle class the rates apply to
//   - rates: unit prices, all non-negative
//   - limits: capacity, required for vehicle classes
//
// Returns:
//   - *Profile: the created profile
//   - error: every validation failure, joined
//
// Example:
//
//	profile, err := tariff.NewProfile("car", tariff.ClassCar, tariff.Rates{
//	    BaseCost:          decimal.NewFromInt(8000),
//	    CostPerKilometer:  decimal.NewFromInt(800),
//	    CostPerKilogram:   decimal.NewFromInt(400),
//	    CostPerCubicMeter: tariff.DefaultCostPerCubicMeter,
//	}, tariff.NewLimits(decimal.NewFromInt(300), decimal.RequireFromString("1.5")))
func NewProfile(name string, class VehicleClass, rates Rates, limits Limits) (*Profile, error) {
	profile := &Profile{isConstructed: true}

	if err := errors.Join(
		profile.setName(name),
		profile.setClass(class),
		profile.setRates(rates),
		profile.setLimits(class, limits),
	); err != nil {
		return nil, err
	}

	return profile, nil
}

// Validate ensures the profile was created through NewProfile.
func (p *Profile) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrProfileIsNotConstructed
	}
	return nil
}

// Name returns the tariff name.
func (p *Profile) Name() string {
	return p.name
}

// Class returns the vehicle class.
func (p *Profile) Class() VehicleClass {
	return p.class
}

// Rates returns a copy of the unit prices.
func (p *Profile) Rates() Rates {
	return p.rates
}

// Limits returns a copy of the capacity limits.
func (p *Profile) Limits() Limits {
	return p.limits
}

// BaseCost returns the fixed fee.
func (p *Profile) BaseCost() decimal.Decimal {
	return p.rates.BaseCost
}

// CostPerKilometer returns the distance rate.
func (p *Profile) CostPerKilometer() decimal.Decimal {
	return p.rates.CostPerKilometer
}

// CostPerKilogram returns the weight rate.
func (p *Profile) CostPerKilogram() decimal.Decimal {
	return p.rates.CostPerKilogram
}

// CostPerCubicMeter returns the volume rate.
func (p *Profile) CostPerCubicMeter() decimal.Decimal {
	return p.rates.CostPerCubicMeter
}

// DistanceCost returns distanceKm × CostPerKilometer.
func (p *Profile) DistanceCost(distanceKm decimal.Decimal) decimal.Decimal {
	return distanceKm.Mul(p.rates.CostPerKilometer)
}

// WeightCost returns weightKg × CostPerKilogram.
// It fails with a CapacityExceededError when weightKg is above MaxWeightKg.
func (p *Profile) WeightCost(weightKg decimal.Decimal) (decimal.Decimal, error) {
	if err := p.checkWeight(weightKg); err != nil {
		return decimal.Zero, err
	}
	return weightKg.Mul(p.rates.CostPerKilogram), nil
}

// VolumeCost returns volumeM3 × CostPerCubicMeter.
// It fails with a CapacityExceededError when volumeM3 is above MaxVolumeM3.
func (p *Profile) VolumeCost(volumeM3 decimal.Decimal) (decimal.Decimal, error) {
	if err := p.checkVolume(volumeM3); err != nil {
		return decimal.Zero, err
	}
	return volumeM3.Mul(p.rates.CostPerCubicMeter), nil
}

// CheckCapacity checks weight, then volume, and returns the first violation.
func (p *Profile) CheckCapacity(weightKg, volumeM3 decimal.Decimal) error {
	if err := p.checkWeight(weightKg); err != nil {
		return err
	}
	return p.checkVolume(volumeM3)
}

// String returns a short description for logs.
func (p *Profile) String() string {
	return fmt.Sprintf("Profile(%s, %s)", p.name, p.class)
}

func (p *Profile) checkWeight(weightKg decimal.Decimal) error {
	limit := p.limits.MaxWeightKg
	if limit.Valid && weightKg.GreaterThan(limit.Decimal) {
		return errs.NewCapacityExceededError("weight", weightKg.String(), limit.Decimal.String(), "kg")
	}
	return nil
}

func (p *Profile) checkVolume(volumeM3 decimal.Decimal) error {
	limit := p.limits.MaxVolumeM3
	if limit.Valid && volumeM3.GreaterThan(limit.Decimal) {
		return errs.NewCapacityExceededError("volume", volumeM3.String(), limit.Decimal.String(), "m³")
	}
	return nil
}

func (p *Profile) setName(name string) error {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return errs.NewValueIsRequiredError("tariff name")
	}
	p.name = normalized
	return nil
}

func (p *Profile) setClass(class VehicleClass) error {
	if err := class.Validate(); err != nil {
		return err
	}
	p.class = class
	return nil
}

func (p *Profile) setRates(rates Rates) error {
	if err := errors.Join(
		kernel.ValidateNonNegative("base cost", rates.BaseCost),
		kernel.ValidateNonNegative("cost per kilometer", rates.CostPerKilometer),
		kernel.ValidateNonNegative("cost per kilogram", rates.CostPerKilogram),
		kernel.ValidateNonNegative("cost per cubic meter", rates.CostPerCubicMeter),
	); err != nil {
		return err
	}
	p.rates = rates
	return nil
}

func (p *Profile) setLimits(class VehicleClass, limits Limits) error {
	var errList []error

	if class.HasCapacityLimits() {
		if !limits.MaxWeightKg.Valid {
			errList = append(errList, errs.NewValueIsRequiredError("max weight kg"))
		}
		if !limits.MaxVolumeM3.Valid {
			errList = append(errList, errs.NewValueIsRequiredError("max volume m3"))
		}
	}
	if limits.MaxWeightKg.Valid {
		errList = append(errList, kernel.ValidateNonNegative("max weight kg", limits.MaxWeightKg.Decimal))
	}
	if limits.MaxVolumeM3.Valid {
		errList = append(errList, kernel.ValidateNonNegative("max volume m3", limits.MaxVolumeM3.Decimal))
	}

	if err := errors.Join(errList...); err != nil {
		return err
	}
	p.limits = limits
	return nil
}
