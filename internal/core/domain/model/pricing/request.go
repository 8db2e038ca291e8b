package pricing

import (
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrRequestIsNotConstructed is returned when a Request was not created through NewRequest.
var ErrRequestIsNotConstructed = errors.New("Request must be created via NewRequest constructor")

// Request holds the physical attributes of a shipment that drive its cost.
// Distance, weight and volume are all non-negative.
type Request struct {
	distanceKm decimal.Decimal
	weightKg   decimal.Decimal
	volumeM3   decimal.Decimal
	guard      guard.ConstructorGuard
}

// NewRequest validates and creates a Request.
// Negative values fail with a ValueIsInvalidError; nothing is clamped.
//
// Example:
//
//	req, err := pricing.NewRequest(
//	    decimal.NewFromInt(10), // km
//	    decimal.NewFromInt(50), // kg
//	    decimal.Zero,           // m³
//	)
func NewRequest(distanceKm, weightKg, volumeM3 decimal.Decimal) (Request, error) {
	if err := errors.Join(
		kernel.ValidateNonNegative("distance km", distanceKm),
		kernel.ValidateNonNegative("weight kg", weightKg),
		kernel.ValidateNonNegative("volume m3", volumeM3),
	); err != nil {
		return Request{}, err
	}

	return Request{
		distanceKm: distanceKm,
		weightKg:   weightKg,
		volumeM3:   volumeM3,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the request was created through NewRequest.
func (r Request) Validate() error {
	return r.guard.Validate(ErrRequestIsNotConstructed)
}

// DistanceKm returns the travel distance in kilometres.
func (r Request) DistanceKm() decimal.Decimal {
	return r.distanceKm
}

// WeightKg returns the shipment weight in kilograms.
func (r Request) WeightKg() decimal.Decimal {
	return r.weightKg
}

// VolumeM3 returns the shipment volume in cubic metres.
func (r Request) VolumeM3() decimal.Decimal {
	return r.volumeM3
}

// String returns a compact form for logs.
func (r Request) String() string {
	return fmt.Sprintf("Request(%s km, %s kg, %s m³)", r.distanceKm, r.weightKg, r.volumeM3)
}
