// Package tariff provides the rate tables shipments are priced with.
//
// The package includes:
//   - VehicleClass: motorcycle, car, truck and generic
//   - Strategy: the rate capability consumed by the base cost calculator
//   - Profile: the immutable Strategy implementation, with optional capacity limits
//   - Built-in motorcycle, car and truck profiles sharing DefaultCostPerCubicMeter
//   - Catalog: concurrent name to profile lookup, refreshed from persistence
//
// Key business rules:
//   - Rates and limits are never negative
//   - Weight or volume above a profile's limit fails with errs.ErrCapacityExceeded
//     before any cost is computed
//   - Vehicle profiles always have limits; generic named tariffs may be unbounded
package tariff
