// Package kernel provides the primitives shared by the shipping domain model.
//
// The package includes:
//   - UUID: identifier value object with validation, used for shipments and couriers
//   - Amount helpers: rounding, non-negativity and range checks over shopspring/decimal
//     values, which every tariff rate, request magnitude and cost line is expressed in
//
// Amounts are kept as decimal.Decimal rather than float64 so that a cost total is always
// exactly the sum of its breakdown lines.
package kernel
