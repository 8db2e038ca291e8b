// Package pricing computes the cost of a shipment as a chain of calculators.
//
// The package includes:
//   - Request: validated distance, weight and volume of a shipment
//   - Calculator: the sealed cost capability with variants Base, Signature,
//     Fragile, Insurance and Priority
//   - Build: assembles a Base calculator and wraps it with add-ons in caller order
//   - Quote: the frozen total, breakdown and description of a chain
//
// Key business rules:
//   - The base cost is base fee + distance + weight + volume, priced by a tariff.Strategy
//   - Capacity is checked before any cost is computed; oversized shipments yield no calculator
//   - Each decorator wraps exactly one calculator and adds exactly one breakdown line
//   - Signature and Fragile add flat fees; Insurance and Priority add a share of the
//     cumulative wrapped cost, so their position in the chain changes the total
//   - Every line is rounded to cents and the total is the exact sum of the lines
package pricing
