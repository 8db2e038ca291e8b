// Package queries contains read-only operations that bypass the aggregates
// and read the shipments table directly.
package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetShipmentQueryIsNotConstructed = errors.New(
	"GetShipmentQuery must be created via NewGetShipmentQuery constructor",
)

// GetShipmentQuery reads one shipment with its frozen quote.
//
// Example:
//
//	query, err := NewGetShipmentQuery(id)
//	if err != nil {
//	    return err
//	}
//	details, err := handler.Handle(ctx, query)
type GetShipmentQuery struct {
	shipmentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetShipmentQuery creates the query for shipmentID.
func NewGetShipmentQuery(shipmentID kernel.UUID) (GetShipmentQuery, error) {
	if err := shipmentID.Validate(); err != nil {
		return GetShipmentQuery{}, err
	}

	return GetShipmentQuery{
		shipmentID: shipmentID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetShipmentQuery) Validate() error {
	return q.guard.Validate(ErrGetShipmentQueryIsNotConstructed)
}

// ShipmentID returns the requested shipment.
func (q GetShipmentQuery) ShipmentID() kernel.UUID {
	return q.shipmentID
}

// BreakdownLine is one labelled amount of a stored quote.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// GetShipmentQueryResponse is the full view of a shipment. AvailableEvents
// lists what the current status accepts, ReportIncident included.
type GetShipmentQueryResponse struct {
	ID                  kernel.UUID
	Status              shipment.Status
	CourierID           *kernel.UUID
	IncidentDescription string
	TariffName          string
	DistanceKm          decimal.Decimal
	WeightKg            decimal.Decimal
	VolumeM3            decimal.Decimal
	TotalCost           decimal.Decimal
	Description         string
	Breakdown           []BreakdownLine
	AvailableEvents     []shipment.EventKind
	CreatedAt           time.Time
}
