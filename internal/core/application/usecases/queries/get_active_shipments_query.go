package queries

import (
	"errors"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveShipmentsQueryIsNotConstructed = errors.New(
	"GetActiveShipmentsQuery must be created via NewGetActiveShipmentsQuery constructor",
)

// GetActiveShipmentsQuery lists shipments that have not reached a terminal
// status: PendingAssignment, InTransit and OutForDelivery.
//
// Example:
//
//	shipments, err := handler.Handle(ctx, NewGetActiveShipmentsQuery())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("%d shipments in flight\n", len(shipments))
type GetActiveShipmentsQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveShipmentsQuery creates the query.
func NewGetActiveShipmentsQuery() GetActiveShipmentsQuery {
	return GetActiveShipmentsQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveShipmentsQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveShipmentsQueryIsNotConstructed)
}

// GetActiveShipmentsQueryResponse is the summary row of an active shipment.
type GetActiveShipmentsQueryResponse struct {
	ID          kernel.UUID
	Status      shipment.Status
	CourierID   *kernel.UUID
	TariffName  string
	TotalCost   decimal.Decimal
	HasIncident bool
	CreatedAt   time.Time
}
