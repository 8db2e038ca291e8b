// Package ports defines the contracts between the application core and its
// adapters: persistence, transactions and tariff lookup.
package ports

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
)

// ShipmentRepository defines the persistence contract for shipment aggregates.
type ShipmentRepository interface {
	// Add persists a new shipment. The shipment must be valid and not already exist.
	Add(ctx context.Context, aggregate *shipment.Shipment) error

	// Update persists status, courier and incident changes of an existing shipment.
	Update(ctx context.Context, aggregate *shipment.Shipment) error

	// Get retrieves a shipment by id.
	// Returns an errs.ObjectNotFoundError when it does not exist.
	Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetForUpdate retrieves a shipment by id and locks its row until the
	// surrounding transaction ends, serialising concurrent transitions of the
	// same shipment.
	//
	// Example:
	//   uow.Begin(ctx)
	//   s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
	//   // ... transition, Update, Commit
	GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error)

	// GetAllActive retrieves every shipment in a non-terminal status, oldest first.
	GetAllActive(ctx context.Context) ([]*shipment.Shipment, error)
}
