// Package commands contains the operations that change shipment state or
// compute prices on request. Every command is validated on construction and
// carries a guard so that handlers reject zero values.
package commands

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/core/ports"
)

// Dependencies of the command handlers.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// ShipmentRepoFactory provides the shipment repository bound to the transaction.
	ShipmentRepoFactory interface {
		ShipmentRepository() ports.ShipmentRepository
	}

	// ShipmentUoW manages transactions for shipment operations.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   repo := uow.ShipmentRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	ShipmentUoW interface {
		TxManager
		ShipmentRepoFactory
	}

	// ShipmentUoWFactory creates a new unit of work per command.
	ShipmentUoWFactory interface {
		Create() ShipmentUoW
	}

	// TariffResolver finds the profile for a tariff name. *tariff.Catalog
	// satisfies it.
	TariffResolver interface {
		Resolve(name string) (*tariff.Profile, error)
	}

	// ShipmentLifecycle applies events and notifies observers.
	// *shipment.Lifecycle satisfies it.
	ShipmentLifecycle interface {
		Transition(ctx context.Context, s *shipment.Shipment, event shipment.Event) (shipment.Status, error)
	}
)
