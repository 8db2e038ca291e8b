package commands

import (
	"context"

	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
)

// CreateShipmentCommandHandler prices and stores a new shipment in
// PendingAssignment.
//
// Example:
//
//	handler := NewCreateShipmentCommandHandler(uowFactory, catalog)
//	quote, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("shipment creation failed: %w", err)
//	}
type CreateShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	tariffs    TariffResolver
}

// NewCreateShipmentCommandHandler creates the handler.
func NewCreateShipmentCommandHandler(uowFactory ShipmentUoWFactory, tariffs TariffResolver) CreateShipmentCommandHandler {
	return CreateShipmentCommandHandler{
		uowFactory: uowFactory,
		tariffs:    tariffs,
	}
}

// Handle quotes the request before opening a transaction, so pricing failures
// never touch the database, then adds the shipment and commits.
func (h CreateShipmentCommandHandler) Handle(ctx context.Context, cmd CreateShipmentCommand) (pricing.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return pricing.Quote{}, err
	}

	q, err := quote(h.tariffs, cmd.TariffName(), cmd.Request(), cmd.AddOns())
	if err != nil {
		return pricing.Quote{}, err
	}

	s, err := shipment.NewShipment(cmd.ShipmentID(), cmd.TariffName(), cmd.Request(), q)
	if err != nil {
		return pricing.Quote{}, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return pricing.Quote{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.ShipmentRepository().Add(ctx, s); err != nil {
		return pricing.Quote{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return pricing.Quote{}, err
	}

	return q, nil
}
