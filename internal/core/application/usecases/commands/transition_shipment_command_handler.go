package commands

import (
	"context"

	"shipping/internal/core/domain/model/shipment"
)

// TransitionShipmentCommandHandler loads a shipment under a row lock, applies
// the event through the lifecycle and stores the result.
//
// Concurrent events for the same shipment are serialised by the lock: the
// second caller sees the status written by the first and is validated against
// it.
//
// The lifecycle only records notifications on the shipment. The unit of work
// publishes them once Commit succeeds, after the row lock is released, and
// drops them when the transaction does not commit.
type TransitionShipmentCommandHandler struct {
	uowFactory ShipmentUoWFactory
	lifecycle  ShipmentLifecycle
}

// NewTransitionShipmentCommandHandler creates the handler.
func NewTransitionShipmentCommandHandler(
	uowFactory ShipmentUoWFactory,
	lifecycle ShipmentLifecycle,
) TransitionShipmentCommandHandler {
	return TransitionShipmentCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
	}
}

// Handle returns the status after the event. An illegal event returns
// InvalidTransitionError and leaves the row untouched.
func (h TransitionShipmentCommandHandler) Handle(ctx context.Context, cmd TransitionShipmentCommand) (shipment.Status, error) {
	if err := cmd.Validate(); err != nil {
		return shipment.Unknown, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return shipment.Unknown, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ShipmentRepository()
	s, err := repo.GetForUpdate(ctx, cmd.ShipmentID())
	if err != nil {
		return shipment.Unknown, err
	}

	status, err := h.lifecycle.Transition(ctx, s, cmd.Event())
	if err != nil {
		return shipment.Unknown, err
	}

	if err = repo.Update(ctx, s); err != nil {
		return shipment.Unknown, err
	}

	if err = uow.Commit(ctx); err != nil {
		return shipment.Unknown, err
	}

	return status, nil
}
