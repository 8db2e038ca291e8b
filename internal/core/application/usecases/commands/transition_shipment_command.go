package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"
)

var ErrTransitionShipmentCommandIsNotConstructed = errors.New(
	"TransitionShipmentCommand must be created via NewTransitionShipmentCommand constructor",
)

// TransitionShipmentCommand applies one lifecycle event to a stored shipment.
//
// Example:
//
//	event, _ := shipment.NewAssignEvent(courierID)
//	cmd, err := NewTransitionShipmentCommand(shipmentID, event)
//	if err != nil {
//	    return err
//	}
//	status, err := handler.Handle(ctx, cmd)
type TransitionShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	event      shipment.Event

	guard guard.ConstructorGuard
}

// NewTransitionShipmentCommand validates the id and the event.
func NewTransitionShipmentCommand(shipmentID kernel.UUID, event shipment.Event) (TransitionShipmentCommand, error) {
	cmd := TransitionShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setShipmentID(shipmentID),
		cmd.setEvent(event),
	); err != nil {
		return TransitionShipmentCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionShipmentCommand) Validate() error {
	return c.guard.Validate(ErrTransitionShipmentCommandIsNotConstructed)
}

// ShipmentID returns the target shipment.
func (c TransitionShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// Event returns the event to apply.
func (c TransitionShipmentCommand) Event() shipment.Event {
	return c.event
}

func (c *TransitionShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}

func (c *TransitionShipmentCommand) setEvent(event shipment.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	c.event = event
	return nil
}
