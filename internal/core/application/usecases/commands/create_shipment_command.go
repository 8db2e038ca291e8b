package commands

import (
	"errors"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/pkg/guard"
)

var ErrCreateShipmentCommandIsNotConstructed = errors.New(
	"CreateShipmentCommand must be created via NewCreateShipmentCommand constructor",
)

// CreateShipmentCommand registers a new shipment priced at creation time. The
// quote is frozen on the shipment; later tariff changes do not affect it.
//
// Example:
//
//	cmd, err := NewCreateShipmentCommand(kernel.NewUUID(), "truck", req, nil)
//	if err != nil {
//	    return err
//	}
//	quote, err := handler.Handle(ctx, cmd)
type CreateShipmentCommand struct { //nolint:recvcheck //using for validation
	shipmentID kernel.UUID
	quote      QuoteShipmentCostCommand

	guard guard.ConstructorGuard
}

// NewCreateShipmentCommand validates the id and the pricing input.
func NewCreateShipmentCommand(
	shipmentID kernel.UUID,
	tariffName string,
	request pricing.Request,
	addOns []pricing.AddOnSpec,
) (CreateShipmentCommand, error) {
	cmd := CreateShipmentCommand{
		guard: guard.NewConstructorGuard(),
	}

	quoteCmd, quoteErr := NewQuoteShipmentCostCommand(tariffName, request, addOns)
	if err := errors.Join(cmd.setShipmentID(shipmentID), quoteErr); err != nil {
		return CreateShipmentCommand{}, err
	}
	cmd.quote = quoteCmd

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateShipmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentCommandIsNotConstructed)
}

// ShipmentID returns the id of the new shipment.
func (c CreateShipmentCommand) ShipmentID() kernel.UUID {
	return c.shipmentID
}

// TariffName returns the requested tariff.
func (c CreateShipmentCommand) TariffName() string {
	return c.quote.TariffName()
}

// Request returns the shipment dimensions.
func (c CreateShipmentCommand) Request() pricing.Request {
	return c.quote.Request()
}

// AddOns returns a copy of the add-ons, innermost first.
func (c CreateShipmentCommand) AddOns() []pricing.AddOnSpec {
	return c.quote.AddOns()
}

func (c *CreateShipmentCommand) setShipmentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.shipmentID = id
	return nil
}
