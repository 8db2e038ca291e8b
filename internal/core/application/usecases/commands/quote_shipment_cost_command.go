package commands

import (
	"errors"
	"strings"

	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/pkg/errs"
	"shipping/internal/pkg/guard"
)

var ErrQuoteShipmentCostCommandIsNotConstructed = errors.New(
	"QuoteShipmentCostCommand must be created via NewQuoteShipmentCostCommand constructor",
)

// QuoteShipmentCostCommand asks for the price of a shipment without storing it.
//
// Example:
//
//	req, _ := pricing.NewRequest(decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.Zero)
//	cmd, err := NewQuoteShipmentCostCommand("car", req, []pricing.AddOnSpec{pricing.InsuranceAddOn()})
//	if err != nil {
//	    return err
//	}
//	quote, err := handler.Handle(ctx, cmd)
type QuoteShipmentCostCommand struct { //nolint:recvcheck //using for validation
	tariffName string
	request    pricing.Request
	addOns     []pricing.AddOnSpec

	guard guard.ConstructorGuard
}

// NewQuoteShipmentCostCommand validates the tariff name and request. Add-ons
// are kept in the given order and validated when the calculator is built.
func NewQuoteShipmentCostCommand(
	tariffName string,
	request pricing.Request,
	addOns []pricing.AddOnSpec,
) (QuoteShipmentCostCommand, error) {
	cmd := QuoteShipmentCostCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setTariffName(tariffName),
		cmd.setRequest(request),
	); err != nil {
		return QuoteShipmentCostCommand{}, err
	}
	cmd.addOns = append([]pricing.AddOnSpec(nil), addOns...)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c QuoteShipmentCostCommand) Validate() error {
	return c.guard.Validate(ErrQuoteShipmentCostCommandIsNotConstructed)
}

// TariffName returns the requested tariff.
func (c QuoteShipmentCostCommand) TariffName() string {
	return c.tariffName
}

// Request returns the shipment dimensions.
func (c QuoteShipmentCostCommand) Request() pricing.Request {
	return c.request
}

// AddOns returns a copy of the add-ons, innermost first.
func (c QuoteShipmentCostCommand) AddOns() []pricing.AddOnSpec {
	return append([]pricing.AddOnSpec(nil), c.addOns...)
}

func (c *QuoteShipmentCostCommand) setTariffName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("tariff name")
	}

	c.tariffName = name
	return nil
}

func (c *QuoteShipmentCostCommand) setRequest(request pricing.Request) error {
	if err := request.Validate(); err != nil {
		return err
	}

	c.request = request
	return nil
}
