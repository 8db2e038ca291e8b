package commands

import (
	"context"

	"shipping/internal/core/domain/model/pricing"
)

// QuoteShipmentCostCommandHandler prices a request against the tariff catalog.
// It touches no storage.
type QuoteShipmentCostCommandHandler struct {
	tariffs TariffResolver
}

// NewQuoteShipmentCostCommandHandler creates a handler resolving tariffs with tariffs.
func NewQuoteShipmentCostCommandHandler(tariffs TariffResolver) QuoteShipmentCostCommandHandler {
	return QuoteShipmentCostCommandHandler{
		tariffs: tariffs,
	}
}

// Handle returns the quote: total, itemised breakdown and description.
// It fails with ObjectNotFoundError for an unknown tariff, CapacityExceededError
// when the vehicle cannot carry the request and an invalid-argument error for a
// bad add-on.
func (h QuoteShipmentCostCommandHandler) Handle(_ context.Context, cmd QuoteShipmentCostCommand) (pricing.Quote, error) {
	if err := cmd.Validate(); err != nil {
		return pricing.Quote{}, err
	}

	return quote(h.tariffs, cmd.TariffName(), cmd.Request(), cmd.AddOns())
}

func quote(tariffs TariffResolver, tariffName string, request pricing.Request, addOns []pricing.AddOnSpec) (pricing.Quote, error) {
	profile, err := tariffs.Resolve(tariffName)
	if err != nil {
		return pricing.Quote{}, err
	}

	calc, err := pricing.Build(profile, request, addOns)
	if err != nil {
		return pricing.Quote{}, err
	}

	return pricing.NewQuote(calc), nil
}
