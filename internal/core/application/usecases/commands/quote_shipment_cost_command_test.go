package commands_test

import (
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewQuoteShipmentCostCommand(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		req := newRequest(t, "10", "50", "0")
		addOns := []pricing.AddOnSpec{pricing.InsuranceAddOn()}

		cmd, err := commands.NewQuoteShipmentCostCommand(" car ", req, addOns)

		require.NoError(t, err)
		assert.Equal(t, "car", cmd.TariffName())
		assert.Equal(t, req, cmd.Request())
		assert.Equal(t, addOns, cmd.AddOns())
		require.NoError(t, cmd.Validate())
	})

	t.Run("empty tariff and zero request", func(t *testing.T) {
		_, err := commands.NewQuoteShipmentCostCommand("", pricing.Request{}, nil)

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, pricing.ErrRequestIsNotConstructed)
	})

	t.Run("zero value is rejected", func(t *testing.T) {
		assert.ErrorIs(t, commands.QuoteShipmentCostCommand{}.Validate(),
			commands.ErrQuoteShipmentCostCommandIsNotConstructed)
	})
}

func TestQuoteShipmentCostCommandHandler_Handle(t *testing.T) {
	handler := commands.NewQuoteShipmentCostCommandHandler(tariff.NewCatalog())

	t.Run("prices the car example", func(t *testing.T) {
		cmd, err := commands.NewQuoteShipmentCostCommand("car", newRequest(t, "10", "50", "0"), []pricing.AddOnSpec{
			pricing.InsuranceAddOn(),
			pricing.SignatureAddOn(),
		})
		require.NoError(t, err)

		quote, err := handler.Handle(t.Context(), cmd)

		require.NoError(t, err)
		assert.True(t, decimal.NewFromInt(45800).Equal(quote.Total), quote.Total.String())
		assert.True(t, quote.IsConsistent())
	})

	t.Run("unknown tariff", func(t *testing.T) {
		cmd, err := commands.NewQuoteShipmentCostCommand("hovercraft", newRequest(t, "1", "1", "0"), nil)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("over capacity", func(t *testing.T) {
		cmd, err := commands.NewQuoteShipmentCostCommand("motorcycle", newRequest(t, "1", "500", "0"), nil)
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.ErrorIs(t, err, errs.ErrCapacityExceeded)
	})

	t.Run("bad add-on", func(t *testing.T) {
		cmd, err := commands.NewQuoteShipmentCostCommand("car", newRequest(t, "1", "1", "0"), []pricing.AddOnSpec{
			pricing.PriorityAddOn(9),
		})
		require.NoError(t, err)

		_, err = handler.Handle(t.Context(), cmd)

		require.Error(t, err)
		assert.True(t, errs.IsInvalidArgument(err))
	})

	t.Run("unconstructed command", func(t *testing.T) {
		_, err := handler.Handle(t.Context(), commands.QuoteShipmentCostCommand{})

		require.ErrorIs(t, err, commands.ErrQuoteShipmentCostCommandIsNotConstructed)
	})
}
