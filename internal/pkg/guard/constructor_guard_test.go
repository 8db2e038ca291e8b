package guard_test

import (
	"errors"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/guard"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard(t *testing.T) {
	errNotBuilt := errors.New("quote must be created via its constructor")

	t.Run("constructed guard accepts", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotBuilt))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value reports the caller's sentinel", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Same(t, errNotBuilt, g.Validate(errNotBuilt))
	})

	t.Run("zero value falls back to the default sentinel", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

// validator is what every guarded type exposes.
type validator interface {
	Validate() error
}

// TestGuardedTypes checks each type that embeds a ConstructorGuard: the zero
// value reports its own sentinel and the constructed value passes.
func TestGuardedTypes(t *testing.T) {
	req, err := pricing.NewRequest(decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.Zero)
	require.NoError(t, err)
	courierID := kernel.NewUUID()
	assign, err := shipment.NewAssignEvent(courierID)
	require.NoError(t, err)
	quoteCmd, err := commands.NewQuoteShipmentCostCommand("car", req, []pricing.AddOnSpec{pricing.InsuranceAddOn()})
	require.NoError(t, err)
	createCmd, err := commands.NewCreateShipmentCommand(kernel.NewUUID(), "car", req, nil)
	require.NoError(t, err)
	transitionCmd, err := commands.NewTransitionShipmentCommand(kernel.NewUUID(), assign)
	require.NoError(t, err)
	getQuery, err := queries.NewGetShipmentQuery(kernel.NewUUID())
	require.NoError(t, err)

	tests := map[string]struct {
		zero        validator
		constructed validator
		sentinel    error
	}{
		"cost request": {
			zero: pricing.Request{}, constructed: req,
			sentinel: pricing.ErrRequestIsNotConstructed,
		},
		"lifecycle event": {
			zero: shipment.Event{}, constructed: assign,
			sentinel: shipment.ErrEventIsNotConstructed,
		},
		"quote command": {
			zero: commands.QuoteShipmentCostCommand{}, constructed: quoteCmd,
			sentinel: commands.ErrQuoteShipmentCostCommandIsNotConstructed,
		},
		"create command": {
			zero: commands.CreateShipmentCommand{}, constructed: createCmd,
			sentinel: commands.ErrCreateShipmentCommandIsNotConstructed,
		},
		"transition command": {
			zero: commands.TransitionShipmentCommand{}, constructed: transitionCmd,
			sentinel: commands.ErrTransitionShipmentCommandIsNotConstructed,
		},
		"get shipment query": {
			zero: queries.GetShipmentQuery{}, constructed: getQuery,
			sentinel: queries.ErrGetShipmentQueryIsNotConstructed,
		},
		"active shipments query": {
			zero: queries.GetActiveShipmentsQuery{}, constructed: queries.NewGetActiveShipmentsQuery(),
			sentinel: queries.ErrGetActiveShipmentsQueryIsNotConstructed,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, tc.zero.Validate(), tc.sentinel)
			assert.NoError(t, tc.constructed.Validate())
		})
	}
}

func TestGuardSurvivesCopies(t *testing.T) {
	req, err := pricing.NewRequest(decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero)
	require.NoError(t, err)
	cmd, err := commands.NewQuoteShipmentCostCommand("motorcycle", req, nil)
	require.NoError(t, err)

	copied := cmd

	require.NoError(t, copied.Validate())
	require.NoError(t, copied.Request().Validate())
}
