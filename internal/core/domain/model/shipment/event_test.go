package shipment_test

import (
	"strings"
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEvent(t *testing.T) {
	courierID := kernel.NewUUID()

	t.Run("assign requires a courier", func(t *testing.T) {
		event, err := shipment.NewEvent(shipment.Assign, &courierID, "")
		require.NoError(t, err)
		assert.Equal(t, shipment.Assign, event.Kind())
		assert.True(t, courierID.IsEqual(event.CourierID()))

		_, err = shipment.NewEvent(shipment.Assign, nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = shipment.NewAssignEvent(kernel.UUID{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("incident requires a description", func(t *testing.T) {
		event, err := shipment.NewEvent(shipment.ReportIncident, nil, "  parcel damaged ")
		require.NoError(t, err)
		assert.Equal(t, "parcel damaged", event.Description())

		_, err = shipment.NewIncidentEvent("   ")
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = shipment.NewIncidentEvent(strings.Repeat("x", shipment.MaxIncidentDescriptionLength+1))
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("plain events ignore payload", func(t *testing.T) {
		event, err := shipment.NewEvent(shipment.Cancel, &courierID, "ignored")

		require.NoError(t, err)
		require.NoError(t, event.Validate())
		assert.Equal(t, shipment.Cancel, event.Kind())
		assert.Empty(t, event.Description())
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := shipment.NewEvent(shipment.UnknownEvent, nil, "")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value event is not constructed", func(t *testing.T) {
		assert.Equal(t, shipment.ErrEventIsNotConstructed, shipment.Event{}.Validate())
	})
}

func TestParseEventKind(t *testing.T) {
	for _, kind := range shipment.AllEventKinds() {
		parsed, err := shipment.ParseEventKind(strings.ToUpper(kind.String()))

		require.NoError(t, err)
		assert.Equal(t, kind, parsed)
	}

	_, err := shipment.ParseEventKind("teleport")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
