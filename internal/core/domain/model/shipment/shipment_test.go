package shipment_test

import (
	"testing"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newQuote(t *testing.T) (pricing.Request, pricing.Quote) {
	t.Helper()
	req, err := pricing.NewRequest(decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.Zero)
	require.NoError(t, err)
	calc, err := pricing.Build(tariff.CarProfile(), req, []pricing.AddOnSpec{pricing.SignatureAddOn()})
	require.NoError(t, err)
	return req, pricing.NewQuote(calc)
}

func newShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	req, quote := newQuote(t)
	s, err := shipment.NewShipment(kernel.NewUUID(), "car", req, quote)
	require.NoError(t, err)
	return s
}

func TestNewShipment(t *testing.T) {
	req, quote := newQuote(t)

	t.Run("should start pending without courier", func(t *testing.T) {
		id := kernel.NewUUID()

		s, err := shipment.NewShipment(id, " Car ", req, quote)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, shipment.PendingAssignment, s.Status())
		assert.Nil(t, s.Courier())
		assert.False(t, s.HasIncident())
		assert.Equal(t, "car", s.TariffName())
		assert.True(t, quote.Total.Equal(s.Quote().Total))
		assert.False(t, s.CreatedAt().IsZero())
	})

	t.Run("should join every validation failure", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.UUID{}, "", pricing.Request{}, pricing.Quote{})

		require.Error(t, err)
		assert.Nil(t, s)
		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		require.ErrorIs(t, err, pricing.ErrRequestIsNotConstructed)
		assert.Contains(t, err.Error(), "tariff name")
		assert.Contains(t, err.Error(), "quote breakdown")
	})

	t.Run("should reject an inconsistent quote", func(t *testing.T) {
		broken := quote
		broken.Total = quote.Total.Add(decimal.NewFromInt(1))

		_, err := shipment.NewShipment(kernel.NewUUID(), "car", req, broken)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should not share the quote breakdown", func(t *testing.T) {
		s, err := shipment.NewShipment(kernel.NewUUID(), "car", req, quote)
		require.NoError(t, err)

		q := s.Quote()
		q.Breakdown[0].Label = "changed"

		assert.Equal(t, "base fee", s.Quote().Breakdown[0].Label)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var s *shipment.Shipment
		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, s.Validate())
		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, (&shipment.Shipment{}).Validate())
	})
}

func TestRestoreShipment(t *testing.T) {
	req, quote := newQuote(t)
	courierID := kernel.NewUUID()
	createdAt := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("should restore persisted state", func(t *testing.T) {
		id := kernel.NewUUID()

		s, err := shipment.RestoreShipment(id, shipment.Delivered, &courierID, "late", "car", req, quote, createdAt)

		require.NoError(t, err)
		assert.Equal(t, shipment.Delivered, s.Status())
		require.NotNil(t, s.Courier())
		assert.True(t, courierID.IsEqual(*s.Courier()))
		assert.Equal(t, "late", s.IncidentDescription())
		assert.Equal(t, createdAt, s.CreatedAt())
	})

	t.Run("should reject inconsistent courier", func(t *testing.T) {
		_, err := shipment.RestoreShipment(kernel.NewUUID(), shipment.InTransit, nil, "", "car", req, quote, createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = shipment.RestoreShipment(kernel.NewUUID(), shipment.PendingAssignment, &courierID, "", "car", req, quote, createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject unknown status", func(t *testing.T) {
		_, err := shipment.RestoreShipment(kernel.NewUUID(), shipment.Unknown, nil, "", "car", req, quote, createdAt)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestShipment_IsEqual(t *testing.T) {
	s := newShipment(t)
	other := newShipment(t)

	assert.True(t, s.IsEqual(s))
	assert.False(t, s.IsEqual(other))
	assert.False(t, s.IsEqual(nil))
}
