package services_test

import (
	"testing"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	req, err := pricing.NewRequest(decimal.NewFromInt(3), decimal.NewFromInt(2), decimal.RequireFromString("0.01"))
	require.NoError(t, err)
	calc, err := pricing.Build(tariff.MotorcycleProfile(), req, nil)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), "motorcycle", req, pricing.NewQuote(calc))
	require.NoError(t, err)
	return s
}
