package commands_test

import (
	"context"
	"testing"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/core/ports"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockShipmentRepository struct{ mock.Mock }

func (m *MockShipmentRepository) Add(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Update(ctx context.Context, s *shipment.Shipment) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*shipment.Shipment)
	return s, args.Error(1)
}

func (m *MockShipmentRepository) GetAllActive(ctx context.Context) ([]*shipment.Shipment, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).([]*shipment.Shipment)
	return s, args.Error(1)
}

type MockShipmentUoW struct{ mock.Mock }

func (m *MockShipmentUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockShipmentUoW) ShipmentRepository() ports.ShipmentRepository {
	args := m.Called()
	return args.Get(0).(ports.ShipmentRepository)
}

type MockShipmentUoWFactory struct{ mock.Mock }

func (m *MockShipmentUoWFactory) Create() commands.ShipmentUoW {
	args := m.Called()
	return args.Get(0).(commands.ShipmentUoW)
}

type MockShipmentLifecycle struct{ mock.Mock }

func (m *MockShipmentLifecycle) Transition(
	ctx context.Context,
	s *shipment.Shipment,
	event shipment.Event,
) (shipment.Status, error) {
	args := m.Called(ctx, s, event)
	return args.Get(0).(shipment.Status), args.Error(1)
}

func newRequest(t *testing.T, distance, weight, volume string) pricing.Request {
	t.Helper()
	req, err := pricing.NewRequest(
		decimal.RequireFromString(distance),
		decimal.RequireFromString(weight),
		decimal.RequireFromString(volume),
	)
	require.NoError(t, err)
	return req
}

func newPendingShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	req := newRequest(t, "10", "50", "0")
	calc, err := pricing.Build(tariff.CarProfile(), req, nil)
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), "car", req, pricing.NewQuote(calc))
	require.NoError(t, err)
	return s
}

type noopNotifier struct{}

func (noopNotifier) NotifyStatusChanged(context.Context, shipment.StatusChanged) error {
	return nil
}

func (noopNotifier) NotifyCourierAssigned(context.Context, shipment.CourierAssigned) error {
	return nil
}

func (noopNotifier) NotifyIncidentReported(context.Context, shipment.IncidentReported) error {
	return nil
}

// recordingNotifier remembers every notification it receives.
type recordingNotifier struct {
	calls []string
}

func (n *recordingNotifier) NotifyStatusChanged(_ context.Context, c shipment.StatusChanged) error {
	n.calls = append(n.calls, "status:"+c.To.String())
	return nil
}

func (n *recordingNotifier) NotifyCourierAssigned(context.Context, shipment.CourierAssigned) error {
	n.calls = append(n.calls, "courier")
	return nil
}

func (n *recordingNotifier) NotifyIncidentReported(context.Context, shipment.IncidentReported) error {
	n.calls = append(n.calls, "incident")
	return nil
}
