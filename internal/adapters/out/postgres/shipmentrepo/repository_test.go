package shipmentrepo_test

import (
	"regexp"
	"testing"
	"time"

	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

var shipmentColumns = []string{
	"id", "status", "courier_id", "incident_description", "tariff_name",
	"distance_km", "weight_kg", "volume_m3", "total_cost", "description",
	"breakdown", "created_at", "updated_at",
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.NoError(t, err)
	return gormDB, sqlMock
}

func newTestShipment(t *testing.T) *shipment.Shipment {
	t.Helper()
	req, err := pricing.NewRequest(decimal.NewFromInt(10), decimal.NewFromInt(50), decimal.Zero)
	require.NoError(t, err)
	calc, err := pricing.Build(tariff.CarProfile(), req, []pricing.AddOnSpec{pricing.InsuranceAddOn()})
	require.NoError(t, err)
	s, err := shipment.NewShipment(kernel.NewUUID(), "car", req, pricing.NewQuote(calc))
	require.NoError(t, err)
	return s
}

func TestGormShipmentRepository_Add(t *testing.T) {
	t.Run("should insert and track", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		tracker := new(MockAggregateTracker)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, tracker)
		s := newTestShipment(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "shipments"`)).
			WillReturnResult(sqlmock.NewResult(1, 1))
		sqlMock.ExpectCommit()
		tracker.On("TrackAggregate", s.ID(), s).Once()

		err := repo.Add(t.Context(), s)

		require.NoError(t, err)
		require.NoError(t, sqlMock.ExpectationsWereMet())
		tracker.AssertExpectations(t)
	})

	t.Run("should map unique violation", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		tracker := new(MockAggregateTracker)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, tracker)
		s := newTestShipment(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "shipments"`)).
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
		sqlMock.ExpectRollback()

		err := repo.Add(t.Context(), s)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		tracker.AssertNotCalled(t, "TrackAggregate", mock.Anything, mock.Anything)
	})

	t.Run("should reject an unconstructed shipment", func(t *testing.T) {
		gormDB, _ := setupMockDB(t)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))

		err := repo.Add(t.Context(), &shipment.Shipment{})

		assert.Equal(t, shipment.ErrShipmentIsNotConstructed, err)
	})
}

func TestGormShipmentRepository_Update(t *testing.T) {
	t.Run("should update lifecycle columns", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		tracker := new(MockAggregateTracker)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, tracker)
		s := newTestShipment(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE "shipments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		sqlMock.ExpectCommit()
		tracker.On("TrackAggregate", s.ID(), s).Once()

		require.NoError(t, repo.Update(t.Context(), s))
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("should report missing rows as not found", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))
		s := newTestShipment(t)

		sqlMock.ExpectBegin()
		sqlMock.ExpectExec(regexp.QuoteMeta(`UPDATE "shipments" SET`)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		sqlMock.ExpectCommit()

		err := repo.Update(t.Context(), s)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestGormShipmentRepository_Get(t *testing.T) {
	now := time.Now().UTC()
	breakdown := `[{"label":"base fee","amount":"8000"},{"label":"distance","amount":"8000"},` +
		`{"label":"weight","amount":"20000"},{"label":"volume","amount":"0"}]`

	t.Run("should restore the aggregate", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))
		id := kernel.NewUUID()
		courierID := kernel.NewUUID()

		rows := sqlmock.NewRows(shipmentColumns).AddRow(
			id.String(), "OutForDelivery", courierID.String(), "", "car",
			"10", "50", "0", "36000", "car tariff", breakdown, now, now,
		)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shipments"`)).WillReturnRows(rows)

		s, err := repo.Get(t.Context(), id)

		require.NoError(t, err)
		assert.True(t, s.ID().IsEqual(id))
		assert.Equal(t, shipment.OutForDelivery, s.Status())
		require.NotNil(t, s.Courier())
		assert.True(t, s.Courier().IsEqual(courierID))
		assert.True(t, decimal.NewFromInt(36000).Equal(s.Quote().Total))
		assert.Len(t, s.Quote().Breakdown, 4)
	})

	t.Run("should lock the row for update", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))
		id := kernel.NewUUID()

		rows := sqlmock.NewRows(shipmentColumns).AddRow(
			id.String(), "PendingAssignment", nil, "", "car",
			"10", "50", "0", "36000", "car tariff", breakdown, now, now,
		)
		sqlMock.ExpectQuery(`SELECT \* FROM "shipments" .* FOR UPDATE`).WillReturnRows(rows)

		s, err := repo.GetForUpdate(t.Context(), id)

		require.NoError(t, err)
		assert.Equal(t, shipment.PendingAssignment, s.Status())
		require.NoError(t, sqlMock.ExpectationsWereMet())
	})

	t.Run("should return not found", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))

		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shipments"`)).
			WillReturnRows(sqlmock.NewRows(shipmentColumns))

		s, err := repo.Get(t.Context(), kernel.NewUUID())

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.Nil(t, s)
	})

	t.Run("should reject a corrupted row", func(t *testing.T) {
		gormDB, sqlMock := setupMockDB(t)
		repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))
		id := kernel.NewUUID()

		rows := sqlmock.NewRows(shipmentColumns).AddRow(
			id.String(), "InTransit", nil, "", "car",
			"10", "50", "0", "36000", "car tariff", breakdown, now, now,
		)
		sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shipments"`)).WillReturnRows(rows)

		_, err := repo.Get(t.Context(), id)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestGormShipmentRepository_GetAllActive(t *testing.T) {
	gormDB, sqlMock := setupMockDB(t)
	repo := shipmentrepo.NewGormShipmentRepository(gormDB, new(MockAggregateTracker))
	now := time.Now().UTC()
	breakdown := `[{"label":"base fee","amount":"5000"}]`

	rows := sqlmock.NewRows(shipmentColumns).
		AddRow(kernel.NewUUID().String(), "PendingAssignment", nil, "", "motorcycle",
			"1", "1", "0", "5000", "m", breakdown, now, now).
		AddRow(kernel.NewUUID().String(), "InTransit", kernel.NewUUID().String(), "flat tyre", "motorcycle",
			"1", "1", "0", "5000", "m", breakdown, now.Add(time.Minute), now)
	sqlMock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "shipments" WHERE status IN`)).
		WithArgs("PendingAssignment", "InTransit", "OutForDelivery").
		WillReturnRows(rows)

	shipments, err := repo.GetAllActive(t.Context())

	require.NoError(t, err)
	require.Len(t, shipments, 2)
	assert.Equal(t, shipment.PendingAssignment, shipments[0].Status())
	assert.Equal(t, "flat tyre", shipments[1].IncidentDescription())
	require.NoError(t, sqlMock.ExpectationsWereMet())
}
