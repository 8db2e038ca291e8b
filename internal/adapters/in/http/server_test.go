package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	api "shipping/internal/adapters/in/http"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCreateHandler struct{ mock.Mock }

func (m *MockCreateHandler) Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (pricing.Quote, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(pricing.Quote), args.Error(1)
}

type MockTransitionHandler struct{ mock.Mock }

func (m *MockTransitionHandler) Handle(
	ctx context.Context,
	cmd commands.TransitionShipmentCommand,
) (shipment.Status, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(shipment.Status), args.Error(1)
}

type MockGetHandler struct{ mock.Mock }

func (m *MockGetHandler) Handle(
	ctx context.Context,
	query queries.GetShipmentQuery,
) (queries.GetShipmentQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).(queries.GetShipmentQueryResponse), args.Error(1)
}

type MockActiveHandler struct{ mock.Mock }

func (m *MockActiveHandler) Handle(
	ctx context.Context,
	query queries.GetActiveShipmentsQuery,
) ([]queries.GetActiveShipmentsQueryResponse, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]queries.GetActiveShipmentsQueryResponse), args.Error(1)
}

type fixture struct {
	echo       *echo.Echo
	create     *MockCreateHandler
	transition *MockTransitionHandler
	get        *MockGetHandler
	active     *MockActiveHandler
}

// newFixture wires the real quote handler over the built-in catalog and mocks
// for everything that touches storage.
func newFixture() fixture {
	f := fixture{
		echo:       echo.New(),
		create:     new(MockCreateHandler),
		transition: new(MockTransitionHandler),
		get:        new(MockGetHandler),
		active:     new(MockActiveHandler),
	}
	server := api.NewServer(
		commands.NewQuoteShipmentCostCommandHandler(tariff.NewCatalog()),
		f.create,
		f.transition,
		f.get,
		f.active,
		nil,
	)
	server.RegisterRoutes(f.echo)
	return f
}

func (f fixture) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := newFixture().do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Healthy", rec.Body.String())
}

func TestQuoteShipment(t *testing.T) {
	t.Run("returns total and breakdown", func(t *testing.T) {
		rec := newFixture().do(http.MethodPost, "/api/v1/quotes", `{
			"tariff": "car",
			"distance_km": 10,
			"weight_kg": 50,
			"volume_m3": 0,
			"add_ons": [{"kind": "insurance"}, {"kind": "signature"}]
		}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp api.QuoteResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, decimal.NewFromInt(45800).Equal(resp.Total), resp.Total.String())
		assert.Len(t, resp.Breakdown, 6)
	})

	t.Run("maps error kinds to status codes", func(t *testing.T) {
		cases := []struct {
			name string
			body string
			code int
		}{
			{"malformed body", `{`, http.StatusBadRequest},
			{"negative distance", `{"tariff":"car","distance_km":-1,"weight_kg":1,"volume_m3":0}`, http.StatusBadRequest},
			{"unknown add-on", `{"tariff":"car","distance_km":1,"weight_kg":1,"volume_m3":0,"add_ons":[{"kind":"gift"}]}`,
				http.StatusBadRequest},
			{"priority level out of range",
				`{"tariff":"car","distance_km":1,"weight_kg":1,"volume_m3":0,"add_ons":[{"kind":"priority","level":7}]}`,
				http.StatusBadRequest},
			{"over capacity", `{"tariff":"motorcycle","distance_km":1,"weight_kg":40,"volume_m3":0}`,
				http.StatusUnprocessableEntity},
			{"unknown tariff", `{"tariff":"zeppelin","distance_km":1,"weight_kg":1,"volume_m3":0}`, http.StatusNotFound},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := newFixture().do(http.MethodPost, "/api/v1/quotes", tc.body)

				assert.Equal(t, tc.code, rec.Code, rec.Body.String())
			})
		}
	})
}

func TestCreateShipment(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		f := newFixture()
		quote := pricing.Quote{
			Total:       decimal.NewFromInt(5000),
			Breakdown:   []pricing.BreakdownItem{{Label: "base fee", Amount: decimal.NewFromInt(5000)}},
			Description: "motorcycle tariff",
		}
		f.create.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateShipmentCommand) bool {
			return cmd.TariffName() == "motorcycle" && len(cmd.AddOns()) == 1
		})).Return(quote, nil).Once()

		rec := f.do(http.MethodPost, "/api/v1/shipments",
			`{"tariff":"motorcycle","distance_km":"0","weight_kg":"0","volume_m3":"0","add_ons":[{"kind":"fragile","value":"100"}]}`)

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp api.CreateShipmentResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		_, err := kernel.UUIDFromString(resp.ID)
		require.NoError(t, err)
		assert.Equal(t, "PendingAssignment", resp.Status)
		f.create.AssertExpectations(t)
	})

	t.Run("storage failure is hidden", func(t *testing.T) {
		f := newFixture()
		f.create.On("Handle", mock.Anything, mock.Anything).
			Return(pricing.Quote{}, errors.New("connection reset")).Once()

		rec := f.do(http.MethodPost, "/api/v1/shipments", `{"tariff":"car","distance_km":1,"weight_kg":1,"volume_m3":0}`)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.NotContains(t, rec.Body.String(), "connection reset")
	})
}

func TestPostShipmentEvent(t *testing.T) {
	id := kernel.NewUUID()
	path := "/api/v1/shipments/" + id.String() + "/events"

	t.Run("assign", func(t *testing.T) {
		f := newFixture()
		courierID := kernel.NewUUID()
		f.transition.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.TransitionShipmentCommand) bool {
			return cmd.ShipmentID().IsEqual(id) &&
				cmd.Event().Kind() == shipment.Assign &&
				cmd.Event().CourierID().IsEqual(courierID)
		})).Return(shipment.InTransit, nil).Once()

		rec := f.do(http.MethodPost, path, `{"event":"assign","courier_id":"`+courierID.String()+`"}`)

		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var resp api.TransitionResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "InTransit", resp.Status)
		f.transition.AssertExpectations(t)
	})

	t.Run("illegal transition is a conflict", func(t *testing.T) {
		f := newFixture()
		f.transition.On("Handle", mock.Anything, mock.Anything).
			Return(shipment.Unknown, errs.NewInvalidTransitionError("Delivered", "cancel")).Once()

		rec := f.do(http.MethodPost, path, `{"event":"cancel"}`)

		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, rec.Body.String(), "cancel is not allowed from Delivered")
	})

	t.Run("missing shipment", func(t *testing.T) {
		f := newFixture()
		f.transition.On("Handle", mock.Anything, mock.Anything).
			Return(shipment.Unknown, errs.NewObjectNotFoundError("shipment", id.String())).Once()

		rec := f.do(http.MethodPost, path, `{"event":"deliver"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("rejected before reaching the handler", func(t *testing.T) {
		cases := map[string]struct {
			path string
			body string
		}{
			"bad id":              {"/api/v1/shipments/nope/events", `{"event":"cancel"}`},
			"unknown event":       {path, `{"event":"teleport"}`},
			"assign without id":   {path, `{"event":"assign"}`},
			"malformed courier":   {path, `{"event":"assign","courier_id":"x"}`},
			"empty incident text": {path, `{"event":"report_incident","description":"   "}`},
		}
		for name, tc := range cases {
			t.Run(name, func(t *testing.T) {
				f := newFixture()

				rec := f.do(http.MethodPost, tc.path, tc.body)

				assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
				f.transition.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
			})
		}
	})
}

func TestGetShipment(t *testing.T) {
	f := newFixture()
	id := kernel.NewUUID()
	f.get.On("Handle", mock.Anything, mock.MatchedBy(func(q queries.GetShipmentQuery) bool {
		return q.ShipmentID().IsEqual(id)
	})).Return(queries.GetShipmentQueryResponse{
		ID:              id,
		Status:          shipment.Delivered,
		TariffName:      "car",
		TotalCost:       decimal.NewFromInt(36000),
		Breakdown:       []queries.BreakdownLine{{Label: "base fee", Amount: decimal.NewFromInt(36000)}},
		AvailableEvents: []shipment.EventKind{shipment.ReportIncident},
		CreatedAt:       time.Now().UTC(),
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/shipments/"+id.String(), "")

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp api.ShipmentResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Delivered", resp.Status)
	assert.Nil(t, resp.CourierID)
	assert.Equal(t, []string{"report_incident"}, resp.AvailableEvents)
}

func TestGetActiveShipments(t *testing.T) {
	f := newFixture()
	courierID := kernel.NewUUID()
	f.active.On("Handle", mock.Anything, mock.Anything).Return([]queries.GetActiveShipmentsQueryResponse{
		{ID: kernel.NewUUID(), Status: shipment.PendingAssignment, TariffName: "truck"},
		{ID: kernel.NewUUID(), Status: shipment.InTransit, CourierID: &courierID, HasIncident: true},
	}, nil).Once()

	rec := f.do(http.MethodGet, "/api/v1/shipments", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var resp []api.ShipmentSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "truck", resp[0].Tariff)
	require.NotNil(t, resp[1].CourierID)
	assert.Equal(t, courierID.String(), *resp[1].CourierID)
	assert.True(t, resp[1].HasIncident)
}
