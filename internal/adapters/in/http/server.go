// Package http exposes the shipment use cases over a JSON API served by echo.
package http

import (
	"context"
	"log/slog"
	"net/http"

	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
)

// Use case handlers the server calls.
type (
	QuoteHandler interface {
		Handle(ctx context.Context, cmd commands.QuoteShipmentCostCommand) (pricing.Quote, error)
	}

	CreateShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.CreateShipmentCommand) (pricing.Quote, error)
	}

	TransitionShipmentHandler interface {
		Handle(ctx context.Context, cmd commands.TransitionShipmentCommand) (shipment.Status, error)
	}

	GetShipmentHandler interface {
		Handle(ctx context.Context, query queries.GetShipmentQuery) (queries.GetShipmentQueryResponse, error)
	}

	GetActiveShipmentsHandler interface {
		Handle(ctx context.Context, query queries.GetActiveShipmentsQuery) ([]queries.GetActiveShipmentsQueryResponse, error)
	}
)

// Server translates HTTP requests into commands and queries.
type Server struct {
	quoteHandler      QuoteHandler
	createHandler     CreateShipmentHandler
	transitionHandler TransitionShipmentHandler
	getHandler        GetShipmentHandler
	activeHandler     GetActiveShipmentsHandler
	logger            *slog.Logger
}

// NewServer creates a server. A nil logger falls back to slog.Default.
func NewServer(
	quoteHandler QuoteHandler,
	createHandler CreateShipmentHandler,
	transitionHandler TransitionShipmentHandler,
	getHandler GetShipmentHandler,
	activeHandler GetActiveShipmentsHandler,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		quoteHandler:      quoteHandler,
		createHandler:     createHandler,
		transitionHandler: transitionHandler,
		getHandler:        getHandler,
		activeHandler:     activeHandler,
		logger:            logger.With("component", "HTTPServer"),
	}
}

// RegisterRoutes mounts the health check and the /api/v1 routes on e.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	v1 := e.Group("/api/v1")
	v1.POST("/quotes", s.QuoteShipment)
	v1.POST("/shipments", s.CreateShipment)
	v1.GET("/shipments", s.GetActiveShipments)
	v1.GET("/shipments/:id", s.GetShipment)
	v1.POST("/shipments/:id/events", s.PostShipmentEvent)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// QuoteShipment handles POST /api/v1/quotes.
func (s *Server) QuoteShipment(ctx echo.Context) error {
	var body QuoteRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	req, addOns, err := body.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewQuoteShipmentCostCommand(body.Tariff, req, addOns)
	if err != nil {
		return s.fail(ctx, err)
	}

	quote, err := s.quoteHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, quoteResponse(quote))
}

// CreateShipment handles POST /api/v1/shipments.
func (s *Server) CreateShipment(ctx echo.Context) error {
	var body CreateShipmentRequest
	if err := ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	req, addOns, err := body.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentCommand(id, body.Tariff, req, addOns)
	if err != nil {
		return s.fail(ctx, err)
	}

	quote, err := s.createHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, CreateShipmentResponse{
		ID:     id.String(),
		Status: shipment.PendingAssignment.String(),
		Quote:  quoteResponse(quote),
	})
}

// GetActiveShipments handles GET /api/v1/shipments.
func (s *Server) GetActiveShipments(ctx echo.Context) error {
	shipments, err := s.activeHandler.Handle(ctx.Request().Context(), queries.NewGetActiveShipmentsQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ShipmentSummary, len(shipments))
	for i, sh := range shipments {
		response[i] = shipmentSummary(sh)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetShipment handles GET /api/v1/shipments/:id.
func (s *Server) GetShipment(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	query, err := queries.NewGetShipmentQuery(id)
	if err != nil {
		return s.fail(ctx, err)
	}

	details, err := s.getHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, shipmentResponse(details))
}

// PostShipmentEvent handles POST /api/v1/shipments/:id/events.
func (s *Server) PostShipmentEvent(ctx echo.Context) error {
	id, err := pathID(ctx)
	if err != nil {
		return s.fail(ctx, err)
	}

	var body EventRequest
	if err = ctx.Bind(&body); err != nil {
		return invalidBody(ctx)
	}

	event, err := body.toDomain()
	if err != nil {
		return s.fail(ctx, err)
	}

	cmd, err := commands.NewTransitionShipmentCommand(id, event)
	if err != nil {
		return s.fail(ctx, err)
	}

	status, err := s.transitionHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, TransitionResponse{
		ID:     id.String(),
		Status: status.String(),
	})
}

func (r EventRequest) toDomain() (shipment.Event, error) {
	kind, err := shipment.ParseEventKind(r.Event)
	if err != nil {
		return shipment.Event{}, err
	}

	var courierID *kernel.UUID
	if r.CourierID != "" {
		id, idErr := kernel.UUIDFromString(r.CourierID)
		if idErr != nil {
			return shipment.Event{}, errs.NewValueIsInvalidErrorWithCause("courier id", idErr)
		}
		courierID = &id
	}

	return shipment.NewEvent(kind, courierID, r.Description)
}

func pathID(ctx echo.Context) (kernel.UUID, error) {
	var raw openapi_types.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", ctx.Param("id"), &raw,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shipment id", err)
	}

	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause("shipment id", err)
	}
	return id, nil
}

func invalidBody(ctx echo.Context) error {
	return ctx.JSON(http.StatusBadRequest, Error{
		Code:    http.StatusBadRequest,
		Message: "Invalid request body",
	})
}
