package http

import (
	"time"

	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/pricing"

	"github.com/shopspring/decimal"
)

// AddOnRequest selects one surcharge. Value overrides the default fee, rate
// or multiplier; Level is read for "priority" only.
type AddOnRequest struct {
	Kind  string           `json:"kind"`
	Value *decimal.Decimal `json:"value,omitempty"`
	Level int              `json:"level,omitempty"`
}

// QuoteRequest is the body of POST /api/v1/quotes. Add-ons are applied in
// array order, first element innermost.
type QuoteRequest struct {
	Tariff     string          `json:"tariff"`
	DistanceKm decimal.Decimal `json:"distance_km"`
	WeightKg   decimal.Decimal `json:"weight_kg"`
	VolumeM3   decimal.Decimal `json:"volume_m3"`
	AddOns     []AddOnRequest  `json:"add_ons"`
}

// CreateShipmentRequest is the body of POST /api/v1/shipments.
type CreateShipmentRequest struct {
	QuoteRequest
}

// EventRequest is the body of POST /api/v1/shipments/:id/events.
type EventRequest struct {
	Event       string `json:"event"`
	CourierID   string `json:"courier_id,omitempty"`
	Description string `json:"description,omitempty"`
}

// BreakdownLine is one labelled amount.
type BreakdownLine struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

// QuoteResponse is a priced request.
type QuoteResponse struct {
	Total       decimal.Decimal `json:"total"`
	Breakdown   []BreakdownLine `json:"breakdown"`
	Description string          `json:"description"`
}

// CreateShipmentResponse is returned with 201.
type CreateShipmentResponse struct {
	ID     string        `json:"id"`
	Status string        `json:"status"`
	Quote  QuoteResponse `json:"quote"`
}

// TransitionResponse is returned after an accepted event.
type TransitionResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

// ShipmentResponse is the full view of a shipment.
type ShipmentResponse struct {
	ID                  string          `json:"id"`
	Status              string          `json:"status"`
	CourierID           *string         `json:"courier_id"`
	IncidentDescription string          `json:"incident_description,omitempty"`
	Tariff              string          `json:"tariff"`
	DistanceKm          decimal.Decimal `json:"distance_km"`
	WeightKg            decimal.Decimal `json:"weight_kg"`
	VolumeM3            decimal.Decimal `json:"volume_m3"`
	Quote               QuoteResponse   `json:"quote"`
	AvailableEvents     []string        `json:"available_events"`
	CreatedAt           time.Time       `json:"created_at"`
}

// ShipmentSummary is one element of GET /api/v1/shipments.
type ShipmentSummary struct {
	ID          string          `json:"id"`
	Status      string          `json:"status"`
	CourierID   *string         `json:"courier_id"`
	Tariff      string          `json:"tariff"`
	Total       decimal.Decimal `json:"total"`
	HasIncident bool            `json:"has_incident"`
	CreatedAt   time.Time       `json:"created_at"`
}

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (r QuoteRequest) toDomain() (pricing.Request, []pricing.AddOnSpec, error) {
	req, err := pricing.NewRequest(r.DistanceKm, r.WeightKg, r.VolumeM3)
	if err != nil {
		return pricing.Request{}, nil, err
	}

	addOns := make([]pricing.AddOnSpec, 0, len(r.AddOns))
	for _, a := range r.AddOns {
		kind, kindErr := pricing.ParseAddOnKind(a.Kind)
		if kindErr != nil {
			return pricing.Request{}, nil, kindErr
		}
		spec := pricing.AddOnSpec{Kind: kind, Level: a.Level}
		if a.Value != nil {
			spec = spec.WithValue(*a.Value)
		}
		addOns = append(addOns, spec)
	}

	return req, addOns, nil
}

func quoteResponse(q pricing.Quote) QuoteResponse {
	lines := make([]BreakdownLine, 0, len(q.Breakdown))
	for _, item := range q.Breakdown {
		lines = append(lines, BreakdownLine{Label: item.Label, Amount: item.Amount})
	}
	return QuoteResponse{
		Total:       q.Total,
		Breakdown:   lines,
		Description: q.Description,
	}
}

func shipmentResponse(s queries.GetShipmentQueryResponse) ShipmentResponse {
	lines := make([]BreakdownLine, 0, len(s.Breakdown))
	for _, item := range s.Breakdown {
		lines = append(lines, BreakdownLine{Label: item.Label, Amount: item.Amount})
	}
	events := make([]string, 0, len(s.AvailableEvents))
	for _, e := range s.AvailableEvents {
		events = append(events, e.String())
	}

	var courierID *string
	if s.CourierID != nil {
		id := s.CourierID.String()
		courierID = &id
	}

	return ShipmentResponse{
		ID:                  s.ID.String(),
		Status:              s.Status.String(),
		CourierID:           courierID,
		IncidentDescription: s.IncidentDescription,
		Tariff:              s.TariffName,
		DistanceKm:          s.DistanceKm,
		WeightKg:            s.WeightKg,
		VolumeM3:            s.VolumeM3,
		Quote: QuoteResponse{
			Total:       s.TotalCost,
			Breakdown:   lines,
			Description: s.Description,
		},
		AvailableEvents: events,
		CreatedAt:       s.CreatedAt,
	}
}

func shipmentSummary(s queries.GetActiveShipmentsQueryResponse) ShipmentSummary {
	var courierID *string
	if s.CourierID != nil {
		id := s.CourierID.String()
		courierID = &id
	}
	return ShipmentSummary{
		ID:          s.ID.String(),
		Status:      s.Status.String(),
		CourierID:   courierID,
		Tariff:      s.TariffName,
		Total:       s.TotalCost,
		HasIncident: s.HasIncident,
		CreatedAt:   s.CreatedAt,
	}
}
