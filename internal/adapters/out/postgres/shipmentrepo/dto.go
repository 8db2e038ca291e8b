package shipmentrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/pricing"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShipmentDTO is the row layout of the shipments table.
type ShipmentDTO struct {
	ID                  uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Status              string          `gorm:"type:varchar(32);not null;index"`
	CourierID           *uuid.UUID      `gorm:"type:uuid;index"`
	IncidentDescription string          `gorm:"type:text;not null"`
	TariffName          string          `gorm:"type:varchar(64);not null"`
	DistanceKm          decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	WeightKg            decimal.Decimal `gorm:"type:numeric(12,3);not null"`
	VolumeM3            decimal.Decimal `gorm:"type:numeric(12,4);not null"`
	TotalCost           decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	Description         string          `gorm:"type:text;not null"`
	Breakdown           string          `gorm:"type:jsonb;not null"`
	CreatedAt           time.Time       `gorm:"not null;index"`
	UpdatedAt           time.Time       `gorm:"not null"`
}

// TableName pins the table name.
func (ShipmentDTO) TableName() string {
	return "shipments"
}

// BreakdownItemDTO is one element of the breakdown JSON column.
type BreakdownItemDTO struct {
	Label  string          `json:"label"`
	Amount decimal.Decimal `json:"amount"`
}

func fromDomain(s *shipment.Shipment) (ShipmentDTO, error) {
	var courierID *uuid.UUID
	if id := s.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	quote := s.Quote()
	items := make([]BreakdownItemDTO, 0, len(quote.Breakdown))
	for _, item := range quote.Breakdown {
		items = append(items, BreakdownItemDTO{Label: item.Label, Amount: item.Amount})
	}
	breakdown, err := json.Marshal(items)
	if err != nil {
		return ShipmentDTO{}, fmt.Errorf("encoding breakdown: %w", err)
	}

	req := s.Request()
	return ShipmentDTO{
		ID:                  s.ID().Bytes(),
		Status:              s.Status().String(),
		CourierID:           courierID,
		IncidentDescription: s.IncidentDescription(),
		TariffName:          s.TariffName(),
		DistanceKm:          req.DistanceKm(),
		WeightKg:            req.WeightKg(),
		VolumeM3:            req.VolumeM3(),
		TotalCost:           quote.Total,
		Description:         quote.Description,
		Breakdown:           string(breakdown),
		CreatedAt:           s.CreatedAt(),
	}, nil
}

func toDomain(dto ShipmentDTO) (*shipment.Shipment, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := shipment.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	req, err := pricing.NewRequest(dto.DistanceKm, dto.WeightKg, dto.VolumeM3)
	if err != nil {
		return nil, err
	}

	var items []BreakdownItemDTO
	if err = json.Unmarshal([]byte(dto.Breakdown), &items); err != nil {
		return nil, fmt.Errorf("decoding breakdown of shipment %s: %w", id, err)
	}
	breakdown := make([]pricing.BreakdownItem, 0, len(items))
	for _, item := range items {
		breakdown = append(breakdown, pricing.BreakdownItem{Label: item.Label, Amount: item.Amount})
	}

	quote := pricing.Quote{
		Total:       dto.TotalCost,
		Breakdown:   breakdown,
		Description: dto.Description,
	}

	return shipment.RestoreShipment(
		id,
		status,
		courierID,
		dto.IncidentDescription,
		dto.TariffName,
		req,
		quote,
		dto.CreatedAt,
	)
}
