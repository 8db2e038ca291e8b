package queries

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetShipmentQueryHandler reads a shipment with raw SQL.
type GetShipmentQueryHandler struct {
	db *gorm.DB
}

// NewGetShipmentQueryHandler creates the handler.
func NewGetShipmentQueryHandler(db *gorm.DB) GetShipmentQueryHandler {
	return GetShipmentQueryHandler{db: db}
}

// Handle returns ObjectNotFoundError when no row has the id.
func (h GetShipmentQueryHandler) Handle(ctx context.Context, query GetShipmentQuery) (GetShipmentQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetShipmentQueryResponse{}, err
	}

	var (
		resp      GetShipmentQueryResponse
		id        uuid.UUID
		courierID uuid.NullUUID
		status    string
		breakdown string
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			courier_id,
			incident_description,
			tariff_name,
			distance_km,
			weight_kg,
			volume_m3,
			total_cost,
			description,
			breakdown,
			created_at
		FROM shipments
		WHERE id = ?
	`, query.ShipmentID().Bytes()).Row()

	err := row.Scan(
		&id,
		&status,
		&courierID,
		&resp.IncidentDescription,
		&resp.TariffName,
		&resp.DistanceKm,
		&resp.WeightKg,
		&resp.VolumeM3,
		&resp.TotalCost,
		&resp.Description,
		&breakdown,
		&resp.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetShipmentQueryResponse{}, errs.NewObjectNotFoundError("shipment", query.ShipmentID().String())
	}
	if err != nil {
		return GetShipmentQueryResponse{}, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.CourierID, err = nullableUUID(courierID); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if resp.Status, err = shipment.ParseStatus(status); err != nil {
		return GetShipmentQueryResponse{}, err
	}
	if err = json.Unmarshal([]byte(breakdown), &resp.Breakdown); err != nil {
		return GetShipmentQueryResponse{}, fmt.Errorf("decoding breakdown of shipment %s: %w", resp.ID, err)
	}
	resp.AvailableEvents = resp.Status.AvailableEvents()

	return resp, nil
}

func nullableUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil //nolint:nilnil // no courier
	}
	kid, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}
	return &kid, nil
}
