package queries

import (
	"context"

	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveShipmentsQueryHandler lists active shipments, oldest first.
type GetActiveShipmentsQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveShipmentsQueryHandler creates the handler.
func NewGetActiveShipmentsQueryHandler(db *gorm.DB) GetActiveShipmentsQueryHandler {
	return GetActiveShipmentsQueryHandler{db: db}
}

// Handle returns an empty, non-nil slice when nothing is active.
func (h GetActiveShipmentsQueryHandler) Handle(
	ctx context.Context,
	query GetActiveShipmentsQuery,
) ([]GetActiveShipmentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	active := shipment.ActiveStatuses()
	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.String())
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			status,
			courier_id,
			tariff_name,
			total_cost,
			incident_description <> '' AS has_incident,
			created_at
		FROM shipments
		WHERE status IN ?
		ORDER BY created_at, id
	`, names).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	shipments := make([]GetActiveShipmentsQueryResponse, 0)
	for rows.Next() {
		var (
			resp      GetActiveShipmentsQueryResponse
			id        uuid.UUID
			courierID uuid.NullUUID
			status    string
		)

		if err = rows.Scan(
			&id,
			&status,
			&courierID,
			&resp.TariffName,
			&resp.TotalCost,
			&resp.HasIncident,
			&resp.CreatedAt,
		); err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.CourierID, err = nullableUUID(courierID); err != nil {
			return nil, err
		}
		if resp.Status, err = shipment.ParseStatus(status); err != nil {
			return nil, err
		}

		shipments = append(shipments, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shipments, nil
}
