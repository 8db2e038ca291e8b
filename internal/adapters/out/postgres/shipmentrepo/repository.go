// Package shipmentrepo persists Shipment aggregates with GORM.
package shipmentrepo

import (
	"context"

	"shipping/internal/adapters/out/postgres/pgerr"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"
	"shipping/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const entityName = "shipment"

// GormShipmentRepository implements ports.ShipmentRepository on a *gorm.DB,
// which is either the plain connection or the transaction of a unit of work.
type GormShipmentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

var _ ports.ShipmentRepository = (*GormShipmentRepository)(nil)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShipmentRepository creates a repository bound to db. Every added or
// updated aggregate is reported to tracker.
func NewGormShipmentRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentRepository {
	return &GormShipmentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new shipment row.
func (r *GormShipmentRepository) Add(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Map(err, entityName, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the mutable lifecycle columns: status, courier and incident.
// The quote is frozen at creation and never rewritten.
func (r *GormShipmentRepository) Update(ctx context.Context, aggregate *shipment.Shipment) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&ShipmentDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{
			"status":               dto.Status,
			"courier_id":           dto.CourierID,
			"incident_description": dto.IncidentDescription,
		})
	if result.Error != nil {
		return pgerr.Map(result.Error, entityName, aggregate.ID().String())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError(entityName, aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get loads a shipment by id.
func (r *GormShipmentRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate loads a shipment by id with SELECT ... FOR UPDATE. It only
// serialises writers when called inside a transaction.
func (r *GormShipmentRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*shipment.Shipment, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: clause.LockingStrengthUpdate}), id)
}

// GetAllActive loads every shipment whose status is not terminal, oldest first.
func (r *GormShipmentRepository) GetAllActive(ctx context.Context) ([]*shipment.Shipment, error) {
	active := shipment.ActiveStatuses()
	names := make([]string, 0, len(active))
	for _, s := range active {
		names = append(names, s.String())
	}

	var dtos []ShipmentDTO
	if err := r.db.WithContext(ctx).
		Where("status IN ?", names).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	shipments := make([]*shipment.Shipment, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shipments = append(shipments, s)
	}

	return shipments, nil
}

func (r *GormShipmentRepository) get(db *gorm.DB, id kernel.UUID) (*shipment.Shipment, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ShipmentDTO
	if err := db.First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, pgerr.Map(err, entityName, id.String())
	}

	return toDomain(dto)
}
