// Package postgres provides the GORM-based Unit of Work over the shipments
// schema and the schema migration used at startup and in integration tests.
//
// A unit of work wraps one optional transaction. Repositories obtained from it
// run inside that transaction when Begin was called and against the plain
// connection otherwise.
//
// Typical use in a command handler:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	s, err := uow.ShipmentRepository().GetForUpdate(ctx, id)
//	if err != nil {
//	    return err
//	}
//	// mutate s ...
//	if err := uow.ShipmentRepository().Update(ctx, s); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Shipments written through the repositories are tracked. After a successful
// Commit the notifications they recorded are handed to the factory's
// NotificationPublisher; after a failed Commit or a Rollback they are
// discarded, so observers only ever hear about stored state.
//
// Each UnitOfWork instance is meant for a single goroutine. Concurrent
// requests create their own instance from the factory.
package postgres

import (
	"context"

	"shipping/internal/adapters/out/postgres/shipmentrepo"
	"shipping/internal/adapters/out/postgres/tariffrepo"
	"shipping/internal/core/domain/model/kernel"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/ports"

	"gorm.io/gorm"
)

// TrackedAggregate is an aggregate added or updated during the unit of work.
type TrackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// NotificationPublisher delivers the notifications a shipment recorded during
// the unit of work. *shipment.Lifecycle satisfies it.
type NotificationPublisher interface {
	Publish(ctx context.Context, s *shipment.Shipment)
}

// Migrate creates or updates the shipments and tariff_profiles tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&shipmentrepo.ShipmentDTO{}, &tariffrepo.TariffProfileDTO{})
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher NotificationPublisher
}

var _ ports.UnitOfWorkFactory = (*GormUnitOfWorkFactory)(nil)

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances. publisher receives committed shipments; nil leaves their
// notifications pending.
//
// Example:
//
//	sqlDB, _ := sql.Open("postgres", dsn)
//	db, _ := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{})
//	factory := NewGormUnitOfWorkFactory(db, lifecycle)
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher NotificationPublisher) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, publisher: publisher}
}

// Create returns a fresh unit of work with no active transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		publisher:         f.publisher,
		trackedAggregates: make([]TrackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and remembers the
// aggregates written through its repositories.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         NotificationPublisher
	trackedAggregates []TrackedAggregate
}

// Begin starts a transaction. Calling it again while a transaction is active
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx
	return nil
}

// Commit commits the active transaction and then publishes the notifications
// of every tracked shipment, in tracking order. When the commit fails nothing
// is published and the pending notifications are discarded.
// Returns gorm.ErrInvalidTransaction when no transaction is active.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.discardTracked()
		return err
	}

	uow.publishTracked(ctx)
	return nil
}

// Rollback discards the active transaction, the tracked aggregates and their
// pending notifications.
// Returns gorm.ErrInvalidTransaction when no transaction is active, which
// makes a deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.discardTracked()
	return err
}

// ShipmentRepository returns a repository bound to the active transaction,
// or to the plain connection when none is active.
func (uow *GormUnitOfWork) ShipmentRepository() ports.ShipmentRepository {
	return shipmentrepo.NewGormShipmentRepository(uow.conn(), uow)
}

// TrackAggregate records an aggregate written by one of the repositories.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, TrackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedAggregates returns a copy of the aggregates written so far.
func (uow *GormUnitOfWork) TrackedAggregates() []TrackedAggregate {
	out := make([]TrackedAggregate, len(uow.trackedAggregates))
	copy(out, uow.trackedAggregates)
	return out
}

func (uow *GormUnitOfWork) publishTracked(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]TrackedAggregate, 0)
	if uow.publisher == nil {
		return
	}

	for _, t := range tracked {
		if s, ok := t.Aggregate.(*shipment.Shipment); ok {
			uow.publisher.Publish(ctx, s)
		}
	}
}

func (uow *GormUnitOfWork) discardTracked() {
	for _, t := range uow.trackedAggregates {
		if s, ok := t.Aggregate.(*shipment.Shipment); ok {
			s.DiscardNotifications()
		}
	}
	uow.trackedAggregates = make([]TrackedAggregate, 0)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
