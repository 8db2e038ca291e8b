package cmd

import (
	"context"
	"errors"
	"log/slog"

	httpin "shipping/internal/adapters/in/http"
	"shipping/internal/adapters/out/audit"
	"shipping/internal/adapters/out/kafka"
	"shipping/internal/adapters/out/postgres"
	"shipping/internal/adapters/out/postgres/tariffrepo"
	"shipping/internal/adapters/out/rabbitmq"
	"shipping/internal/core/application/usecases/commands"
	"shipping/internal/core/application/usecases/queries"
	"shipping/internal/core/domain/model/shipment"
	"shipping/internal/core/domain/model/tariff"
	"shipping/internal/core/domain/services"
	"shipping/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	config     Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	catalog    *tariff.Catalog
	dispatcher *services.NotificationDispatcher
	lifecycle  *shipment.Lifecycle
	logger     *slog.Logger
	closers    []func() error
}

func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) (*CompositionRoot, error) {
	dispatcher := services.NewNotificationDispatcher(logger)
	lifecycle, err := shipment.NewLifecycle(dispatcher, logger)
	if err != nil {
		return nil, err
	}

	return &CompositionRoot{
		config:     config,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB, lifecycle),
		catalog:    tariff.NewCatalog(),
		dispatcher: dispatcher,
		lifecycle:  lifecycle,
		logger:     logger,
	}, nil
}

// RegisterObservers attaches the audit trail and, when configured, the Kafka
// and RabbitMQ observers. Observers are notified in this order.
func (c *CompositionRoot) RegisterObservers(auditLogger *zap.Logger) error {
	trail := audit.NewTrail(auditLogger)
	if err := c.dispatcher.Register(trail); err != nil {
		return err
	}
	c.closers = append(c.closers, trail.Sync)

	if c.config.KafkaHost != "" {
		publisher := kafka.NewLifecyclePublisher(c.config.KafkaHost, c.config.KafkaLifecycleTopic)
		if err := c.dispatcher.Register(publisher); err != nil {
			return err
		}
		c.closers = append(c.closers, publisher.Close)
	}

	if c.config.RabbitMQURL != "" {
		conn, ch, err := rabbitmq.Dial(c.config.RabbitMQURL)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, ch.Close, conn.Close)

		notifier, err := rabbitmq.NewCustomerNotifier(ch, c.config.RabbitMQNotifyQueue)
		if err != nil {
			return err
		}
		if err = c.dispatcher.Register(notifier); err != nil {
			return err
		}
	}

	return nil
}

// Close releases observer connections in reverse order of acquisition.
func (c *CompositionRoot) Close() error {
	var errList []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errList = append(errList, c.closers[i]())
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) Migrate() error {
	return postgres.Migrate(c.gormDB)
}

func (c *CompositionRoot) Catalog() *tariff.Catalog {
	return c.catalog
}

func (c *CompositionRoot) shipmentUoWFactory() commands.ShipmentUoWFactory {
	return FuncShipmentUoWFactory(func() commands.ShipmentUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateQuoteShipmentCostCommandHandler() commands.QuoteShipmentCostCommandHandler {
	return commands.NewQuoteShipmentCostCommandHandler(c.catalog)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.shipmentUoWFactory(), c.catalog)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	return commands.NewTransitionShipmentCommandHandler(c.shipmentUoWFactory(), c.lifecycle)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActiveShipmentsQueryHandler() queries.GetActiveShipmentsQueryHandler {
	return queries.NewGetActiveShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateQuoteShipmentCostCommandHandler(),
		c.CreateCreateShipmentCommandHandler(),
		c.CreateTransitionShipmentCommandHandler(),
		c.CreateGetShipmentQueryHandler(),
		c.CreateGetActiveShipmentsQueryHandler(),
		c.logger,
	)
}

// CreateJobManager wires the jobs and loads the tariff catalog once so that
// stored tariffs are available to the first request.
func (c *CompositionRoot) CreateJobManager(ctx context.Context) (*jobs.JobManager, error) {
	manager := jobs.NewJobManager(
		tariffrepo.NewGormTariffRepository(c.gormDB),
		c.catalog,
		c.config.TariffRefreshSchedule,
		c.CreateGetActiveShipmentsQueryHandler(),
		c.logger,
	)
	if err := manager.TariffRefreshJob().Refresh(ctx); err != nil {
		return nil, err
	}
	return manager, nil
}

type FuncShipmentUoWFactory func() commands.ShipmentUoW

func (f FuncShipmentUoWFactory) Create() commands.ShipmentUoW {
	return f()
}
