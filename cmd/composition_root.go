package cmd

import (
	"fmt"

	httpin "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/idgen"
	"shiptrack/internal/adapters/out/metrics"
	"shiptrack/internal/adapters/out/postgres"
	"shiptrack/internal/core/application/usecases/commands"
	"shiptrack/internal/core/application/usecases/queries"
	"shiptrack/internal/core/domain/services"
	"shiptrack/internal/core/ports"
	"shiptrack/internal/jobs"
	"shiptrack/internal/pkg/clock"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs     Config
	gormDB      *gorm.DB
	uowFactory  *postgres.GormUnitOfWorkFactory
	logger      *zap.Logger
	metrics     *metrics.Metrics
	clock       clock.Clock
	ids         ports.IDGenerator
	tracking    ports.TrackingCodeGenerator
	coordinator *commands.Coordinator
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *zap.Logger, m *metrics.Metrics) (*CompositionRoot, error) {
	ids, err := idgen.NewSnowflakeGenerator(configs.NodeID)
	if err != nil {
		return nil, fmt.Errorf("id generator: %w", err)
	}
	tracking, err := idgen.NewTrackingGenerator(configs.NodeID, configs.TrackingPrefix)
	if err != nil {
		return nil, fmt.Errorf("tracking generator: %w", err)
	}

	uowFactory := postgres.NewGormUnitOfWorkFactory(gormDB)
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return uowFactory.Create()
	})

	return &CompositionRoot{
		configs:     configs,
		gormDB:      gormDB,
		uowFactory:  uowFactory,
		logger:      logger,
		metrics:     m,
		clock:       clock.System{},
		ids:         ids,
		tracking:    tracking,
		coordinator: commands.NewCoordinator(f, logger, m),
	}, nil
}

func (c *CompositionRoot) CreateCreatePackageCommandHandler() commands.CreatePackageCommandHandler {
	return commands.NewCreatePackageCommandHandler(c.coordinator, c.ids, c.tracking, c.clock)
}

func (c *CompositionRoot) CreateUpdatePackageDetailsCommandHandler() commands.UpdatePackageDetailsCommandHandler {
	return commands.NewUpdatePackageDetailsCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateTransitionPackageCommandHandler() commands.TransitionPackageCommandHandler {
	return commands.NewTransitionPackageCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateDeletePackageCommandHandler() commands.DeletePackageCommandHandler {
	return commands.NewDeletePackageCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateCreateShipmentCommandHandler() commands.CreateShipmentCommandHandler {
	return commands.NewCreateShipmentCommandHandler(c.coordinator, c.ids, c.clock)
}

func (c *CompositionRoot) CreateUpdateShipmentCommandHandler() commands.UpdateShipmentCommandHandler {
	return commands.NewUpdateShipmentCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateTransitionShipmentCommandHandler() commands.TransitionShipmentCommandHandler {
	return commands.NewTransitionShipmentCommandHandler(c.coordinator, services.NewShipmentCascade(), c.clock)
}

func (c *CompositionRoot) CreateAddPackagesToShipmentCommandHandler() commands.AddPackagesToShipmentCommandHandler {
	return commands.NewAddPackagesToShipmentCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateRemovePackageFromShipmentCommandHandler() commands.RemovePackageFromShipmentCommandHandler {
	return commands.NewRemovePackageFromShipmentCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateDeleteShipmentCommandHandler() commands.DeleteShipmentCommandHandler {
	return commands.NewDeleteShipmentCommandHandler(c.coordinator, c.clock)
}

func (c *CompositionRoot) CreateGetPackageQueryHandler() queries.GetPackageQueryHandler {
	return queries.NewGetPackageQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetPackageHistoryQueryHandler() queries.GetPackageHistoryQueryHandler {
	return queries.NewGetPackageHistoryQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetShipmentQueryHandler() queries.GetShipmentQueryHandler {
	return queries.NewGetShipmentQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListShipmentPackagesQueryHandler() queries.ListShipmentPackagesQueryHandler {
	return queries.NewListShipmentPackagesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetOverdueShipmentsQueryHandler() queries.GetOverdueShipmentsQueryHandler {
	return queries.NewGetOverdueShipmentsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateHTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreatePackage:      c.CreateCreatePackageCommandHandler(),
		UpdatePackage:      c.CreateUpdatePackageDetailsCommandHandler(),
		TransitionPackage:  c.CreateTransitionPackageCommandHandler(),
		DeletePackage:      c.CreateDeletePackageCommandHandler(),
		CreateShipment:     c.CreateCreateShipmentCommandHandler(),
		UpdateShipment:     c.CreateUpdateShipmentCommandHandler(),
		TransitionShipment: c.CreateTransitionShipmentCommandHandler(),
		AddPackages:        c.CreateAddPackagesToShipmentCommandHandler(),
		RemovePackage:      c.CreateRemovePackageFromShipmentCommandHandler(),
		DeleteShipment:     c.CreateDeleteShipmentCommandHandler(),

		GetPackage:           c.CreateGetPackageQueryHandler(),
		GetPackageHistory:    c.CreateGetPackageHistoryQueryHandler(),
		GetShipment:          c.CreateGetShipmentQueryHandler(),
		ListShipmentPackages: c.CreateListShipmentPackagesQueryHandler(),
		GetOverdueShipments:  c.CreateGetOverdueShipmentsQueryHandler(),
	}
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	overdue := jobs.NewOverdueShipmentsJob(
		c.CreateGetOverdueShipmentsQueryHandler(),
		c.metrics,
		c.clock,
		c.configs.OverdueScanSchedule,
		c.logger,
	)
	return jobs.NewJobManager(overdue)
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
