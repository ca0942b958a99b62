package cmd

import (
	"fmt"
	"log/slog"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	tablesidehttp "tableside/internal/adapters/in/http"
	pg "tableside/internal/adapters/out/postgres"
	"tableside/internal/adapters/out/postgres/activityrepo"
	"tableside/internal/adapters/out/postgres/menurepo"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/adapters/out/postgres/staffrepo"
	"tableside/internal/adapters/out/postgres/tablerepo"
	"tableside/internal/core/application/coordinator"
	"tableside/internal/core/application/notify"
	"tableside/internal/core/application/queries"
	"tableside/internal/jobs"
)

type CompositionRoot struct {
	gormDB      *gorm.DB
	coordinator *coordinator.Coordinator
	bus         *notify.Bus
	logger      *slog.Logger
}

func NewCompositionRoot(gormDB *gorm.DB, logger *slog.Logger) (CompositionRoot, error) {
	uowFactory := pg.NewGormUnitOfWorkFactory(gormDB)
	userRepo := staffrepo.NewGormUserRepository(gormDB)
	timeRepo := staffrepo.NewGormTimeRecordRepository(gormDB)
	menuRepo := menurepo.NewGormMenuItemRepository(gormDB)
	activityLog := activityrepo.NewGormActivityLog(gormDB, time.Now)

	bus := notify.NewBus(notify.InlineDispatcher, logger)

	coord, err := coordinator.NewCoordinator(
		uowFactory,
		userRepo,
		menuRepo,
		timeRepo,
		activityLog,
		bus,
		time.Now,
		logger,
	)
	if err != nil {
		return CompositionRoot{}, err
	}

	return CompositionRoot{
		gormDB:      gormDB,
		coordinator: coord,
		bus:         bus,
		logger:      logger,
	}, nil
}

func (c *CompositionRoot) Coordinator() *coordinator.Coordinator {
	return c.coordinator
}

func (c *CompositionRoot) Bus() *notify.Bus {
	return c.bus
}

func (c *CompositionRoot) CreateHTTPServer() *tablesidehttp.Server {
	return tablesidehttp.NewServer(c.coordinator)
}

func (c *CompositionRoot) CreateGetSettledOrdersQueryHandler() queries.GetSettledOrdersQueryHandler {
	return queries.NewGetSettledOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetActivityQueryHandler() queries.GetActivityQueryHandler {
	return queries.NewGetActivityQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.coordinator, c.logger)
}

// OpenDatabase connects to Postgres and reconciles the schema with the
// persistence DTOs.
func OpenDatabase(config Config) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&tablerepo.TableDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.ItemAddonDTO{},
		&staffrepo.UserDTO{},
		&staffrepo.TimeRecordDTO{},
		&menurepo.MenuItemDTO{},
		&menurepo.MenuAddonDTO{},
		&activityrepo.ActivityLogDTO{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
