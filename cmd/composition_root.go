package cmd

import (
	"fmt"
	"log/slog"

	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	httpadapter "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/courier"
	"fulfillment/internal/adapters/out/kafka"
	"fulfillment/internal/adapters/out/memory"
	"fulfillment/internal/adapters/out/postgres/eventstore"
	"fulfillment/internal/core/application/runtime"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"
)

// CompositionRoot wires the adapters, the order runtime and the use case
// handlers together.
type CompositionRoot struct {
	config    Config
	logger    *slog.Logger
	store     ports.EventStore
	publisher ports.EventPublisher
	runtime   *runtime.Runtime
}

// NewCompositionRoot builds the object graph from the configuration. The
// event journal runs on Postgres when a database host is configured and on
// the in-memory store otherwise; Kafka publishing is optional the same way.
func NewCompositionRoot(config Config, logger *slog.Logger) (*CompositionRoot, error) {
	store, err := createEventStore(config)
	if err != nil {
		return nil, err
	}

	publisher := createEventPublisher(config)

	registry := courier.NewRegistry(courier.Endpoints{
		FedEx:     config.FedExBookingURL,
		DeliverIt: config.DeliverItBookingURL,
		Default:   config.DefaultBookingURL,
	})
	booker := courier.NewBooker(registry, courier.NewHTTPTransport())

	allocator, err := services.NewAllocator(services.DefaultAllocationSites())
	if err != nil {
		return nil, err
	}

	orderRuntime := runtime.NewRuntime(store, publisher, booker, allocator, logger, runtime.Config{
		SnapshotEvery:       config.SnapshotEvery,
		MaxInflightBookings: config.MaxInflightBookings,
		AskTimeout:          config.AskTimeout,
	})

	return &CompositionRoot{
		config:    config,
		logger:    logger,
		store:     store,
		publisher: publisher,
		runtime:   orderRuntime,
	}, nil
}

func createEventStore(config Config) (ports.EventStore, error) {
	if config.DBHost == "" {
		return memory.NewEventStore(), nil
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		config.DBHost, config.DBPort, config.DBUser, config.DBPassword, config.DBName, config.DBSslMode)
	db, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	store := eventstore.NewGormEventStore(db)
	if err := store.Migrate(); err != nil {
		return nil, fmt.Errorf("failed to migrate event store: %w", err)
	}
	return store, nil
}

func createEventPublisher(config Config) ports.EventPublisher {
	if config.KafkaHost == "" {
		return ports.NopEventPublisher{}
	}
	return kafka.NewPublisher([]string{config.KafkaHost}, config.KafkaOrderChangedTopic)
}

// CreateHTTPServer builds the JSON API server over the use case handlers.
func (c *CompositionRoot) CreateHTTPServer() *httpadapter.Server {
	return httpadapter.NewServer(
		c.CreateSubmitOrderCommandHandler(),
		c.CreatePackAllocationCommandHandler(),
		c.CreateUpdateTrackingCommandHandler(),
		c.CreateGetOrderDetailsQueryHandler(),
	)
}

func (c *CompositionRoot) CreateSubmitOrderCommandHandler() commands.SubmitOrderCommandHandler {
	return commands.NewSubmitOrderCommandHandler(c.runtime)
}

func (c *CompositionRoot) CreatePackAllocationCommandHandler() commands.PackAllocationCommandHandler {
	return commands.NewPackAllocationCommandHandler(c.runtime)
}

func (c *CompositionRoot) CreateUpdateTrackingCommandHandler() commands.UpdateTrackingCommandHandler {
	return commands.NewUpdateTrackingCommandHandler(c.runtime)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.runtime)
}

// CreateJobManager builds the background jobs over the order runtime.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(c.runtime, c.config.PassivationMaxIdle, c.config.PassivationSchedule, c.logger)
}

// Close stops the order runtime and releases the publisher.
func (c *CompositionRoot) Close() {
	c.runtime.Stop()
	if err := c.publisher.Close(); err != nil {
		c.logger.Error("failed to close event publisher", "error", err)
	}
}
