package eventstore_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fulfillment/internal/adapters/out/postgres/eventstore"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// EventStoreIntegrationTestSuite verifies journal and snapshot persistence
// against a real PostgreSQL container.
type EventStoreIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	store     *eventstore.GormEventStore
}

func (suite *EventStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.store = eventstore.NewGormEventStore(db)
	suite.Require().NoError(suite.store.Migrate())
}

func (suite *EventStoreIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE order_events, order_snapshots").Error)
}

func (suite *EventStoreIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *EventStoreIntegrationTestSuite) testCustomer() order.Customer {
	address, err := order.NewAddress("Some Street 42", "Tel Aviv", "Israel", 12345)
	suite.Require().NoError(err)
	customer, err := order.NewCustomer("Eran", "Eyal", address, "someone@gmail.com", "0521234567")
	suite.Require().NoError(err)
	return customer
}

func (suite *EventStoreIntegrationTestSuite) testItems() map[string]order.OrderItem {
	pencil, err := order.NewOrderItem("1", "pencil", 5)
	suite.Require().NoError(err)
	pen, err := order.NewOrderItem("2", "pen", 5)
	suite.Require().NoError(err)
	return map[string]order.OrderItem{"1": pencil, "2": pen}
}

func (suite *EventStoreIntegrationTestSuite) testAllocation() order.Allocation {
	address, err := order.NewAddress("Namir 15", "Tel Aviv", "Israel", 12345)
	suite.Require().NoError(err)
	at := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	allocation, err := order.NewAllocation(
		"1", "TLV Warehouse", address, suite.testItems(), "FedEx", "",
		[]order.StatusEntry{order.NewStatusEntry(at, order.Allocated)},
	)
	suite.Require().NoError(err)
	return allocation
}

func (suite *EventStoreIntegrationTestSuite) TestAppendLoad_RoundTrip() {
	ctx := context.Background()
	at := time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC)

	journaled := []order.Event{
		order.NewOrderReceived("order-1", suite.testItems(), suite.testCustomer()),
		order.NewOrderAllocationsReceived("order-1", map[string]order.Allocation{"1": suite.testAllocation()}),
		order.NewOrderAllocationPacked("order-1", "1", "trk-9", at),
		order.NewTrackingUpdated("order-1", "1", order.PickedByCourier, at.Add(time.Hour)),
	}

	suite.Require().NoError(suite.store.Append(ctx, "order-1", 1, journaled[:2]))
	suite.Require().NoError(suite.store.Append(ctx, "order-1", 3, journaled[2:]))

	loaded, err := suite.store.Load(ctx, "order-1", 0)
	suite.Require().NoError(err)
	suite.Require().Len(loaded, 4)

	received, ok := loaded[0].(order.OrderReceived)
	suite.Require().True(ok)
	suite.Equal("order-1", received.OrderID())
	suite.Equal(suite.testItems(), received.Items())
	suite.Equal(suite.testCustomer(), received.Customer())

	allocated, ok := loaded[1].(order.OrderAllocationsReceived)
	suite.Require().True(ok)
	suite.Equal("TLV Warehouse", allocated.Allocations()["1"].Name())
	suite.Equal(order.Allocated, allocated.Allocations()["1"].LatestStatus())

	packed, ok := loaded[2].(order.OrderAllocationPacked)
	suite.Require().True(ok)
	suite.Equal("trk-9", packed.TrackingID())
	suite.True(packed.At().Equal(at))

	tracking, ok := loaded[3].(order.TrackingUpdated)
	suite.Require().True(ok)
	suite.Equal(order.PickedByCourier, tracking.Status())
}

func (suite *EventStoreIntegrationTestSuite) TestAppend_SequenceConflict() {
	ctx := context.Background()
	event := order.NewOrderReceived("order-1", suite.testItems(), suite.testCustomer())

	suite.Require().NoError(suite.store.Append(ctx, "order-1", 1, []order.Event{event}))

	suite.ErrorIs(suite.store.Append(ctx, "order-1", 1, []order.Event{event}), ports.ErrSequenceConflict)
	suite.ErrorIs(suite.store.Append(ctx, "order-1", 3, []order.Event{event}), ports.ErrSequenceConflict)
}

func (suite *EventStoreIntegrationTestSuite) TestLoad_AfterSequence() {
	ctx := context.Background()
	at := time.Date(2024, time.March, 2, 9, 30, 0, 0, time.UTC)

	suite.Require().NoError(suite.store.Append(ctx, "order-1", 1, []order.Event{
		order.NewOrderReceived("order-1", suite.testItems(), suite.testCustomer()),
		order.NewOrderAllocationsReceived("order-1", map[string]order.Allocation{"1": suite.testAllocation()}),
		order.NewOrderAllocationPacked("order-1", "1", "trk-9", at),
	}))

	tail, err := suite.store.Load(ctx, "order-1", 2)
	suite.Require().NoError(err)
	suite.Require().Len(tail, 1)
	_, ok := tail[0].(order.OrderAllocationPacked)
	suite.True(ok)

	empty, err := suite.store.Load(ctx, "order-2", 0)
	suite.Require().NoError(err)
	suite.Empty(empty)
}

func (suite *EventStoreIntegrationTestSuite) TestSnapshot_SaveAndReplace() {
	ctx := context.Background()

	_, ok, err := suite.store.LoadSnapshot(ctx, "order-1")
	suite.Require().NoError(err)
	suite.False(ok)

	newState := order.Apply(order.BlankState{}, order.NewOrderReceived("order-1", suite.testItems(), suite.testCustomer()))
	suite.Require().NoError(suite.store.SaveSnapshot(ctx, "order-1", ports.Snapshot{Seq: 1, State: newState}))

	allocatedState := order.Apply(newState, order.NewOrderAllocationsReceived("order-1", map[string]order.Allocation{"1": suite.testAllocation()}))
	suite.Require().NoError(suite.store.SaveSnapshot(ctx, "order-1", ports.Snapshot{Seq: 2, State: allocatedState}))

	snapshot, ok, err := suite.store.LoadSnapshot(ctx, "order-1")
	suite.Require().NoError(err)
	suite.Require().True(ok)
	suite.Equal(uint64(2), snapshot.Seq)

	restored, ok := snapshot.State.(order.AllocatedOrderState)
	suite.Require().True(ok)
	suite.Equal(suite.testCustomer(), restored.Customer())
	suite.Equal(order.Allocated, restored.LatestAllocationStatus("1"))

	var count int64
	suite.Require().NoError(suite.db.Model(&eventstore.SnapshotDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
}

func TestEventStoreIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(EventStoreIntegrationTestSuite))
}
