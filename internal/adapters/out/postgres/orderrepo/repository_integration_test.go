package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.ItemAddonDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec(
		"TRUNCATE TABLE orders, order_items, order_item_addons").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) money(cents int64) kernel.Money {
	m, err := kernel.NewMoneyFromCents(cents)
	suite.Require().NoError(err)
	return m
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		time.Date(2025, 6, 14, 18, 30, 0, 0, time.UTC))
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) addItem(o *order.Order, priceCents int64, quantity int) *order.Item {
	item, err := order.NewItem(kernel.NewUUID(), o.ID(), kernel.NewUUID(),
		quantity, 1, suite.money(priceCents), "")
	suite.Require().NoError(err)
	suite.Require().NoError(o.AddItem(item))
	return item
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.addItem(testOrder, 800, 2)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.assertItemCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsFullAggregate() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	item := suite.addItem(testOrder, 800, 2)
	addon, err := order.NewItemAddon(kernel.NewUUID(), item.ID(), kernel.NewUUID(), suite.money(100))
	suite.Require().NoError(err)
	suite.Require().NoError(item.AddAddon(addon))

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrieved.ID().IsEqual(testOrder.ID()))
	suite.True(retrieved.TableID().IsEqual(testOrder.TableID()))
	suite.Equal(order.New, retrieved.Status())
	suite.Require().Len(retrieved.Items(), 1)

	retrievedItem := retrieved.Items()[0]
	suite.Equal(2, retrievedItem.Quantity())
	suite.Equal(int64(800), retrievedItem.Price().Cents())
	suite.Require().Len(retrievedItem.Addons(), 1)
	suite.Equal(int64(100), retrievedItem.Addons()[0].Price().Cents())
	suite.Equal(int64(1700), retrievedItem.LineTotal().Cents())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ItemProgress_ReplacesItemRows() {
	ctx := context.Background()
	now := time.Date(2025, 6, 14, 18, 45, 0, 0, time.UTC)

	testOrder := suite.createTestOrder()
	item := suite.addItem(testOrder, 600, 1)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.Require().NoError(testOrder.AdvanceItem(item.ID(), order.ItemInPreparation, now))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.InProgress, retrieved.Status())
	suite.Require().Len(retrieved.Items(), 1)
	suite.Equal(order.ItemInPreparation, retrieved.Items()[0].Status())
	suite.Require().NotNil(retrieved.Items()[0].PrepStart())
	suite.Equal(now, retrieved.Items()[0].PrepStart().UTC())

	suite.assertItemCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ReloadedOrder_KeepsItemEntryOrder() {
	ctx := context.Background()
	now := time.Date(2025, 6, 14, 19, 0, 0, 0, time.UTC)

	testOrder := suite.createTestOrder()
	first := suite.addItem(testOrder, 600, 1)
	second := suite.addItem(testOrder, 800, 2)
	third := suite.addItem(testOrder, 450, 1)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Items(), 3)
	suite.Equal(first.ID(), retrieved.Items()[0].ID())
	suite.Equal(second.ID(), retrieved.Items()[1].ID())
	suite.Equal(third.ID(), retrieved.Items()[2].ID())

	// Entry order must also survive the wholesale row replacement on update.
	suite.Require().NoError(testOrder.AdvanceItem(second.ID(), order.ItemInPreparation, now))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err = suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(retrieved.Items(), 3)
	suite.Equal(first.ID(), retrieved.Items()[0].ID())
	suite.Equal(second.ID(), retrieved.Items()[1].ID())
	suite.Equal(third.ID(), retrieved.Items()[2].ID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClosedOrder_PersistsSettlement() {
	ctx := context.Background()
	now := time.Date(2025, 6, 14, 20, 0, 0, 0, time.UTC)

	testOrder := suite.createTestOrder()
	item := suite.addItem(testOrder, 800, 2)

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	for _, next := range []order.ItemStatus{order.ItemInPreparation, order.ItemReady, order.ItemDelivered} {
		suite.Require().NoError(testOrder.AdvanceItem(item.ID(), next, now))
	}
	receipt, err := testOrder.Close("card", suite.money(300), now)
	suite.Require().NoError(err)
	suite.Equal(int64(1760), receipt.Total.Cents())

	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, retrieved.Status())
	suite.Equal("card", retrieved.PaymentMethod())
	suite.Equal(int64(300), retrieved.TipAmount().Cents())
	suite.Equal(int64(160), retrieved.TaxAmount().Cents())
	suite.Equal(int64(1760), retrieved.TotalAmount().Cents())
	suite.Require().NotNil(retrieved.PaidAt())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()

	err := suite.repository.Update(ctx, testOrder)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllActive_SkipsTerminalOrders() {
	ctx := context.Background()
	now := time.Date(2025, 6, 14, 21, 0, 0, 0, time.UTC)

	active := suite.createTestOrder()
	suite.addItem(active, 500, 1)
	suite.tracker.On("TrackAggregate", active.ID(), active).Once()
	suite.Require().NoError(suite.repository.Add(ctx, active))

	cancelled := suite.createTestOrder()
	suite.Require().NoError(cancelled.Cancel(now))
	suite.tracker.On("TrackAggregate", cancelled.ID(), cancelled).Once()
	suite.Require().NoError(suite.repository.Add(ctx, cancelled))

	orders, err := suite.repository.GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Require().Len(orders, 1)
	suite.True(orders[0].ID().IsEqual(active.ID()))
	suite.Len(orders[0].Items(), 1)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) assertItemCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderItemDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
