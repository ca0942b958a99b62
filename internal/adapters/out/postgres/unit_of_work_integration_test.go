package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "tableside/internal/adapters/out/postgres"
	"tableside/internal/adapters/out/postgres/orderrepo"
	"tableside/internal/adapters/out/postgres/tablerepo"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"
	"tableside/internal/core/domain/model/table"
	"tableside/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite exercises the GORM-based Unit of Work
// against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes the PostgreSQL container and database connection,
// then migrates the schema used by the unit of work repositories.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&tablerepo.TableDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.OrderItemDTO{},
		&orderrepo.ItemAddonDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

// SetupTest truncates all tables to prevent test interference.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE restaurant_tables, orders, order_items, order_item_addons").Error
	suite.Require().NoError(err)
}

// TearDownSuite terminates the PostgreSQL container.
func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")

	suite.NotNil(uow1.TableRepository(), "First instance should provide table repository")
	suite.NotNil(uow1.OrderRepository(), "First instance should provide order repository")
	suite.NotNil(uow2.TableRepository(), "Second instance should provide table repository")
	suite.NotNil(uow2.OrderRepository(), "Second instance should provide order repository")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err, "Should begin transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err, "Multiple begin calls should be safe")

	err = uow.Commit(ctx)
	suite.Require().NoError(err, "Should commit transaction successfully")

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err, "Should rollback transaction successfully")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "Should error when committing without active transaction")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "Should error when rolling back without active transaction")
}

// TestUnitOfWork_OrderSeatingWorkflow covers the seating flow: registering a
// table, opening a ticket against it and occupying the table in one
// transaction, exactly as the coordination service does.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OrderSeatingWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testTable := createTestTable(suite.T(), 7)
	waiterID := kernel.NewUUID()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.TableRepository().Add(ctx, testTable)
	suite.Require().NoError(err)

	testOrder := createTestOrder(suite.T(), testTable.ID(), waiterID)
	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	err = testTable.Occupy(waiterID, testOrder.ID())
	suite.Require().NoError(err)
	err = uow.TableRepository().Update(ctx, testTable)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	retrievedTable, err := newUow.TableRepository().Get(ctx, testTable.ID())
	suite.Require().NoError(err)
	suite.Equal(table.Occupied, retrievedTable.Status())
	suite.Require().NotNil(retrievedTable.ActiveOrder())
	suite.Equal(testOrder.ID(), *retrievedTable.ActiveOrder())
	suite.Require().NotNil(retrievedTable.AssignedWaiter())
	suite.Equal(waiterID, *retrievedTable.AssignedWaiter())

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(testTable.ID(), retrievedOrder.TableID())
}

// TestUnitOfWork_SettlementWorkflow covers closing a ticket: items ordered,
// cooked and delivered, the table released to bussing and the settlement
// persisted together.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SettlementWorkflow() {
	ctx := context.Background()
	now := time.Date(2025, 6, 14, 19, 30, 0, 0, time.UTC)

	testTable := createTestTable(suite.T(), 3)
	waiterID := kernel.NewUUID()
	testOrder := createTestOrder(suite.T(), testTable.ID(), waiterID)
	suite.Require().NoError(testTable.Occupy(waiterID, testOrder.ID()))

	price, err := kernel.NewMoneyFromCents(800)
	suite.Require().NoError(err)
	item, err := order.NewItem(kernel.NewUUID(), testOrder.ID(), kernel.NewUUID(), 2, 1, price, "")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.AddItem(item))

	setupUow := suite.factory.Create()
	suite.Require().NoError(setupUow.Begin(ctx))
	suite.Require().NoError(setupUow.TableRepository().Add(ctx, testTable))
	suite.Require().NoError(setupUow.OrderRepository().Add(ctx, testOrder))
	suite.Require().NoError(setupUow.Commit(ctx))

	suite.Require().NoError(testOrder.AdvanceItem(item.ID(), order.ItemInPreparation, now))
	suite.Require().NoError(testOrder.AdvanceItem(item.ID(), order.ItemReady, now.Add(12*time.Minute)))
	suite.Require().NoError(testOrder.AdvanceItem(item.ID(), order.ItemDelivered, now.Add(15*time.Minute)))

	tip, err := kernel.NewMoneyFromCents(300)
	suite.Require().NoError(err)
	receipt, err := testOrder.Close("card", tip, now.Add(45*time.Minute))
	suite.Require().NoError(err)
	suite.Equal(int64(1760), receipt.Total.Cents())
	suite.Require().NoError(testTable.MarkDirty())

	closeUow := suite.factory.Create()
	suite.Require().NoError(closeUow.Begin(ctx))
	suite.Require().NoError(closeUow.OrderRepository().Update(ctx, testOrder))
	suite.Require().NoError(closeUow.TableRepository().Update(ctx, testTable))
	suite.Require().NoError(closeUow.Commit(ctx))

	newUow := suite.factory.Create()

	retrievedOrder, err := newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Paid, retrievedOrder.Status())
	suite.Equal("card", retrievedOrder.PaymentMethod())

	retrievedTable, err := newUow.TableRepository().Get(ctx, testTable.ID())
	suite.Require().NoError(err)
	suite.Equal(table.Dirty, retrievedTable.Status())
	suite.Nil(retrievedTable.ActiveOrder(), "Settled table should drop its order reference")
	suite.Nil(retrievedTable.AssignedWaiter(), "Settled table should drop its waiter reference")
}

// TestUnitOfWork_TransactionRollback verifies rollback discards changes
// across both repositories.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testTable := createTestTable(suite.T(), 11)
	testOrder := createTestOrder(suite.T(), testTable.ID(), kernel.NewUUID())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.TableRepository().Add(ctx, testTable)
	suite.Require().NoError(err)

	err = uow.OrderRepository().Add(ctx, testOrder)
	suite.Require().NoError(err)

	_, err = uow.TableRepository().Get(ctx, testTable.ID())
	suite.Require().NoError(err)

	_, err = uow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.TableRepository().Get(ctx, testTable.ID())
	suite.Require().Error(err, "Table should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().Error(err, "Order should not exist after rollback")
}

// TestUnitOfWork_RepositoryIsolation verifies that concurrent transactions
// only see their own uncommitted changes.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()

	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	table1 := createTestTable(suite.T(), 1)
	table2 := createTestTable(suite.T(), 2)

	err := uow1.Begin(ctx)
	suite.Require().NoError(err)

	err = uow2.Begin(ctx)
	suite.Require().NoError(err)

	err = uow1.TableRepository().Add(ctx, table1)
	suite.Require().NoError(err)

	err = uow2.TableRepository().Add(ctx, table2)
	suite.Require().NoError(err)

	_, err = uow1.TableRepository().Get(ctx, table1.ID())
	suite.Require().NoError(err, "UOW1 should see table1")

	_, err = uow1.TableRepository().Get(ctx, table2.ID())
	suite.Require().Error(err, "UOW1 should not see table2")

	_, err = uow2.TableRepository().Get(ctx, table2.ID())
	suite.Require().NoError(err, "UOW2 should see table2")

	_, err = uow2.TableRepository().Get(ctx, table1.ID())
	suite.Require().Error(err, "UOW2 should not see table1")

	err = uow1.Commit(ctx)
	suite.Require().NoError(err)

	err = uow2.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.TableRepository().Get(ctx, table1.ID())
	suite.Require().NoError(err, "Table1 should persist after commit")

	_, err = newUow.TableRepository().Get(ctx, table2.ID())
	suite.Require().Error(err, "Table2 should not persist after rollback")
}

// TestUnitOfWork_WithoutTransaction verifies repositories auto-commit when no
// transaction boundary was opened.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_WithoutTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testTable := createTestTable(suite.T(), 5)

	err := uow.TableRepository().Add(ctx, testTable)
	suite.Require().NoError(err)

	retrievedTable, err := uow.TableRepository().Get(ctx, testTable.ID())
	suite.Require().NoError(err)
	suite.Equal(testTable.ID(), retrievedTable.ID())

	newUow := suite.factory.Create()
	retrievedTable, err = newUow.TableRepository().Get(ctx, testTable.ID())
	suite.Require().NoError(err)
	suite.Equal(testTable.ID(), retrievedTable.ID())
}

// TestUnitOfWork_PartialFailureScenario verifies rollback undoes the
// operations that succeeded before a failing one.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PartialFailureScenario() {
	ctx := context.Background()
	uow := suite.factory.Create()

	existingTable := createTestTable(suite.T(), 20)
	err := uow.TableRepository().Add(ctx, existingTable)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	newTable := createTestTable(suite.T(), 21)
	newOrder := createTestOrder(suite.T(), newTable.ID(), kernel.NewUUID())

	err = uow.TableRepository().Add(ctx, newTable)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, newOrder)
	suite.Require().NoError(err)

	duplicateTable, err := table.NewTable(existingTable.ID(), 22, 2)
	suite.Require().NoError(err)

	err = uow.TableRepository().Add(ctx, duplicateTable)
	suite.Require().Error(err, "Adding duplicate table should fail")

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()

	_, err = newUow.TableRepository().Get(ctx, existingTable.ID())
	suite.Require().NoError(err, "Existing table should still exist")

	_, err = newUow.TableRepository().Get(ctx, newTable.ID())
	suite.Require().Error(err, "New table should not exist after rollback")

	_, err = newUow.OrderRepository().Get(ctx, newOrder.ID())
	suite.Require().Error(err, "New order should not exist after rollback")
}

// TestUnitOfWork_QueryConsistency verifies query results reflect uncommitted
// changes inside the transaction and survive the commit.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_QueryConsistency() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testTable := createTestTable(suite.T(), 9)
	waiterID := kernel.NewUUID()
	openOrder := createTestOrder(suite.T(), testTable.ID(), waiterID)
	cancelledOrder := createTestOrder(suite.T(), testTable.ID(), waiterID)

	err := uow.TableRepository().Add(ctx, testTable)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, openOrder)
	suite.Require().NoError(err)
	err = uow.OrderRepository().Add(ctx, cancelledOrder)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = cancelledOrder.Cancel(time.Now().UTC())
	suite.Require().NoError(err)
	err = uow.OrderRepository().Update(ctx, cancelledOrder)
	suite.Require().NoError(err)

	activeOrders, err := uow.OrderRepository().GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Len(activeOrders, 1)
	suite.Equal(openOrder.ID(), activeOrders[0].ID())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	activeOrders, err = newUow.OrderRepository().GetAllActive(ctx)
	suite.Require().NoError(err)
	suite.Len(activeOrders, 1)
	suite.Equal(openOrder.ID(), activeOrders[0].ID())
}

func createTestTable(t *testing.T, number int) *table.Table {
	t.Helper()
	testTable, err := table.NewTable(kernel.NewUUID(), number, 4)
	if err != nil {
		t.Fatalf("create test table: %v", err)
	}
	return testTable
}

func createTestOrder(t *testing.T, tableID, waiterID kernel.UUID) *order.Order {
	t.Helper()
	testOrder, err := order.NewOrder(kernel.NewUUID(), tableID, waiterID, time.Date(2025, 6, 14, 18, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("create test order: %v", err)
	}
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
