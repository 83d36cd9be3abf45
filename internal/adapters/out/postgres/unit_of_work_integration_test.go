package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "quickship/internal/adapters/out/postgres"
	"quickship/internal/adapters/out/postgres/auditrepo"
	"quickship/internal/adapters/out/postgres/orderrepo"
	"quickship/internal/adapters/out/postgres/outboxrepo"
	"quickship/internal/core/domain/model/kernel"
	"quickship/internal/core/domain/model/order"
	"quickship/internal/core/ports"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies that the order mutation, its audit
// entry and the staged outbox event commit or roll back as one transaction.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

// SetupSuite initializes PostgreSQL container and database connection for all tests.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(gorm_postgres.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&auditrepo.AuditEntryDTO{},
		&outboxrepo.OutboxEventDTO{},
	))
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, audit_entries CASCADE").Error)
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE outbox_events RESTART IDENTITY").Error)
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_PersistsAllRepositories() {
	ctx := context.Background()
	testOrder := suite.seedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	selection, err := order.NewFreightSelection(11, "Jadlog", "Package", 18.00, 4, "")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ConfirmBooking("BKG-77", &selection))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))

	entry, err := order.NewAuditEntry(testOrder.ID(), time.Now().UTC(), "Shipment booked with Jadlog Package at 18.00")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditRepository().Add(ctx, entry))

	suite.Require().NoError(uow.OutboxRepository().Add(ctx, ports.OutboxEvent{
		OrderID:   testOrder.ID().String(),
		EventType: "order.booked",
		Payload:   []byte(`{"booking_ref":"BKG-77"}`),
		CreatedAt: time.Now().UTC(),
	}))

	suite.Require().NoError(uow.Commit(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("BKG-77", reloaded.BookingRef())
	suite.Equal(order.StatusBooked, reloaded.ShipmentStatus())

	entries, err := auditrepo.NewGormAuditRepository(suite.db).GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)

	events, err := outboxrepo.NewGormOutboxRepository(suite.db).GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(events, 1)
	suite.Equal("order.booked", events[0].EventType)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsAllRepositories() {
	ctx := context.Background()
	testOrder := suite.seedOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))

	selection, err := order.NewFreightSelection(3, "Correios", "SEDEX", 25.50, 2, "")
	suite.Require().NoError(err)
	suite.Require().NoError(testOrder.ConfirmBooking("BKG-88", &selection))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, testOrder))

	entry, err := order.NewAuditEntry(testOrder.ID(), time.Now().UTC(), "Shipment booked with Correios SEDEX at 25.50")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditRepository().Add(ctx, entry))

	suite.Require().NoError(uow.OutboxRepository().Add(ctx, ports.OutboxEvent{
		OrderID:   testOrder.ID().String(),
		EventType: "order.booked",
		Payload:   []byte(`{}`),
		CreatedAt: time.Now().UTC(),
	}))

	suite.Require().NoError(uow.Rollback(ctx))

	reloaded, err := suite.factory.Create().OrderRepository().Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal("", reloaded.BookingRef())
	suite.Equal(order.StatusNoQuote, reloaded.ShipmentStatus())

	entries, err := auditrepo.NewGormAuditRepository(suite.db).GetByOrder(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Empty(entries)

	events, err := outboxrepo.NewGormOutboxRepository(suite.db).GetUnsent(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(events)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestBegin_IsIdempotent() {
	ctx := context.Background()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Commit(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_WithoutBegin_ReturnsError() {
	uow := suite.factory.Create()
	suite.ErrorIs(uow.Rollback(context.Background()), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRepositories_WithoutBegin_ExecuteImmediately() {
	ctx := context.Background()

	uow := suite.factory.Create()
	entryOrder := suite.seedOrder()

	entry, err := order.NewAuditEntry(entryOrder.ID(), time.Now().UTC(), "Order received")
	suite.Require().NoError(err)
	suite.Require().NoError(uow.AuditRepository().Add(ctx, entry))

	entries, err := auditrepo.NewGormAuditRepository(suite.db).GetByOrder(ctx, entryOrder.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 1)
}

// seedOrder persists a fresh order outside any unit of work transaction.
func (suite *UnitOfWorkIntegrationTestSuite) seedOrder() *order.Order {
	recipient, err := order.NewRecipient(
		"Maria Souza", "maria@example.com", "11987654321", "12345678901",
		"Rua das Flores 10", "apt 42", "Sao Paulo", "SP", "01310100",
	)
	suite.Require().NoError(err)

	item, err := order.NewLineItem("prod-1", "", 1, 34.90)
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(
		kernel.NewUUID(), "ORD-3001", recipient, []order.LineItem{item}, false,
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.OrderRepository().Add(context.Background(), testOrder))
	return testOrder
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
