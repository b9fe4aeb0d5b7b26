package orderrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/orderrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OrderRepositoryIntegrationTestSuite provides integration tests for the
// order repository using PostgreSQL containers to verify persistence,
// tracking-log round-trips, and the guarded status update.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	// Start PostgreSQL container
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
		&orderrepo.ItemDTO{},
		&orderrepo.TrackingEventDTO{},
	))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(
		suite.db.Exec("TRUNCATE TABLE orders, order_items, tracking_events").Error)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(customerID kernel.UUID) *order.Order {
	first, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Espresso beans", 2, 1450)
	suite.Require().NoError(err)
	second, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Filter papers", 1, 600)
	suite.Require().NoError(err)

	address, err := order.NewAddress(
		"Riley Chen", "+15550177", "3 Maple Ct", "2", "1", "4", "Hillside", "Springfield", "")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(), "ORD-"+kernel.NewUUID().String()[:12], customerID,
		[]order.Item{first, second},
		3500, 400, 100, 4000,
		address, order.PaymentWallet,
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrip() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(kernel.NewUUID())

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)

	suite.True(loaded.IsEqual(testOrder))
	suite.Equal(testOrder.Number(), loaded.Number())
	suite.Equal(order.Pending, loaded.Status())
	suite.Equal(testOrder.Total(), loaded.Total())
	suite.Equal(testOrder.Address(), loaded.Address())
	suite.Len(loaded.Items(), 2)
	suite.Equal(testOrder.Items()[0].Name(), loaded.Items()[0].Name())

	tracking := loaded.Tracking()
	suite.Require().Len(tracking, 1)
	suite.Equal(order.Pending, tracking[0].Status())
	suite.Equal("order placed", tracking[0].Message())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetByNumber() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	loaded, err := suite.repository.GetByNumber(ctx, testOrder.Number())
	suite.Require().NoError(err)
	suite.True(loaded.IsEqual(testOrder))

	_, err = suite.repository.GetByNumber(ctx, "ORD-DOES-NOT-EXIST")
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByCustomer_NewestFirst() {
	ctx := context.Background()
	customerID := kernel.NewUUID()

	older := suite.createTestOrder(customerID)
	suite.Require().NoError(suite.repository.Add(ctx, older))

	time.Sleep(10 * time.Millisecond)

	newer := suite.createTestOrder(customerID)
	suite.Require().NoError(suite.repository.Add(ctx, newer))

	other := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, other))

	orders, err := suite.repository.GetAllByCustomer(ctx, customerID)
	suite.Require().NoError(err)

	suite.Require().Len(orders, 2)
	suite.True(orders[0].IsEqual(newer))
	suite.True(orders[1].IsEqual(older))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusGuarded_AppendsTrackingEntry() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	expected := testOrder.Status()
	_, err := testOrder.Advance(order.Confirmed, "payment verified", time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repository.UpdateStatusGuarded(ctx, testOrder, expected))

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())

	tracking := loaded.Tracking()
	suite.Require().Len(tracking, 2)
	suite.Equal(order.Confirmed, tracking[1].Status())
	suite.Equal("payment verified", tracking[1].Message())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusGuarded_StaleExpectedStatus() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First writer wins.
	expected := testOrder.Status()
	_, err := testOrder.Advance(order.Confirmed, "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.UpdateStatusGuarded(ctx, testOrder, expected))

	// Second writer still believes the order is pending.
	stale := suite.createStaleCopy(ctx, testOrder.ID(), order.Pending)
	err = suite.repository.UpdateStatusGuarded(ctx, stale, order.Pending)

	suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Len(loaded.Tracking(), 2)
}

// createStaleCopy rebuilds an aggregate as a writer that read the order at
// fromStatus would see it, already advanced one step further.
func (suite *OrderRepositoryIntegrationTestSuite) createStaleCopy(
	ctx context.Context,
	id kernel.UUID,
	fromStatus order.Status,
) *order.Order {
	loaded, err := suite.repository.Get(ctx, id)
	suite.Require().NoError(err)

	items := loaded.Items()
	address := loaded.Address()

	tracking := loaded.Tracking()[:1]
	stale, err := order.RestoreOrder(
		loaded.ID(), loaded.Number(), loaded.CustomerID(), items,
		loaded.Subtotal(), loaded.ShippingFee(), loaded.Tax(), loaded.Total(),
		address, loaded.PaymentMethod(),
		fromStatus, tracking, loaded.CreatedAt(),
	)
	suite.Require().NoError(err)

	next, ok := fromStatus.Next()
	suite.Require().True(ok)
	_, err = stale.Advance(next, "", time.Now().UTC())
	suite.Require().NoError(err)
	return stale
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusGuarded_OrderNotFound() {
	ctx := context.Background()
	phantom := suite.createTestOrder(kernel.NewUUID())
	_, err := phantom.Advance(order.Confirmed, "", time.Now().UTC())
	suite.Require().NoError(err)

	err = suite.repository.UpdateStatusGuarded(ctx, phantom, order.Pending)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

// TestUpdateStatusGuarded_ConcurrentWriters races two writers that both read
// the order in pending status; exactly one transition may land.
func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatusGuarded_ConcurrentWriters() {
	ctx := context.Background()
	testOrder := suite.createTestOrder(kernel.NewUUID())
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// Both writers read the order while it is still pending.
	views := make([]*order.Order, 2)
	for i := range views {
		view, err := suite.repository.Get(ctx, testOrder.ID())
		suite.Require().NoError(err)
		_, err = view.Advance(order.Confirmed, "", time.Now().UTC())
		suite.Require().NoError(err)
		views[i] = view
	}

	results := make([]error, 2)
	var wg sync.WaitGroup
	wg.Add(2)
	for i := 0; i < 2; i++ {
		go func(slot int) {
			defer wg.Done()
			results[slot] = suite.repository.UpdateStatusGuarded(ctx, views[slot], order.Pending)
		}(i)
	}
	wg.Wait()

	winners := 0
	conflicts := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		default:
			suite.Require().ErrorIs(err, errs.ErrConcurrencyConflict)
			conflicts++
		}
	}
	suite.Equal(1, winners, "exactly one writer must win")
	suite.Equal(1, conflicts, "the loser must see a retryable conflict")

	loaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Confirmed, loaded.Status())
	suite.Len(loaded.Tracking(), 2, "the losing writer must not append a tracking entry")
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
