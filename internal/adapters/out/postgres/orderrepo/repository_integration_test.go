package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"mealroute/internal/adapters/out/postgres/migrations"
	"mealroute/internal/adapters/out/postgres/orderrepo"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/errs"

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

var kitchen = kernel.MustNewGeoPoint(55.7558, 37.6173)

// OrderRepositoryIntegrationTestSuite verifies persistence against a real
// PostgreSQL with the production schema.
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

	suite.Require().NoError(migrations.Up(connStr))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(createdAt time.Time) *order.Order {
	price := int64(129900)
	o, err := order.NewOrder(kernel.NewUUID(), createdAt.UTC().Truncate(time.Microsecond), "weekly", &price)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) readyOrder(createdAt time.Time, lat, lng float64) *order.Order {
	o := suite.newOrder(createdAt)
	suite.Require().NoError(o.Confirm(nil))

	fix, err := kernel.NewGPSFix(kernel.MustNewGeoPoint(lat, lng), createdAt.UTC().Truncate(time.Microsecond))
	suite.Require().NoError(err)
	suite.Require().NoError(o.MarkReady(fix, kitchen))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) add(orders ...*order.Order) {
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	for _, o := range orders {
		suite.Require().NoError(suite.repository.Add(context.Background(), o))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_TracksAggregate() {
	ctx := context.Background()
	testOrder := suite.newOrder(time.Now())

	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(int64(1), count)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_UnconstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.tracker.AssertNotCalled(suite.T(), "TrackAggregate", mock.Anything, mock.Anything)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsEveryField() {
	ctx := context.Background()
	slot := time.Now().Add(2 * time.Hour).UTC().Truncate(time.Microsecond)

	o := suite.newOrder(time.Now())
	suite.Require().NoError(o.Confirm(&slot))
	fix, _ := kernel.NewGPSFix(kernel.MustNewGeoPoint(55.7601, 37.6185), time.Now().UTC().Truncate(time.Microsecond))
	suite.Require().NoError(o.MarkReady(fix, kitchen))
	suite.Require().NoError(o.AssignTourPosition(1, *o.DistanceKm()))
	suite.add(o)

	got, err := suite.repository.Get(ctx, o.ID())

	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(got.ID()))
	suite.Equal(order.Ready, got.Status())
	suite.Equal("weekly", got.Plan())
	suite.Equal(int64(129900), *got.PriceMinor())
	suite.True(o.CreatedAt().Equal(got.CreatedAt()))
	suite.Require().NotNil(got.GPSFix())
	suite.True(fix.Point().IsEqual(got.GPSFix().Point()))
	suite.True(fix.CapturedAt().Equal(got.GPSFix().CapturedAt()))
	suite.InDelta(*o.DistanceKm(), *got.DistanceKm(), 1e-12)
	suite.Equal(1, *got.TourPosition())
	suite.True(slot.Equal(*got.EstimatedDeliveryAt()))
	suite.Nil(got.ActualDeliveryAt())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_OutsideTransaction_ReadsOrder() {
	o := suite.newOrder(time.Now())
	suite.add(o)

	got, err := suite.repository.GetForUpdate(context.Background(), o.ID())

	suite.Require().NoError(err)
	suite.True(o.ID().IsEqual(got.ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_ClearsTourPosition() {
	ctx := context.Background()
	o := suite.readyOrder(time.Now(), 55.76, 37.62)
	suite.Require().NoError(o.AssignTourPosition(1, 0.5))
	suite.add(o)

	suite.Require().NoError(o.Cancel())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Cancelled, got.Status())
	suite.Nil(got.TourPosition())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StatusTransitions() {
	ctx := context.Background()
	o := suite.readyOrder(time.Now(), 55.76, 37.62)
	suite.add(o)

	suite.Require().NoError(o.StartDelivery())
	suite.Require().NoError(suite.repository.Update(ctx, o))

	deliveredAt := time.Now().UTC().Truncate(time.Microsecond)
	suite.Require().NoError(o.CompleteDelivery(deliveredAt))
	suite.Require().NoError(suite.repository.Update(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Delivered, got.Status())
	suite.True(deliveredAt.Equal(*got.ActualDeliveryAt()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFound() {
	o := suite.newOrder(time.Now())

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllInStatus_FiltersAndOrdersByCreation() {
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	pending := suite.newOrder(base)
	readyLate := suite.readyOrder(base.Add(2*time.Minute), 55.76, 37.62)
	readyEarly := suite.readyOrder(base.Add(1*time.Minute), 55.77, 37.63)
	started := suite.readyOrder(base, 55.78, 37.64)
	suite.Require().NoError(started.StartDelivery())
	suite.add(pending, readyLate, readyEarly, started)

	ready, err := suite.repository.GetAllInStatus(ctx, order.Ready)
	suite.Require().NoError(err)
	suite.Require().Len(ready, 2)
	suite.True(readyEarly.ID().IsEqual(ready[0].ID()))
	suite.True(readyLate.ID().IsEqual(ready[1].ID()))

	active, err := suite.repository.GetAllInStatus(ctx, order.Ready, order.OutForDelivery)
	suite.Require().NoError(err)
	suite.Len(active, 3)

	none, err := suite.repository.GetAllInStatus(ctx)
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetDeliveredBetween_HalfOpenWindow() {
	ctx := context.Background()
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC)

	deliver := func(at time.Time) *order.Order {
		o := suite.readyOrder(dayStart.Add(-24*time.Hour), 55.76, 37.62)
		suite.Require().NoError(o.StartDelivery())
		suite.Require().NoError(o.CompleteDelivery(at))
		return o
	}

	atStart := deliver(dayStart)
	midday := deliver(dayStart.Add(12 * time.Hour))
	atEnd := deliver(dayStart.Add(24 * time.Hour))
	before := deliver(dayStart.Add(-time.Second))
	suite.add(atStart, midday, atEnd, before)

	delivered, err := suite.repository.GetDeliveredBetween(ctx, dayStart, dayStart.Add(24*time.Hour))

	suite.Require().NoError(err)
	suite.Require().Len(delivered, 2)
	suite.True(atStart.ID().IsEqual(delivered[0].ID()))
	suite.True(midday.ID().IsEqual(delivered[1].ID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestSchema_RejectsPositionOnNonReadyOrder() {
	o := suite.newOrder(time.Now())
	suite.add(o)

	err := suite.db.Exec("UPDATE orders SET tour_position = 1 WHERE id = ?", o.ID().Bytes()).Error

	suite.Require().Error(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_CorruptRow_ReturnsError() {
	o := suite.newOrder(time.Now())
	suite.add(o)
	suite.Require().NoError(suite.db.Exec(
		"UPDATE orders SET status = 3, gps_lat = 0, gps_lng = 37.6, gps_captured_at = now() WHERE id = ?",
		o.ID().Bytes(),
	).Error)

	_, err := suite.repository.Get(context.Background(), o.ID())

	suite.Require().ErrorIs(err, kernel.ErrGeoPointIsZero)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
