package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mealroute/internal/core/application/usecases/queries"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderReader struct{ mock.Mock }

func (m *MockOrderReader) GetAllInStatus(ctx context.Context, statuses ...order.Status) ([]*order.Order, error) {
	args := m.Called(ctx, statuses)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func (m *MockOrderReader) GetDeliveredBetween(ctx context.Context, from, to time.Time) ([]*order.Order, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]*order.Order), args.Error(1)
}

func restored(t *testing.T, status order.Status, distanceKm float64, deliveredAt *time.Time) *order.Order {
	t.Helper()

	fix, err := kernel.NewGPSFix(kernel.MustNewGeoPoint(55.76, 37.62), time.Now())
	require.NoError(t, err)

	o, err := order.RestoreOrder(order.Snapshot{
		ID:               kernel.NewUUID(),
		Status:           status,
		CreatedAt:        time.Now(),
		GPSFix:           &fix,
		DistanceKm:       &distanceKm,
		ActualDeliveryAt: deliveredAt,
	})
	require.NoError(t, err)
	return o
}

func TestGetDeliveryStatsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 3, 14, 18, 30, 0, 0, loc)
	dayStart := time.Date(2025, 3, 14, 0, 0, 0, 0, loc)
	deliveredAt := now.Add(-time.Hour)

	reader := new(MockOrderReader)
	reader.On("GetAllInStatus", ctx, []order.Status{order.Ready, order.OutForDelivery}).Return([]*order.Order{
		restored(t, order.Ready, 1, nil),
		restored(t, order.Ready, 3, nil),
		restored(t, order.OutForDelivery, 2, nil),
	}, nil).Once()
	reader.On("GetDeliveredBetween", ctx, dayStart, dayStart.AddDate(0, 0, 1)).Return([]*order.Order{
		restored(t, order.Delivered, 5, &deliveredAt),
	}, nil).Once()

	h := queries.NewGetDeliveryStatsQueryHandler(reader, services.NewDeliveryStatsAggregator())
	query, _ := queries.NewGetDeliveryStatsQuery(now)
	stats, err := h.Handle(ctx, query)

	require.NoError(t, err)
	assert.Equal(t, 2, stats.ReadyCount)
	assert.Equal(t, 1, stats.OutForDeliveryCount)
	assert.Equal(t, 1, stats.DeliveredToday)
	assert.InDelta(t, 2.0, stats.AverageDistanceKm, 1e-12)
	reader.AssertExpectations(t)
}

func TestGetDeliveryStatsQueryHandler_Handle_ReaderError(t *testing.T) {
	ctx := t.Context()

	reader := new(MockOrderReader)
	reader.On("GetAllInStatus", ctx, mock.Anything).Return([]*order.Order(nil), errors.New("db down")).Once()

	h := queries.NewGetDeliveryStatsQueryHandler(reader, services.NewDeliveryStatsAggregator())
	query, _ := queries.NewGetDeliveryStatsQuery(time.Now())
	_, err := h.Handle(ctx, query)

	require.EqualError(t, err, "db down")
	reader.AssertNotCalled(t, "GetDeliveredBetween", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetDeliveryStatsQueryHandler_Handle_InvalidQuery(t *testing.T) {
	reader := new(MockOrderReader)

	h := queries.NewGetDeliveryStatsQueryHandler(reader, services.NewDeliveryStatsAggregator())
	_, err := h.Handle(t.Context(), queries.GetDeliveryStatsQuery{})

	require.ErrorIs(t, err, queries.ErrGetDeliveryStatsQueryIsNotConstructed)
}
