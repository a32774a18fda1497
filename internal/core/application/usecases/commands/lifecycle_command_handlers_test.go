package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"mealroute/internal/core/application/usecases/commands"
	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/pkg/clock"
	"mealroute/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// orderIn restores an order that is already in status.
func orderIn(t *testing.T, status order.Status) *order.Order {
	t.Helper()

	snapshot := order.Snapshot{
		ID:        kernel.NewUUID(),
		Status:    status,
		CreatedAt: now.Add(-time.Hour),
	}
	if status != order.Pending && status != order.Confirmed {
		fix, err := kernel.NewGPSFix(kernel.MustNewGeoPoint(55.76, 37.62), now.Add(-30*time.Minute))
		require.NoError(t, err)
		distance := kernel.DistanceKm(kitchen, fix.Point())
		snapshot.GPSFix = &fix
		snapshot.DistanceKm = &distance
	}
	if status == order.Ready {
		position := 1
		snapshot.TourPosition = &position
	}
	if status == order.Delivered {
		at := now.Add(-10 * time.Minute)
		snapshot.ActualDeliveryAt = &at
	}

	o, err := order.RestoreOrder(snapshot)
	require.NoError(t, err)
	return o
}

type transitionCase struct {
	name   string
	from   order.Status
	handle func(ctx context.Context, factory commands.OrderUoWFactory, id kernel.UUID) (*order.Order, error)
	check  func(t *testing.T, o *order.Order)
}

func transitionCases() []transitionCase {
	return []transitionCase{
		{
			name: "confirm",
			from: order.Pending,
			handle: func(ctx context.Context, factory commands.OrderUoWFactory, id kernel.UUID) (*order.Order, error) {
				slot := now.Add(time.Hour)
				cmd, err := commands.NewConfirmOrderCommand(id, &slot)
				if err != nil {
					return nil, err
				}
				h := commands.NewConfirmOrderCommandHandler(factory)
				return h.Handle(ctx, cmd)
			},
			check: func(t *testing.T, o *order.Order) {
				assert.Equal(t, order.Confirmed, o.Status())
				assert.Equal(t, now.Add(time.Hour), *o.EstimatedDeliveryAt())
			},
		},
		{
			name: "mark ready",
			from: order.Confirmed,
			handle: func(ctx context.Context, factory commands.OrderUoWFactory, id kernel.UUID) (*order.Order, error) {
				cmd, err := commands.NewMarkOrderReadyCommand(id, 55.7601, 37.6185, nil)
				if err != nil {
					return nil, err
				}
				h := commands.NewMarkOrderReadyCommandHandler(factory, clock.Fixed{At: now}, kitchen)
				return h.Handle(ctx, cmd)
			},
			check: func(t *testing.T, o *order.Order) {
				assert.Equal(t, order.Ready, o.Status())
				require.NotNil(t, o.GPSFix())
				assert.Equal(t, now, o.GPSFix().CapturedAt())
				require.NotNil(t, o.DistanceKm())
				assert.Greater(t, *o.DistanceKm(), 0.0)
				assert.Nil(t, o.TourPosition())
			},
		},
		{
			name: "start delivery",
			from: order.Ready,
			handle: func(ctx context.Context, factory commands.OrderUoWFactory, id kernel.UUID) (*order.Order, error) {
				cmd, err := commands.NewStartDeliveryCommand(id)
				if err != nil {
					return nil, err
				}
				h := commands.NewStartDeliveryCommandHandler(factory)
				return h.Handle(ctx, cmd)
			},
			check: func(t *testing.T, o *order.Order) {
				assert.Equal(t, order.OutForDelivery, o.Status())
				assert.Nil(t, o.TourPosition())
			},
		},
		{
			name: "complete delivery",
			from: order.OutForDelivery,
			handle: func(ctx context.Context, factory commands.OrderUoWFactory, id kernel.UUID) (*order.Order, error) {
				cmd, err := commands.NewCompleteDeliveryCommand(id)
				if err != nil {
					return nil, err
				}
				h := commands.NewCompleteDeliveryCommandHandler(factory, clock.Fixed{At: now})
				return h.Handle(ctx, cmd)
			},
			check: func(t *testing.T, o *order.Order) {
				assert.Equal(t, order.Delivered, o.Status())
				assert.Equal(t, now, *o.ActualDeliveryAt())
			},
		},
		{
			name: "cancel",
			from: order.Ready,
			handle: func(ctx context.Context, factory commands.OrderUoWFactory, id kernel.UUID) (*order.Order, error) {
				cmd, err := commands.NewCancelOrderCommand(id)
				if err != nil {
					return nil, err
				}
				h := commands.NewCancelOrderCommandHandler(factory)
				return h.Handle(ctx, cmd)
			},
			check: func(t *testing.T, o *order.Order) {
				assert.Equal(t, order.Cancelled, o.Status())
				assert.Nil(t, o.TourPosition())
			},
		},
	}
}

func TestTransitionHandlers_Success(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			o := orderIn(t, tc.from)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			mock.InOrder(
				uow.On("Begin", ctx).Return(nil).Once(),
				uow.On("OrderRepository").Return(repo).Once(),
				repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once(),
				repo.On("Update", ctx, o).Return(nil).Once(),
				uow.On("Commit", ctx).Return(nil).Once(),
				uow.On("Rollback", ctx).Return(nil).Once(),
			)

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			updated, err := tc.handle(ctx, factory, o.ID())

			require.NoError(t, err)
			require.NotNil(t, updated)
			assert.True(t, o.ID().IsEqual(updated.ID()))
			tc.check(t, updated)
			repo.AssertExpectations(t)
			uow.AssertExpectations(t)
			factory.AssertExpectations(t)
		})
	}
}

func TestTransitionHandlers_NotFound(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			id := kernel.NewUUID()

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			updated, err := tc.handle(ctx, factory, id)

			require.ErrorIs(t, err, errs.ErrObjectNotFound)
			assert.Nil(t, updated)
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
			uow.AssertExpectations(t)
		})
	}
}

func TestTransitionHandlers_InvalidTransition(t *testing.T) {
	for _, tc := range transitionCases() {
		t.Run(tc.name, func(t *testing.T) {
			ctx := t.Context()
			o := orderIn(t, order.Delivered)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			factory := new(MockOrderUoWFactory)
			factory.On("Create").Return(uow).Once()

			updated, err := tc.handle(ctx, factory, o.ID())

			require.ErrorIs(t, err, errs.ErrInvalidTransition)
			assert.Nil(t, updated)
			assert.Equal(t, order.Delivered, o.Status())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}

func TestTransitionHandlers_UpdateError(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(errors.New("update error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewCancelOrderCommand(o.ID())
	h := commands.NewCancelOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "update error")
	assert.Nil(t, updated)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestTransitionHandlers_BeginError(t *testing.T) {
	ctx := t.Context()

	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(errors.New("begin error")).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewStartDeliveryCommand(kernel.NewUUID())
	h := commands.NewStartDeliveryCommandHandler(factory)
	_, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "OrderRepository")
}

func TestMarkOrderReadyCommandHandler_UsesCapturedAt(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Confirmed)
	capturedAt := now.Add(-5 * time.Minute)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, err := commands.NewMarkOrderReadyCommand(o.ID(), 55.7601, 37.6185, &capturedAt)
	require.NoError(t, err)

	h := commands.NewMarkOrderReadyCommandHandler(factory, clock.Fixed{At: now}, kitchen)
	updated, err := h.Handle(ctx, cmd)
	require.NoError(t, err)

	assert.Equal(t, capturedAt, updated.GPSFix().CapturedAt())
	assert.InDelta(t, kernel.DistanceKm(kitchen, kernel.MustNewGeoPoint(55.7601, 37.6185)), *o.DistanceKm(), 1e-9)
}

func TestTransitionHandlers_CommitError(t *testing.T) {
	ctx := t.Context()
	o := orderIn(t, order.Pending)

	repo := new(MockOrderRepository)
	uow := new(MockOrderUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("OrderRepository").Return(repo).Once()
	repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
	repo.On("Update", ctx, o).Return(nil).Once()
	uow.On("Commit", ctx).Return(errors.New("commit error")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	cmd, _ := commands.NewConfirmOrderCommand(o.ID(), nil)
	h := commands.NewConfirmOrderCommandHandler(factory)
	updated, err := h.Handle(ctx, cmd)

	require.EqualError(t, err, "commit error")
	assert.Nil(t, updated)
}

func TestMarkOrderReadyCommandHandler_ErrorPrecedence(t *testing.T) {
	newHandler := func(uow *MockOrderUoW) commands.MarkOrderReadyCommandHandler {
		factory := new(MockOrderUoWFactory)
		factory.On("Create").Return(uow).Once()
		return commands.NewMarkOrderReadyCommandHandler(factory, clock.Fixed{At: now}, kitchen)
	}

	t.Run("should report an unknown order before a zero fix", func(t *testing.T) {
		ctx := t.Context()
		id := kernel.NewUUID()

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("GetForUpdate", ctx, id).Return(nil, errs.NewObjectNotFoundError("order", id)).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewMarkOrderReadyCommand(id, 0, 0, nil)
		require.NoError(t, err)

		_, err = newHandler(uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrObjectNotFound)
		assert.NotErrorIs(t, err, order.ErrInvalidLocation)
	})

	t.Run("should report a wrong status before a zero fix", func(t *testing.T) {
		ctx := t.Context()
		o := orderIn(t, order.Pending)

		repo := new(MockOrderRepository)
		uow := new(MockOrderUoW)
		uow.On("Begin", ctx).Return(nil).Once()
		uow.On("OrderRepository").Return(repo).Once()
		repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
		uow.On("Rollback", ctx).Return(nil).Once()

		cmd, err := commands.NewMarkOrderReadyCommand(o.ID(), 0, 37.62, nil)
		require.NoError(t, err)

		_, err = newHandler(uow).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.NotErrorIs(t, err, order.ErrInvalidLocation)
		assert.Equal(t, order.Pending, o.Status())
	})

	tests := []struct {
		name     string
		lat, lng float64
	}{
		{name: "zero fix", lat: 0, lng: 0},
		{name: "zero latitude", lat: 0, lng: 37.62},
		{name: "latitude above range", lat: 90.5, lng: 37.62},
		{name: "longitude below range", lat: 55.76, lng: -181},
	}
	for _, tt := range tests {
		t.Run("should reject "+tt.name+" on a confirmed order", func(t *testing.T) {
			ctx := t.Context()
			o := orderIn(t, order.Confirmed)

			repo := new(MockOrderRepository)
			uow := new(MockOrderUoW)
			uow.On("Begin", ctx).Return(nil).Once()
			uow.On("OrderRepository").Return(repo).Once()
			repo.On("GetForUpdate", ctx, o.ID()).Return(o, nil).Once()
			uow.On("Rollback", ctx).Return(nil).Once()

			cmd, err := commands.NewMarkOrderReadyCommand(o.ID(), tt.lat, tt.lng, nil)
			require.NoError(t, err)

			_, err = newHandler(uow).Handle(ctx, cmd)

			require.ErrorIs(t, err, order.ErrInvalidLocation)
			assert.Equal(t, order.Confirmed, o.Status())
			assert.Nil(t, o.GPSFix())
			repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
			uow.AssertNotCalled(t, "Commit", mock.Anything)
		})
	}
}
