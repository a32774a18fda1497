package commands

import (
	"context"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
)

// applyTransition runs one lifecycle transition in its own transaction. The
// order row stays locked from read to commit, so two transitions on the same
// order never both see the same starting status. The returned order is the
// state that was committed.
func applyTransition(
	ctx context.Context,
	uowFactory OrderUoWFactory,
	orderID kernel.UUID,
	apply func(o *order.Order) error,
) (*order.Order, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if err = apply(o); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
