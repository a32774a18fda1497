package commands

import (
	"context"

	"mealroute/internal/core/domain/model/order"
)

// CancelOrderCommandHandler cancels an order and removes it from the tour.
// The remaining positions are not renumbered until the next rebuild.
type CancelOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory OrderUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle fails with *errs.InvalidTransitionError when the order is already
// Delivered or Cancelled.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Cancel()
	})
}
