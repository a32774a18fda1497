package commands

import (
	"context"

	"mealroute/internal/core/domain/model/order"
)

// ConfirmOrderCommandHandler moves a Pending order to Confirmed.
type ConfirmOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewConfirmOrderCommandHandler(uowFactory OrderUoWFactory) ConfirmOrderCommandHandler {
	return ConfirmOrderCommandHandler{uowFactory: uowFactory}
}

// Handle fails with *errs.ObjectNotFoundError for an unknown order and
// *errs.InvalidTransitionError unless the order is Pending.
func (h *ConfirmOrderCommandHandler) Handle(ctx context.Context, cmd ConfirmOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.Confirm(cmd.EstimatedDeliveryAt())
	})
}
