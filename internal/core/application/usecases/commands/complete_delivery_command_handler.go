package commands

import (
	"context"

	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
)

// CompleteDeliveryCommandHandler moves an OutForDelivery order to Delivered
// and stamps the delivery time from the clock.
type CompleteDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
}

func NewCompleteDeliveryCommandHandler(uowFactory OrderUoWFactory, clock ports.Clock) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
	}
}

func (h *CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.CompleteDelivery(h.clock.Now())
	})
}
