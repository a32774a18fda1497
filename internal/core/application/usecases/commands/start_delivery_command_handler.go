package commands

import (
	"context"

	"mealroute/internal/core/domain/model/order"
)

// StartDeliveryCommandHandler moves a Ready order to OutForDelivery. The
// order drops out of the tour and later rebuilds ignore it.
type StartDeliveryCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewStartDeliveryCommandHandler(uowFactory OrderUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h *StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	return applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.StartDelivery()
	})
}
