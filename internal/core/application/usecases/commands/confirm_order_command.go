package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var ErrConfirmOrderCommandIsNotConstructed = errors.New(
	"ConfirmOrderCommand must be created via NewConfirmOrderCommand constructor",
)

// ConfirmOrderCommand records the external payment/confirmation of an order.
// estimatedDeliveryAt is the delivery slot promised at confirmation, if any.
type ConfirmOrderCommand struct { //nolint:recvcheck //using for validation
	orderID             kernel.UUID
	estimatedDeliveryAt *time.Time

	guard guard.ConstructorGuard
}

func NewConfirmOrderCommand(orderID kernel.UUID, estimatedDeliveryAt *time.Time) (ConfirmOrderCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ConfirmOrderCommand{}, err
	}

	command := ConfirmOrderCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}
	if estimatedDeliveryAt != nil {
		at := *estimatedDeliveryAt
		command.estimatedDeliveryAt = &at
	}

	return command, nil
}

func (c ConfirmOrderCommand) Validate() error {
	return c.guard.Validate(ErrConfirmOrderCommandIsNotConstructed)
}

func (c ConfirmOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c ConfirmOrderCommand) EstimatedDeliveryAt() *time.Time {
	return c.estimatedDeliveryAt
}
