package commands

import (
	"errors"
	"fmt"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/errs"
	"mealroute/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a new order in Pending status.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	price := int64(129900)
//	cmd, err := NewCreateOrderCommand(orderID, "weekly", &price)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory, clock.System{})
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	plan       string
	priceMinor *int64

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the order id and, when given, that the
// price is not negative.
func NewCreateOrderCommand(orderID kernel.UUID, plan string, priceMinor *int64) (CreateOrderCommand, error) {
	command := CreateOrderCommand{
		plan:  plan,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setPriceMinor(priceMinor),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c CreateOrderCommand) Plan() string {
	return c.plan
}

func (c CreateOrderCommand) PriceMinor() *int64 {
	return c.priceMinor
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setPriceMinor(priceMinor *int64) error {
	if priceMinor == nil {
		return nil
	}
	if *priceMinor < 0 {
		return errs.NewValueIsInvalidErrorWithCause("priceMinor", fmt.Errorf("%d is negative", *priceMinor))
	}

	price := *priceMinor
	c.priceMinor = &price
	return nil
}
