package commands

import (
	"errors"
	"time"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/pkg/guard"
)

var ErrMarkOrderReadyCommandIsNotConstructed = errors.New(
	"MarkOrderReadyCommand must be created via NewMarkOrderReadyCommand constructor",
)

// MarkOrderReadyCommand carries the customer's "I'm ready" event with the GPS
// fix taken on their device.
//
// Example:
//
//	cmd, err := NewMarkOrderReadyCommand(orderID, 55.7601, 37.6185, nil)
//	if err != nil {
//	    return err
//	}
type MarkOrderReadyCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	lat        float64
	lng        float64
	capturedAt *time.Time

	guard guard.ConstructorGuard
}

// NewMarkOrderReadyCommand validates the id only. The coordinates are checked
// by the handler once the order is loaded, so an unknown order or a wrong
// status is reported ahead of a bad fix. A nil capturedAt means the fix is as
// fresh as the request.
func NewMarkOrderReadyCommand(
	orderID kernel.UUID,
	lat, lng float64,
	capturedAt *time.Time,
) (MarkOrderReadyCommand, error) {
	if err := orderID.Validate(); err != nil {
		return MarkOrderReadyCommand{}, err
	}

	command := MarkOrderReadyCommand{
		orderID: orderID,
		lat:     lat,
		lng:     lng,
		guard:   guard.NewConstructorGuard(),
	}
	if capturedAt != nil && !capturedAt.IsZero() {
		at := *capturedAt
		command.capturedAt = &at
	}

	return command, nil
}

func (c MarkOrderReadyCommand) Validate() error {
	return c.guard.Validate(ErrMarkOrderReadyCommandIsNotConstructed)
}

func (c MarkOrderReadyCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c MarkOrderReadyCommand) Lat() float64 {
	return c.lat
}

func (c MarkOrderReadyCommand) Lng() float64 {
	return c.lng
}

func (c MarkOrderReadyCommand) CapturedAt() *time.Time {
	return c.capturedAt
}
