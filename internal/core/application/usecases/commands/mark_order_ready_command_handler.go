package commands

import (
	"context"
	"fmt"

	"mealroute/internal/core/domain/model/kernel"
	"mealroute/internal/core/domain/model/order"
	"mealroute/internal/core/ports"
)

// MarkOrderReadyCommandHandler stores the customer fix and its distance from
// the kitchen. It never touches the tour: positions are assigned only by an
// explicit route rebuild.
type MarkOrderReadyCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      ports.Clock
	kitchen    kernel.GeoPoint
}

func NewMarkOrderReadyCommandHandler(
	uowFactory OrderUoWFactory,
	clock ports.Clock,
	kitchen kernel.GeoPoint,
) MarkOrderReadyCommandHandler {
	return MarkOrderReadyCommandHandler{
		uowFactory: uowFactory,
		clock:      clock,
		kitchen:    kitchen,
	}
}

// Handle checks, in order: the order exists (*errs.ObjectNotFoundError), it is
// Confirmed (*errs.InvalidTransitionError), and the fix is usable
// (order.ErrInvalidLocation).
func (h *MarkOrderReadyCommandHandler) Handle(ctx context.Context, cmd MarkOrderReadyCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	capturedAt := h.clock.Now()
	if at := cmd.CapturedAt(); at != nil {
		capturedAt = *at
	}

	return applyTransition(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		if _, err := o.Status().Ready(); err != nil {
			return err
		}

		point, err := order.NewDeliveryPoint(cmd.Lat(), cmd.Lng())
		if err != nil {
			return err
		}

		fix, err := kernel.NewGPSFix(point, capturedAt)
		if err != nil {
			return fmt.Errorf("%w: %w", order.ErrInvalidLocation, err)
		}

		return o.MarkReady(fix, h.kitchen)
	})
}
