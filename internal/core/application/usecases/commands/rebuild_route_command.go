package commands

import (
	"errors"

	"mealroute/internal/pkg/guard"
)

var ErrRebuildRouteCommandIsNotConstructed = errors.New(
	"RebuildRouteCommand must be created via NewRebuildRouteCommand constructor",
)

// RebuildRouteCommand requests a fresh tour over every Ready order.
//
// Example:
//
//	cmd := NewRebuildRouteCommand()
//	stops, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, ports.ErrRouteRebuildConflict) {
//	    // safe to retry
//	}
type RebuildRouteCommand struct {
	guard guard.ConstructorGuard
}

func NewRebuildRouteCommand() RebuildRouteCommand {
	return RebuildRouteCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *RebuildRouteCommand) Validate() error {
	return c.guard.Validate(ErrRebuildRouteCommandIsNotConstructed)
}
