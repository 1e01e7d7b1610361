package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrStartTransitCommandIsNotConstructed = errors.New(
	"StartTransitCommand must be created via NewStartTransitCommand constructor",
)

// StartTransitCommand represents the agent leaving the store towards the
// customer.
type StartTransitCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewStartTransitCommand creates a command marking the given delivery as
// in transit.
func NewStartTransitCommand(deliveryID kernel.UUID) (StartTransitCommand, error) {
	command := StartTransitCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDeliveryID(deliveryID); err != nil {
		return StartTransitCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrStartTransitCommandIsNotConstructed if validation fails.
func (c StartTransitCommand) Validate() error {
	return c.guard.Validate(ErrStartTransitCommandIsNotConstructed)
}

// DeliveryID returns the delivery entering transit.
func (c StartTransitCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *StartTransitCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
