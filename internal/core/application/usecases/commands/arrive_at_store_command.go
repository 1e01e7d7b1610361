package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrArriveAtStoreCommandIsNotConstructed = errors.New(
	"ArriveAtStoreCommand must be created via NewArriveAtStoreCommand constructor",
)

// ArriveAtStoreCommand represents the agent reporting arrival at the
// pickup store.
type ArriveAtStoreCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewArriveAtStoreCommand creates a command marking the store arrival of
// the given delivery.
func NewArriveAtStoreCommand(deliveryID kernel.UUID) (ArriveAtStoreCommand, error) {
	command := ArriveAtStoreCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDeliveryID(deliveryID); err != nil {
		return ArriveAtStoreCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrArriveAtStoreCommandIsNotConstructed if validation fails.
func (c ArriveAtStoreCommand) Validate() error {
	return c.guard.Validate(ErrArriveAtStoreCommandIsNotConstructed)
}

// DeliveryID returns the delivery whose agent arrived at the store.
func (c ArriveAtStoreCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *ArriveAtStoreCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}
