package commands

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrCancelStaleDeliveriesCommandIsNotConstructed = errors.New(
		"CancelStaleDeliveriesCommand must be created via NewCancelStaleDeliveriesCommand constructor",
	)
	ErrStaleTimeoutIsInvalid = errors.New("stale timeout must be greater than 0")
)

// CancelStaleDeliveriesCommand represents a sweep for deliveries that were
// assigned but never accepted within the timeout. Each one is cancelled
// with a system issue record.
type CancelStaleDeliveriesCommand struct { //nolint:recvcheck //using for validation
	olderThan time.Duration

	guard guard.ConstructorGuard
}

// NewCancelStaleDeliveriesCommand creates a sweep command for deliveries
// stuck in Assigned longer than olderThan.
func NewCancelStaleDeliveriesCommand(olderThan time.Duration) (CancelStaleDeliveriesCommand, error) {
	command := CancelStaleDeliveriesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setOlderThan(olderThan); err != nil {
		return CancelStaleDeliveriesCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCancelStaleDeliveriesCommandIsNotConstructed if validation fails.
func (c CancelStaleDeliveriesCommand) Validate() error {
	return c.guard.Validate(ErrCancelStaleDeliveriesCommandIsNotConstructed)
}

// OlderThan returns how long a delivery may wait for acceptance before the
// sweep cancels it.
func (c CancelStaleDeliveriesCommand) OlderThan() time.Duration {
	return c.olderThan
}

func (c *CancelStaleDeliveriesCommand) setOlderThan(olderThan time.Duration) error {
	if olderThan <= 0 {
		return ErrStaleTimeoutIsInvalid
	}

	c.olderThan = olderThan
	return nil
}
