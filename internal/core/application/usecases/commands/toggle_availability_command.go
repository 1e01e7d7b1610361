package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrToggleAvailabilityCommandIsNotConstructed = errors.New(
	"ToggleAvailabilityCommand must be created via NewToggleAvailabilityCommand constructor",
)

// ToggleAvailabilityCommand represents an agent's request to go on or off
// duty. Toggling requires at least one active ZIP coverage in either
// direction, and keeps the agent's status in sync with availability.
type ToggleAvailabilityCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewToggleAvailabilityCommand creates a command to flip the agent's
// availability flag.
func NewToggleAvailabilityCommand(agentID kernel.UUID) (ToggleAvailabilityCommand, error) {
	command := ToggleAvailabilityCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setAgentID(agentID); err != nil {
		return ToggleAvailabilityCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrToggleAvailabilityCommandIsNotConstructed if validation fails.
func (c ToggleAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrToggleAvailabilityCommandIsNotConstructed)
}

// AgentID returns the agent whose availability is toggled.
func (c ToggleAvailabilityCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c *ToggleAvailabilityCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}
