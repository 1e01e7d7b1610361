package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New(
	"UpdateLocationCommand must be created via NewUpdateLocationCommand constructor",
)

// UpdateLocationCommand represents a position report from an agent's device.
// Besides moving the agent's marker, the report is appended to the location
// log of every delivery the agent currently has in progress.
type UpdateLocationCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	point   kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewUpdateLocationCommand creates a command carrying the agent's reported
// coordinates.
func NewUpdateLocationCommand(agentID kernel.UUID, point kernel.GeoPoint) (UpdateLocationCommand, error) {
	command := UpdateLocationCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setPoint(point),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrUpdateLocationCommandIsNotConstructed if validation fails.
func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

// AgentID returns the reporting agent.
func (c UpdateLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

// Point returns the reported coordinates.
func (c UpdateLocationCommand) Point() kernel.GeoPoint {
	return c.point
}

func (c *UpdateLocationCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *UpdateLocationCommand) setPoint(point kernel.GeoPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	c.point = point
	return nil
}
