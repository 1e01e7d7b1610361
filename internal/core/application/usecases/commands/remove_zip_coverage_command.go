package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrRemoveZipCoverageCommandIsNotConstructed = errors.New(
	"RemoveZipCoverageCommand must be created via NewRemoveZipCoverageCommand constructor",
)

// RemoveZipCoverageCommand represents a request to stop serving a ZIP code.
// Coverage records are soft-deactivated, never deleted, so delivery history
// for the area stays attributable.
type RemoveZipCoverageCommand struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID
	zipCode string

	guard guard.ConstructorGuard
}

// NewRemoveZipCoverageCommand creates a command to deactivate the agent's
// coverage of the given ZIP code.
func NewRemoveZipCoverageCommand(agentID kernel.UUID, zipCode string) (RemoveZipCoverageCommand, error) {
	command := RemoveZipCoverageCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setZipCode(zipCode),
	); err != nil {
		return RemoveZipCoverageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRemoveZipCoverageCommandIsNotConstructed if validation fails.
func (c RemoveZipCoverageCommand) Validate() error {
	return c.guard.Validate(ErrRemoveZipCoverageCommandIsNotConstructed)
}

// AgentID returns the agent losing the coverage.
func (c RemoveZipCoverageCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ZipCode returns the ZIP code to deactivate.
func (c RemoveZipCoverageCommand) ZipCode() string {
	return c.zipCode
}

func (c *RemoveZipCoverageCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *RemoveZipCoverageCommand) setZipCode(zipCode string) error {
	if zipCode == "" {
		return ErrZipCodeIsRequired
	}

	c.zipCode = zipCode
	return nil
}
