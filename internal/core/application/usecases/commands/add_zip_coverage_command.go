package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrAddZipCoverageCommandIsNotConstructed = errors.New(
		"AddZipCoverageCommand must be created via NewAddZipCoverageCommand constructor",
	)
	ErrZipCodeIsRequired = errors.New("zip code is required")
)

// AddZipCoverageCommand represents a request to register a ZIP code the
// agent serves, with an optional per-ZIP fee override. Re-adding a
// previously deactivated ZIP reactivates it instead of duplicating.
type AddZipCoverageCommand struct { //nolint:recvcheck //using for validation
	agentID     kernel.UUID
	zipCode     string
	feeOverride *float64

	guard guard.ConstructorGuard
}

// NewAddZipCoverageCommand creates a command to add or reactivate a ZIP
// coverage record for the agent. feeOverride may be nil to use the
// configured fee rules.
func NewAddZipCoverageCommand(
	agentID kernel.UUID, zipCode string, feeOverride *float64,
) (AddZipCoverageCommand, error) {
	command := AddZipCoverageCommand{
		feeOverride: feeOverride,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setAgentID(agentID),
		command.setZipCode(zipCode),
	); err != nil {
		return AddZipCoverageCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAddZipCoverageCommandIsNotConstructed if validation fails.
func (c AddZipCoverageCommand) Validate() error {
	return c.guard.Validate(ErrAddZipCoverageCommandIsNotConstructed)
}

// AgentID returns the agent receiving the coverage.
func (c AddZipCoverageCommand) AgentID() kernel.UUID {
	return c.agentID
}

// ZipCode returns the ZIP code to cover.
func (c AddZipCoverageCommand) ZipCode() string {
	return c.zipCode
}

// FeeOverride returns the optional per-ZIP fee override, nil when unset.
func (c AddZipCoverageCommand) FeeOverride() *float64 {
	return c.feeOverride
}

func (c *AddZipCoverageCommand) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	c.agentID = agentID
	return nil
}

func (c *AddZipCoverageCommand) setZipCode(zipCode string) error {
	if zipCode == "" {
		return ErrZipCodeIsRequired
	}

	c.zipCode = zipCode
	return nil
}
