package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrReportIssueCommandIsNotConstructed = errors.New(
	"ReportIssueCommand must be created via NewReportIssueCommand constructor",
)

// ReportIssueCommand represents the agent flagging a problem with a
// delivery, such as traffic or an unreachable customer. Issues never block
// the delivery's state machine.
type ReportIssueCommand struct { //nolint:recvcheck //using for validation
	deliveryID  kernel.UUID
	issueType   delivery.IssueType
	description string

	guard guard.ConstructorGuard
}

// NewReportIssueCommand creates a command to file an issue against the
// given delivery.
func NewReportIssueCommand(
	deliveryID kernel.UUID, issueType delivery.IssueType, description string,
) (ReportIssueCommand, error) {
	command := ReportIssueCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setIssueType(issueType),
		command.setDescription(description),
	); err != nil {
		return ReportIssueCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrReportIssueCommandIsNotConstructed if validation fails.
func (c ReportIssueCommand) Validate() error {
	return c.guard.Validate(ErrReportIssueCommandIsNotConstructed)
}

// DeliveryID returns the delivery the issue concerns.
func (c ReportIssueCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// IssueType returns the problem classification.
func (c ReportIssueCommand) IssueType() delivery.IssueType {
	return c.issueType
}

// Description returns the reporter's description of the problem.
func (c ReportIssueCommand) Description() string {
	return c.description
}

func (c *ReportIssueCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *ReportIssueCommand) setIssueType(issueType delivery.IssueType) error {
	if err := issueType.Validate(); err != nil {
		return err
	}

	c.issueType = issueType
	return nil
}

func (c *ReportIssueCommand) setDescription(description string) error {
	if description == "" {
		return delivery.ErrIssueDescriptionIsRequired
	}

	c.description = description
	return nil
}
