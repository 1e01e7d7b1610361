package commands

import (
	"context"
)

// RemoveZipCoverageCommandHandler soft-deactivates a ZIP coverage record on
// the agent aggregate.
type RemoveZipCoverageCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewRemoveZipCoverageCommandHandler creates a handler for ZIP coverage deactivation.
func NewRemoveZipCoverageCommandHandler(uowFactory AgentUoWFactory) RemoveZipCoverageCommandHandler {
	return RemoveZipCoverageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the deactivation command. Returns errs.ErrObjectNotFound
// (wrapped) when the agent has no coverage record for the ZIP code.
func (h RemoveZipCoverageCommandHandler) Handle(ctx context.Context, command RemoveZipCoverageCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	agentEntity, err := agentRepo.GetForUpdate(ctx, command.AgentID())
	if err != nil {
		return err
	}

	if err = agentEntity.DeactivateZipCoverage(command.ZipCode()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, agentEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
