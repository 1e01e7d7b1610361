package commands

import (
	"context"
)

// AddZipCoverageCommandHandler registers or reactivates a ZIP coverage
// record on the agent aggregate.
//
// Example:
//
//	handler := NewAddZipCoverageCommandHandler(uowFactory)
//	cmd, _ := NewAddZipCoverageCommand(agentID, "94107", nil)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to add coverage: %w", err)
//	}
type AddZipCoverageCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewAddZipCoverageCommandHandler creates a handler for ZIP coverage registration.
func NewAddZipCoverageCommandHandler(uowFactory AgentUoWFactory) AddZipCoverageCommandHandler {
	return AddZipCoverageCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the coverage command. The aggregate reactivates a
// deactivated record for the same ZIP and rejects an active duplicate with
// agent.ErrDuplicateZipCoverage.
func (h AddZipCoverageCommandHandler) Handle(ctx context.Context, command AddZipCoverageCommand) error {
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

	if err = agentEntity.AddZipCoverage(command.ZipCode(), command.FeeOverride()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, agentEntity); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
