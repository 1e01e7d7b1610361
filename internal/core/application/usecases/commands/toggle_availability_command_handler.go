package commands

import (
	"context"
)

// ToggleAvailabilityCommandHandler flips an agent's on-duty flag.
// The coverage requirement and status synchronization live on the aggregate;
// the handler only manages the transaction.
//
// Example:
//
//	handler := NewToggleAvailabilityCommandHandler(uowFactory)
//	cmd, _ := NewToggleAvailabilityCommand(agentID)
//	available, err := handler.Handle(ctx, cmd)
//	if errors.Is(err, agent.ErrNoActiveZipCoverage) {
//	    log.Println("Agent has no active ZIP coverage")
//	}
type ToggleAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewToggleAvailabilityCommandHandler creates a handler for availability toggling.
func NewToggleAvailabilityCommandHandler(uowFactory AgentUoWFactory) ToggleAvailabilityCommandHandler {
	return ToggleAvailabilityCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the toggle command and returns the resulting availability.
// Loads the agent with a row lock so concurrent toggles serialize, applies
// the domain rule and persists the updated aggregate.
// Returns agent.ErrNoActiveZipCoverage when the agent has no active coverage;
// in that case nothing is persisted.
func (h ToggleAvailabilityCommandHandler) Handle(
	ctx context.Context, command ToggleAvailabilityCommand,
) (bool, error) {
	if err := command.Validate(); err != nil {
		return false, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	agentRepo := uow.AgentRepository()

	agentEntity, err := agentRepo.GetForUpdate(ctx, command.AgentID())
	if err != nil {
		return false, err
	}

	available, err := agentEntity.ToggleAvailability()
	if err != nil {
		return false, err
	}

	if err = agentRepo.Update(ctx, agentEntity); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return available, nil
}
