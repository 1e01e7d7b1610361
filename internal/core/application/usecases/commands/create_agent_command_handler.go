package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/ports"
)

// agentIDAttempts bounds how many times registration retries on a public
// agent ID collision before giving up.
const agentIDAttempts = 5

// ErrAgentIDExhausted is returned when registration could not find a free
// public agent ID within the retry budget.
var ErrAgentIDExhausted = errors.New("could not generate a unique agent ID")

// CreateAgentCommandHandler handles the business logic for agent registration.
// Generates the public agent ID and persists the new agent aggregate, retrying
// on ID collisions since the generator is not collision-free.
//
// Example:
//
//	handler := NewCreateAgentCommandHandler(uowFactory)
//	cmd, _ := NewCreateAgentCommand(userID, storeID, "+14155550123", agent.VehicleCar)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("agent registration failed: %w", err)
//	}
type CreateAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

// NewCreateAgentCommandHandler creates a handler for agent registration.
// Requires an AgentUoWFactory for transactional persistence operations.
func NewCreateAgentCommandHandler(uowFactory AgentUoWFactory) CreateAgentCommandHandler {
	return CreateAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the agent registration command.
// Creates a new agent aggregate with a generated public ID and persists it
// within a transaction. Regenerates the public ID on a collision, up to
// agentIDAttempts times.
func (h CreateAgentCommandHandler) Handle(ctx context.Context, command CreateAgentCommand) error {
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

	for attempt := 0; attempt < agentIDAttempts; attempt++ {
		agentEntity, err := agent.NewAgent(
			command.AgentID(),
			agent.GenerateAgentID(),
			command.UserID(),
			command.StoreID(),
			command.PhoneNumber(),
			command.VehicleType(),
		)
		if err != nil {
			return err
		}

		err = agentRepo.Add(ctx, agentEntity)
		if errors.Is(err, ports.ErrAgentIDTaken) {
			continue
		}
		if err != nil {
			return err
		}

		return uow.Commit(ctx)
	}

	return ErrAgentIDExhausted
}
