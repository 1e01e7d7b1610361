package ports

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrAgentIDTaken is returned by Add when the generated public agent ID is
// already in use. The generator is not collision-free, so callers
// regenerate and retry.
var ErrAgentIDTaken = errors.New("agent ID is already taken")

// AgentRepository persists DeliveryAgent aggregates.
type AgentRepository interface {
	// Add saves a new agent. Fails on a duplicate public agent ID; callers
	// regenerate the ID and retry.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update saves an existing agent, including its ZIP coverage records.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetForUpdate retrieves an agent and row-locks it for the remainder of
	// the transaction. Stats recomputation runs under this lock so
	// concurrent terminal events for the same agent serialize.
	GetForUpdate(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// GetAllAvailable retrieves the assignment pool: agents that are
	// available and active.
	GetAllAvailable(ctx context.Context) ([]*agent.Agent, error)
}
