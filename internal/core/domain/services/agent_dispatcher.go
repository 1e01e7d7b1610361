package services

import (
	"errors"
	"math/rand/v2"

	"dispatch/internal/core/domain/model/agent"
)

// ErrNoEligibleAgents is returned when no agent in the candidate pool is
// available and active.
var ErrNoEligibleAgents = errors.New("no eligible agents found")

// AgentDispatcher selects the agent for a new delivery.
//
// Selection is uniformly random over agents that are available and active.
// There is no distance weighting, load balancing, or ZIP-coverage match at
// this layer; the source system behaves the same way and the behavior is
// preserved deliberately.
type AgentDispatcher struct{}

// NewAgentDispatcher creates an agent dispatcher.
func NewAgentDispatcher() AgentDispatcher {
	return AgentDispatcher{}
}

// Dispatch picks one eligible agent at random from the candidate pool.
// Returns ErrNoEligibleAgents when no candidate is available and active.
func (d AgentDispatcher) Dispatch(candidates []*agent.Agent) (*agent.Agent, error) {
	eligible := make([]*agent.Agent, 0, len(candidates))
	for _, a := range candidates {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.IsAvailable() && a.Status() == agent.StatusActive {
			eligible = append(eligible, a)
		}
	}

	if len(eligible) == 0 {
		return nil, ErrNoEligibleAgents
	}

	return eligible[rand.IntN(len(eligible))], nil //nolint:gosec // selection, not a secret
}
