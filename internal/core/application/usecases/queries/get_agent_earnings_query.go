package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAgentEarningsQueryIsNotConstructed = errors.New(
	"GetAgentEarningsQuery must be created via NewGetAgentEarningsQuery constructor",
)

// GetAgentEarningsQuery retrieves the agent's lifetime earnings with a
// per-delivery payout listing.
type GetAgentEarningsQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentEarningsQuery creates a query for the given agent's earnings.
func NewGetAgentEarningsQuery(agentID kernel.UUID) (GetAgentEarningsQuery, error) {
	query := GetAgentEarningsQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setAgentID(agentID); err != nil {
		return GetAgentEarningsQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentEarningsQueryIsNotConstructed if validation fails.
func (q GetAgentEarningsQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentEarningsQueryIsNotConstructed)
}

// AgentID returns the agent whose earnings are requested.
func (q GetAgentEarningsQuery) AgentID() kernel.UUID {
	return q.agentID
}

func (q *GetAgentEarningsQuery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	q.agentID = agentID
	return nil
}

// GetAgentEarningsQueryResponse lists what the agent earned, most recent
// delivery first.
type GetAgentEarningsQueryResponse struct {
	TotalEarnings  float64
	DeliveredCount int
	Items          []EarningItemResponse
}

// EarningItemResponse is the payout for one completed delivery.
type EarningItemResponse struct {
	DeliveryID  string
	AgentPayout float64
	DeliveredAt time.Time
}
