package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrGetAgentDashboardQueryIsNotConstructed = errors.New(
	"GetAgentDashboardQuery must be created via NewGetAgentDashboardQuery constructor",
)

// GetAgentDashboardQuery retrieves the agent's home-screen snapshot:
// availability, in-progress deliveries and today's performance.
//
// Example:
//
//	query, _ := NewGetAgentDashboardQuery(agentID)
//	handler := NewGetAgentDashboardQueryHandler(db)
//
//	dashboard, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to load dashboard: %w", err)
//	}
//	fmt.Printf("%d active deliveries\n", len(dashboard.ActiveDeliveries))
type GetAgentDashboardQuery struct { //nolint:recvcheck //using for validation
	agentID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetAgentDashboardQuery creates a query for the given agent's dashboard.
func NewGetAgentDashboardQuery(agentID kernel.UUID) (GetAgentDashboardQuery, error) {
	query := GetAgentDashboardQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setAgentID(agentID); err != nil {
		return GetAgentDashboardQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetAgentDashboardQueryIsNotConstructed if validation fails.
func (q GetAgentDashboardQuery) Validate() error {
	return q.guard.Validate(ErrGetAgentDashboardQueryIsNotConstructed)
}

// AgentID returns the agent whose dashboard is requested.
func (q GetAgentDashboardQuery) AgentID() kernel.UUID {
	return q.agentID
}

func (q *GetAgentDashboardQuery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}

	q.agentID = agentID
	return nil
}

// GetAgentDashboardQueryResponse is the agent's home-screen snapshot.
type GetAgentDashboardQueryResponse struct {
	AgentID          string
	Status           string
	IsAvailable      bool
	ActiveDeliveries []ActiveDeliveryResponse
	TodayDeliveries  int
	TodayEarnings    float64
	TotalDeliveries  int
	SuccessRate      float64
	AverageRating    float64
}

// ActiveDeliveryResponse is one in-progress delivery on the dashboard.
type ActiveDeliveryResponse struct {
	DeliveryID string
	OrderID    kernel.UUID
	Status     string
	AssignedAt time.Time
}
