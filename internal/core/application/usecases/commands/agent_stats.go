package commands

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
)

// recomputeAgentStats refreshes the agent's performance counters from the
// agent's full delivery history and ratings. The agent row is locked for
// the remainder of the transaction so concurrent terminal events for the
// same agent serialize. Must run inside an open unit of work.
func recomputeAgentStats(ctx context.Context, uow UoW, agentID kernel.UUID) error {
	agentRepo := uow.AgentRepository()
	deliveryRepo := uow.DeliveryRepository()

	agentEntity, err := agentRepo.GetForUpdate(ctx, agentID)
	if err != nil {
		return err
	}

	deliveries, err := deliveryRepo.GetAllForAgent(ctx, agentID)
	if err != nil {
		return err
	}

	ratings, err := deliveryRepo.GetRatingsForAgent(ctx, agentID)
	if err != nil {
		return err
	}

	stats := services.NewStatsAggregator().Aggregate(deliveries, ratings)
	if err = agentEntity.ApplyStats(stats); err != nil {
		return err
	}

	return agentRepo.Update(ctx, agentEntity)
}
