package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// UpdateLocationCommandHandler records an agent position report.
// Updates the agent's current location and appends a tracking point to each
// of the agent's in-progress deliveries, all in one transaction.
//
// Example:
//
//	handler := NewUpdateLocationCommandHandler(uowFactory)
//	point, _ := kernel.NewGeoPoint(37.7749, -122.4194)
//	cmd, _ := NewUpdateLocationCommand(agentID, point)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("location update failed: %w", err)
//	}
type UpdateLocationCommandHandler struct {
	uowFactory UoWFactory
}

// NewUpdateLocationCommandHandler creates a handler for agent position reports.
func NewUpdateLocationCommandHandler(uowFactory UoWFactory) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the position report.
// Moves the agent marker, then fans the report out to the location log of
// every active delivery assigned to the agent.
func (h UpdateLocationCommandHandler) Handle(ctx context.Context, command UpdateLocationCommand) error {
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
	deliveryRepo := uow.DeliveryRepository()

	agentEntity, err := agentRepo.Get(ctx, command.AgentID())
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	if err = agentEntity.UpdateLocation(command.Point(), now); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, agentEntity); err != nil {
		return err
	}

	activeDeliveries, err := deliveryRepo.GetActiveForAgent(ctx, command.AgentID())
	if err != nil {
		return err
	}

	for _, activeDelivery := range activeDeliveries {
		point, err := delivery.NewTrackingPoint(kernel.NewUUID(), activeDelivery.ID(), command.Point(), now)
		if err != nil {
			return err
		}

		if err = deliveryRepo.AddTrackingPoint(ctx, point); err != nil {
			return err
		}
	}

	return uow.Commit(ctx)
}
