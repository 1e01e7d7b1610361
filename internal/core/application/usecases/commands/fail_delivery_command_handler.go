package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// FailDeliveryCommandHandler marks a delivery as failed from any
// non-terminal state and refreshes the agent's statistics.
type FailDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewFailDeliveryCommandHandler creates a handler for delivery failure reports.
func NewFailDeliveryCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) FailDeliveryCommandHandler {
	return FailDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the failure command.
// Returns delivery.ErrInvalidStatusTransition when the delivery already
// reached a terminal state, and ports.ErrDeliveryStateConflict when a
// concurrent request changed the delivery first.
func (h FailDeliveryCommandHandler) Handle(ctx context.Context, command FailDeliveryCommand) error {
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

	deliveryRepo := uow.DeliveryRepository()

	deliveryEntity, err := deliveryRepo.Get(ctx, command.DeliveryID())
	if err != nil {
		return err
	}

	observedStatus := deliveryEntity.Status()
	if err = deliveryEntity.Fail(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity, observedStatus); err != nil {
		return err
	}

	if err = recomputeAgentStats(ctx, uow, deliveryEntity.AgentID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishDeliveryStatusChanged(ctx, statusChangedEvent(deliveryEntity, time.Now().UTC()))

	return nil
}
