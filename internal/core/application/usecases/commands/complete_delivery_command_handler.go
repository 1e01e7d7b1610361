package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// CompleteDeliveryCommandHandler finishes a delivery after checking the
// customer's delivery code, then refreshes the agent's performance
// counters and earnings in the same transaction.
//
// Example:
//
//	handler := NewCompleteDeliveryCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCompleteDeliveryCommand(deliveryID, "482913")
//	err := handler.Handle(ctx, cmd)
//	if errors.Is(err, delivery.ErrOTPMismatch) {
//	    log.Println("Wrong delivery code, ask the customer again")
//	}
type CompleteDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCompleteDeliveryCommandHandler creates a handler for delivery completion.
func NewCompleteDeliveryCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the completion command.
// Verifies the customer code on the aggregate, conditionally persists the
// Delivered status and recomputes the agent's statistics under a row lock.
// Returns delivery.ErrInvalidStatusTransition, delivery.ErrOTPMismatch or
// ports.ErrDeliveryStateConflict without mutating anything.
func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, command CompleteDeliveryCommand) error {
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
	now := time.Now().UTC()
	if err = deliveryEntity.Complete(command.OTP(), now); err != nil {
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

	_ = h.publisher.PublishDeliveryStatusChanged(ctx, statusChangedEvent(deliveryEntity, now))

	return nil
}
