package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// CancelDeliveryCommandHandler cancels a delivery from any non-terminal
// state. Files an issue record carrying the reason and refreshes the
// agent's statistics, all in one transaction.
type CancelDeliveryCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCancelDeliveryCommandHandler creates a handler for delivery cancellation.
func NewCancelDeliveryCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the cancellation command.
// Returns delivery.ErrInvalidStatusTransition when the delivery already
// reached a terminal state, and ports.ErrDeliveryStateConflict when a
// concurrent request changed the delivery first.
func (h CancelDeliveryCommandHandler) Handle(ctx context.Context, command CancelDeliveryCommand) error {
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
	if err = deliveryEntity.Cancel(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity, observedStatus); err != nil {
		return err
	}

	issue, err := delivery.NewIssue(
		kernel.NewUUID(), deliveryEntity.ID(), delivery.IssueOther, command.Reason(),
	)
	if err != nil {
		return err
	}

	if err = deliveryRepo.AddIssue(ctx, issue); err != nil {
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
