package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// StartTransitCommandHandler moves a delivery from PickedUp to InTransit.
type StartTransitCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewStartTransitCommandHandler creates a handler for transit start reports.
func NewStartTransitCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) StartTransitCommandHandler {
	return StartTransitCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the transit start command.
// Returns delivery.ErrInvalidStatusTransition when the delivery has not
// been picked up, and ports.ErrDeliveryStateConflict when a concurrent
// request changed the delivery first.
func (h StartTransitCommandHandler) Handle(ctx context.Context, command StartTransitCommand) error {
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
	if err = deliveryEntity.MarkInTransit(); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity, observedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishDeliveryStatusChanged(ctx, statusChangedEvent(deliveryEntity, time.Now().UTC()))

	return nil
}
