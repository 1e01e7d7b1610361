package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// AcceptDeliveryCommandHandler moves a delivery from Assigned to Accepted.
// The write is conditional on the status observed at load time, so two
// concurrent transitions on the same delivery cannot both win.
type AcceptDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery acceptance.
func NewAcceptDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the acceptance command.
// Returns delivery.ErrInvalidStatusTransition when the delivery is not in
// Assigned, and ports.ErrDeliveryStateConflict when a concurrent request
// changed the delivery first.
func (h AcceptDeliveryCommandHandler) Handle(ctx context.Context, command AcceptDeliveryCommand) error {
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
	if err = deliveryEntity.Accept(now); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, deliveryEntity, observedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	_ = h.publisher.PublishDeliveryStatusChanged(ctx, statusChangedEvent(deliveryEntity, now))

	return nil
}
