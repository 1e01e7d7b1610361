package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// ArriveAtStoreCommandHandler moves a delivery from Accepted to AtStore.
type ArriveAtStoreCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewArriveAtStoreCommandHandler creates a handler for store arrival reports.
func NewArriveAtStoreCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) ArriveAtStoreCommandHandler {
	return ArriveAtStoreCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the arrival command.
// Returns delivery.ErrInvalidStatusTransition when the delivery is not in
// Accepted, and ports.ErrDeliveryStateConflict when a concurrent request
// changed the delivery first.
func (h ArriveAtStoreCommandHandler) Handle(ctx context.Context, command ArriveAtStoreCommand) error {
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
	if err = deliveryEntity.ArriveAtStore(now); err != nil {
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
