package commands

import (
	"context"
	"time"

	"dispatch/internal/core/ports"
)

// VerifyPickupCommandHandler moves a delivery from AtStore to PickedUp
// after checking the store pickup code. A wrong code leaves the delivery
// untouched so the agent can retry.
type VerifyPickupCommandHandler struct {
	uowFactory DeliveryUoWFactory
	publisher  ports.EventPublisher
}

// NewVerifyPickupCommandHandler creates a handler for pickup verification.
func NewVerifyPickupCommandHandler(
	uowFactory DeliveryUoWFactory, publisher ports.EventPublisher,
) VerifyPickupCommandHandler {
	return VerifyPickupCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the pickup verification command.
// Returns delivery.ErrInvalidStatusTransition when the delivery is not at
// the store, delivery.ErrOTPMismatch when the code is wrong, and
// ports.ErrDeliveryStateConflict when a concurrent request changed the
// delivery first. None of these mutate the delivery.
func (h VerifyPickupCommandHandler) Handle(ctx context.Context, command VerifyPickupCommand) error {
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
	if err = deliveryEntity.Pickup(command.OTP(), now); err != nil {
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
