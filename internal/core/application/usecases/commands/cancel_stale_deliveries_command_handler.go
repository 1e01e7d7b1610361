package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// staleCancellationNote is recorded on the issue filed for each
// automatically cancelled delivery.
const staleCancellationNote = "delivery cancelled automatically: not accepted in time"

// CancelStaleDeliveriesCommandHandler sweeps deliveries stuck in Assigned
// beyond the timeout and cancels them one transaction at a time, so a
// single conflicting delivery never blocks the rest of the sweep.
type CancelStaleDeliveriesCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCancelStaleDeliveriesCommandHandler creates a handler for the stale
// delivery sweep.
func NewCancelStaleDeliveriesCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) CancelStaleDeliveriesCommandHandler {
	return CancelStaleDeliveriesCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the sweep command and returns how many deliveries were
// cancelled. A delivery that was accepted between listing and cancelling
// loses the conditional update, is skipped and left untouched.
func (h CancelStaleDeliveriesCommandHandler) Handle(
	ctx context.Context, command CancelStaleDeliveriesCommand,
) (int, error) {
	if err := command.Validate(); err != nil {
		return 0, err
	}

	cutoff := time.Now().UTC().Add(-command.OlderThan())

	stale, err := h.listStale(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, staleDelivery := range stale {
		ok, cancelErr := h.cancelOne(ctx, staleDelivery.ID())
		if cancelErr != nil {
			return cancelled, cancelErr
		}
		if ok {
			cancelled++
		}
	}

	return cancelled, nil
}

func (h CancelStaleDeliveriesCommandHandler) listStale(
	ctx context.Context, cutoff time.Time,
) ([]*delivery.Delivery, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	return uow.DeliveryRepository().GetStaleAssigned(ctx, cutoff)
}

func (h CancelStaleDeliveriesCommandHandler) cancelOne(
	ctx context.Context, deliveryID kernel.UUID,
) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()

	deliveryEntity, err := deliveryRepo.Get(ctx, deliveryID)
	if err != nil {
		return false, err
	}

	if deliveryEntity.Status() != delivery.StatusAssigned {
		return false, nil
	}

	if err = deliveryEntity.Cancel(); err != nil {
		return false, err
	}

	err = deliveryRepo.Update(ctx, deliveryEntity, delivery.StatusAssigned)
	if errors.Is(err, ports.ErrDeliveryStateConflict) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	issue, err := delivery.NewIssue(
		kernel.NewUUID(), deliveryEntity.ID(), delivery.IssueOther, staleCancellationNote,
	)
	if err != nil {
		return false, err
	}

	if err = deliveryRepo.AddIssue(ctx, issue); err != nil {
		return false, err
	}

	if err = recomputeAgentStats(ctx, uow, deliveryEntity.AgentID()); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	_ = h.publisher.PublishDeliveryStatusChanged(ctx, statusChangedEvent(deliveryEntity, time.Now().UTC()))

	return true, nil
}
