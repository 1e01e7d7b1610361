package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrDeliveryNotCompleted is returned when rating a delivery that has not
// been delivered yet.
var ErrDeliveryNotCompleted = errors.New("only completed deliveries can be rated")

// RateDeliveryCommandHandler records the customer's rating for a completed
// delivery and refreshes the agent's average rating in the same
// transaction.
type RateDeliveryCommandHandler struct {
	uowFactory UoWFactory
}

// NewRateDeliveryCommandHandler creates a handler for delivery ratings.
func NewRateDeliveryCommandHandler(uowFactory UoWFactory) RateDeliveryCommandHandler {
	return RateDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the rating command.
// Returns ErrDeliveryNotCompleted when the delivery is not in Delivered.
// A second rating for the same delivery fails on the persistence
// uniqueness constraint.
func (h RateDeliveryCommandHandler) Handle(ctx context.Context, command RateDeliveryCommand) error {
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

	if deliveryEntity.Status() != delivery.StatusDelivered {
		return ErrDeliveryNotCompleted
	}

	rating, err := delivery.NewRating(
		kernel.NewUUID(), deliveryEntity.ID(), command.Value(), command.Feedback(),
	)
	if err != nil {
		return err
	}

	if err = deliveryRepo.AddRating(ctx, rating); err != nil {
		return err
	}

	if err = recomputeAgentStats(ctx, uow, deliveryEntity.AgentID()); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
