package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
)

// Fallback amounts used when the fee calculator cannot produce a result.
// A pricing problem must never block an assignment.
const (
	fallbackDeliveryFee = 40.00
	fallbackAgentPayout = 32.00
)

// ErrNoAgentsAvailable is returned when the assignment pool is empty after
// capacity filtering. Nothing is persisted in that case.
var ErrNoAgentsAvailable = errors.New("no agents available for assignment")

// AssignOrderCommandHandler orchestrates the order assignment process.
// Builds the pool of available agents, filters by concurrent-order capacity,
// picks one at random, prices the delivery and creates the delivery
// aggregate with its initial tracking point in one transaction.
//
// Example:
//
//	handler := NewAssignOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewAssignOrderCommand(orderID, nil, nil)
//	err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, ErrNoAgentsAvailable):
//	    log.Println("No agents on duty")
//	case err != nil:
//	    log.Printf("Assignment failed: %v", err)
//	default:
//	    log.Println("Order assigned")
//	}
type AssignOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewAssignOrderCommandHandler creates a handler for order assignment.
// Requires a UoWFactory for coordinating delivery, agent and settings
// repositories, and an EventPublisher for the post-commit event.
func NewAssignOrderCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) AssignOrderCommandHandler {
	return AssignOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the assignment command.
// Loads the pricing settings, selects an eligible agent, computes the fee
// (falling back to fixed amounts on any pricing error) and persists the new
// delivery together with its first tracking point. Publishes a status
// event after the transaction commits.
// Returns ErrNoAgentsAvailable when no agent can take the order.
func (h AssignOrderCommandHandler) Handle(ctx context.Context, command AssignOrderCommand) error {
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
	settingsRepo := uow.SettingsRepository()

	cfg, err := settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return err
	}

	candidates, err := agentRepo.GetAllAvailable(ctx)
	if err != nil {
		return err
	}

	eligible := make([]*agent.Agent, 0, len(candidates))
	for _, candidate := range candidates {
		activeCount, err := deliveryRepo.CountNonTerminalForAgent(ctx, candidate.ID())
		if err != nil {
			return err
		}
		if candidate.CanAcceptOrders(activeCount) {
			eligible = append(eligible, candidate)
		}
	}

	assignedAgent, err := services.NewAgentDispatcher().Dispatch(eligible)
	if errors.Is(err, services.ErrNoEligibleAgents) {
		return ErrNoAgentsAvailable
	}
	if err != nil {
		return err
	}

	calculator := services.NewFeeCalculator()
	fee, feeErr := calculator.CalculateDeliveryFee(cfg, command.DistanceKm(), command.OrderValue())
	payout, payoutErr := calculator.CalculateAgentPayout(cfg, fee)
	if feeErr != nil || payoutErr != nil {
		fee = fallbackDeliveryFee
		payout = fallbackAgentPayout
	}

	now := time.Now().UTC()
	deliveryEntity, err := delivery.NewDelivery(
		kernel.NewUUID(), command.OrderID(), assignedAgent.ID(), fee, payout, now,
	)
	if err != nil {
		return err
	}

	if err = deliveryRepo.Add(ctx, deliveryEntity); err != nil {
		return err
	}

	if location := assignedAgent.Location(); location != nil {
		point, err := delivery.NewTrackingPoint(kernel.NewUUID(), deliveryEntity.ID(), *location, now)
		if err != nil {
			return err
		}

		if err = deliveryRepo.AddTrackingPoint(ctx, point); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	// Best effort: a publish failure never undoes the assignment.
	_ = h.publisher.PublishDeliveryStatusChanged(ctx, statusChangedEvent(deliveryEntity, now))

	return nil
}
