package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAssignOrderCommandIsNotConstructed = errors.New(
	"AssignOrderCommand must be created via NewAssignOrderCommand constructor",
)

// AssignOrderCommand represents a request to hand an order over to a
// delivery agent. Distance and order value are optional fee inputs; when
// absent the calculator falls back to the fixed fee.
//
// Example:
//
//	distance := 3.2
//	cmd, err := NewAssignOrderCommand(orderID, &distance, nil)
//	if err != nil {
//	    return fmt.Errorf("invalid assignment request: %w", err)
//	}
//
//	handler := NewAssignOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("assignment failed: %w", err)
//	}
type AssignOrderCommand struct { //nolint:recvcheck //using for validation
	orderID    kernel.UUID
	distanceKm *float64
	orderValue *float64

	guard guard.ConstructorGuard
}

// NewAssignOrderCommand creates a command to assign the given order.
// distanceKm and orderValue may be nil; when present they must be
// non-negative.
func NewAssignOrderCommand(
	orderID kernel.UUID, distanceKm *float64, orderValue *float64,
) (AssignOrderCommand, error) {
	command := AssignOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setOrderID(orderID),
		command.setDistanceKm(distanceKm),
		command.setOrderValue(orderValue),
	); err != nil {
		return AssignOrderCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrAssignOrderCommandIsNotConstructed if validation fails.
func (c AssignOrderCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrderCommandIsNotConstructed)
}

// OrderID returns the order being assigned.
func (c AssignOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DistanceKm returns the optional delivery distance in kilometers.
func (c AssignOrderCommand) DistanceKm() *float64 {
	return c.distanceKm
}

// OrderValue returns the optional order value used for fee calculation.
func (c AssignOrderCommand) OrderValue() *float64 {
	return c.orderValue
}

func (c *AssignOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AssignOrderCommand) setDistanceKm(distanceKm *float64) error {
	if distanceKm != nil && *distanceKm < 0 {
		return errs.NewValueIsInvalidError("distanceKm")
	}

	c.distanceKm = distanceKm
	return nil
}

func (c *AssignOrderCommand) setOrderValue(orderValue *float64) error {
	if orderValue != nil && *orderValue < 0 {
		return errs.NewValueIsInvalidError("orderValue")
	}

	c.orderValue = orderValue
	return nil
}
