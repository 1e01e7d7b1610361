package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRateDeliveryCommandIsNotConstructed = errors.New(
	"RateDeliveryCommand must be created via NewRateDeliveryCommand constructor",
)

// RateDeliveryCommand represents the customer scoring a completed
// delivery. Each delivery takes at most one rating.
type RateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	value      int
	feedback   string

	guard guard.ConstructorGuard
}

// NewRateDeliveryCommand creates a command carrying the customer's score
// in [1, 5] and optional free-text feedback.
func NewRateDeliveryCommand(
	deliveryID kernel.UUID, value int, feedback string,
) (RateDeliveryCommand, error) {
	command := RateDeliveryCommand{
		feedback: feedback,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setValue(value),
	); err != nil {
		return RateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrRateDeliveryCommandIsNotConstructed if validation fails.
func (c RateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery being rated.
func (c RateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Value returns the score in [1, 5].
func (c RateDeliveryCommand) Value() int {
	return c.value
}

// Feedback returns the optional free-text comment.
func (c RateDeliveryCommand) Feedback() string {
	return c.feedback
}

func (c *RateDeliveryCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *RateDeliveryCommand) setValue(value int) error {
	if value < delivery.RatingMin || value > delivery.RatingMax {
		return errs.NewValueIsOutOfRangeError("rating", value, delivery.RatingMin, delivery.RatingMax)
	}

	c.value = value
	return nil
}
