package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrVerifyPickupCommandIsNotConstructed = errors.New(
	"VerifyPickupCommand must be created via NewVerifyPickupCommand constructor",
)

// VerifyPickupCommand represents the agent presenting the store's pickup
// code to take custody of the order.
type VerifyPickupCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	otp        string

	guard guard.ConstructorGuard
}

// NewVerifyPickupCommand creates a command carrying the pickup code entered
// at the store. The code must have the expected length; matching against
// the stored code happens on the aggregate.
func NewVerifyPickupCommand(deliveryID kernel.UUID, otp string) (VerifyPickupCommand, error) {
	command := VerifyPickupCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setOTP(otp),
	); err != nil {
		return VerifyPickupCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrVerifyPickupCommandIsNotConstructed if validation fails.
func (c VerifyPickupCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPickupCommandIsNotConstructed)
}

// DeliveryID returns the delivery being picked up.
func (c VerifyPickupCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OTP returns the pickup code entered by the agent.
func (c VerifyPickupCommand) OTP() string {
	return c.otp
}

func (c *VerifyPickupCommand) setDeliveryID(deliveryID kernel.UUID) error {
	if err := deliveryID.Validate(); err != nil {
		return err
	}

	c.deliveryID = deliveryID
	return nil
}

func (c *VerifyPickupCommand) setOTP(otp string) error {
	if len(otp) != delivery.OTPLength {
		return errs.NewValueIsInvalidError("otp")
	}

	c.otp = otp
	return nil
}
