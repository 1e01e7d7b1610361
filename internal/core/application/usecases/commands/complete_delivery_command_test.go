package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompleteDeliveryCommand(t *testing.T) {
	validDeliveryID := kernel.NewUUID()

	t.Run("should create command with six-digit code", func(t *testing.T) {
		cmd, err := commands.NewCompleteDeliveryCommand(validDeliveryID, "482913")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.DeliveryID().IsEqual(validDeliveryID))
		assert.Equal(t, "482913", cmd.OTP())
	})

	t.Run("should return error for wrong-length code", func(t *testing.T) {
		for _, otp := range []string{"", "123", "1234567"} {
			_, err := commands.NewCompleteDeliveryCommand(validDeliveryID, otp)

			require.Error(t, err, otp)
		}
	})

	t.Run("should return error for invalid delivery id", func(t *testing.T) {
		var invalidID kernel.UUID

		_, err := commands.NewCompleteDeliveryCommand(invalidID, "482913")

		require.Error(t, err)
	})

	t.Run("should reject zero-value command", func(t *testing.T) {
		var cmd commands.CompleteDeliveryCommand

		assert.ErrorIs(t, cmd.Validate(), commands.ErrCompleteDeliveryCommandIsNotConstructed)
	})
}

func TestNewVerifyPickupCommand(t *testing.T) {
	t.Run("should create command with six-digit code", func(t *testing.T) {
		cmd, err := commands.NewVerifyPickupCommand(kernel.NewUUID(), "123456")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
	})

	t.Run("should return error for wrong-length code", func(t *testing.T) {
		_, err := commands.NewVerifyPickupCommand(kernel.NewUUID(), "12345")

		require.Error(t, err)
	})
}

func TestNewCancelDeliveryCommand(t *testing.T) {
	t.Run("should create command with reason", func(t *testing.T) {
		cmd, err := commands.NewCancelDeliveryCommand(kernel.NewUUID(), "customer asked to cancel")

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "customer asked to cancel", cmd.Reason())
	})

	t.Run("should return error for empty reason", func(t *testing.T) {
		_, err := commands.NewCancelDeliveryCommand(kernel.NewUUID(), "")

		require.ErrorIs(t, err, commands.ErrCancelReasonIsRequired)
	})
}

func TestNewRateDeliveryCommand(t *testing.T) {
	t.Run("should accept boundary values", func(t *testing.T) {
		for _, value := range []int{1, 5} {
			cmd, err := commands.NewRateDeliveryCommand(kernel.NewUUID(), value, "")

			require.NoError(t, err)
			assert.Equal(t, value, cmd.Value())
		}
	})

	t.Run("should return error for values outside bounds", func(t *testing.T) {
		for _, value := range []int{0, 6, -1} {
			_, err := commands.NewRateDeliveryCommand(kernel.NewUUID(), value, "")

			require.Error(t, err)
		}
	})
}

func TestNewCancelStaleDeliveriesCommand(t *testing.T) {
	t.Run("should create command with positive timeout", func(t *testing.T) {
		cmd, err := commands.NewCancelStaleDeliveriesCommand(15 * time.Minute)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, 15*time.Minute, cmd.OlderThan())
	})

	t.Run("should return error for non-positive timeout", func(t *testing.T) {
		for _, timeout := range []time.Duration{0, -time.Minute} {
			_, err := commands.NewCancelStaleDeliveriesCommand(timeout)

			require.ErrorIs(t, err, commands.ErrStaleTimeoutIsInvalid)
		}
	})
}
