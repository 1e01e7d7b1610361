package agent_test

import (
	"testing"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZipCoverage(t *testing.T) {
	t.Run("should create active coverage", func(t *testing.T) {
		id := kernel.NewUUID()

		c, err := agent.NewZipCoverage(id, "560001", nil)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "560001", c.ZipCode())
		assert.True(t, c.IsActive())
		assert.Nil(t, c.FeeOverride())
	})

	t.Run("should keep fee override when provided", func(t *testing.T) {
		override := 25.0

		c, err := agent.NewZipCoverage(kernel.NewUUID(), "560001", &override)

		require.NoError(t, err)
		require.NotNil(t, c.FeeOverride())
		assert.InDelta(t, 25.0, *c.FeeOverride(), 0.001)
	})

	t.Run("should return error for empty zip code", func(t *testing.T) {
		c, err := agent.NewZipCoverage(kernel.NewUUID(), "", nil)

		require.ErrorIs(t, err, agent.ErrZipCodeIsRequired)
		assert.Nil(t, c)
	})

	t.Run("should return error for negative fee override", func(t *testing.T) {
		override := -1.0

		c, err := agent.NewZipCoverage(kernel.NewUUID(), "560001", &override)

		require.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		c, err := agent.NewZipCoverage(invalidID, "560001", nil)

		require.Error(t, err)
		assert.Nil(t, c)
	})
}

func TestZipCoverageLifecycle(t *testing.T) {
	t.Run("should deactivate and reactivate with new override", func(t *testing.T) {
		c, err := agent.NewZipCoverage(kernel.NewUUID(), "560001", nil)
		require.NoError(t, err)

		c.Deactivate()
		assert.False(t, c.IsActive())

		override := 45.0
		require.NoError(t, c.Activate(&override))
		assert.True(t, c.IsActive())
		require.NotNil(t, c.FeeOverride())
		assert.InDelta(t, 45.0, *c.FeeOverride(), 0.001)
	})

	t.Run("should reject negative override on reactivation", func(t *testing.T) {
		c, err := agent.NewZipCoverage(kernel.NewUUID(), "560001", nil)
		require.NoError(t, err)
		c.Deactivate()

		override := -5.0
		require.Error(t, c.Activate(&override))
		assert.False(t, c.IsActive())
	})
}

func TestRestoreZipCoverage(t *testing.T) {
	t.Run("should preserve inactive state", func(t *testing.T) {
		c, err := agent.RestoreZipCoverage(kernel.NewUUID(), "560001", false, nil)

		require.NoError(t, err)
		assert.False(t, c.IsActive())
	})
}
