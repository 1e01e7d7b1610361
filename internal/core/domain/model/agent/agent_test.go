package agent_test

import (
	"regexp"
	"testing"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test helper functions.
func createValidAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(
		kernel.NewUUID(),
		agent.GenerateAgentID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		"+15550100",
		agent.VehicleBicycle,
	)
	require.NoError(t, err)
	require.NotNil(t, a)
	return a
}

func createAvailableAgent(t *testing.T) *agent.Agent {
	t.Helper()
	a := createValidAgent(t)
	require.NoError(t, a.AddZipCoverage("560001", nil))

	available, err := a.ToggleAvailability()
	require.NoError(t, err)
	require.True(t, available)
	return a
}

func TestGenerateAgentID(t *testing.T) {
	t.Run("should produce AGT followed by four digits", func(t *testing.T) {
		pattern := regexp.MustCompile(`^AGT\d{4}$`)
		for range 100 {
			assert.Regexp(t, pattern, agent.GenerateAgentID())
		}
	})
}

func TestNewAgent(t *testing.T) {
	validID := kernel.NewUUID()
	validUserID := kernel.NewUUID()
	validStoreID := kernel.NewUUID()

	t.Run("should create agent with valid parameters", func(t *testing.T) {
		a, err := agent.NewAgent(validID, "AGT0001", validUserID, validStoreID, "+15550100", agent.VehicleCar)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.ID().IsEqual(validID))
		assert.Equal(t, "AGT0001", a.AgentID())
		assert.True(t, a.UserID().IsEqual(validUserID))
		assert.True(t, a.StoreID().IsEqual(validStoreID))
		assert.Equal(t, "+15550100", a.PhoneNumber())
		assert.Equal(t, agent.VehicleCar, a.VehicleType())

		// New agents start offline with default limits and no coverage.
		assert.Equal(t, agent.StatusOffline, a.Status())
		assert.False(t, a.IsAvailable())
		assert.Equal(t, 3, a.MaxConcurrentOrders())
		assert.Equal(t, 10, a.ServiceAreaRadiusKm())
		assert.Empty(t, a.ZipCoverages())
		assert.Nil(t, a.Location())
		assert.Equal(t, agent.Stats{}, a.Stats())
	})

	t.Run("should return error for invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID

		a, err := agent.NewAgent(invalidID, "AGT0001", validUserID, validStoreID, "+15550100", agent.VehicleCar)

		require.Error(t, err)
		assert.Nil(t, a)
	})

	t.Run("should return error for empty agent id", func(t *testing.T) {
		a, err := agent.NewAgent(validID, "", validUserID, validStoreID, "+15550100", agent.VehicleCar)

		require.Error(t, err)
		assert.Nil(t, a)
		assert.Contains(t, err.Error(), "agent id")
	})

	t.Run("should return error for empty phone number", func(t *testing.T) {
		a, err := agent.NewAgent(validID, "AGT0001", validUserID, validStoreID, "", agent.VehicleCar)

		require.Error(t, err)
		assert.Nil(t, a)
		assert.ErrorIs(t, err, agent.ErrPhoneNumberIsRequired)
	})

	t.Run("should return error for unknown vehicle type", func(t *testing.T) {
		a, err := agent.NewAgent(validID, "AGT0001", validUserID, validStoreID, "+15550100", agent.VehicleUnknown)

		require.Error(t, err)
		assert.Nil(t, a)
		assert.Contains(t, err.Error(), "vehicle type")
	})

	t.Run("should return aggregated errors for multiple invalid parameters", func(t *testing.T) {
		var invalidID kernel.UUID

		a, err := agent.NewAgent(invalidID, "", validUserID, validStoreID, "", agent.VehicleUnknown)

		require.Error(t, err)
		assert.Nil(t, a)
		assert.Contains(t, err.Error(), "agent id")
		assert.ErrorIs(t, err, agent.ErrPhoneNumberIsRequired)
	})
}

func TestAgentToggleAvailability(t *testing.T) {
	t.Run("should reject toggle without active zip coverage", func(t *testing.T) {
		a := createValidAgent(t)

		available, err := a.ToggleAvailability()

		require.ErrorIs(t, err, agent.ErrNoActiveZipCoverage)
		assert.False(t, available)
		assert.False(t, a.IsAvailable())
		assert.Equal(t, agent.StatusOffline, a.Status())
	})

	t.Run("should reject toggle when only coverage is deactivated", func(t *testing.T) {
		a := createValidAgent(t)
		require.NoError(t, a.AddZipCoverage("560001", nil))
		require.NoError(t, a.DeactivateZipCoverage("560001"))

		_, err := a.ToggleAvailability()

		require.ErrorIs(t, err, agent.ErrNoActiveZipCoverage)
	})

	t.Run("should activate offline agent when becoming available", func(t *testing.T) {
		a := createValidAgent(t)
		require.NoError(t, a.AddZipCoverage("560001", nil))

		available, err := a.ToggleAvailability()

		require.NoError(t, err)
		assert.True(t, available)
		assert.True(t, a.IsAvailable())
		assert.Equal(t, agent.StatusActive, a.Status())
	})

	t.Run("should take active agent offline when becoming unavailable", func(t *testing.T) {
		a := createAvailableAgent(t)

		available, err := a.ToggleAvailability()

		require.NoError(t, err)
		assert.False(t, available)
		assert.False(t, a.IsAvailable())
		assert.Equal(t, agent.StatusOffline, a.Status())
	})

	t.Run("should not touch status when agent is on break", func(t *testing.T) {
		a := createAvailableAgent(t)
		require.NoError(t, a.ChangeStatus(agent.StatusOnBreak))

		available, err := a.ToggleAvailability()

		require.NoError(t, err)
		assert.False(t, available)
		assert.Equal(t, agent.StatusOnBreak, a.Status())
	})
}

func TestAgentZipCoverage(t *testing.T) {
	t.Run("should add new coverage as active", func(t *testing.T) {
		a := createValidAgent(t)

		require.NoError(t, a.AddZipCoverage("560001", nil))

		coverages := a.ZipCoverages()
		require.Len(t, coverages, 1)
		assert.Equal(t, "560001", coverages[0].ZipCode())
		assert.True(t, coverages[0].IsActive())
		assert.Nil(t, coverages[0].FeeOverride())
	})

	t.Run("should reject duplicate active coverage", func(t *testing.T) {
		a := createValidAgent(t)
		require.NoError(t, a.AddZipCoverage("560001", nil))

		err := a.AddZipCoverage("560001", nil)

		require.ErrorIs(t, err, agent.ErrDuplicateZipCoverage)
		assert.Len(t, a.ZipCoverages(), 1)
	})

	t.Run("should reactivate deactivated coverage instead of duplicating", func(t *testing.T) {
		a := createValidAgent(t)
		require.NoError(t, a.AddZipCoverage("560001", nil))
		require.NoError(t, a.DeactivateZipCoverage("560001"))

		override := 55.0
		require.NoError(t, a.AddZipCoverage("560001", &override))

		coverages := a.ZipCoverages()
		require.Len(t, coverages, 1)
		assert.True(t, coverages[0].IsActive())
		require.NotNil(t, coverages[0].FeeOverride())
		assert.InDelta(t, 55.0, *coverages[0].FeeOverride(), 0.001)
	})

	t.Run("should keep deactivated coverage on record", func(t *testing.T) {
		a := createValidAgent(t)
		require.NoError(t, a.AddZipCoverage("560001", nil))

		require.NoError(t, a.DeactivateZipCoverage("560001"))

		coverages := a.ZipCoverages()
		require.Len(t, coverages, 1)
		assert.False(t, coverages[0].IsActive())
		assert.False(t, a.HasActiveZipCoverage())
	})

	t.Run("should return not found for unknown zip code", func(t *testing.T) {
		a := createValidAgent(t)

		err := a.DeactivateZipCoverage("999999")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "999999")
	})
}

func TestAgentUpdateLocation(t *testing.T) {
	t.Run("should record position and timestamp", func(t *testing.T) {
		a := createValidAgent(t)
		point, err := kernel.NewGeoPoint(12.9716, 77.5946)
		require.NoError(t, err)
		now := time.Now().UTC()

		require.NoError(t, a.UpdateLocation(point, now))

		require.NotNil(t, a.Location())
		assert.InDelta(t, 12.9716, a.Location().Latitude(), 0.0001)
		assert.InDelta(t, 77.5946, a.Location().Longitude(), 0.0001)
		require.NotNil(t, a.LastLocationUpdate())
		assert.Equal(t, now, *a.LastLocationUpdate())
	})
}

func TestAgentCanAcceptOrders(t *testing.T) {
	t.Run("should accept while available, active and under the cap", func(t *testing.T) {
		a := createAvailableAgent(t)

		assert.True(t, a.CanAcceptOrders(0))
		assert.True(t, a.CanAcceptOrders(2))
	})

	t.Run("should reject at the concurrency cap", func(t *testing.T) {
		a := createAvailableAgent(t)

		assert.False(t, a.CanAcceptOrders(3))
	})

	t.Run("should reject while unavailable", func(t *testing.T) {
		a := createValidAgent(t)

		assert.False(t, a.CanAcceptOrders(0))
	})

	t.Run("should reject while on break even if available", func(t *testing.T) {
		a := createAvailableAgent(t)
		require.NoError(t, a.ChangeStatus(agent.StatusOnBreak))

		assert.False(t, a.CanAcceptOrders(0))
	})
}

func TestAgentStats(t *testing.T) {
	t.Run("should apply recomputed stats", func(t *testing.T) {
		a := createValidAgent(t)
		stats := agent.Stats{
			TotalDeliveries:      10,
			SuccessfulDeliveries: 8,
			FailedDeliveries:     2,
			TotalEarnings:        320.00,
			AverageRating:        4.25,
		}

		require.NoError(t, a.ApplyStats(stats))

		assert.Equal(t, stats, a.Stats())
		assert.InDelta(t, 80.0, a.SuccessRate(), 0.001)
	})

	t.Run("should reject rating outside bounds", func(t *testing.T) {
		a := createValidAgent(t)

		err := a.ApplyStats(agent.Stats{AverageRating: 5.5})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "average rating")
	})

	t.Run("should reject negative counters", func(t *testing.T) {
		a := createValidAgent(t)

		err := a.ApplyStats(agent.Stats{TotalDeliveries: -1})

		require.Error(t, err)
	})

	t.Run("should report zero success rate without deliveries", func(t *testing.T) {
		a := createValidAgent(t)

		assert.Zero(t, a.SuccessRate())
	})

	t.Run("should bump counters on completed delivery", func(t *testing.T) {
		a := createValidAgent(t)

		a.RecordCompletedDelivery()

		assert.Equal(t, 1, a.Stats().TotalDeliveries)
		assert.Equal(t, 1, a.Stats().SuccessfulDeliveries)
	})
}

func TestRestoreAgent(t *testing.T) {
	t.Run("should restore agent with full state", func(t *testing.T) {
		id := kernel.NewUUID()
		point, err := kernel.NewGeoPoint(12.9716, 77.5946)
		require.NoError(t, err)
		updatedAt := time.Now().UTC()

		coverage, err := agent.RestoreZipCoverage(kernel.NewUUID(), "560001", true, nil)
		require.NoError(t, err)

		stats := agent.Stats{TotalDeliveries: 5, SuccessfulDeliveries: 4, FailedDeliveries: 1, TotalEarnings: 160, AverageRating: 4.5}

		a, err := agent.RestoreAgent(
			id, "AGT1234", kernel.NewUUID(), kernel.NewUUID(),
			"+15550100", "+15550101",
			agent.StatusActive, true, 5, 12,
			agent.VehicleMotorcycle, "KA01AB1234",
			&point, &updatedAt,
			stats,
			[]*agent.ZipCoverage{coverage},
		)

		require.NoError(t, err)
		require.NoError(t, a.Validate())
		assert.True(t, a.IsAvailable())
		assert.Equal(t, agent.StatusActive, a.Status())
		assert.Equal(t, "+15550101", a.AlternativePhone())
		assert.Equal(t, "KA01AB1234", a.VehicleNumber())
		assert.Equal(t, 5, a.MaxConcurrentOrders())
		assert.Equal(t, stats, a.Stats())
		assert.True(t, a.HasActiveZipCoverage())
	})

	t.Run("should return error for invalid restored status", func(t *testing.T) {
		a, err := agent.RestoreAgent(
			kernel.NewUUID(), "AGT1234", kernel.NewUUID(), kernel.NewUUID(),
			"+15550100", "",
			agent.StatusUnknown, false, 3, 10,
			agent.VehicleCar, "",
			nil, nil,
			agent.Stats{},
			nil,
		)

		require.Error(t, err)
		assert.Nil(t, a)
	})
}

func TestAgentValidate(t *testing.T) {
	t.Run("should reject zero-value agent", func(t *testing.T) {
		var a agent.Agent

		assert.ErrorIs(t, a.Validate(), agent.ErrAgentIsNotConstructed)
	})

	t.Run("should reject nil agent", func(t *testing.T) {
		var a *agent.Agent

		assert.ErrorIs(t, a.Validate(), agent.ErrAgentIsNotConstructed)
	})
}
