package delivery_test

import (
	"testing"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIssue(t *testing.T) {
	t.Run("should create unresolved issue", func(t *testing.T) {
		id := kernel.NewUUID()
		deliveryID := kernel.NewUUID()

		issue, err := delivery.NewIssue(id, deliveryID, delivery.IssueTraffic, "stuck on the ring road")

		require.NoError(t, err)
		require.NoError(t, issue.Validate())
		assert.True(t, issue.ID().IsEqual(id))
		assert.True(t, issue.DeliveryID().IsEqual(deliveryID))
		assert.Equal(t, delivery.IssueTraffic, issue.IssueType())
		assert.Equal(t, "stuck on the ring road", issue.Description())
		assert.False(t, issue.Resolved())
		assert.Empty(t, issue.Resolution())
	})

	t.Run("should return error for empty description", func(t *testing.T) {
		issue, err := delivery.NewIssue(kernel.NewUUID(), kernel.NewUUID(), delivery.IssueDelay, "")

		require.ErrorIs(t, err, delivery.ErrIssueDescriptionIsRequired)
		assert.Nil(t, issue)
	})

	t.Run("should return error for unknown issue type", func(t *testing.T) {
		issue, err := delivery.NewIssue(kernel.NewUUID(), kernel.NewUUID(), delivery.IssueUnknown, "something")

		require.Error(t, err)
		assert.Nil(t, issue)
	})
}

func TestIssueResolve(t *testing.T) {
	t.Run("should close issue with resolution note", func(t *testing.T) {
		issue, err := delivery.NewIssue(kernel.NewUUID(), kernel.NewUUID(), delivery.IssueDamage, "box crushed")
		require.NoError(t, err)

		require.NoError(t, issue.Resolve("refund issued"))

		assert.True(t, issue.Resolved())
		assert.Equal(t, "refund issued", issue.Resolution())
	})

	t.Run("should reject empty resolution", func(t *testing.T) {
		issue, err := delivery.NewIssue(kernel.NewUUID(), kernel.NewUUID(), delivery.IssueDamage, "box crushed")
		require.NoError(t, err)

		require.Error(t, issue.Resolve(""))
		assert.False(t, issue.Resolved())
	})
}

func TestRestoreIssue(t *testing.T) {
	t.Run("should preserve resolved state", func(t *testing.T) {
		issue, err := delivery.RestoreIssue(
			kernel.NewUUID(), kernel.NewUUID(), delivery.IssueOther,
			"customer asked to reschedule", true, "rescheduled for tomorrow",
		)

		require.NoError(t, err)
		assert.True(t, issue.Resolved())
		assert.Equal(t, "rescheduled for tomorrow", issue.Resolution())
	})
}

func TestIssueTypeValidate(t *testing.T) {
	t.Run("should accept all defined issue types", func(t *testing.T) {
		types := []delivery.IssueType{
			delivery.IssueDelay,
			delivery.IssueDamage,
			delivery.IssueWrongLocation,
			delivery.IssueCustomerUnavailable,
			delivery.IssueTraffic,
			delivery.IssueVehicle,
			delivery.IssueWeather,
			delivery.IssueOther,
		}

		for _, issueType := range types {
			assert.NoError(t, issueType.Validate(), issueType.String())
		}
	})

	t.Run("should reject unknown issue type", func(t *testing.T) {
		require.Error(t, delivery.IssueUnknown.Validate())
		require.Error(t, delivery.IssueType(99).Validate())
	})
}
