package ports

import (
	"context"

	"dispatch/internal/core/domain/model/settings"
)

// SettingsRepository loads the delivery pricing configuration.
type SettingsRepository interface {
	// GetOrCreate returns the single settings row, creating it with
	// defaults when absent. A uniqueness constraint on the singleton key
	// guarantees concurrent first calls cannot create two rows.
	GetOrCreate(ctx context.Context) (settings.DeliverySettings, error)
}
