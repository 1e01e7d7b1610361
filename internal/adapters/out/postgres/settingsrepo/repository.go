// Package settingsrepo persists the delivery pricing configuration as a
// single fixed-key row.
package settingsrepo

import (
	"context"

	"dispatch/internal/core/domain/model/settings"

	"gorm.io/gorm"
)

// settingsSingletonID is the fixed primary key of the only settings row.
// The primary key constraint guarantees concurrent first reads cannot
// create two rows.
const settingsSingletonID = 1

// SettingsDTO represents the database structure for the pricing
// configuration singleton.
type SettingsDTO struct {
	ID                    int     `gorm:"primaryKey"`
	CalculationMethod     string  `gorm:"type:varchar(16);not null"`
	BaseDeliveryFee       float64 `gorm:"type:decimal(8,2);not null"`
	FeePerKm              float64 `gorm:"type:decimal(8,2);not null"`
	MinimumDeliveryFee    float64 `gorm:"type:decimal(8,2);not null"`
	MaximumDeliveryFee    float64 `gorm:"type:decimal(8,2);not null"`
	FreeDeliveryThreshold float64 `gorm:"type:decimal(8,2);not null"`
	AgentPayoutPercentage float64 `gorm:"type:decimal(5,2);not null"`
}

// TableName specifies the database table name for the settings singleton.
func (SettingsDTO) TableName() string {
	return "delivery_settings"
}

// GormSettingsRepository implements SettingsRepository using GORM.
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GORM settings repository.
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// GetOrCreate returns the settings row, inserting the defaults when it does
// not exist yet.
func (r *GormSettingsRepository) GetOrCreate(ctx context.Context) (settings.DeliverySettings, error) {
	defaults := settings.DefaultDeliverySettings()

	dto := SettingsDTO{ID: settingsSingletonID}
	if err := r.db.WithContext(ctx).
		Attrs(fromDomain(defaults)).
		FirstOrCreate(&dto, SettingsDTO{ID: settingsSingletonID}).Error; err != nil {
		return settings.DeliverySettings{}, err
	}

	return toDomain(dto)
}

func fromDomain(cfg settings.DeliverySettings) SettingsDTO {
	return SettingsDTO{
		ID:                    settingsSingletonID,
		CalculationMethod:     string(cfg.CalculationMethod()),
		BaseDeliveryFee:       cfg.BaseDeliveryFee(),
		FeePerKm:              cfg.FeePerKm(),
		MinimumDeliveryFee:    cfg.MinimumDeliveryFee(),
		MaximumDeliveryFee:    cfg.MaximumDeliveryFee(),
		FreeDeliveryThreshold: cfg.FreeDeliveryThreshold(),
		AgentPayoutPercentage: cfg.AgentPayoutPercentage(),
	}
}

func toDomain(dto SettingsDTO) (settings.DeliverySettings, error) {
	return settings.NewDeliverySettings(
		settings.CalculationMethod(dto.CalculationMethod),
		dto.BaseDeliveryFee,
		dto.FeePerKm,
		dto.MinimumDeliveryFee,
		dto.MaximumDeliveryFee,
		dto.FreeDeliveryThreshold,
		dto.AgentPayoutPercentage,
	)
}
