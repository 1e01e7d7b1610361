// Package agentrepo provides data transfer objects and mapping functions for agent persistence.
// This package implements the repository pattern for the agent domain aggregate, handling
// the conversion between domain entities and database representations.
package agentrepo

import (
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO represents the database structure for persisting agent aggregates.
// Maps agent domain entities to relational database tables with a uniqueness
// constraint on the public agent identifier.
type AgentDTO struct {
	ID                   uuid.UUID        `gorm:"type:uuid;primaryKey"`
	AgentID              string           `gorm:"type:varchar(16);not null;uniqueIndex"`
	UserID               uuid.UUID        `gorm:"type:uuid;not null;index"`
	StoreID              uuid.UUID        `gorm:"type:uuid;not null;index"`
	PhoneNumber          string           `gorm:"type:varchar(32);not null"`
	AlternativePhone     string           `gorm:"type:varchar(32)"`
	Status               int              `gorm:"not null"`
	IsAvailable          bool             `gorm:"not null;index"`
	MaxConcurrentOrders  int              `gorm:"not null"`
	ServiceAreaRadiusKm  int              `gorm:"not null"`
	VehicleType          int              `gorm:"not null"`
	VehicleNumber        string           `gorm:"type:varchar(32)"`
	Latitude             *float64         `gorm:"type:decimal(9,6)"`
	Longitude            *float64         `gorm:"type:decimal(9,6)"`
	LastLocationUpdate   *time.Time
	TotalDeliveries      int              `gorm:"not null"`
	SuccessfulDeliveries int              `gorm:"not null"`
	FailedDeliveries     int              `gorm:"not null"`
	TotalEarnings        float64          `gorm:"type:decimal(12,2);not null"`
	AverageRating        float64          `gorm:"type:decimal(3,2);not null"`
	ZipCoverages         []ZipCoverageDTO `gorm:"foreignKey:AgentID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for agent entities.
// Overrides GORM's default naming convention to use "agents".
func (AgentDTO) TableName() string {
	return "agents"
}

// ZipCoverageDTO represents the database structure for persisting ZIP coverage
// records. Links to the agent via foreign key; one row per agent and ZIP code.
type ZipCoverageDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_agent_zip"`
	ZipCode     string    `gorm:"type:varchar(10);not null;uniqueIndex:idx_agent_zip"`
	IsActive    bool      `gorm:"not null"`
	FeeOverride *float64  `gorm:"type:decimal(8,2)"`
}

// TableName specifies the database table name for ZIP coverage entities.
// Overrides GORM's default naming convention to use "zip_coverages".
func (ZipCoverageDTO) TableName() string {
	return "zip_coverages"
}

// fromDomain converts an agent domain aggregate to its database representation.
// Maps all aggregate attributes including coverage records and counters.
func fromDomain(aggregate *agent.Agent) AgentDTO {
	agentID := aggregate.ID().Bytes()

	coverages := make([]ZipCoverageDTO, 0, len(aggregate.ZipCoverages()))
	for _, coverage := range aggregate.ZipCoverages() {
		coverages = append(coverages, ZipCoverageDTO{
			ID:          coverage.ID().Bytes(),
			AgentID:     agentID,
			ZipCode:     coverage.ZipCode(),
			IsActive:    coverage.IsActive(),
			FeeOverride: coverage.FeeOverride(),
		})
	}

	var latitude, longitude *float64
	if location := aggregate.Location(); location != nil {
		lat, lon := location.Latitude(), location.Longitude()
		latitude, longitude = &lat, &lon
	}

	stats := aggregate.Stats()
	return AgentDTO{
		ID:                   agentID,
		AgentID:              aggregate.AgentID(),
		UserID:               aggregate.UserID().Bytes(),
		StoreID:              aggregate.StoreID().Bytes(),
		PhoneNumber:          aggregate.PhoneNumber(),
		AlternativePhone:     aggregate.AlternativePhone(),
		Status:               int(aggregate.Status()),
		IsAvailable:          aggregate.IsAvailable(),
		MaxConcurrentOrders:  aggregate.MaxConcurrentOrders(),
		ServiceAreaRadiusKm:  aggregate.ServiceAreaRadiusKm(),
		VehicleType:          int(aggregate.VehicleType()),
		VehicleNumber:        aggregate.VehicleNumber(),
		Latitude:             latitude,
		Longitude:            longitude,
		LastLocationUpdate:   aggregate.LastLocationUpdate(),
		TotalDeliveries:      stats.TotalDeliveries,
		SuccessfulDeliveries: stats.SuccessfulDeliveries,
		FailedDeliveries:     stats.FailedDeliveries,
		TotalEarnings:        stats.TotalEarnings,
		AverageRating:        stats.AverageRating,
		ZipCoverages:         coverages,
	}
}

// toDomain converts a database DTO to an agent domain aggregate.
// Reconstructs the complete aggregate including coverages using RestoreAgent.
func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	storeID, err := kernel.UUIDFromBytes(dto.StoreID[:])
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	coverages := make([]*agent.ZipCoverage, 0, len(dto.ZipCoverages))
	for _, coverageDTO := range dto.ZipCoverages {
		coverage, coverageErr := zipCoverageToDomain(coverageDTO)
		if coverageErr != nil {
			return nil, coverageErr
		}
		coverages = append(coverages, coverage)
	}

	return agent.RestoreAgent(
		id,
		dto.AgentID,
		userID,
		storeID,
		dto.PhoneNumber,
		dto.AlternativePhone,
		agent.Status(dto.Status),
		dto.IsAvailable,
		dto.MaxConcurrentOrders,
		dto.ServiceAreaRadiusKm,
		agent.VehicleType(dto.VehicleType),
		dto.VehicleNumber,
		location,
		dto.LastLocationUpdate,
		agent.Stats{
			TotalDeliveries:      dto.TotalDeliveries,
			SuccessfulDeliveries: dto.SuccessfulDeliveries,
			FailedDeliveries:     dto.FailedDeliveries,
			TotalEarnings:        dto.TotalEarnings,
			AverageRating:        dto.AverageRating,
		},
		coverages,
	)
}

// zipCoverageToDomain converts a coverage DTO to its domain entity.
// Uses RestoreZipCoverage to reconstruct the record with its persisted state.
func zipCoverageToDomain(dto ZipCoverageDTO) (*agent.ZipCoverage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return agent.RestoreZipCoverage(id, dto.ZipCode, dto.IsActive, dto.FeeOverride)
}
