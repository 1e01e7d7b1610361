// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate and its owned
// tracking, issue and rating records.
package deliveryrepo

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// The order reference carries a uniqueness constraint: exactly one delivery
// exists per order.
type DeliveryDTO struct {
	ID                       uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID               string    `gorm:"type:varchar(20);not null;uniqueIndex"`
	OrderID                  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	AgentID                  uuid.UUID `gorm:"type:uuid;not null;index"`
	Status                   int       `gorm:"not null;index"`
	DeliveryFee              float64   `gorm:"type:decimal(8,2);not null"`
	AgentPayout              float64   `gorm:"type:decimal(8,2);not null"`
	StorePickupOTP           string    `gorm:"type:varchar(6);not null"`
	CustomerDeliveryOTP      string    `gorm:"type:varchar(6);not null"`
	StorePickupVerified      bool      `gorm:"not null"`
	CustomerDeliveryVerified bool      `gorm:"not null"`
	AssignedAt               time.Time `gorm:"not null"`
	AcceptedAt               *time.Time
	ArrivedAtStoreAt         *time.Time
	PickedUpAt               *time.Time
	DeliveredAt              *time.Time
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// TrackingPointDTO represents one recorded position in a delivery's
// location log. Rows are append-only.
type TrackingPointDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;index"`
	Latitude   float64   `gorm:"type:decimal(9,6);not null"`
	Longitude  float64   `gorm:"type:decimal(9,6);not null"`
	RecordedAt time.Time `gorm:"not null;index"`
}

// TableName specifies the database table name for tracking point entities.
func (TrackingPointDTO) TableName() string {
	return "tracking_points"
}

// IssueDTO represents a problem record filed against a delivery.
type IssueDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID  uuid.UUID `gorm:"type:uuid;not null;index"`
	IssueType   int       `gorm:"not null"`
	Description string    `gorm:"type:text;not null"`
	Resolved    bool      `gorm:"not null"`
	Resolution  string    `gorm:"type:text"`
}

// TableName specifies the database table name for issue entities.
func (IssueDTO) TableName() string {
	return "issues"
}

// RatingDTO represents the customer's score for a delivery. The delivery
// reference carries a uniqueness constraint: at most one rating per delivery.
type RatingDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Score      int       `gorm:"not null"`
	Feedback   string    `gorm:"type:text"`
}

// TableName specifies the database table name for rating entities.
func (RatingDTO) TableName() string {
	return "ratings"
}

// fromDomain converts a delivery domain aggregate to its database representation.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	return DeliveryDTO{
		ID:                       aggregate.ID().Bytes(),
		DeliveryID:               aggregate.DeliveryID(),
		OrderID:                  aggregate.OrderID().Bytes(),
		AgentID:                  aggregate.AgentID().Bytes(),
		Status:                   int(aggregate.Status()),
		DeliveryFee:              aggregate.DeliveryFee(),
		AgentPayout:              aggregate.AgentPayout(),
		StorePickupOTP:           aggregate.StorePickupOTP(),
		CustomerDeliveryOTP:      aggregate.CustomerDeliveryOTP(),
		StorePickupVerified:      aggregate.StorePickupVerified(),
		CustomerDeliveryVerified: aggregate.CustomerDeliveryVerified(),
		AssignedAt:               aggregate.AssignedAt(),
		AcceptedAt:               aggregate.AcceptedAt(),
		ArrivedAtStoreAt:         aggregate.ArrivedAtStoreAt(),
		PickedUpAt:               aggregate.PickedUpAt(),
		DeliveredAt:              aggregate.DeliveredAt(),
	}
}

// toDomain converts a database DTO to a delivery domain aggregate using
// RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	agentID, err := kernel.UUIDFromBytes(dto.AgentID[:])
	if err != nil {
		return nil, err
	}

	return delivery.RestoreDelivery(
		id,
		dto.DeliveryID,
		orderID,
		agentID,
		delivery.Status(dto.Status),
		dto.DeliveryFee,
		dto.AgentPayout,
		dto.StorePickupOTP,
		dto.CustomerDeliveryOTP,
		dto.StorePickupVerified,
		dto.CustomerDeliveryVerified,
		dto.AssignedAt,
		dto.AcceptedAt,
		dto.ArrivedAtStoreAt,
		dto.PickedUpAt,
		dto.DeliveredAt,
	)
}

// trackingPointFromDomain converts a tracking point entity to its database
// representation.
func trackingPointFromDomain(point *delivery.TrackingPoint) TrackingPointDTO {
	return TrackingPointDTO{
		ID:         point.ID().Bytes(),
		DeliveryID: point.DeliveryID().Bytes(),
		Latitude:   point.Point().Latitude(),
		Longitude:  point.Point().Longitude(),
		RecordedAt: point.RecordedAt(),
	}
}

// issueFromDomain converts an issue entity to its database representation.
func issueFromDomain(issue *delivery.Issue) IssueDTO {
	return IssueDTO{
		ID:          issue.ID().Bytes(),
		DeliveryID:  issue.DeliveryID().Bytes(),
		IssueType:   int(issue.IssueType()),
		Description: issue.Description(),
		Resolved:    issue.Resolved(),
		Resolution:  issue.Resolution(),
	}
}

// ratingFromDomain converts a rating entity to its database representation.
func ratingFromDomain(rating *delivery.Rating) RatingDTO {
	return RatingDTO{
		ID:         rating.ID().Bytes(),
		DeliveryID: rating.DeliveryID().Bytes(),
		Score:      rating.Value(),
		Feedback:   rating.Feedback(),
	}
}

// ratingToDomain converts a rating DTO to its domain entity.
func ratingToDomain(dto RatingDTO) (*delivery.Rating, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	deliveryID, err := kernel.UUIDFromBytes(dto.DeliveryID[:])
	if err != nil {
		return nil, err
	}

	return delivery.NewRating(id, deliveryID, dto.Score, dto.Feedback)
}
