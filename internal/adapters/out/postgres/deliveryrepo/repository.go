package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database. The uniqueness constraint on
// the order reference rejects a second delivery for the same order.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update conditionally saves an existing delivery: the write only applies
// while the stored status still equals expectedStatus. A concurrent
// transition that already changed the row makes this a no-op and the
// caller receives ports.ErrDeliveryStateConflict.
func (r *GormDeliveryRepository) Update(
	ctx context.Context, aggregate *delivery.Delivery, expectedStatus delivery.Status,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expectedStatus)).
		Select("*").Omit("id").
		Updates(dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ports.ErrDeliveryStateConflict
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByOrderID retrieves the delivery created for an order.
func (r *GormDeliveryRepository) GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllForAgent retrieves the agent's full delivery history, oldest first.
func (r *GormDeliveryRepository) GetAllForAgent(
	ctx context.Context, agentID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("agent_id = ?", agentID.Bytes()).
		Order("assigned_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// GetActiveForAgent retrieves the agent's deliveries between acceptance and
// drop-off. Assigned deliveries are excluded: the agent has not taken
// responsibility for them yet.
func (r *GormDeliveryRepository) GetActiveForAgent(
	ctx context.Context, agentID kernel.UUID,
) ([]*delivery.Delivery, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("agent_id = ? AND status IN ?", agentID.Bytes(), activeStatuses()).
		Order("assigned_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// CountNonTerminalForAgent counts the agent's deliveries that still occupy
// capacity, including freshly assigned ones.
func (r *GormDeliveryRepository) CountNonTerminalForAgent(
	ctx context.Context, agentID kernel.UUID,
) (int, error) {
	if err := agentID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).Model(&DeliveryDTO{}).
		Where("agent_id = ? AND status IN ?", agentID.Bytes(), nonTerminalStatuses()).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}

// GetStaleAssigned retrieves deliveries still waiting for acceptance whose
// assignment happened before the cutoff.
func (r *GormDeliveryRepository) GetStaleAssigned(
	ctx context.Context, cutoff time.Time,
) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Where("status = ? AND assigned_at < ?", int(delivery.StatusAssigned), cutoff).
		Order("assigned_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return r.toDomainSlice(dtos)
}

// AddTrackingPoint appends an entry to a delivery's location log.
func (r *GormDeliveryRepository) AddTrackingPoint(ctx context.Context, point *delivery.TrackingPoint) error {
	if err := point.Validate(); err != nil {
		return err
	}

	dto := trackingPointFromDomain(point)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddIssue files an issue against a delivery.
func (r *GormDeliveryRepository) AddIssue(ctx context.Context, issue *delivery.Issue) error {
	if err := issue.Validate(); err != nil {
		return err
	}

	dto := issueFromDomain(issue)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// AddRating saves the customer rating for a delivery. The uniqueness
// constraint on the delivery reference rejects a second rating.
func (r *GormDeliveryRepository) AddRating(ctx context.Context, rating *delivery.Rating) error {
	if err := rating.Validate(); err != nil {
		return err
	}

	dto := ratingFromDomain(rating)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetRatingsForAgent retrieves all ratings given to the agent's deliveries.
func (r *GormDeliveryRepository) GetRatingsForAgent(
	ctx context.Context, agentID kernel.UUID,
) ([]*delivery.Rating, error) {
	if err := agentID.Validate(); err != nil {
		return nil, err
	}

	var dtos []RatingDTO
	if err := r.db.WithContext(ctx).
		Table("ratings").
		Select("ratings.*").
		Joins("JOIN deliveries ON deliveries.id = ratings.delivery_id").
		Where("deliveries.agent_id = ?", agentID.Bytes()).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	ratings := make([]*delivery.Rating, 0, len(dtos))
	for _, dto := range dtos {
		rating, err := ratingToDomain(dto)
		if err != nil {
			return nil, err
		}
		ratings = append(ratings, rating)
	}

	return ratings, nil
}

func (r *GormDeliveryRepository) toDomainSlice(dtos []DeliveryDTO) ([]*delivery.Delivery, error) {
	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

func activeStatuses() []int {
	return []int{
		int(delivery.StatusAccepted),
		int(delivery.StatusAtStore),
		int(delivery.StatusPickedUp),
		int(delivery.StatusInTransit),
	}
}

func nonTerminalStatuses() []int {
	return append([]int{int(delivery.StatusAssigned)}, activeStatuses()...)
}
