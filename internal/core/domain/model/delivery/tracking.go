package delivery

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrTrackingPointIsNotConstructed is returned when using an improperly
// initialized TrackingPoint.
var ErrTrackingPointIsNotConstructed = errors.New(
	"TrackingPoint must be created via NewTrackingPoint constructor")

// TrackingPoint is one entry in a delivery's append-only location log. A
// point is recorded when the delivery is created and on every subsequent
// agent location update while the delivery is active. Points are never
// updated or removed; they are cascade-deleted with their delivery.
type TrackingPoint struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	point      kernel.GeoPoint
	recordedAt time.Time

	guard guard.ConstructorGuard
}

// NewTrackingPoint records a position for the given delivery.
func NewTrackingPoint(
	id kernel.UUID, deliveryID kernel.UUID, point kernel.GeoPoint, recordedAt time.Time,
) (*TrackingPoint, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate(), point.Validate()); err != nil {
		return nil, err
	}

	return &TrackingPoint{
		id:         id,
		deliveryID: deliveryID,
		point:      point,
		recordedAt: recordedAt,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the point was created via its constructor.
func (t *TrackingPoint) Validate() error {
	if t == nil {
		return ErrTrackingPointIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingPointIsNotConstructed)
}

// ID returns the tracking point identifier.
func (t *TrackingPoint) ID() kernel.UUID {
	return t.id
}

// DeliveryID returns the delivery this point belongs to.
func (t *TrackingPoint) DeliveryID() kernel.UUID {
	return t.deliveryID
}

// Point returns the recorded coordinates.
func (t *TrackingPoint) Point() kernel.GeoPoint {
	return t.point
}

// RecordedAt returns when the position was captured.
func (t *TrackingPoint) RecordedAt() time.Time {
	return t.recordedAt
}
