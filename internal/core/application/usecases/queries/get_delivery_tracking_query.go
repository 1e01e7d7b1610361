package queries

import (
	"errors"
	"time"

	"dispatch/internal/pkg/guard"
)

var (
	ErrGetDeliveryTrackingQueryIsNotConstructed = errors.New(
		"GetDeliveryTrackingQuery must be created via NewGetDeliveryTrackingQuery constructor",
	)
	ErrDeliveryIDIsRequired = errors.New("delivery ID is required")
)

// GetDeliveryTrackingQuery retrieves the customer-facing tracking page for
// a delivery: its current status and the ordered location trail. Looked up
// by the public delivery identifier printed on the order confirmation.
type GetDeliveryTrackingQuery struct { //nolint:recvcheck //using for validation
	deliveryID string

	guard guard.ConstructorGuard
}

// NewGetDeliveryTrackingQuery creates a tracking query for the public
// delivery identifier, such as "DEL-2501021530-7GQ2".
func NewGetDeliveryTrackingQuery(deliveryID string) (GetDeliveryTrackingQuery, error) {
	query := GetDeliveryTrackingQuery{
		guard: guard.NewConstructorGuard(),
	}

	if err := query.setDeliveryID(deliveryID); err != nil {
		return GetDeliveryTrackingQuery{}, err
	}

	return query, nil
}

// Validate ensures the query was created through the constructor.
// Returns ErrGetDeliveryTrackingQueryIsNotConstructed if validation fails.
func (q GetDeliveryTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryTrackingQueryIsNotConstructed)
}

// DeliveryID returns the public delivery identifier being tracked.
func (q GetDeliveryTrackingQuery) DeliveryID() string {
	return q.deliveryID
}

func (q *GetDeliveryTrackingQuery) setDeliveryID(deliveryID string) error {
	if deliveryID == "" {
		return ErrDeliveryIDIsRequired
	}

	q.deliveryID = deliveryID
	return nil
}

// GetDeliveryTrackingQueryResponse is the customer tracking page payload.
type GetDeliveryTrackingQueryResponse struct {
	DeliveryID string
	Status     string
	AssignedAt time.Time
	Points     []TrackingPointResponse
}

// TrackingPointResponse is one recorded position of the delivery.
type TrackingPointResponse struct {
	Latitude   float64
	Longitude  float64
	RecordedAt time.Time
}
