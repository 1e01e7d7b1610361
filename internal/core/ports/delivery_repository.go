package ports

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrDeliveryStateConflict is returned when a conditional update found the
// delivery in a different status than the caller observed. The losing
// request surfaces this as "delivery not in expected state" and may retry.
var ErrDeliveryStateConflict = errors.New("delivery is not in the expected state")

// DeliveryRepository persists Delivery aggregates and their owned
// tracking, issue and rating records.
type DeliveryRepository interface {
	// Add saves a new delivery. Fails when a delivery already exists for
	// the same order (uniqueness on the order reference).
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update saves an existing delivery conditionally: the write only
	// applies while the stored status still equals expectedStatus.
	// Returns ErrDeliveryStateConflict when the condition fails.
	Update(ctx context.Context, aggregate *delivery.Delivery, expectedStatus delivery.Status) error

	// Get retrieves a delivery by its internal identifier.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetByOrderID retrieves the delivery created for an order.
	GetByOrderID(ctx context.Context, orderID kernel.UUID) (*delivery.Delivery, error)

	// GetAllForAgent retrieves the agent's full delivery history.
	GetAllForAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Delivery, error)

	// GetActiveForAgent retrieves the agent's deliveries in an active
	// (accepted through in-transit) state.
	GetActiveForAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Delivery, error)

	// CountNonTerminalForAgent counts the agent's deliveries that still
	// occupy capacity (any non-terminal status).
	CountNonTerminalForAgent(ctx context.Context, agentID kernel.UUID) (int, error)

	// GetStaleAssigned retrieves deliveries still in Assigned whose
	// assignment happened before the cutoff.
	GetStaleAssigned(ctx context.Context, cutoff time.Time) ([]*delivery.Delivery, error)

	// AddTrackingPoint appends an entry to a delivery's location log.
	AddTrackingPoint(ctx context.Context, point *delivery.TrackingPoint) error

	// AddIssue files an issue against a delivery.
	AddIssue(ctx context.Context, issue *delivery.Issue) error

	// AddRating saves the customer rating for a delivery. Fails when the
	// delivery is already rated (one rating per delivery).
	AddRating(ctx context.Context, rating *delivery.Rating) error

	// GetRatingsForAgent retrieves all ratings given to the agent's
	// deliveries.
	GetRatingsForAgent(ctx context.Context, agentID kernel.UUID) ([]*delivery.Rating, error)
}
