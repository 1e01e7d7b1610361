package delivery

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// RatingMin is the lowest score a customer can give.
	RatingMin = 1
	// RatingMax is the highest score a customer can give.
	RatingMax = 5
)

// ErrRatingIsNotConstructed is returned when using an improperly
// initialized Rating.
var ErrRatingIsNotConstructed = errors.New("Rating must be created via NewRating constructor")

// Rating is the customer's score for a completed delivery. At most one
// rating exists per delivery (enforced by a uniqueness constraint at the
// persistence layer). Creating a rating triggers recomputation of the
// agent's average rating.
type Rating struct {
	id         kernel.UUID
	deliveryID kernel.UUID
	value      int
	feedback   string

	guard guard.ConstructorGuard
}

// NewRating creates a rating in [1, 5] with optional free-text feedback.
func NewRating(id kernel.UUID, deliveryID kernel.UUID, value int, feedback string) (*Rating, error) {
	if err := errors.Join(id.Validate(), deliveryID.Validate()); err != nil {
		return nil, err
	}
	if value < RatingMin || value > RatingMax {
		return nil, errs.NewValueIsOutOfRangeError("rating", value, RatingMin, RatingMax)
	}

	return &Rating{
		id:         id,
		deliveryID: deliveryID,
		value:      value,
		feedback:   feedback,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate checks that the rating was created via its constructor.
func (r *Rating) Validate() error {
	if r == nil {
		return ErrRatingIsNotConstructed
	}
	return r.guard.Validate(ErrRatingIsNotConstructed)
}

// ID returns the rating identifier.
func (r *Rating) ID() kernel.UUID {
	return r.id
}

// DeliveryID returns the rated delivery's identifier.
func (r *Rating) DeliveryID() kernel.UUID {
	return r.deliveryID
}

// Value returns the score in [1, 5].
func (r *Rating) Value() int {
	return r.value
}

// Feedback returns the optional free-text comment.
func (r *Rating) Feedback() string {
	return r.feedback
}
