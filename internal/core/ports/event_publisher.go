package ports

import (
	"context"
	"time"
)

// DeliveryStatusChangedEvent is the data contract published after a
// delivery transition commits. It carries identifiers and the new status
// only; OTP codes and notification transport are out of scope.
type DeliveryStatusChangedEvent struct {
	DeliveryID string    `json:"delivery_id"`
	OrderID    string    `json:"order_id"`
	AgentID    string    `json:"agent_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// EventPublisher emits delivery lifecycle events to interested
// collaborators. Publishing happens after the owning transaction commits
// and is best-effort: a publish failure never rolls back the transition.
type EventPublisher interface {
	PublishDeliveryStatusChanged(ctx context.Context, event DeliveryStatusChangedEvent) error
}
