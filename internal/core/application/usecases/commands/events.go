package commands

import (
	"time"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
)

// statusChangedEvent builds the published data contract for a delivery
// whose status just changed. Publishing is best-effort and happens after
// the owning transaction commits.
func statusChangedEvent(d *delivery.Delivery, occurredAt time.Time) ports.DeliveryStatusChangedEvent {
	return ports.DeliveryStatusChangedEvent{
		DeliveryID: d.DeliveryID(),
		OrderID:    d.OrderID().String(),
		AgentID:    d.AgentID().String(),
		Status:     d.Status().String(),
		OccurredAt: occurredAt,
	}
}
