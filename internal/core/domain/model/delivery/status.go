package delivery

import (
	"errors"
	"fmt"

	"dispatch/internal/pkg/errs"
)

// ErrInvalidStatusTransition is returned when an operation is attempted
// from a status that does not permit it. Callers treat it as a retryable
// business failure, not a fault: the delivery is left untouched.
var ErrInvalidStatusTransition = errors.New("delivery status transition is not allowed")

// Status represents the lifecycle state of a delivery. It implements a
// state machine with a strict forward chain and two side exits:
//
//	Assigned -> Accepted -> AtStore -> PickedUp -> InTransit -> Delivered
//
// Complete is also allowed directly from PickedUp, so InTransit may be
// skipped on handover. Cancelled and Failed are reachable from every
// non-terminal state. Delivered, Cancelled and Failed are terminal: no
// further transitions are permitted.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAssigned is the initial state when an order is matched to an agent.
	StatusAssigned

	// StatusAccepted means the agent has accepted the delivery.
	StatusAccepted

	// StatusAtStore means the agent has arrived at the pickup store.
	StatusAtStore

	// StatusPickedUp means the parcel left the store after OTP verification.
	StatusPickedUp

	// StatusInTransit means the parcel is on its way to the customer.
	StatusInTransit

	// StatusDelivered means the customer handoff was OTP-verified. Terminal.
	StatusDelivered

	// StatusCancelled means the delivery was called off. Terminal.
	StatusCancelled

	// StatusFailed means the delivery attempt failed. Terminal.
	StatusFailed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:   "unknown",
		StatusAssigned:  "assigned",
		StatusAccepted:  "accepted",
		StatusAtStore:   "at_store",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
		StatusFailed:    "failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusAssigned:  "assigned",
		StatusAccepted:  "accepted",
		StatusAtStore:   "at_store",
		StatusPickedUp:  "picked_up",
		StatusInTransit: "in_transit",
		StatusDelivered: "delivered",
		StatusCancelled: "cancelled",
		StatusFailed:    "failed",
	}
}

// Validate checks that the status is one of the defined delivery states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid delivery status", s))
	}
	return nil
}

// String returns the persisted name of the status. It implements
// fmt.Stringer and is safe to call on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled || s == StatusFailed
}

// IsActive reports whether the delivery occupies agent capacity: accepted
// and moving, but not yet handed over.
func (s Status) IsActive() bool {
	switch s {
	case StatusAccepted, StatusAtStore, StatusPickedUp, StatusInTransit:
		return true
	default:
		return false
	}
}

// Accept transitions Assigned -> Accepted.
func (s Status) Accept() (Status, error) {
	if s != StatusAssigned {
		return 0, transitionError("accept", s)
	}
	return StatusAccepted, nil
}

// ArriveAtStore transitions Accepted -> AtStore.
func (s Status) ArriveAtStore() (Status, error) {
	if s != StatusAccepted {
		return 0, transitionError("arrive at store", s)
	}
	return StatusAtStore, nil
}

// Pickup transitions AtStore -> PickedUp. OTP verification happens on the
// Delivery aggregate before the transition is applied.
func (s Status) Pickup() (Status, error) {
	if s != StatusAtStore {
		return 0, transitionError("pick up", s)
	}
	return StatusPickedUp, nil
}

// StartTransit transitions PickedUp -> InTransit.
func (s Status) StartTransit() (Status, error) {
	if s != StatusPickedUp {
		return 0, transitionError("start transit", s)
	}
	return StatusInTransit, nil
}

// Complete transitions PickedUp or InTransit -> Delivered. An agent may
// hand over directly from PickedUp without marking transit first.
func (s Status) Complete() (Status, error) {
	if s != StatusPickedUp && s != StatusInTransit {
		return 0, transitionError("complete", s)
	}
	return StatusDelivered, nil
}

// Cancel transitions any non-terminal status -> Cancelled.
func (s Status) Cancel() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return 0, transitionError("cancel", s)
	}
	return StatusCancelled, nil
}

// Fail transitions any non-terminal status -> Failed.
func (s Status) Fail() (Status, error) {
	if s.IsTerminal() || s.Validate() != nil {
		return 0, transitionError("fail", s)
	}
	return StatusFailed, nil
}

func transitionError(action string, from Status) error {
	return fmt.Errorf("%w: cannot %s from %s", ErrInvalidStatusTransition, action, from)
}
