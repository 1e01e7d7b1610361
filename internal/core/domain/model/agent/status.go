package agent

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the working state of a delivery agent.
//
// Status only gates order assignment (an agent receives work while Active
// and available); it does not form a transition chain of its own.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusActive means the agent is on shift and may receive orders.
	StatusActive

	// StatusOffline means the agent is off shift.
	StatusOffline

	// StatusOnBreak means the agent is temporarily unavailable.
	StatusOnBreak

	// StatusBusy means the agent is at capacity with current orders.
	StatusBusy
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown: "unknown",
		StatusActive:  "active",
		StatusOffline: "offline",
		StatusOnBreak: "on_break",
		StatusBusy:    "busy",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusActive:  "active",
		StatusOffline: "offline",
		StatusOnBreak: "on_break",
		StatusBusy:    "busy",
	}
}

// Validate checks that the status is one of the defined agent states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid",
			fmt.Errorf("%d is not a valid agent status", s))
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
