// Package delivery contains the Delivery aggregate and its owned records:
// the status state machine with OTP-verified pickup and handover, the
// append-only tracking log, reported issues and the customer rating.
package delivery
