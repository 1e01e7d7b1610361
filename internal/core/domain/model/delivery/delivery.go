package delivery

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// deliveryIDPrefix starts every public delivery identifier.
	deliveryIDPrefix = "DEL"
	// deliveryIDTimeLayout renders the creation minute inside the identifier.
	deliveryIDTimeLayout = "0601021504"
	// deliveryIDSuffixLen is the number of random characters at the end of
	// the identifier.
	deliveryIDSuffixLen = 4
	// deliveryIDSuffixCharset is the alphabet for the random suffix.
	deliveryIDSuffixCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

	// OTPLength is the number of digits in a handoff verification code.
	OTPLength = 6
)

// Domain errors for delivery operations.
var (
	// ErrDeliveryIsNotConstructed is returned when using an improperly
	// initialized Delivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery constructor")
	// ErrOTPMismatch is returned when a supplied OTP does not exactly match
	// the expected code. The delivery is left untouched.
	ErrOTPMismatch = errors.New("OTP does not match")
)

// Delivery is the aggregate root for a single order handoff. It owns the
// status state machine, the two handoff OTPs, the fee/payout amounts and
// the milestone timestamps.
//
// Invariants:
//   - Exactly one delivery exists per order (enforced by a uniqueness
//     constraint on the order reference at the persistence layer).
//   - The assigned agent never changes after creation.
//   - Status only moves forward along the defined chain or to a side exit;
//     terminal states are immutable.
//   - Milestone timestamps are recorded once and never overwritten.
//   - Fee and payout are non-negative, rounded to two decimal places.
//
// All transition operations are guarded: an attempt from the wrong state
// or with a wrong OTP returns an error and mutates nothing.
type Delivery struct {
	id         kernel.UUID
	deliveryID string
	orderID    kernel.UUID
	agentID    kernel.UUID

	status Status

	deliveryFee float64
	agentPayout float64

	storePickupOTP      string
	customerDeliveryOTP string

	storePickupVerified      bool
	customerDeliveryVerified bool

	assignedAt       time.Time
	acceptedAt       *time.Time
	arrivedAtStoreAt *time.Time
	pickedUpAt       *time.Time
	deliveredAt      *time.Time

	guard guard.ConstructorGuard
}

// GenerateDeliveryID produces a public delivery identifier of the form
// DEL-YYMMDDHHMM-XXXX, where XXXX is a random suffix over [A-Z0-9].
func GenerateDeliveryID(now time.Time) string {
	var sb strings.Builder
	for range deliveryIDSuffixLen {
		sb.WriteByte(deliveryIDSuffixCharset[rand.IntN(len(deliveryIDSuffixCharset))]) //nolint:gosec // identifier, not a secret
	}
	return fmt.Sprintf("%s-%s-%s", deliveryIDPrefix, now.Format(deliveryIDTimeLayout), sb.String())
}

// GenerateOTP produces a fresh 6-digit numeric handoff code. The store
// pickup and customer delivery codes are generated independently;
// collisions between the two are permitted.
func GenerateOTP() string {
	return fmt.Sprintf("%0*d", OTPLength, rand.IntN(1000000)) //nolint:gosec // matches the source system's code strength
}

// NewDelivery creates a delivery in the Assigned state. The public
// delivery identifier and both OTPs are generated here; fee and payout are
// supplied by the caller (see the fee calculator and its fallback policy).
//
// Parameters:
//   - id: internal identifier
//   - orderID: the order being delivered (one delivery per order)
//   - agentID: the assigned agent (immutable afterwards)
//   - deliveryFee, agentPayout: non-negative amounts in currency units
//   - assignedAt: assignment timestamp, recorded once
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	agentID kernel.UUID,
	deliveryFee float64,
	agentPayout float64,
	assignedAt time.Time,
) (*Delivery, error) {
	d := &Delivery{
		deliveryID:          GenerateDeliveryID(assignedAt),
		status:              StatusAssigned,
		storePickupOTP:      GenerateOTP(),
		customerDeliveryOTP: GenerateOTP(),
		assignedAt:          assignedAt,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setAgentID(agentID),
		d.setFee(deliveryFee, agentPayout),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a delivery aggregate from persistent
// storage, preserving its status, OTP state and milestone timestamps.
func RestoreDelivery(
	id kernel.UUID,
	deliveryID string,
	orderID kernel.UUID,
	agentID kernel.UUID,
	status Status,
	deliveryFee float64,
	agentPayout float64,
	storePickupOTP string,
	customerDeliveryOTP string,
	storePickupVerified bool,
	customerDeliveryVerified bool,
	assignedAt time.Time,
	acceptedAt *time.Time,
	arrivedAtStoreAt *time.Time,
	pickedUpAt *time.Time,
	deliveredAt *time.Time,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setDeliveryID(deliveryID),
		d.setOrderID(orderID),
		d.setAgentID(agentID),
		d.setStatus(status),
		d.setFee(deliveryFee, agentPayout),
		d.setOTPs(storePickupOTP, customerDeliveryOTP),
	); err != nil {
		return nil, err
	}

	d.storePickupVerified = storePickupVerified
	d.customerDeliveryVerified = customerDeliveryVerified
	d.assignedAt = assignedAt
	d.acceptedAt = acceptedAt
	d.arrivedAtStoreAt = arrivedAtStoreAt
	d.pickedUpAt = pickedUpAt
	d.deliveredAt = deliveredAt
	return d, nil
}

// IsEqual compares two deliveries by their internal identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// Validate checks that the delivery was created via a constructor.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// ID returns the internal identifier.
func (d *Delivery) ID() kernel.UUID {
	return d.id
}

// DeliveryID returns the public identifier (DEL-YYMMDDHHMM-XXXX).
func (d *Delivery) DeliveryID() string {
	return d.deliveryID
}

// OrderID returns the delivered order's identifier.
func (d *Delivery) OrderID() kernel.UUID {
	return d.orderID
}

// AgentID returns the assigned agent's identifier.
func (d *Delivery) AgentID() kernel.UUID {
	return d.agentID
}

// Status returns the current lifecycle state.
func (d *Delivery) Status() Status {
	return d.status
}

// DeliveryFee returns the fee charged for this delivery.
func (d *Delivery) DeliveryFee() float64 {
	return d.deliveryFee
}

// AgentPayout returns the agent's share of the fee.
func (d *Delivery) AgentPayout() float64 {
	return d.agentPayout
}

// StorePickupOTP returns the code the store reads back at pickup. It is
// communicated to the store out of band.
func (d *Delivery) StorePickupOTP() string {
	return d.storePickupOTP
}

// CustomerDeliveryOTP returns the code the customer reads back at
// handover. It is communicated to the customer out of band.
func (d *Delivery) CustomerDeliveryOTP() string {
	return d.customerDeliveryOTP
}

// StorePickupVerified reports whether the pickup OTP was verified.
func (d *Delivery) StorePickupVerified() bool {
	return d.storePickupVerified
}

// CustomerDeliveryVerified reports whether the handover OTP was verified.
func (d *Delivery) CustomerDeliveryVerified() bool {
	return d.customerDeliveryVerified
}

// AssignedAt returns the assignment timestamp.
func (d *Delivery) AssignedAt() time.Time {
	return d.assignedAt
}

// AcceptedAt returns when the agent accepted, or nil.
func (d *Delivery) AcceptedAt() *time.Time {
	return d.acceptedAt
}

// ArrivedAtStoreAt returns when the agent reached the store, or nil.
func (d *Delivery) ArrivedAtStoreAt() *time.Time {
	return d.arrivedAtStoreAt
}

// PickedUpAt returns when the parcel left the store, or nil.
func (d *Delivery) PickedUpAt() *time.Time {
	return d.pickedUpAt
}

// DeliveredAt returns when the customer handoff completed, or nil.
func (d *Delivery) DeliveredAt() *time.Time {
	return d.deliveredAt
}

// Accept marks the delivery as accepted by the agent.
// Valid only from Assigned; records acceptedAt.
func (d *Delivery) Accept(now time.Time) error {
	newStatus, err := d.status.Accept()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.acceptedAt = &now
	return nil
}

// ArriveAtStore marks the agent as arrived at the pickup store.
// Valid only from Accepted; records arrivedAtStoreAt.
func (d *Delivery) ArriveAtStore(now time.Time) error {
	newStatus, err := d.status.ArriveAtStore()
	if err != nil {
		return err
	}

	d.status = newStatus
	d.arrivedAtStoreAt = &now
	return nil
}

// Pickup verifies the store handoff and marks the parcel as picked up.
//
// Valid only from AtStore with an exactly matching store pickup OTP (no
// normalization). A wrong state yields ErrInvalidStatusTransition, a wrong
// code ErrOTPMismatch; in both cases nothing is mutated.
func (d *Delivery) Pickup(otp string, now time.Time) error {
	newStatus, err := d.status.Pickup()
	if err != nil {
		return err
	}
	if otp != d.storePickupOTP {
		return ErrOTPMismatch
	}

	d.status = newStatus
	d.storePickupVerified = true
	d.pickedUpAt = &now
	return nil
}

// MarkInTransit marks the parcel as on its way to the customer.
// Valid only from PickedUp.
func (d *Delivery) MarkInTransit() error {
	newStatus, err := d.status.StartTransit()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Complete verifies the customer handoff and marks the delivery as
// delivered.
//
// Valid from PickedUp or InTransit with an exactly matching customer
// delivery OTP. Records deliveredAt. The caller is responsible for
// updating the agent's counters in the same transaction.
func (d *Delivery) Complete(otp string, now time.Time) error {
	newStatus, err := d.status.Complete()
	if err != nil {
		return err
	}
	if otp != d.customerDeliveryOTP {
		return ErrOTPMismatch
	}

	d.status = newStatus
	d.customerDeliveryVerified = true
	d.deliveredAt = &now
	return nil
}

// Cancel calls off the delivery. Valid from any non-terminal state; no
// timestamp is captured. Callers may file an Issue record explaining the
// cancellation.
func (d *Delivery) Cancel() error {
	newStatus, err := d.status.Cancel()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

// Fail marks the delivery attempt as failed. Valid from any non-terminal
// state.
func (d *Delivery) Fail() error {
	newStatus, err := d.status.Fail()
	if err != nil {
		return err
	}

	d.status = newStatus
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setDeliveryID(deliveryID string) error {
	if deliveryID == "" {
		return errs.NewValueIsRequiredError("delivery id")
	}
	d.deliveryID = deliveryID
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setAgentID(agentID kernel.UUID) error {
	if err := agentID.Validate(); err != nil {
		return err
	}
	d.agentID = agentID
	return nil
}

func (d *Delivery) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	d.status = status
	return nil
}

func (d *Delivery) setFee(fee, payout float64) error {
	if fee < 0 {
		return errs.NewValueIsInvalidError("delivery fee")
	}
	if payout < 0 {
		return errs.NewValueIsInvalidError("agent payout")
	}
	d.deliveryFee = fee
	d.agentPayout = payout
	return nil
}

func (d *Delivery) setOTPs(storePickupOTP, customerDeliveryOTP string) error {
	if len(storePickupOTP) != OTPLength {
		return errs.NewValueIsInvalidError("store pickup OTP")
	}
	if len(customerDeliveryOTP) != OTPLength {
		return errs.NewValueIsInvalidError("customer delivery OTP")
	}
	d.storePickupOTP = storePickupOTP
	d.customerDeliveryOTP = customerDeliveryOTP
	return nil
}
