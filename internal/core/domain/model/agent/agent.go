package agent

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

const (
	// agentIDPrefix starts every public agent identifier.
	agentIDPrefix = "AGT"
	// agentIDDigits is the number of random digits after the prefix.
	agentIDDigits = 4

	// defaultMaxConcurrentOrders limits how many non-terminal deliveries a
	// fresh agent may carry at once.
	defaultMaxConcurrentOrders = 3
	// defaultServiceAreaRadiusKm is the service radius assigned to new agents.
	defaultServiceAreaRadiusKm = 10

	// RatingMin and RatingMax bound the agent's average rating.
	RatingMin = 0.0
	RatingMax = 5.0
)

// Domain errors for agent operations.
var (
	// ErrAgentIsNotConstructed is returned when using an improperly
	// initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrPhoneNumberIsRequired is returned when creating an agent without a
	// contact phone number.
	ErrPhoneNumberIsRequired = errs.NewValueIsRequiredError("phone number")
	// ErrNoActiveZipCoverage is returned when toggling availability while no
	// active ZIP coverage exists. The toggle is aborted with no partial
	// mutation.
	ErrNoActiveZipCoverage = errors.New("agent has no active ZIP coverage")
	// ErrDuplicateZipCoverage is returned when adding a coverage for a ZIP
	// code that already has an active record.
	ErrDuplicateZipCoverage = errors.New("agent already covers this ZIP code")
)

// Stats holds the derived performance counters persisted on the agent.
// They are recomputed from delivery history rather than mutated ad hoc.
type Stats struct {
	TotalDeliveries      int
	SuccessfulDeliveries int
	FailedDeliveries     int
	TotalEarnings        float64
	AverageRating        float64
}

// Agent is the aggregate root for a delivery courier. It owns the agent's
// identity, availability, vehicle and location data, ZIP coverage records,
// and derived performance counters.
//
// Key invariants:
//   - Availability can only be toggled while at least one active ZIP
//     coverage exists (ErrNoActiveZipCoverage otherwise, no mutation).
//   - ZIP coverages are unique per ZIP code and soft-deactivated, never
//     removed.
//   - Average rating stays within [0, 5].
//   - The public agent ID is immutable once assigned.
type Agent struct {
	id      kernel.UUID
	agentID string
	userID  kernel.UUID
	storeID kernel.UUID

	phoneNumber      string
	alternativePhone string

	status              Status
	isAvailable         bool
	maxConcurrentOrders int
	serviceAreaRadiusKm int

	vehicleType   VehicleType
	vehicleNumber string

	location           *kernel.GeoPoint
	lastLocationUpdate *time.Time

	stats Stats

	zipCoverages []*ZipCoverage

	guard guard.ConstructorGuard
}

// GenerateAgentID produces a candidate public agent identifier of the form
// "AGT" followed by four random digits. The generator is not collision-free;
// callers must retry on a uniqueness violation.
func GenerateAgentID() string {
	n := rand.IntN(10000) //nolint:gosec // identifier, not a secret
	return fmt.Sprintf("%s%0*d", agentIDPrefix, agentIDDigits, n)
}

// NewAgent creates a freshly registered agent. New agents start offline,
// unavailable, with default concurrency and service-radius limits, zeroed
// performance counters and no ZIP coverage.
//
// Parameters:
//   - id: internal identifier (must be a valid UUID)
//   - agentID: public identifier, usually from GenerateAgentID (must be non-empty)
//   - userID: the linked user account
//   - storeID: the agent's home store
//   - phoneNumber: contact number (must be non-empty)
//   - vehicleType: the agent's delivery vehicle
func NewAgent(
	id kernel.UUID,
	agentID string,
	userID kernel.UUID,
	storeID kernel.UUID,
	phoneNumber string,
	vehicleType VehicleType,
) (*Agent, error) {
	a := &Agent{
		status:              StatusOffline,
		isAvailable:         false,
		maxConcurrentOrders: defaultMaxConcurrentOrders,
		serviceAreaRadiusKm: defaultServiceAreaRadiusKm,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setAgentID(agentID),
		a.setUserID(userID),
		a.setStoreID(storeID),
		a.setPhoneNumber(phoneNumber),
		a.setVehicleType(vehicleType),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// RestoreAgent reconstructs an agent aggregate from persistent storage,
// including its availability, location, counters and coverage records. The
// restored agent behaves identically to one built through normal domain
// operations.
func RestoreAgent(
	id kernel.UUID,
	agentID string,
	userID kernel.UUID,
	storeID kernel.UUID,
	phoneNumber string,
	alternativePhone string,
	status Status,
	isAvailable bool,
	maxConcurrentOrders int,
	serviceAreaRadiusKm int,
	vehicleType VehicleType,
	vehicleNumber string,
	location *kernel.GeoPoint,
	lastLocationUpdate *time.Time,
	stats Stats,
	zipCoverages []*ZipCoverage,
) (*Agent, error) {
	a := &Agent{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setAgentID(agentID),
		a.setUserID(userID),
		a.setStoreID(storeID),
		a.setPhoneNumber(phoneNumber),
		a.setStatus(status),
		a.setMaxConcurrentOrders(maxConcurrentOrders),
		a.setServiceAreaRadiusKm(serviceAreaRadiusKm),
		a.setVehicleType(vehicleType),
		a.setLocation(location, lastLocationUpdate),
		a.setStats(stats),
		a.setZipCoverages(zipCoverages),
	); err != nil {
		return nil, err
	}

	a.alternativePhone = alternativePhone
	a.vehicleNumber = vehicleNumber
	a.isAvailable = isAvailable
	return a, nil
}

// IsEqual compares two agents by their internal identifiers.
func (a *Agent) IsEqual(other *Agent) bool {
	return other != nil && a.id.IsEqual(other.id)
}

// Validate checks that the agent was created via a constructor.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

// ID returns the internal identifier.
func (a *Agent) ID() kernel.UUID {
	return a.id
}

// AgentID returns the public identifier (AGT####).
func (a *Agent) AgentID() string {
	return a.agentID
}

// UserID returns the linked user account identifier.
func (a *Agent) UserID() kernel.UUID {
	return a.userID
}

// StoreID returns the agent's home store identifier.
func (a *Agent) StoreID() kernel.UUID {
	return a.storeID
}

// PhoneNumber returns the primary contact number.
func (a *Agent) PhoneNumber() string {
	return a.phoneNumber
}

// AlternativePhone returns the optional secondary contact number.
func (a *Agent) AlternativePhone() string {
	return a.alternativePhone
}

// Status returns the agent's current working state.
func (a *Agent) Status() Status {
	return a.status
}

// IsAvailable reports whether the agent has opted in to receive orders.
func (a *Agent) IsAvailable() bool {
	return a.isAvailable
}

// MaxConcurrentOrders returns the concurrency cap for non-terminal
// deliveries.
func (a *Agent) MaxConcurrentOrders() int {
	return a.maxConcurrentOrders
}

// ServiceAreaRadiusKm returns the agent's service radius in kilometres.
func (a *Agent) ServiceAreaRadiusKm() int {
	return a.serviceAreaRadiusKm
}

// VehicleType returns the agent's delivery vehicle kind.
func (a *Agent) VehicleType() VehicleType {
	return a.vehicleType
}

// VehicleNumber returns the optional vehicle registration.
func (a *Agent) VehicleNumber() string {
	return a.vehicleNumber
}

// Location returns the last reported position, or nil if the agent never
// reported one.
func (a *Agent) Location() *kernel.GeoPoint {
	return a.location
}

// LastLocationUpdate returns when the position was last reported.
func (a *Agent) LastLocationUpdate() *time.Time {
	return a.lastLocationUpdate
}

// Stats returns the derived performance counters.
func (a *Agent) Stats() Stats {
	return a.stats
}

// ZipCoverages returns a copy of all coverage records, active and inactive.
func (a *Agent) ZipCoverages() []*ZipCoverage {
	out := make([]*ZipCoverage, len(a.zipCoverages))
	copy(out, a.zipCoverages)
	return out
}

// HasActiveZipCoverage reports whether at least one coverage record is
// active.
func (a *Agent) HasActiveZipCoverage() bool {
	for _, c := range a.zipCoverages {
		if c.IsActive() {
			return true
		}
	}
	return false
}

// ToggleAvailability flips the agent's availability flag.
//
// The toggle is only permitted while the agent has at least one active ZIP
// coverage; otherwise ErrNoActiveZipCoverage is returned and nothing
// changes. Toggling also keeps the status in step: going available from
// offline activates the agent, going unavailable from active takes the
// agent offline.
//
// Returns the availability after the toggle.
func (a *Agent) ToggleAvailability() (bool, error) {
	if !a.HasActiveZipCoverage() {
		return a.isAvailable, ErrNoActiveZipCoverage
	}

	a.isAvailable = !a.isAvailable
	if a.isAvailable && a.status == StatusOffline {
		a.status = StatusActive
	} else if !a.isAvailable && a.status == StatusActive {
		a.status = StatusOffline
	}

	return a.isAvailable, nil
}

// ChangeStatus moves the agent to the given working state.
func (a *Agent) ChangeStatus(status Status) error {
	return a.setStatus(status)
}

// AddZipCoverage claims a new ZIP code for this agent, or reactivates a
// previously deactivated claim for the same code. An already active claim
// yields ErrDuplicateZipCoverage.
func (a *Agent) AddZipCoverage(zipCode string, feeOverride *float64) error {
	for _, c := range a.zipCoverages {
		if c.ZipCode() != zipCode {
			continue
		}
		if c.IsActive() {
			return ErrDuplicateZipCoverage
		}
		return c.Activate(feeOverride)
	}

	coverage, err := NewZipCoverage(kernel.NewUUID(), zipCode, feeOverride)
	if err != nil {
		return err
	}

	a.zipCoverages = append(a.zipCoverages, coverage)
	return nil
}

// DeactivateZipCoverage soft-disables the claim for the given ZIP code.
// The record is kept for delivery history.
func (a *Agent) DeactivateZipCoverage(zipCode string) error {
	for _, c := range a.zipCoverages {
		if c.ZipCode() == zipCode {
			c.Deactivate()
			return nil
		}
	}
	return errs.NewObjectNotFoundError("zipCode", zipCode)
}

// UpdateLocation records the agent's current position and the time it was
// reported.
func (a *Agent) UpdateLocation(point kernel.GeoPoint, now time.Time) error {
	if err := point.Validate(); err != nil {
		return err
	}

	a.location = &point
	a.lastLocationUpdate = &now
	return nil
}

// CanAcceptOrders reports whether the agent may take another delivery
// given the number of deliveries currently in a non-terminal state.
func (a *Agent) CanAcceptOrders(activeDeliveries int) bool {
	return a.isAvailable &&
		a.status == StatusActive &&
		activeDeliveries < a.maxConcurrentOrders
}

// RecordCompletedDelivery bumps the delivery counters after a successful
// handoff. Full history recomputation via ApplyStats supersedes these
// increments on the next aggregation pass.
func (a *Agent) RecordCompletedDelivery() {
	a.stats.TotalDeliveries++
	a.stats.SuccessfulDeliveries++
}

// ApplyStats replaces the derived counters with freshly recomputed values.
func (a *Agent) ApplyStats(stats Stats) error {
	return a.setStats(stats)
}

// SuccessRate returns the percentage of total deliveries completed
// successfully, rounded to two decimal places. Zero when the agent has no
// deliveries yet.
func (a *Agent) SuccessRate() float64 {
	if a.stats.TotalDeliveries == 0 {
		return 0
	}
	rate := float64(a.stats.SuccessfulDeliveries) / float64(a.stats.TotalDeliveries) * 100
	return float64(int(rate*100+0.5)) / 100
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Agent) setAgentID(agentID string) error {
	if agentID == "" {
		return errs.NewValueIsRequiredError("agent id")
	}
	a.agentID = agentID
	return nil
}

func (a *Agent) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	a.userID = userID
	return nil
}

func (a *Agent) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return err
	}
	a.storeID = storeID
	return nil
}

func (a *Agent) setPhoneNumber(phoneNumber string) error {
	if phoneNumber == "" {
		return ErrPhoneNumberIsRequired
	}
	a.phoneNumber = phoneNumber
	return nil
}

func (a *Agent) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	a.status = status
	return nil
}

func (a *Agent) setMaxConcurrentOrders(limit int) error {
	if limit < 0 {
		return errs.NewValueIsInvalidError("max concurrent orders")
	}
	a.maxConcurrentOrders = limit
	return nil
}

func (a *Agent) setServiceAreaRadiusKm(radius int) error {
	if radius < 0 {
		return errs.NewValueIsInvalidError("service area radius")
	}
	a.serviceAreaRadiusKm = radius
	return nil
}

func (a *Agent) setVehicleType(vehicleType VehicleType) error {
	if err := vehicleType.Validate(); err != nil {
		return err
	}
	a.vehicleType = vehicleType
	return nil
}

func (a *Agent) setLocation(location *kernel.GeoPoint, lastUpdate *time.Time) error {
	if location == nil {
		return nil
	}
	if err := location.Validate(); err != nil {
		return err
	}
	a.location = location
	a.lastLocationUpdate = lastUpdate
	return nil
}

func (a *Agent) setStats(stats Stats) error {
	if stats.TotalDeliveries < 0 || stats.SuccessfulDeliveries < 0 || stats.FailedDeliveries < 0 {
		return errs.NewValueIsInvalidError("delivery counters")
	}
	if stats.TotalEarnings < 0 {
		return errs.NewValueIsInvalidError("total earnings")
	}
	if stats.AverageRating < RatingMin || stats.AverageRating > RatingMax {
		return errs.NewValueIsOutOfRangeError("average rating", stats.AverageRating, RatingMin, RatingMax)
	}
	a.stats = stats
	return nil
}

func (a *Agent) setZipCoverages(coverages []*ZipCoverage) error {
	for _, c := range coverages {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	a.zipCoverages = make([]*ZipCoverage, len(coverages))
	copy(a.zipCoverages, coverages)
	return nil
}
