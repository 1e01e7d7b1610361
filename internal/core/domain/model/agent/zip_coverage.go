package agent

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrZipCodeIsRequired is returned when creating a coverage without a ZIP code.
	ErrZipCodeIsRequired = errs.NewValueIsRequiredError("zip code")
	// ErrZipCoverageIsNotConstructed is returned when using an improperly
	// initialized ZipCoverage.
	ErrZipCoverageIsNotConstructed = errors.New("ZipCoverage must be created via NewZipCoverage constructor")
)

// ZipCoverage is a geographic service-area claim tying an agent to a
// postal-code area. Coverages are unique per ZIP code within an agent and
// are soft-deactivated rather than deleted so delivery history keeps its
// area context.
//
// An optional fee override lets a coverage area charge a different delivery
// fee than the global settings.
type ZipCoverage struct {
	id          kernel.UUID
	zipCode     string
	isActive    bool
	feeOverride *float64

	guard guard.ConstructorGuard
}

// NewZipCoverage creates an active coverage for the given ZIP code.
// feeOverride may be nil to use the global fee schedule.
func NewZipCoverage(id kernel.UUID, zipCode string, feeOverride *float64) (*ZipCoverage, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if zipCode == "" {
		return nil, ErrZipCodeIsRequired
	}
	if feeOverride != nil && *feeOverride < 0 {
		return nil, errs.NewValueIsInvalidError("fee override")
	}

	return &ZipCoverage{
		id:          id,
		zipCode:     zipCode,
		isActive:    true,
		feeOverride: feeOverride,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestoreZipCoverage reconstructs a coverage from persistent storage,
// preserving its activation state.
func RestoreZipCoverage(
	id kernel.UUID, zipCode string, isActive bool, feeOverride *float64,
) (*ZipCoverage, error) {
	coverage, err := NewZipCoverage(id, zipCode, feeOverride)
	if err != nil {
		return nil, err
	}

	coverage.isActive = isActive
	return coverage, nil
}

// Validate checks that the coverage was created via its constructor.
func (z *ZipCoverage) Validate() error {
	if z == nil {
		return ErrZipCoverageIsNotConstructed
	}
	return z.guard.Validate(ErrZipCoverageIsNotConstructed)
}

// ID returns the coverage identifier.
func (z *ZipCoverage) ID() kernel.UUID {
	return z.id
}

// ZipCode returns the postal-code area this coverage claims.
func (z *ZipCoverage) ZipCode() string {
	return z.zipCode
}

// IsActive reports whether the coverage currently counts toward the
// agent's service area.
func (z *ZipCoverage) IsActive() bool {
	return z.isActive
}

// FeeOverride returns the area-specific delivery fee, or nil when the
// global settings apply.
func (z *ZipCoverage) FeeOverride() *float64 {
	return z.feeOverride
}

// Activate re-enables a previously deactivated coverage and replaces its
// fee override.
func (z *ZipCoverage) Activate(feeOverride *float64) error {
	if feeOverride != nil && *feeOverride < 0 {
		return errs.NewValueIsInvalidError("fee override")
	}

	z.isActive = true
	z.feeOverride = feeOverride
	return nil
}

// Deactivate soft-disables the coverage. The record is retained for
// delivery history.
func (z *ZipCoverage) Deactivate() {
	z.isActive = false
}
