// Package settings holds the delivery pricing configuration. The
// configuration is stored as a single row, loaded once per operation via a
// get-or-create repository, and passed explicitly into the fee calculator;
// it is never consulted as ambient global state.
package settings

import (
	"errors"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// CalculationMethod selects how the delivery fee is derived.
type CalculationMethod string

const (
	// MethodFixed charges the base fee for every delivery.
	MethodFixed CalculationMethod = "fixed"
	// MethodDistance charges the base fee plus a per-kilometre rate.
	MethodDistance CalculationMethod = "distance"
	// MethodOrderValue discounts the base fee for larger orders and waives
	// it entirely above the free-delivery threshold.
	MethodOrderValue CalculationMethod = "order_value"
)

// Default values applied when no settings row exists yet.
const (
	DefaultBaseDeliveryFee       = 40.00
	DefaultFeePerKm              = 5.00
	DefaultMinimumDeliveryFee    = 30.00
	DefaultMaximumDeliveryFee    = 150.00
	DefaultFreeDeliveryThreshold = 500.00
	DefaultAgentPayoutPercentage = 80.00
)

// ErrSettingsAreNotConstructed is returned when validating a zero-value
// DeliverySettings instance.
var ErrSettingsAreNotConstructed = errors.New(
	"DeliverySettings must be created via NewDeliverySettings or DefaultDeliverySettings")

// DeliverySettings is an immutable snapshot of the pricing configuration.
type DeliverySettings struct {
	calculationMethod     CalculationMethod
	baseDeliveryFee       float64
	feePerKm              float64
	minimumDeliveryFee    float64
	maximumDeliveryFee    float64
	freeDeliveryThreshold float64
	agentPayoutPercentage float64

	guard guard.ConstructorGuard
}

// Validate reports whether the method is one of the known calculation
// methods.
func (m CalculationMethod) Validate() error {
	switch m {
	case MethodFixed, MethodDistance, MethodOrderValue:
		return nil
	default:
		return errs.NewValueIsInvalidError("calculation method")
	}
}

// NewDeliverySettings creates a validated settings snapshot.
// Monetary amounts must be non-negative, the maximum fee must not be below
// the minimum, and the payout percentage must lie within [0, 100].
func NewDeliverySettings(
	method CalculationMethod,
	baseDeliveryFee, feePerKm, minimumDeliveryFee, maximumDeliveryFee float64,
	freeDeliveryThreshold, agentPayoutPercentage float64,
) (DeliverySettings, error) {
	if err := method.Validate(); err != nil {
		return DeliverySettings{}, err
	}
	if baseDeliveryFee < 0 {
		return DeliverySettings{}, errs.NewValueIsInvalidError("base delivery fee")
	}
	if feePerKm < 0 {
		return DeliverySettings{}, errs.NewValueIsInvalidError("fee per km")
	}
	if minimumDeliveryFee < 0 || maximumDeliveryFee < minimumDeliveryFee {
		return DeliverySettings{}, errs.NewValueIsInvalidError("delivery fee bounds")
	}
	if freeDeliveryThreshold < 0 {
		return DeliverySettings{}, errs.NewValueIsInvalidError("free delivery threshold")
	}
	if agentPayoutPercentage < 0 || agentPayoutPercentage > 100 {
		return DeliverySettings{}, errs.NewValueIsOutOfRangeError(
			"agent payout percentage", agentPayoutPercentage, 0, 100)
	}

	return DeliverySettings{
		calculationMethod:     method,
		baseDeliveryFee:       baseDeliveryFee,
		feePerKm:              feePerKm,
		minimumDeliveryFee:    minimumDeliveryFee,
		maximumDeliveryFee:    maximumDeliveryFee,
		freeDeliveryThreshold: freeDeliveryThreshold,
		agentPayoutPercentage: agentPayoutPercentage,
		guard:                 guard.NewConstructorGuard(),
	}, nil
}

// DefaultDeliverySettings returns the settings used when no configuration
// row exists yet: fixed pricing with the stock fee schedule.
func DefaultDeliverySettings() DeliverySettings {
	s, _ := NewDeliverySettings(
		MethodFixed,
		DefaultBaseDeliveryFee,
		DefaultFeePerKm,
		DefaultMinimumDeliveryFee,
		DefaultMaximumDeliveryFee,
		DefaultFreeDeliveryThreshold,
		DefaultAgentPayoutPercentage,
	)
	return s
}

// Validate returns ErrSettingsAreNotConstructed for zero-value instances.
func (s DeliverySettings) Validate() error {
	return s.guard.Validate(ErrSettingsAreNotConstructed)
}

// CalculationMethod returns the configured fee calculation method.
func (s DeliverySettings) CalculationMethod() CalculationMethod {
	return s.calculationMethod
}

// BaseDeliveryFee returns the flat fee applied before adjustments.
func (s DeliverySettings) BaseDeliveryFee() float64 {
	return s.baseDeliveryFee
}

// FeePerKm returns the per-kilometre surcharge for distance pricing.
func (s DeliverySettings) FeePerKm() float64 {
	return s.feePerKm
}

// MinimumDeliveryFee returns the lower clamp applied to computed fees.
func (s DeliverySettings) MinimumDeliveryFee() float64 {
	return s.minimumDeliveryFee
}

// MaximumDeliveryFee returns the upper clamp applied to computed fees.
func (s DeliverySettings) MaximumDeliveryFee() float64 {
	return s.maximumDeliveryFee
}

// FreeDeliveryThreshold returns the order value above which delivery is
// free.
func (s DeliverySettings) FreeDeliveryThreshold() float64 {
	return s.freeDeliveryThreshold
}

// AgentPayoutPercentage returns the share of the fee paid to the agent.
func (s DeliverySettings) AgentPayoutPercentage() float64 {
	return s.agentPayoutPercentage
}
