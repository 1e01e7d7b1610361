package services

import (
	"math"

	"dispatch/internal/core/domain/model/settings"
)

// FeeCalculator derives the delivery fee and agent payout from the pricing
// settings and the order's distance/value inputs. It is a pure domain
// service: the settings snapshot is passed in explicitly on every call.
//
// Fee rules by calculation method:
//   - fixed: fee = base fee.
//   - distance: fee = base fee + distance × per-km rate. Falls back to
//     fixed when no positive distance is supplied.
//   - order_value: orders at or above the free-delivery threshold ship for
//     0 immediately (no clamping). Below it the base fee is discounted by
//     min(0.5, value / (2 × threshold)). Falls back to fixed when no
//     positive order value is supplied.
//
// After the method-specific computation the fee is clamped into
// [minimum, maximum]. Independently of the method, a supplied order value
// at or above the threshold forces the final fee to 0.
type FeeCalculator struct{}

// NewFeeCalculator creates a fee calculator.
func NewFeeCalculator() FeeCalculator {
	return FeeCalculator{}
}

// CalculateDeliveryFee computes the delivery fee for the given inputs.
// distanceKm and orderValue are optional; nil means the input is not
// available for this order. The result is rounded to two decimal places.
func (c FeeCalculator) CalculateDeliveryFee(
	cfg settings.DeliverySettings, distanceKm *float64, orderValue *float64,
) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	var fee float64
	switch {
	case cfg.CalculationMethod() == settings.MethodDistance && distanceKm != nil && *distanceKm > 0:
		fee = cfg.BaseDeliveryFee() + *distanceKm*cfg.FeePerKm()

	case cfg.CalculationMethod() == settings.MethodOrderValue && orderValue != nil && *orderValue > 0:
		if *orderValue >= cfg.FreeDeliveryThreshold() {
			return 0, nil
		}
		discountFactor := math.Min(0.5, *orderValue/(cfg.FreeDeliveryThreshold()*2))
		fee = cfg.BaseDeliveryFee() * (1 - discountFactor)

	default:
		fee = cfg.BaseDeliveryFee()
	}

	fee = math.Max(fee, cfg.MinimumDeliveryFee())
	fee = math.Min(fee, cfg.MaximumDeliveryFee())

	// Free delivery applies to every calculation method when the order
	// value clears the threshold.
	if orderValue != nil && *orderValue >= cfg.FreeDeliveryThreshold() {
		return 0, nil
	}

	return round2(fee), nil
}

// CalculateAgentPayout computes the agent's share of a delivery fee,
// rounded to two decimal places.
func (c FeeCalculator) CalculateAgentPayout(cfg settings.DeliverySettings, fee float64) (float64, error) {
	if err := cfg.Validate(); err != nil {
		return 0, err
	}

	return round2(fee * cfg.AgentPayoutPercentage() / 100), nil
}

// round2 rounds a monetary amount to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
