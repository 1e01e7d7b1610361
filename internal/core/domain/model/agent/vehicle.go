package agent

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// VehicleType identifies the vehicle an agent delivers with.
type VehicleType int

const (
	// VehicleUnknown represents an invalid or undefined vehicle type.
	VehicleUnknown VehicleType = iota
	VehicleBicycle
	VehicleScooter
	VehicleMotorcycle
	VehicleCar
	VehicleVan
)

func getVehicleTypeStrings() map[VehicleType]string {
	return map[VehicleType]string{
		VehicleUnknown:    "unknown",
		VehicleBicycle:    "bicycle",
		VehicleScooter:    "scooter",
		VehicleMotorcycle: "motorcycle",
		VehicleCar:        "car",
		VehicleVan:        "van",
	}
}

// Validate checks that the vehicle type is one of the defined kinds.
func (v VehicleType) Validate() error {
	if v == VehicleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type is invalid",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	if _, ok := getVehicleTypeStrings()[v]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("vehicle type is invalid",
			fmt.Errorf("%d is not a valid vehicle type", v))
	}
	return nil
}

// String returns the persisted name of the vehicle type.
func (v VehicleType) String() string {
	if str, ok := getVehicleTypeStrings()[v]; ok {
		return str
	}
	return "unknown"
}
