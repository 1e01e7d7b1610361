package http

import (
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
)

// Request bodies for the dispatch API. OTP codes are validated as exactly
// six digits at this layer; matching against the stored code happens on
// the aggregate.
type (
	// CreateAgentRequest registers a new delivery agent.
	CreateAgentRequest struct {
		UserID      string `json:"user_id"      validate:"required,uuid"`
		StoreID     string `json:"store_id"     validate:"required,uuid"`
		PhoneNumber string `json:"phone_number" validate:"required,min=7,max=32"`
		VehicleType string `json:"vehicle_type" validate:"required,oneof=bicycle scooter motorcycle car van"`
	}

	// UpdateLocationRequest reports the agent's current position.
	UpdateLocationRequest struct {
		Latitude  float64 `json:"latitude"  validate:"min=-90,max=90"`
		Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	}

	// AddZipCoverageRequest adds or reactivates a served ZIP code.
	AddZipCoverageRequest struct {
		ZipCode     string   `json:"zip_code"     validate:"required,min=3,max=10"`
		FeeOverride *float64 `json:"fee_override" validate:"omitempty,gte=0"`
	}

	// AssignOrderRequest hands an order over to an available agent.
	AssignOrderRequest struct {
		OrderID    string   `json:"order_id"    validate:"required,uuid"`
		DistanceKm *float64 `json:"distance_km" validate:"omitempty,gte=0"`
		OrderValue *float64 `json:"order_value" validate:"omitempty,gte=0"`
	}

	// OTPRequest carries the six-digit code for pickup or completion.
	OTPRequest struct {
		OTP string `json:"otp" validate:"required,len=6,numeric"`
	}

	// CancelDeliveryRequest abandons a delivery with a mandatory reason.
	CancelDeliveryRequest struct {
		Reason string `json:"reason" validate:"required,min=3,max=500"`
	}

	// ReportIssueRequest files a problem against a delivery.
	ReportIssueRequest struct {
		IssueType   string `json:"issue_type"  validate:"required,oneof=delay damage location customer traffic vehicle weather other"`
		Description string `json:"description" validate:"required,min=3,max=1000"`
	}

	// RateDeliveryRequest records the customer's score for a delivery.
	RateDeliveryRequest struct {
		Rating   int    `json:"rating"   validate:"required,min=1,max=5"`
		Feedback string `json:"feedback" validate:"max=1000"`
	}
)

// ErrorResponse is the uniform error payload of the API.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// AvailabilityResponse reports the agent's availability after a toggle.
type AvailabilityResponse struct {
	IsAvailable bool `json:"is_available"`
}

func vehicleTypeFromString(value string) agent.VehicleType {
	switch value {
	case "bicycle":
		return agent.VehicleBicycle
	case "scooter":
		return agent.VehicleScooter
	case "motorcycle":
		return agent.VehicleMotorcycle
	case "car":
		return agent.VehicleCar
	case "van":
		return agent.VehicleVan
	default:
		return agent.VehicleUnknown
	}
}

func issueTypeFromString(value string) delivery.IssueType {
	switch value {
	case "delay":
		return delivery.IssueDelay
	case "damage":
		return delivery.IssueDamage
	case "location":
		return delivery.IssueWrongLocation
	case "customer":
		return delivery.IssueCustomerUnavailable
	case "traffic":
		return delivery.IssueTraffic
	case "vehicle":
		return delivery.IssueVehicle
	case "weather":
		return delivery.IssueWeather
	case "other":
		return delivery.IssueOther
	default:
		return delivery.IssueUnknown
	}
}
