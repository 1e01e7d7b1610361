// Package http exposes the dispatch API over echo. The surface is thin:
// handlers bind and validate requests, translate them into commands or
// queries and map errors onto HTTP statuses. All business rules live in
// the domain and application layers.
package http

import (
	"net/http"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Handlers bundles the command and query handlers the server dispatches to.
type Handlers struct {
	CreateAgent           commands.CreateAgentCommandHandler
	ToggleAvailability    commands.ToggleAvailabilityCommandHandler
	UpdateLocation        commands.UpdateLocationCommandHandler
	AddZipCoverage        commands.AddZipCoverageCommandHandler
	RemoveZipCoverage     commands.RemoveZipCoverageCommandHandler
	AssignOrder           commands.AssignOrderCommandHandler
	AcceptDelivery        commands.AcceptDeliveryCommandHandler
	ArriveAtStore         commands.ArriveAtStoreCommandHandler
	VerifyPickup          commands.VerifyPickupCommandHandler
	StartTransit          commands.StartTransitCommandHandler
	CompleteDelivery      commands.CompleteDeliveryCommandHandler
	CancelDelivery        commands.CancelDeliveryCommandHandler
	FailDelivery          commands.FailDeliveryCommandHandler
	ReportIssue           commands.ReportIssueCommandHandler
	RateDelivery          commands.RateDeliveryCommandHandler
	GetAgentDashboard     queries.GetAgentDashboardQueryHandler
	GetAgentEarnings      queries.GetAgentEarningsQueryHandler
	GetDeliveryTracking   queries.GetDeliveryTrackingQueryHandler
}

// Server coordinates between HTTP requests and application use cases.
type Server struct {
	handlers Handlers
}

// NewServer creates a new HTTP server with the required handlers.
func NewServer(handlers Handlers) *Server {
	return &Server{handlers: handlers}
}

// RegisterRoutes wires the API routes onto the echo instance and installs
// the request validator.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.Validator = NewRequestValidator()

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")

	api.POST("/agents", s.CreateAgent)
	api.POST("/agents/:id/availability", s.ToggleAvailability)
	api.POST("/agents/:id/location", s.UpdateLocation)
	api.POST("/agents/:id/coverage", s.AddZipCoverage)
	api.DELETE("/agents/:id/coverage/:zip", s.RemoveZipCoverage)
	api.GET("/agents/:id/dashboard", s.GetAgentDashboard)
	api.GET("/agents/:id/earnings", s.GetAgentEarnings)

	api.POST("/deliveries/assign", s.AssignOrder)
	api.POST("/deliveries/:id/accept", s.AcceptDelivery)
	api.POST("/deliveries/:id/arrive", s.ArriveAtStore)
	api.POST("/deliveries/:id/pickup", s.VerifyPickup)
	api.POST("/deliveries/:id/transit", s.StartTransit)
	api.POST("/deliveries/:id/complete", s.CompleteDelivery)
	api.POST("/deliveries/:id/cancel", s.CancelDelivery)
	api.POST("/deliveries/:id/fail", s.FailDelivery)
	api.POST("/deliveries/:id/issues", s.ReportIssue)
	api.POST("/deliveries/:id/rating", s.RateDelivery)

	api.GET("/tracking/:deliveryID", s.GetDeliveryTracking)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// CreateAgent handles POST /api/v1/agents - registers a delivery agent.
func (s *Server) CreateAgent(ctx echo.Context) error {
	var request CreateAgentRequest
	if err := bind(ctx, &request); err != nil {
		return err
	}

	userID, err := kernel.UUIDFromString(request.UserID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	storeID, err := kernel.UUIDFromString(request.StoreID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewCreateAgentCommand(
		userID, storeID, request.PhoneNumber, vehicleTypeFromString(request.VehicleType),
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.CreateAgent.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]string{"id": cmd.AgentID().String()})
}

// ToggleAvailability handles POST /api/v1/agents/:id/availability.
func (s *Server) ToggleAvailability(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewToggleAvailabilityCommand(agentID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	available, err := s.handlers.ToggleAvailability.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.JSON(http.StatusOK, AvailabilityResponse{IsAvailable: available})
}

// UpdateLocation handles POST /api/v1/agents/:id/location.
func (s *Server) UpdateLocation(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request UpdateLocationRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	point, err := kernel.NewGeoPoint(request.Latitude, request.Longitude)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewUpdateLocationCommand(agentID, point)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.UpdateLocation.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// AddZipCoverage handles POST /api/v1/agents/:id/coverage.
func (s *Server) AddZipCoverage(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request AddZipCoverageRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewAddZipCoverageCommand(agentID, request.ZipCode, request.FeeOverride)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.AddZipCoverage.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RemoveZipCoverage handles DELETE /api/v1/agents/:id/coverage/:zip.
func (s *Server) RemoveZipCoverage(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewRemoveZipCoverageCommand(agentID, ctx.Param("zip"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.RemoveZipCoverage.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetAgentDashboard handles GET /api/v1/agents/:id/dashboard.
func (s *Server) GetAgentDashboard(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetAgentDashboardQuery(agentID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	dashboard, err := s.handlers.GetAgentDashboard.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	active := make([]activeDeliveryJSON, len(dashboard.ActiveDeliveries))
	for i, item := range dashboard.ActiveDeliveries {
		active[i] = activeDeliveryJSON{
			DeliveryID: item.DeliveryID,
			OrderID:    item.OrderID.String(),
			Status:     item.Status,
			AssignedAt: item.AssignedAt,
		}
	}

	return ctx.JSON(http.StatusOK, dashboardJSON{
		AgentID:          dashboard.AgentID,
		Status:           dashboard.Status,
		IsAvailable:      dashboard.IsAvailable,
		ActiveDeliveries: active,
		TodayDeliveries:  dashboard.TodayDeliveries,
		TodayEarnings:    dashboard.TodayEarnings,
		TotalDeliveries:  dashboard.TotalDeliveries,
		SuccessRate:      dashboard.SuccessRate,
		AverageRating:    dashboard.AverageRating,
	})
}

// GetAgentEarnings handles GET /api/v1/agents/:id/earnings.
func (s *Server) GetAgentEarnings(ctx echo.Context) error {
	agentID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	query, err := queries.NewGetAgentEarningsQuery(agentID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	earnings, err := s.handlers.GetAgentEarnings.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	items := make([]earningItemJSON, len(earnings.Items))
	for i, item := range earnings.Items {
		items[i] = earningItemJSON{
			DeliveryID:  item.DeliveryID,
			AgentPayout: item.AgentPayout,
			DeliveredAt: item.DeliveredAt,
		}
	}

	return ctx.JSON(http.StatusOK, earningsJSON{
		TotalEarnings:  earnings.TotalEarnings,
		DeliveredCount: earnings.DeliveredCount,
		Items:          items,
	})
}

// AssignOrder handles POST /api/v1/deliveries/assign.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var request AssignOrderRequest
	if err := bind(ctx, &request); err != nil {
		return err
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, request.DistanceKm, request.OrderValue)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.AssignOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// AcceptDelivery handles POST /api/v1/deliveries/:id/accept.
func (s *Server) AcceptDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewAcceptDeliveryCommand(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.AcceptDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ArriveAtStore handles POST /api/v1/deliveries/:id/arrive.
func (s *Server) ArriveAtStore(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewArriveAtStoreCommand(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.ArriveAtStore.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// VerifyPickup handles POST /api/v1/deliveries/:id/pickup.
func (s *Server) VerifyPickup(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request OTPRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewVerifyPickupCommand(deliveryID, request.OTP)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.VerifyPickup.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StartTransit handles POST /api/v1/deliveries/:id/transit.
func (s *Server) StartTransit(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewStartTransitCommand(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.StartTransit.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CompleteDelivery handles POST /api/v1/deliveries/:id/complete.
func (s *Server) CompleteDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request OTPRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewCompleteDeliveryCommand(deliveryID, request.OTP)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.CompleteDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelDelivery handles POST /api/v1/deliveries/:id/cancel.
func (s *Server) CancelDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request CancelDeliveryRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewCancelDeliveryCommand(deliveryID, request.Reason)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.CancelDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// FailDelivery handles POST /api/v1/deliveries/:id/fail.
func (s *Server) FailDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	cmd, err := commands.NewFailDeliveryCommand(deliveryID)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.FailDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ReportIssue handles POST /api/v1/deliveries/:id/issues.
func (s *Server) ReportIssue(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request ReportIssueRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewReportIssueCommand(
		deliveryID, issueTypeFromString(request.IssueType), request.Description,
	)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.ReportIssue.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// RateDelivery handles POST /api/v1/deliveries/:id/rating.
func (s *Server) RateDelivery(ctx echo.Context) error {
	deliveryID, err := pathUUID(ctx, "id")
	if err != nil {
		return errorResponse(ctx, err)
	}

	var request RateDeliveryRequest
	if err = bind(ctx, &request); err != nil {
		return err
	}

	cmd, err := commands.NewRateDeliveryCommand(deliveryID, request.Rating, request.Feedback)
	if err != nil {
		return errorResponse(ctx, err)
	}

	if err = s.handlers.RateDelivery.Handle(ctx.Request().Context(), cmd); err != nil {
		return errorResponse(ctx, err)
	}

	return ctx.NoContent(http.StatusCreated)
}

// GetDeliveryTracking handles GET /api/v1/tracking/:deliveryID - the
// customer tracking page, looked up by the public delivery identifier.
func (s *Server) GetDeliveryTracking(ctx echo.Context) error {
	query, err := queries.NewGetDeliveryTrackingQuery(ctx.Param("deliveryID"))
	if err != nil {
		return errorResponse(ctx, err)
	}

	tracking, err := s.handlers.GetDeliveryTracking.Handle(ctx.Request().Context(), query)
	if err != nil {
		return errorResponse(ctx, err)
	}

	points := make([]trackingPointJSON, len(tracking.Points))
	for i, point := range tracking.Points {
		points[i] = trackingPointJSON{
			Latitude:   point.Latitude,
			Longitude:  point.Longitude,
			RecordedAt: point.RecordedAt,
		}
	}

	return ctx.JSON(http.StatusOK, trackingJSON{
		DeliveryID: tracking.DeliveryID,
		Status:     tracking.Status,
		AssignedAt: tracking.AssignedAt,
		Points:     points,
	})
}

// bind decodes and validates a request body, replying 400 on failure.
func bind(ctx echo.Context, request any) error {
	if err := ctx.Bind(request); err != nil {
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: "invalid request body",
		})
	}
	if err := ctx.Validate(request); err != nil {
		return errorResponse(ctx, err)
	}
	return nil
}

// pathUUID parses a UUID path parameter.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	return kernel.UUIDFromString(ctx.Param(name))
}

// JSON response shapes for the read endpoints.
type (
	dashboardJSON struct {
		AgentID          string               `json:"agent_id"`
		Status           string               `json:"status"`
		IsAvailable      bool                 `json:"is_available"`
		ActiveDeliveries []activeDeliveryJSON `json:"active_deliveries"`
		TodayDeliveries  int                  `json:"today_deliveries"`
		TodayEarnings    float64              `json:"today_earnings"`
		TotalDeliveries  int                  `json:"total_deliveries"`
		SuccessRate      float64              `json:"success_rate"`
		AverageRating    float64              `json:"average_rating"`
	}

	activeDeliveryJSON struct {
		DeliveryID string    `json:"delivery_id"`
		OrderID    string    `json:"order_id"`
		Status     string    `json:"status"`
		AssignedAt time.Time `json:"assigned_at"`
	}

	earningsJSON struct {
		TotalEarnings  float64           `json:"total_earnings"`
		DeliveredCount int               `json:"delivered_count"`
		Items          []earningItemJSON `json:"items"`
	}

	earningItemJSON struct {
		DeliveryID  string    `json:"delivery_id"`
		AgentPayout float64   `json:"agent_payout"`
		DeliveredAt time.Time `json:"delivered_at"`
	}

	trackingJSON struct {
		DeliveryID string              `json:"delivery_id"`
		Status     string              `json:"status"`
		AssignedAt time.Time           `json:"assigned_at"`
		Points     []trackingPointJSON `json:"points"`
	}

	trackingPointJSON struct {
		Latitude   float64   `json:"latitude"`
		Longitude  float64   `json:"longitude"`
		RecordedAt time.Time `json:"recorded_at"`
	}
)
