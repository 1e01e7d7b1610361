package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetAgentDashboardQueryHandler assembles the agent dashboard directly from
// the database, bypassing the aggregates for read performance.
type GetAgentDashboardQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentDashboardQueryHandler creates a handler for dashboard queries.
// Requires a GORM database connection for query execution.
func NewGetAgentDashboardQueryHandler(db *gorm.DB) GetAgentDashboardQueryHandler {
	return GetAgentDashboardQueryHandler{db: db}
}

// Handle executes the dashboard query.
// Combines the agent's profile row, the in-progress deliveries and today's
// delivered counts and earnings. "Today" is the current UTC calendar day.
func (h GetAgentDashboardQueryHandler) Handle(
	ctx context.Context,
	query GetAgentDashboardQuery,
) (GetAgentDashboardQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAgentDashboardQueryResponse{}, err
	}

	var response GetAgentDashboardQueryResponse

	var (
		status        int
		totalDone     int
		successful    int
		failed        int
		averageRating float64
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT
			agent_id,
			status,
			is_available,
			total_deliveries,
			successful_deliveries,
			failed_deliveries,
			average_rating
		FROM agents
		WHERE id = ?
	`, query.AgentID().Bytes()).Row()

	err := row.Scan(
		&response.AgentID,
		&status,
		&response.IsAvailable,
		&totalDone,
		&successful,
		&failed,
		&averageRating,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return GetAgentDashboardQueryResponse{}, errs.NewObjectNotFoundError("agent", query.AgentID())
	}
	if err != nil {
		return GetAgentDashboardQueryResponse{}, err
	}

	response.Status = agent.Status(status).String()
	response.TotalDeliveries = totalDone
	response.AverageRating = averageRating
	if successful+failed > 0 {
		response.SuccessRate = float64(successful) / float64(successful+failed) * 100
	}

	response.ActiveDeliveries, err = h.activeDeliveries(ctx, query.AgentID())
	if err != nil {
		return GetAgentDashboardQueryResponse{}, err
	}

	dayStart := time.Now().UTC().Truncate(24 * time.Hour)
	todayRow := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*), COALESCE(SUM(agent_payout), 0)
		FROM deliveries
		WHERE agent_id = ? AND status = ? AND delivered_at >= ?
	`, query.AgentID().Bytes(), int(delivery.StatusDelivered), dayStart).Row()

	if err = todayRow.Scan(&response.TodayDeliveries, &response.TodayEarnings); err != nil {
		return GetAgentDashboardQueryResponse{}, err
	}

	return response, nil
}

func (h GetAgentDashboardQueryHandler) activeDeliveries(
	ctx context.Context, agentID kernel.UUID,
) ([]ActiveDeliveryResponse, error) {
	active := make([]ActiveDeliveryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT delivery_id, order_id, status, assigned_at
		FROM deliveries
		WHERE agent_id = ? AND status IN (?, ?, ?, ?)
		ORDER BY assigned_at
	`, agentID.Bytes(),
		int(delivery.StatusAccepted),
		int(delivery.StatusAtStore),
		int(delivery.StatusPickedUp),
		int(delivery.StatusInTransit),
	).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var item ActiveDeliveryResponse
		var orderID uuid.UUID
		var status int

		if err = rows.Scan(&item.DeliveryID, &orderID, &status, &item.AssignedAt); err != nil {
			return nil, err
		}

		id, idErr := kernel.UUIDFromBytes(orderID[:])
		if idErr != nil {
			return nil, idErr
		}

		item.OrderID = id
		item.Status = delivery.Status(status).String()
		active = append(active, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return active, nil
}
