package queries

import (
	"context"

	"dispatch/internal/core/domain/model/delivery"

	"gorm.io/gorm"
)

// GetAgentEarningsQueryHandler reads earnings straight from the deliveries
// table. Only Delivered deliveries pay out.
type GetAgentEarningsQueryHandler struct {
	db *gorm.DB
}

// NewGetAgentEarningsQueryHandler creates a handler for earnings queries.
// Requires a GORM database connection for query execution.
func NewGetAgentEarningsQueryHandler(db *gorm.DB) GetAgentEarningsQueryHandler {
	return GetAgentEarningsQueryHandler{db: db}
}

// Handle executes the earnings query.
// Returns the per-delivery payout listing ordered most recent first, plus
// the running totals.
func (h GetAgentEarningsQueryHandler) Handle(
	ctx context.Context,
	query GetAgentEarningsQuery,
) (GetAgentEarningsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetAgentEarningsQueryResponse{}, err
	}

	response := GetAgentEarningsQueryResponse{
		Items: make([]EarningItemResponse, 0),
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT delivery_id, agent_payout, delivered_at
		FROM deliveries
		WHERE agent_id = ? AND status = ?
		ORDER BY delivered_at DESC
	`, query.AgentID().Bytes(), int(delivery.StatusDelivered)).Rows()
	if err != nil {
		return GetAgentEarningsQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var item EarningItemResponse

		if err = rows.Scan(&item.DeliveryID, &item.AgentPayout, &item.DeliveredAt); err != nil {
			return GetAgentEarningsQueryResponse{}, err
		}

		response.TotalEarnings += item.AgentPayout
		response.Items = append(response.Items, item)
	}

	if err = rows.Err(); err != nil {
		return GetAgentEarningsQueryResponse{}, err
	}

	response.DeliveredCount = len(response.Items)
	return response, nil
}
