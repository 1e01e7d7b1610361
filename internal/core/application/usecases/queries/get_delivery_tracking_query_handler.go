package queries

import (
	"context"
	"database/sql"
	"errors"

	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetDeliveryTrackingQueryHandler serves the customer tracking page from
// the deliveries and tracking_points tables.
type GetDeliveryTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetDeliveryTrackingQueryHandler creates a handler for tracking queries.
// Requires a GORM database connection for query execution.
func NewGetDeliveryTrackingQueryHandler(db *gorm.DB) GetDeliveryTrackingQueryHandler {
	return GetDeliveryTrackingQueryHandler{db: db}
}

// Handle executes the tracking query.
// Returns the delivery's current status and its location trail in recorded
// order. Returns errs.ErrObjectNotFound when the public identifier is
// unknown.
func (h GetDeliveryTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryTrackingQuery,
) (GetDeliveryTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryTrackingQueryResponse{}, err
	}

	var response GetDeliveryTrackingQueryResponse

	var (
		id     uuid.UUID
		status int
	)
	row := h.db.WithContext(ctx).Raw(`
		SELECT id, delivery_id, status, assigned_at
		FROM deliveries
		WHERE delivery_id = ?
	`, query.DeliveryID()).Row()

	err := row.Scan(&id, &response.DeliveryID, &status, &response.AssignedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return GetDeliveryTrackingQueryResponse{}, errs.NewObjectNotFoundError("delivery", query.DeliveryID())
	}
	if err != nil {
		return GetDeliveryTrackingQueryResponse{}, err
	}

	response.Status = delivery.Status(status).String()
	response.Points = make([]TrackingPointResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT latitude, longitude, recorded_at
		FROM tracking_points
		WHERE delivery_id = ?
		ORDER BY recorded_at
	`, id).Rows()
	if err != nil {
		return GetDeliveryTrackingQueryResponse{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var point TrackingPointResponse

		if err = rows.Scan(&point.Latitude, &point.Longitude, &point.RecordedAt); err != nil {
			return GetDeliveryTrackingQueryResponse{}, err
		}

		response.Points = append(response.Points, point)
	}

	if err = rows.Err(); err != nil {
		return GetDeliveryTrackingQueryResponse{}, err
	}

	return response, nil
}
