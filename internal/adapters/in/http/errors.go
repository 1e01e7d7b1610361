package http

import (
	"errors"
	"net/http"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/delivery"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse maps domain and application errors onto HTTP statuses.
// Guard violations and lost races come back as 409 so clients can refresh
// and retry; a wrong OTP is 422 because the request was well-formed but
// the code did not match.
func errorResponse(ctx echo.Context, err error) error {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return ctx.JSON(httpErr.Code, ErrorResponse{
			Code:    httpErr.Code,
			Message: http.StatusText(httpErr.Code),
		})
	}

	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return jsonError(ctx, http.StatusNotFound, err)

	case errors.Is(err, delivery.ErrOTPMismatch):
		return jsonError(ctx, http.StatusUnprocessableEntity, err)

	case errors.Is(err, delivery.ErrInvalidStatusTransition),
		errors.Is(err, ports.ErrDeliveryStateConflict),
		errors.Is(err, agent.ErrNoActiveZipCoverage),
		errors.Is(err, agent.ErrDuplicateZipCoverage),
		errors.Is(err, commands.ErrNoAgentsAvailable),
		errors.Is(err, commands.ErrDeliveryNotCompleted):
		return jsonError(ctx, http.StatusConflict, err)

	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return jsonError(ctx, http.StatusBadRequest, err)

	default:
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal server error",
		})
	}
}

func jsonError(ctx echo.Context, code int, err error) error {
	return ctx.JSON(code, ErrorResponse{
		Code:    code,
		Message: err.Error(),
	})
}
