// Package handler contains the HTTP handlers for the booking API.
package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/asmamiga/tourism-website-sub001/internal/booking"
	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// getUserID extracts the user_id set by the JWT middleware.
func getUserID(c echo.Context) (uint64, error) {
	switch t := c.Get("user_id").(type) {
	case uint64:
		return t, nil
	case int:
		return uint64(t), nil
	case int64:
		return uint64(t), nil
	case float64:
		return uint64(t), nil
	case string:
		if n, err := strconv.ParseUint(t, 10, 64); err == nil {
			return n, nil
		}
	}
	return 0, errors.New("invalid user_id in context")
}

// getRole extracts the role set by the JWT middleware.
func getRole(c echo.Context) model.Role {
	if s, ok := c.Get("role").(string); ok {
		return model.Role(s)
	}
	return ""
}

// pathID parses a numeric path parameter; zero is invalid.
func pathID(c echo.Context, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	return id, err == nil && id != 0
}

// bookingStatus maps a typed booking error code to an HTTP status.
var bookingStatus = map[booking.Code]int{
	booking.CodeInvalidWindow:             http.StatusBadRequest,
	booking.CodeResourceInactive:          http.StatusConflict,
	booking.CodeNoAvailability:            http.StatusConflict,
	booking.CodeInvalidTransition:         http.StatusConflict,
	booking.CodeCancellationWindowExpired: http.StatusConflict,
	booking.CodeNotFound:                  http.StatusNotFound,
	booking.CodeUnauthorized:              http.StatusForbidden,
}

// writeBookingError renders a booking error as JSON with its stable
// code, or a generic 500 for anything else.
func writeBookingError(c echo.Context, err error) error {
	var be *booking.Error
	if errors.As(err, &be) {
		status, ok := bookingStatus[be.Code]
		if !ok {
			status = http.StatusInternalServerError
		}
		return c.JSON(status, echo.Map{"error": string(be.Code), "message": be.Message})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal_error"})
}
