package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/asmamiga/tourism-website-sub001/internal/booking"
)

// AvailabilityHandler answers read-only availability probes. The route
// sits behind the Redis response cache, so the answer may lag a booking
// by the cache TTL.
type AvailabilityHandler struct {
	Allocator *booking.Allocator
}

func NewAvailabilityHandler(a *booking.Allocator) *AvailabilityHandler {
	return &AvailabilityHandler{Allocator: a}
}

// parseWindow builds a booking window from query parameters. Two forms
// are accepted: starts_at/ends_at as RFC 3339 timestamps, or
// date=YYYY-MM-DD with start/end as HH:MM clock times (UTC). An end
// clock time at or before the start rolls over to the next day so
// overnight stays work.
func parseWindow(c echo.Context) (booking.Window, error) {
	if sa := c.QueryParam("starts_at"); sa != "" {
		start, err := time.Parse(time.RFC3339, sa)
		if err != nil {
			return booking.Window{}, booking.ErrInvalidWindow
		}
		end, err := time.Parse(time.RFC3339, c.QueryParam("ends_at"))
		if err != nil {
			return booking.Window{}, booking.ErrInvalidWindow
		}
		return booking.NewWindow(start, end)
	}

	day, err := time.Parse("2006-01-02", c.QueryParam("date"))
	if err != nil {
		return booking.Window{}, booking.ErrInvalidWindow
	}
	startClock, err := time.Parse("15:04", strings.TrimSpace(c.QueryParam("start")))
	if err != nil {
		return booking.Window{}, booking.ErrInvalidWindow
	}
	endClock, err := time.Parse("15:04", strings.TrimSpace(c.QueryParam("end")))
	if err != nil {
		return booking.Window{}, booking.ErrInvalidWindow
	}

	start := day.Add(time.Duration(startClock.Hour())*time.Hour + time.Duration(startClock.Minute())*time.Minute)
	end := day.Add(time.Duration(endClock.Hour())*time.Hour + time.Duration(endClock.Minute())*time.Minute)
	if !end.After(start) {
		end = end.Add(24 * time.Hour)
	}
	return booking.NewWindow(start, end)
}

// Check handles GET /v1/resources/:id/availability.
func (h *AvailabilityHandler) Check(c echo.Context) error {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	w, err := parseWindow(c)
	if err != nil {
		return writeBookingError(c, err)
	}
	partySize := 1
	if v := c.QueryParam("party_size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid party_size"})
		}
		partySize = n
	}

	result, err := h.Allocator.CheckAvailability(c.Request().Context(), resourceID, w, partySize, c.QueryParam("classification"))
	if err != nil {
		return writeBookingError(c, err)
	}
	return c.JSON(http.StatusOK, result)
}
