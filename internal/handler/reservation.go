package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/asmamiga/tourism-website-sub001/internal/booking"
	"github.com/asmamiga/tourism-website-sub001/internal/model"
	"github.com/asmamiga/tourism-website-sub001/internal/queue"
	"github.com/asmamiga/tourism-website-sub001/internal/repository"
)

// ReservationHandler serves reservation creation, lookup and lifecycle
// endpoints. Writes go through the allocator and ledger so every
// change is transactional; reads go straight to the repository.
// Events are published best-effort after commit — a broker outage
// never fails a booking.
type ReservationHandler struct {
	Allocator    *booking.Allocator
	Ledger       *booking.Ledger
	Reservations *repository.ReservationRepo
	Publisher    *queue.Publisher
}

func NewReservationHandler(a *booking.Allocator, l *booking.Ledger, r *repository.ReservationRepo, p *queue.Publisher) *ReservationHandler {
	return &ReservationHandler{Allocator: a, Ledger: l, Reservations: r, Publisher: p}
}

type createReservationReq struct {
	StartsAt       time.Time `json:"starts_at"`
	EndsAt         time.Time `json:"ends_at"`
	PartySize      int       `json:"party_size"`
	Classification string    `json:"classification"`
}

type statusReq struct {
	Status string `json:"status"`
}

type paymentReq struct {
	PaymentStatus string `json:"payment_status"`
}

type reservationResp struct {
	ID               uint64    `json:"id"`
	Reference        string    `json:"reference"`
	ResourceID       uint64    `json:"resource_id"`
	RequesterID      uint64    `json:"requester_id"`
	StartsAt         time.Time `json:"starts_at"`
	EndsAt           time.Time `json:"ends_at"`
	PartySize        int       `json:"party_size"`
	Status           string    `json:"status"`
	PaymentStatus    string    `json:"payment_status"`
	TotalAmountCents uint32    `json:"total_amount_cents"`
	UnitIDs          []uint64  `json:"unit_ids,omitempty"`
	Expanded         bool      `json:"expanded,omitempty"`
}

func toResp(r *model.Reservation, unitIDs []uint64, expanded bool) reservationResp {
	return reservationResp{
		ID:               r.ID,
		Reference:        r.Reference,
		ResourceID:       r.ResourceID,
		RequesterID:      r.RequesterID,
		StartsAt:         r.StartsAt,
		EndsAt:           r.EndsAt,
		PartySize:        r.PartySize,
		Status:           string(r.Status),
		PaymentStatus:    string(r.PaymentStatus),
		TotalAmountCents: r.TotalAmountCents,
		UnitIDs:          unitIDs,
		Expanded:         expanded,
	}
}

func (h *ReservationHandler) publish(c echo.Context, evType string, r *model.Reservation, unitIDs []uint64) {
	_ = h.Publisher.Publish(c.Request().Context(), queue.ReservationEvent{
		Type:             evType,
		ReservationID:    r.ID,
		Reference:        r.Reference,
		ResourceID:       r.ResourceID,
		RequesterID:      r.RequesterID,
		StartsAt:         r.StartsAt.Format(time.RFC3339),
		EndsAt:           r.EndsAt.Format(time.RFC3339),
		Status:           string(r.Status),
		PaymentStatus:    string(r.PaymentStatus),
		UnitIDs:          unitIDs,
		TotalAmountCents: r.TotalAmountCents,
		OccurredAt:       time.Now().UTC().Format(time.RFC3339),
	})
}

// Create handles POST /v1/resources/:id/reservations.
func (h *ReservationHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resourceID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	w, err := booking.NewWindow(req.StartsAt, req.EndsAt)
	if err != nil {
		return writeBookingError(c, err)
	}

	result, err := h.Allocator.Allocate(c.Request().Context(), booking.AllocationRequest{
		ResourceID:     resourceID,
		RequesterID:    userID,
		Window:         w,
		PartySize:      req.PartySize,
		Classification: req.Classification,
	})
	if err != nil {
		return writeBookingError(c, err)
	}

	h.publish(c, queue.EventReservationCreated, result.Reservation, result.UnitIDs)
	return c.JSON(http.StatusCreated, toResp(result.Reservation, result.UnitIDs, result.Expanded))
}

// ListMine handles GET /v1/my-reservations.
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	details, err := h.Reservations.ListByRequester(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": details})
}

// Get handles GET /v1/reservations/:id. Visibility is role-aware: the
// requester, the resource owner and admins may see a reservation.
func (h *ReservationHandler) Get(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	detail, err := h.Reservations.GetByIDForActor(c.Request().Context(), resID, userID, getRole(c))
	if err != nil {
		switch err {
		case repository.ErrReservationNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to fetch reservation"})
	}
	return c.JSON(http.StatusOK, echo.Map{"item": detail})
}

// UpdateStatus handles POST /v1/reservations/:id/status. The ledger
// enforces the transition table and role permissions; CANCELLED
// requests are routed through the cancellation rules including the
// customer lead-time check.
func (h *ReservationHandler) UpdateStatus(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req statusReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Status) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "status is required"})
	}
	status := model.ReservationStatus(strings.ToUpper(strings.TrimSpace(req.Status)))

	updated, err := h.Ledger.Transition(c.Request().Context(), resID, userID, getRole(c), status)
	if err != nil {
		return writeBookingError(c, err)
	}

	evType := queue.EventStatusChanged
	if updated.Status == model.StatusCancelled {
		evType = queue.EventReservationCancelled
	}
	h.publish(c, evType, updated, nil)
	return c.JSON(http.StatusOK, toResp(updated, nil, false))
}

// UpdatePayment handles POST /v1/reservations/:id/payment.
func (h *ReservationHandler) UpdatePayment(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req paymentReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.PaymentStatus) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "payment_status is required"})
	}
	status := model.PaymentStatus(strings.ToUpper(strings.TrimSpace(req.PaymentStatus)))
	switch status {
	case model.PaymentUnpaid, model.PaymentPaid, model.PaymentPartiallyPaid, model.PaymentRefunded:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown payment_status"})
	}

	updated, err := h.Ledger.SetPaymentStatus(c.Request().Context(), resID, userID, getRole(c), status)
	if err != nil {
		return writeBookingError(c, err)
	}
	h.publish(c, queue.EventPaymentUpdated, updated, nil)
	return c.JSON(http.StatusOK, toResp(updated, nil, false))
}

// Cancel handles DELETE /v1/reservations/:id. Customers may cancel
// their own reservations up to the lead time before start; owners and
// admins may cancel at any point before the reservation is terminal.
func (h *ReservationHandler) Cancel(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	updated, err := h.Ledger.Cancel(c.Request().Context(), resID, userID, getRole(c))
	if err != nil {
		return writeBookingError(c, err)
	}
	h.publish(c, queue.EventReservationCancelled, updated, nil)
	return c.JSON(http.StatusOK, toResp(updated, nil, false))
}
