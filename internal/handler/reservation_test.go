package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asmamiga/tourism-website-sub001/internal/booking"
	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// newBookingFixture wires handlers against the in-memory store with one
// window-model hotel (capacity 1) seeded.
func newBookingFixture() (*booking.MemoryStore, *ReservationHandler, *AvailabilityHandler) {
	store := booking.NewMemoryStore()
	store.AddResource(model.Resource{
		ID:             1,
		OwnerID:        100,
		Name:           "Riad Yasmine",
		Kind:           model.KindBusiness,
		CapacityModel:  model.ModelWindow,
		CapacityLimit:  1,
		BasePriceCents: 90_00,
		Active:         true,
	})
	alloc := booking.NewAllocator(store, booking.AllocatorConfig{}, nil)
	ledger := booking.NewLedger(store, 24*time.Hour, nil)
	return store, NewReservationHandler(alloc, ledger, nil, nil), NewAvailabilityHandler(alloc)
}

func doJSON(e *echo.Echo, method, target, body string, userID uint64, role model.Role) (*httptest.ResponseRecorder, echo.Context) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", userID)
	c.Set("role", string(role))
	return rec, c
}

func TestCreateReservationHandler(t *testing.T) {
	e := echo.New()
	_, rh, _ := newBookingFixture()

	body := `{"starts_at":"2026-09-10T14:00:00Z","ends_at":"2026-09-11T14:00:00Z","party_size":2}`
	rec, c := doJSON(e, http.MethodPost, "/v1/resources/1/reservations", body, 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("1")

	require.NoError(t, rh.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp reservationResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, uint64(1), resp.ResourceID)
	assert.Equal(t, uint64(7), resp.RequesterID)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "UNPAID", resp.PaymentStatus)
	assert.Equal(t, uint32(90_00), resp.TotalAmountCents)
	assert.NotEmpty(t, resp.Reference)

	// Overlapping second booking maps to 409 with a stable code.
	rec, c = doJSON(e, http.MethodPost, "/v1/resources/1/reservations", body, 8, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, rh.Create(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "no_availability")
}

func TestCreateReservationHandlerErrors(t *testing.T) {
	e := echo.New()
	_, rh, _ := newBookingFixture()

	cases := []struct {
		name       string
		resourceID string
		body       string
		wantStatus int
		wantCode   string
	}{
		{
			name:       "unknown resource",
			resourceID: "99",
			body:       `{"starts_at":"2026-09-10T14:00:00Z","ends_at":"2026-09-10T16:00:00Z"}`,
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "inverted window",
			resourceID: "1",
			body:       `{"starts_at":"2026-09-10T16:00:00Z","ends_at":"2026-09-10T14:00:00Z"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "invalid_window",
		},
		{
			name:       "invalid resource id",
			resourceID: "zero",
			body:       `{}`,
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, c := doJSON(e, http.MethodPost, "/v1/resources/"+tc.resourceID+"/reservations", tc.body, 7, model.RoleCustomer)
			c.SetParamNames("id")
			c.SetParamValues(tc.resourceID)
			require.NoError(t, rh.Create(c))
			assert.Equal(t, tc.wantStatus, rec.Code)
			if tc.wantCode != "" {
				assert.Contains(t, rec.Body.String(), tc.wantCode)
			}
		})
	}
}

func TestCancelReservationHandler(t *testing.T) {
	e := echo.New()
	_, rh, _ := newBookingFixture()

	// Book far enough in the future that the lead-time check passes.
	starts := time.Now().UTC().Add(72 * time.Hour).Format(time.RFC3339)
	ends := time.Now().UTC().Add(96 * time.Hour).Format(time.RFC3339)
	body := fmt.Sprintf(`{"starts_at":%q,"ends_at":%q}`, starts, ends)

	rec, c := doJSON(e, http.MethodPost, "/v1/resources/1/reservations", body, 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, rh.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)
	var created reservationResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	resID := fmt.Sprint(created.ID)
	rec, c = doJSON(e, http.MethodDelete, "/v1/reservations/"+resID, "", 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(resID)
	require.NoError(t, rh.Cancel(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CANCELLED")

	// A second cancel hits the terminal-status rule.
	rec, c = doJSON(e, http.MethodDelete, "/v1/reservations/"+resID, "", 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(resID)
	require.NoError(t, rh.Cancel(c))
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_transition")
}

func TestUpdateStatusHandler(t *testing.T) {
	e := echo.New()
	_, rh, _ := newBookingFixture()

	body := `{"starts_at":"2026-09-10T14:00:00Z","ends_at":"2026-09-11T14:00:00Z"}`
	rec, c := doJSON(e, http.MethodPost, "/v1/resources/1/reservations", body, 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, rh.Create(c))
	var created reservationResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	resID := fmt.Sprint(created.ID)

	// The customer cannot confirm their own reservation.
	rec, c = doJSON(e, http.MethodPost, "/v1/reservations/"+resID+"/status", `{"status":"CONFIRMED"}`, 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues(resID)
	require.NoError(t, rh.UpdateStatus(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The resource owner can.
	rec, c = doJSON(e, http.MethodPost, "/v1/reservations/"+resID+"/status", `{"status":"confirmed"}`, 100, model.RoleOwner)
	c.SetParamNames("id")
	c.SetParamValues(resID)
	require.NoError(t, rh.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CONFIRMED")

	// An admin can act on a resource they do not own.
	rec, c = doJSON(e, http.MethodPost, "/v1/reservations/"+resID+"/status", `{"status":"COMPLETED"}`, 1, model.RoleAdmin)
	c.SetParamNames("id")
	c.SetParamValues(resID)
	require.NoError(t, rh.UpdateStatus(c))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "COMPLETED")
}

func TestAvailabilityHandler(t *testing.T) {
	e := echo.New()
	_, rh, ah := newBookingFixture()

	check := func(query string) (*httptest.ResponseRecorder, error) {
		req := httptest.NewRequest(http.MethodGet, "/v1/resources/1/availability?"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues("1")
		return rec, ah.Check(c)
	}

	rec, err := check("date=2026-09-10&start=14:00&end=18:00&party_size=2")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	var out booking.AvailabilityResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Available)

	// Book the slot, then the probe flips.
	body := `{"starts_at":"2026-09-10T14:00:00Z","ends_at":"2026-09-10T18:00:00Z"}`
	bookRec, c := doJSON(e, http.MethodPost, "/v1/resources/1/reservations", body, 7, model.RoleCustomer)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, rh.Create(c))
	require.Equal(t, http.StatusCreated, bookRec.Code)

	rec, err = check("date=2026-09-10&start=15:00&end=16:00")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.False(t, out.Available)
	assert.Equal(t, 1, out.OverlappingActive)

	// Back-to-back slot stays open.
	rec, err = check("date=2026-09-10&start=18:00&end=20:00")
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.Available)

	// Overnight windows roll the end clock to the next day.
	rec, err = check("date=2026-09-11&start=22:00&end=02:00")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.Code)

	// Garbage input maps to the invalid window code.
	rec, err = check("date=not-a-date&start=14:00&end=18:00")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_window")
}
