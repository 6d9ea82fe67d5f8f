package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
	"github.com/asmamiga/tourism-website-sub001/internal/repository"
)

// ResourceHandler serves the owner surface: creating resources,
// provisioning capacity units and listing the reservations taken
// against a resource. Routes are guarded by the OWNER/ADMIN role
// middleware; ownership of the specific resource is enforced in the
// repository layer.
type ResourceHandler struct {
	Resources    *repository.ResourceRepo
	Units        *repository.CapacityUnitRepo
	Reservations *repository.ReservationRepo
}

func NewResourceHandler(res *repository.ResourceRepo, units *repository.CapacityUnitRepo, rsv *repository.ReservationRepo) *ResourceHandler {
	return &ResourceHandler{Resources: res, Units: units, Reservations: rsv}
}

type createResourceReq struct {
	Name           string `json:"name"`
	City           string `json:"city"`
	Kind           string `json:"kind"`            // BUSINESS | GUIDE | FLIGHT
	CapacityModel  string `json:"capacity_model"`  // UNITS | WINDOW
	CapacityLimit  int    `json:"capacity_limit"`  // 0 = unbounded
	BasePriceCents uint32 `json:"base_price_cents"`
}

type resourceResp struct {
	ID             uint64 `json:"id"`
	OwnerID        uint64 `json:"owner_id"`
	Name           string `json:"name"`
	City           string `json:"city"`
	Kind           string `json:"kind"`
	CapacityModel  string `json:"capacity_model"`
	CapacityLimit  int    `json:"capacity_limit"`
	BasePriceCents uint32 `json:"base_price_cents"`
	Active         bool   `json:"active"`
}

func toResourceResp(r *model.Resource) resourceResp {
	return resourceResp{
		ID:             r.ID,
		OwnerID:        r.OwnerID,
		Name:           r.Name,
		City:           r.City,
		Kind:           string(r.Kind),
		CapacityModel:  string(r.CapacityModel),
		CapacityLimit:  r.CapacityLimit,
		BasePriceCents: r.BasePriceCents,
		Active:         r.Active,
	}
}

// Create handles POST /v1/resources.
func (h *ResourceHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createResourceReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
	}
	kind := model.ResourceKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	switch kind {
	case model.KindBusiness, model.KindGuide, model.KindFlight:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "kind must be BUSINESS, GUIDE or FLIGHT"})
	}
	capModel := model.CapacityModel(strings.ToUpper(strings.TrimSpace(req.CapacityModel)))
	switch capModel {
	case model.ModelUnits, model.ModelWindow:
	default:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity_model must be UNITS or WINDOW"})
	}
	if req.CapacityLimit < 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "capacity_limit must be >= 0"})
	}

	res := &model.Resource{
		OwnerID:        userID,
		Name:           req.Name,
		City:           strings.TrimSpace(req.City),
		Kind:           kind,
		CapacityModel:  capModel,
		CapacityLimit:  req.CapacityLimit,
		BasePriceCents: req.BasePriceCents,
		Active:         true,
	}
	if err := h.Resources.Create(c.Request().Context(), res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create resource failed"})
	}
	return c.JSON(http.StatusCreated, toResourceResp(res))
}

// ListMine handles GET /v1/resources, returning the caller's resources.
func (h *ResourceHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	items, err := h.Resources.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list resources failed"})
	}
	out := make([]resourceResp, 0, len(items))
	for i := range items {
		out = append(out, toResourceResp(&items[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// SetActive handles PATCH /v1/resources/:id/active with body
// {"active": bool}. Deactivated resources reject new reservations but
// keep existing ones alive.
func (h *ResourceHandler) SetActive(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resourceID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	var req struct {
		Active *bool `json:"active"`
	}
	if err := c.Bind(&req); err != nil || req.Active == nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "active is required"})
	}
	if err := h.Resources.SetActive(c.Request().Context(), resourceID, userID, getRole(c), *req.Active); err != nil {
		switch err {
		case repository.ErrResourceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update resource failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type createUnitsReq struct {
	Units []struct {
		Label          string `json:"label"`
		Classification string `json:"classification"`
		PriceCents     uint32 `json:"price_cents"`
	} `json:"units"`
}

// CreateUnits handles POST /v1/resources/:id/units, pre-provisioning
// capacity units in bulk.
func (h *ResourceHandler) CreateUnits(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resourceID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	var req createUnitsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if len(req.Units) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "units is required"})
	}
	units := make([]model.CapacityUnit, 0, len(req.Units))
	for _, u := range req.Units {
		label := strings.TrimSpace(u.Label)
		if label == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unit label is required"})
		}
		units = append(units, model.CapacityUnit{
			Label:          label,
			Classification: strings.ToUpper(strings.TrimSpace(u.Classification)),
			PriceCents:     u.PriceCents,
		})
	}

	if err := h.Units.CreateBulk(c.Request().Context(), resourceID, userID, getRole(c), units); err != nil {
		switch err {
		case repository.ErrResourceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create units failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"created": len(units)})
}

type unitResp struct {
	ID             uint64 `json:"id"`
	Label          string `json:"label"`
	Classification string `json:"classification"`
	PriceCents     uint32 `json:"price_cents"`
	Available      bool   `json:"available"`
}

// ListUnits handles GET /v1/resources/:id/units with an optional
// classification query filter.
func (h *ResourceHandler) ListUnits(c echo.Context) error {
	resourceID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	units, err := h.Units.ListByResource(c.Request().Context(), resourceID, strings.ToUpper(strings.TrimSpace(c.QueryParam("classification"))))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list units failed"})
	}
	out := make([]unitResp, 0, len(units))
	for _, u := range units {
		out = append(out, unitResp{
			ID:             u.ID,
			Label:          u.Label,
			Classification: u.Classification,
			PriceCents:     u.PriceCents,
			Available:      u.Available,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": out})
}

// ListReservations handles GET /v1/resources/:id/reservations for the
// resource owner.
func (h *ResourceHandler) ListReservations(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	resourceID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid resource id"})
	}
	items, err := h.Reservations.ListByResourceForOwner(c.Request().Context(), resourceID, userID, getRole(c))
	if err != nil {
		switch err {
		case repository.ErrResourceNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "resource not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "list reservations failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": items})
}
