package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// ReservationRepo serves the read side of reservations: listings and
// detail views joined with resource information.  Status and payment
// mutations never happen here; they go through the booking ledger so
// the state machine and release rules always apply.
type ReservationRepo struct {
	db *sql.DB
}

// NewReservationRepo returns a ReservationRepo bound to the database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// AssignedUnit is a capacity unit bound to a reservation, as shown in
// detail views.
type AssignedUnit struct {
	UnitID         uint64 `json:"unit_id"`
	Label          string `json:"label"`
	Classification string `json:"classification,omitempty"`
	PriceCents     uint32 `json:"price_cents"`
}

// ReservationDetail is a reservation joined with its resource and
// assigned units, shaped for API responses.
type ReservationDetail struct {
	ID               uint64         `json:"id"`
	Reference        string         `json:"reference"`
	ResourceID       uint64         `json:"resource_id"`
	ResourceName     string         `json:"resource_name"`
	ResourceCity     string         `json:"resource_city"`
	ResourceKind     string         `json:"resource_kind"`
	RequesterID      uint64         `json:"requester_id,omitempty"`
	StartsAt         time.Time      `json:"starts_at"`
	EndsAt           time.Time      `json:"ends_at"`
	PartySize        int            `json:"party_size"`
	Status           string         `json:"status"`
	PaymentStatus    string         `json:"payment_status"`
	TotalAmountCents uint32         `json:"total_amount_cents"`
	Units            []AssignedUnit `json:"units"`
	CreatedAt        time.Time      `json:"created_at"`
}

const detailColumns = `r.id, r.reference, r.resource_id, res.name, res.city, res.kind,
	r.requester_id, r.starts_at, r.ends_at, r.party_size, r.status, r.payment_status,
	r.total_amount_cents, r.created_at`

func scanDetail(scanner interface{ Scan(...interface{}) error }) (*ReservationDetail, error) {
	var d ReservationDetail
	if err := scanner.Scan(
		&d.ID, &d.Reference, &d.ResourceID, &d.ResourceName, &d.ResourceCity, &d.ResourceKind,
		&d.RequesterID, &d.StartsAt, &d.EndsAt, &d.PartySize, &d.Status, &d.PaymentStatus,
		&d.TotalAmountCents, &d.CreatedAt,
	); err != nil {
		return nil, err
	}
	d.Units = []AssignedUnit{}
	return &d, nil
}

// GetByIDForActor loads one reservation with its resource and units,
// enforcing visibility: admins see everything, owners see reservations
// on their resources, customers see their own.  Returns
// ErrReservationNotFound or ErrForbidden accordingly.
func (r *ReservationRepo) GetByIDForActor(ctx context.Context, reservationID, actorID uint64, role model.Role) (*ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `, res.owner_id
	           FROM reservations r
	           JOIN resources res ON res.id = r.resource_id
	           WHERE r.id = ?`
	row := r.db.QueryRowContext(ctx, q, reservationID)
	var d ReservationDetail
	var ownerID uint64
	err := row.Scan(
		&d.ID, &d.Reference, &d.ResourceID, &d.ResourceName, &d.ResourceCity, &d.ResourceKind,
		&d.RequesterID, &d.StartsAt, &d.EndsAt, &d.PartySize, &d.Status, &d.PaymentStatus,
		&d.TotalAmountCents, &d.CreatedAt, &ownerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, err
	}
	switch role {
	case model.RoleAdmin:
	case model.RoleOwner:
		if ownerID != actorID {
			return nil, ErrForbidden
		}
	default:
		if d.RequesterID != actorID {
			return nil, ErrForbidden
		}
	}
	d.Units = []AssignedUnit{}
	if err := r.attachUnits(ctx, []*ReservationDetail{&d}); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByRequester returns all reservations created by a user, newest
// first, with resource details and assigned units.
func (r *ReservationRepo) ListByRequester(ctx context.Context, requesterID uint64) ([]*ReservationDetail, error) {
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN resources res ON res.id = r.resource_id
	           WHERE r.requester_id = ?
	           ORDER BY r.created_at DESC`
	return r.listDetails(ctx, q, requesterID)
}

// ListByResourceForOwner returns all reservations on a resource for
// its owner or an admin.  Returns ErrResourceNotFound when the
// resource does not exist and ErrForbidden when the caller may not
// manage it.
func (r *ReservationRepo) ListByResourceForOwner(ctx context.Context, resourceID, actorID uint64, role model.Role) ([]*ReservationDetail, error) {
	if err := checkResourceManager(ctx, r.db, resourceID, actorID, role); err != nil {
		return nil, err
	}
	const q = `SELECT ` + detailColumns + `
	           FROM reservations r
	           JOIN resources res ON res.id = r.resource_id
	           WHERE r.resource_id = ?
	           ORDER BY r.created_at DESC`
	return r.listDetails(ctx, q, resourceID)
}

func (r *ReservationRepo) listDetails(ctx context.Context, query string, arg interface{}) ([]*ReservationDetail, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	details := make([]*ReservationDetail, 0)
	for rows.Next() {
		d, err := scanDetail(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachUnits(ctx, details); err != nil {
		return nil, err
	}
	return details, nil
}

// attachUnits populates the Units slice of each detail in one query.
func (r *ReservationRepo) attachUnits(ctx context.Context, details []*ReservationDetail) error {
	if len(details) == 0 {
		return nil
	}
	index := make(map[uint64]*ReservationDetail, len(details))
	ids := make([]interface{}, 0, len(details))
	placeholders := make([]string, 0, len(details))
	for _, d := range details {
		index[d.ID] = d
		ids = append(ids, d.ID)
		placeholders = append(placeholders, "?")
	}
	q := `SELECT ra.reservation_id, ra.unit_id, cu.label, cu.classification, ra.price_cents
	      FROM reservation_assignments ra
	      JOIN capacity_units cu ON cu.id = ra.unit_id
	      WHERE ra.reservation_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY ra.reservation_id, ra.unit_id`
	rows, err := r.db.QueryContext(ctx, q, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var resvID uint64
		var u AssignedUnit
		if err := rows.Scan(&resvID, &u.UnitID, &u.Label, &u.Classification, &u.PriceCents); err != nil {
			return err
		}
		if d, ok := index[resvID]; ok {
			d.Units = append(d.Units, u)
		}
	}
	return rows.Err()
}
