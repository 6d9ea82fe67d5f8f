package repository

import (
	"context"
	"database/sql"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// CapacityUnitRepo manages pre-provisioned capacity units.  Owners use
// it to seed seats and tables ahead of time; the allocator only ever
// touches units through SQLStore inside its own transaction.
type CapacityUnitRepo struct {
	db *sql.DB
}

// NewCapacityUnitRepo returns a CapacityUnitRepo bound to the database.
func NewCapacityUnitRepo(db *sql.DB) *CapacityUnitRepo { return &CapacityUnitRepo{db: db} }

// CreateBulk inserts multiple capacity units in one statement after
// verifying the caller may manage the resource (its owner or an
// admin).  Passing an empty slice has no effect and returns nil.
func (r *CapacityUnitRepo) CreateBulk(ctx context.Context, resourceID, actorID uint64, role model.Role, units []model.CapacityUnit) error {
	if len(units) == 0 {
		return nil
	}
	if err := checkResourceManager(ctx, r.db, resourceID, actorID, role); err != nil {
		return err
	}
	q := `INSERT INTO capacity_units (resource_id, label, classification, price_cents, available) VALUES `
	args := make([]interface{}, 0, len(units)*5)
	for i, u := range units {
		if i > 0 {
			q += ","
		}
		q += "(?, ?, ?, ?, ?)"
		args = append(args, resourceID, u.Label, u.Classification, u.PriceCents, true)
	}
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

// ListByResource returns all units of a resource ordered by ID.  The
// optional classification filters by seating class.
func (r *CapacityUnitRepo) ListByResource(ctx context.Context, resourceID uint64, classification string) ([]model.CapacityUnit, error) {
	q := `SELECT id, resource_id, label, classification, price_cents, available, created_at, updated_at
	      FROM capacity_units WHERE resource_id = ?`
	args := []interface{}{resourceID}
	if classification != "" {
		q += ` AND classification = ?`
		args = append(args, classification)
	}
	q += ` ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.CapacityUnit, 0)
	for rows.Next() {
		var u model.CapacityUnit
		if err := rows.Scan(
			&u.ID, &u.ResourceID, &u.Label, &u.Classification, &u.PriceCents,
			&u.Available, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
