package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// ResourceRepo provides CRUD access to the resources table.  It serves
// the read side of the API; allocation-time reads go through SQLStore
// so they participate in the allocation transaction.
type ResourceRepo struct {
	db *sql.DB
}

// NewResourceRepo returns a ResourceRepo bound to the given database.
func NewResourceRepo(db *sql.DB) *ResourceRepo { return &ResourceRepo{db: db} }

// Create inserts a resource and populates its ID and timestamps.
func (r *ResourceRepo) Create(ctx context.Context, res *model.Resource) error {
	const q = `INSERT INTO resources
	           (owner_id, name, city, kind, capacity_model, capacity_limit, base_price_cents, active)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, res.OwnerID, res.Name, res.City, res.Kind,
		res.CapacityModel, res.CapacityLimit, res.BasePriceCents, res.Active)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	const sel = `SELECT created_at, updated_at FROM resources WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

// GetByID loads a resource.  Returns ErrResourceNotFound when no row
// matches.
func (r *ResourceRepo) GetByID(ctx context.Context, id uint64) (*model.Resource, error) {
	const q = `SELECT id, owner_id, name, city, kind, capacity_model, capacity_limit,
	                  base_price_cents, active, created_at, updated_at
	           FROM resources WHERE id = ?`
	var res model.Resource
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.OwnerID, &res.Name, &res.City, &res.Kind, &res.CapacityModel,
		&res.CapacityLimit, &res.BasePriceCents, &res.Active, &res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrResourceNotFound
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ListByOwner returns all resources owned by a user, newest first.
func (r *ResourceRepo) ListByOwner(ctx context.Context, ownerID uint64) ([]model.Resource, error) {
	const q = `SELECT id, owner_id, name, city, kind, capacity_model, capacity_limit,
	                  base_price_cents, active, created_at, updated_at
	           FROM resources WHERE owner_id = ? ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.Resource, 0)
	for rows.Next() {
		var res model.Resource
		if err := rows.Scan(
			&res.ID, &res.OwnerID, &res.Name, &res.City, &res.Kind, &res.CapacityModel,
			&res.CapacityLimit, &res.BasePriceCents, &res.Active, &res.CreatedAt, &res.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// SetActive toggles whether a resource accepts reservations.  The
// owner or an admin may do this; ErrForbidden is returned otherwise
// and ErrResourceNotFound when the resource does not exist.
func (r *ResourceRepo) SetActive(ctx context.Context, id, actorID uint64, role model.Role, active bool) error {
	if err := checkResourceManager(ctx, r.db, id, actorID, role); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE resources SET active = ? WHERE id = ?`, active, id)
	return err
}

// canManageResource is the management permission rule: admins may
// manage any resource, everyone else only their own.
func canManageResource(role model.Role, ownerID, actorID uint64) bool {
	return role == model.RoleAdmin || ownerID == actorID
}

// checkResourceManager loads the resource's owner and applies
// canManageResource.  Returns ErrResourceNotFound or ErrForbidden.
func checkResourceManager(ctx context.Context, db *sql.DB, resourceID, actorID uint64, role model.Role) error {
	var ownerID uint64
	err := db.QueryRowContext(ctx, `SELECT owner_id FROM resources WHERE id = ?`, resourceID).Scan(&ownerID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrResourceNotFound
	}
	if err != nil {
		return err
	}
	if !canManageResource(role, ownerID, actorID) {
		return ErrForbidden
	}
	return nil
}
