package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/asmamiga/tourism-website-sub001/internal/booking"
	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// SQLStore implements booking.Store on MySQL.  Each InTx call is one
// database transaction.  Serialization of concurrent allocations
// against the same resource comes from two mechanisms working
// together: GetResource locks the resource row with FOR UPDATE for the
// life of the transaction, and ClaimUnit uses a conditional UPDATE
// whose rows-affected count reveals whether a competing transaction
// claimed the unit first.
type SQLStore struct {
	db *sql.DB
}

// NewSQLStore returns an SQLStore bound to the given database.
func NewSQLStore(db *sql.DB) *SQLStore { return &SQLStore{db: db} }

// DB exposes the underlying handle for callers that need to share the
// connection pool (read-side repositories).
func (s *SQLStore) DB() *sql.DB { return s.db }

// InTx implements booking.Store.  The transaction is rolled back
// whenever fn returns an error or the commit fails.
func (s *SQLStore) InTx(ctx context.Context, fn func(tx booking.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()
	if err := fn(&sqlTx{tx: tx}); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// sqlTx adapts a *sql.Tx to booking.Tx.
type sqlTx struct {
	tx *sql.Tx
}

func (t *sqlTx) GetResource(ctx context.Context, id uint64) (*model.Resource, error) {
	// FOR UPDATE pins the resource row so the conflict check and the
	// unit claims that follow cannot interleave with another
	// allocation on the same resource.
	const q = `SELECT id, owner_id, name, city, kind, capacity_model, capacity_limit,
	                  base_price_cents, active, created_at, updated_at
	           FROM resources WHERE id = ? FOR UPDATE`
	var res model.Resource
	err := t.tx.QueryRowContext(ctx, q, id).Scan(
		&res.ID, &res.OwnerID, &res.Name, &res.City, &res.Kind, &res.CapacityModel,
		&res.CapacityLimit, &res.BasePriceCents, &res.Active, &res.CreatedAt, &res.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (t *sqlTx) ListOverlapping(ctx context.Context, resourceID uint64, w booking.Window, excludeID uint64) ([]model.Reservation, error) {
	// Half-open overlap: existing.start < new.end AND existing.end > new.start.
	const q = `SELECT id, reference, resource_id, requester_id, starts_at, ends_at, party_size,
	                  status, payment_status, total_amount_cents, created_at, updated_at
	           FROM reservations
	           WHERE resource_id = ? AND status <> 'CANCELLED'
	             AND starts_at < ? AND ends_at > ? AND id <> ?`
	rows, err := t.tx.QueryContext(ctx, q, resourceID, w.End, w.Start, excludeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.Reservation
	for rows.Next() {
		var r model.Reservation
		if err := rows.Scan(
			&r.ID, &r.Reference, &r.ResourceID, &r.RequesterID, &r.StartsAt, &r.EndsAt,
			&r.PartySize, &r.Status, &r.PaymentStatus, &r.TotalAmountCents, &r.CreatedAt, &r.UpdatedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

func (t *sqlTx) ListAvailableUnits(ctx context.Context, resourceID uint64, classification string) ([]model.CapacityUnit, error) {
	q := `SELECT id, resource_id, label, classification, price_cents, available, created_at, updated_at
	      FROM capacity_units
	      WHERE resource_id = ? AND available = 1`
	args := []interface{}{resourceID}
	if classification != "" {
		q += ` AND classification = ?`
		args = append(args, classification)
	}
	q += ` ORDER BY id ASC`
	rows, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []model.CapacityUnit
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

func (t *sqlTx) CountUnits(ctx context.Context, resourceID uint64, classification string) (int, error) {
	q := `SELECT COUNT(*) FROM capacity_units WHERE resource_id = ?`
	args := []interface{}{resourceID}
	if classification != "" {
		q += ` AND classification = ?`
		args = append(args, classification)
	}
	var n int
	if err := t.tx.QueryRowContext(ctx, q, args...).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (t *sqlTx) CreateUnit(ctx context.Context, unit *model.CapacityUnit) error {
	const q = `INSERT INTO capacity_units (resource_id, label, classification, price_cents, available)
	           VALUES (?, ?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q, unit.ResourceID, unit.Label, unit.Classification,
		unit.PriceCents, unit.Available)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	unit.ID = uint64(id)
	return nil
}

func (t *sqlTx) ClaimUnit(ctx context.Context, unitID uint64) (bool, error) {
	// Conditional claim: only one transaction can move the unit from
	// available to unavailable.
	const q = `UPDATE capacity_units SET available = 0 WHERE id = ? AND available = 1`
	result, err := t.tx.ExecContext(ctx, q, unitID)
	if err != nil {
		return false, err
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (t *sqlTx) ReleaseUnits(ctx context.Context, unitIDs []uint64) error {
	if len(unitIDs) == 0 {
		return nil
	}
	placeholders := make([]string, len(unitIDs))
	args := make([]interface{}, len(unitIDs))
	for i, id := range unitIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	q := `UPDATE capacity_units SET available = 1 WHERE id IN (` + strings.Join(placeholders, ",") + `)`
	_, err := t.tx.ExecContext(ctx, q, args...)
	return err
}

func (t *sqlTx) CreateReservation(ctx context.Context, res *model.Reservation) error {
	const q = `INSERT INTO reservations
	           (reference, resource_id, requester_id, starts_at, ends_at, party_size,
	            status, payment_status, total_amount_cents)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	result, err := t.tx.ExecContext(ctx, q, res.Reference, res.ResourceID, res.RequesterID,
		res.StartsAt, res.EndsAt, res.PartySize, res.Status, res.PaymentStatus, res.TotalAmountCents)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	res.ID = uint64(id)
	// Query back the DB-assigned timestamps.
	const sel = `SELECT created_at, updated_at FROM reservations WHERE id = ?`
	return t.tx.QueryRowContext(ctx, sel, res.ID).Scan(&res.CreatedAt, &res.UpdatedAt)
}

func (t *sqlTx) CreateAssignments(ctx context.Context, assignments []model.ReservationAssignment) error {
	if len(assignments) == 0 {
		return nil
	}
	q := `INSERT INTO reservation_assignments (reservation_id, unit_id, price_cents) VALUES `
	args := make([]interface{}, 0, len(assignments)*3)
	for i, a := range assignments {
		if i > 0 {
			q += ","
		}
		q += "(?, ?, ?)"
		args = append(args, a.ReservationID, a.UnitID, a.PriceCents)
	}
	_, err := t.tx.ExecContext(ctx, q, args...)
	return err
}

func (t *sqlTx) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	const q = `SELECT id, reference, resource_id, requester_id, starts_at, ends_at, party_size,
	                  status, payment_status, total_amount_cents, created_at, updated_at
	           FROM reservations WHERE id = ? FOR UPDATE`
	var r model.Reservation
	err := t.tx.QueryRowContext(ctx, q, id).Scan(
		&r.ID, &r.Reference, &r.ResourceID, &r.RequesterID, &r.StartsAt, &r.EndsAt,
		&r.PartySize, &r.Status, &r.PaymentStatus, &r.TotalAmountCents, &r.CreatedAt, &r.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (t *sqlTx) AssignedUnitIDs(ctx context.Context, reservationID uint64) ([]uint64, error) {
	const q = `SELECT unit_id FROM reservation_assignments WHERE reservation_id = ?`
	rows, err := t.tx.QueryContext(ctx, q, reservationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []uint64
	for rows.Next() {
		var id uint64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (t *sqlTx) UpdateReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
	const q = `UPDATE reservations SET status = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, id)
	return err
}

func (t *sqlTx) UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	const q = `UPDATE reservations SET payment_status = ? WHERE id = ?`
	_, err := t.tx.ExecContext(ctx, q, status, id)
	return err
}
