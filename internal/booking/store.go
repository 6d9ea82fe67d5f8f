package booking

import (
	"context"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// Store is the persistence boundary of the booking core.  InTx runs fn
// inside a single unit of work: every read fn performs sees a
// consistent snapshot and every write is applied atomically when fn
// returns nil, or not at all when fn returns an error.
//
// Implementations must serialize concurrent transactions touching the
// same resource.  The MySQL store does this with row locks
// (SELECT ... FOR UPDATE on the resource row) plus conditional claim
// updates; the in-memory store holds a mutex for the whole transaction.
type Store interface {
	InTx(ctx context.Context, fn func(tx Tx) error) error
}

// Tx exposes the reads and writes the allocator and ledger need within
// one unit of work.  Lookup methods return (nil, nil) when the row
// does not exist; the core maps that to ErrNotFound.
type Tx interface {
	// GetResource loads a resource and locks it for the remainder of
	// the transaction, serializing allocations per resource.
	GetResource(ctx context.Context, id uint64) (*model.Resource, error)

	// ListOverlapping returns the active (non-cancelled) reservations
	// for the resource whose window intersects w, excluding the
	// reservation with excludeID when non-zero.
	ListOverlapping(ctx context.Context, resourceID uint64, w Window, excludeID uint64) ([]model.Reservation, error)

	// ListAvailableUnits returns available capacity units of the given
	// classification ordered by ascending ID.  An empty classification
	// matches all units.
	ListAvailableUnits(ctx context.Context, resourceID uint64, classification string) ([]model.CapacityUnit, error)

	// CountUnits returns how many capacity units of the classification
	// exist for the resource, available or not.
	CountUnits(ctx context.Context, resourceID uint64, classification string) (int, error)

	// CreateUnit inserts a capacity unit and populates its ID.
	CreateUnit(ctx context.Context, unit *model.CapacityUnit) error

	// ClaimUnit atomically flips a unit from available to unavailable.
	// It returns false when the unit was no longer available, i.e. a
	// concurrent transaction claimed it first.
	ClaimUnit(ctx context.Context, unitID uint64) (bool, error)

	// ReleaseUnits marks the given units available again.
	ReleaseUnits(ctx context.Context, unitIDs []uint64) error

	// CreateReservation inserts a reservation and populates its ID.
	CreateReservation(ctx context.Context, res *model.Reservation) error

	// CreateAssignments inserts reservation-to-unit bindings.
	CreateAssignments(ctx context.Context, assignments []model.ReservationAssignment) error

	// GetReservation loads a reservation by ID and locks it for the
	// remainder of the transaction.
	GetReservation(ctx context.Context, id uint64) (*model.Reservation, error)

	// AssignedUnitIDs returns the IDs of units bound to a reservation.
	AssignedUnitIDs(ctx context.Context, reservationID uint64) ([]uint64, error)

	// UpdateReservationStatus persists a status change.
	UpdateReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error

	// UpdatePaymentStatus persists a payment status change.
	UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error
}
