package booking

import (
	"context"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// ConflictChecker decides whether a proposed reservation window can be
// admitted for a resource.  It is a pure read: two reservations only
// conflict when adding the new one would push the number of
// simultaneously active reservations past the resource's concurrent
// capacity limit.
type ConflictChecker struct {
	store Store
}

// NewConflictChecker returns a ConflictChecker backed by the store.
func NewConflictChecker(store Store) *ConflictChecker {
	return &ConflictChecker{store: store}
}

// HasConflict reports whether reserving w on the resource would exceed
// its capacity.  excludeID, when non-zero, removes one reservation from
// consideration (used when re-validating an existing reservation).
// An invalid window fails with ErrInvalidWindow; a missing resource
// with ErrNotFound.
func (c *ConflictChecker) HasConflict(ctx context.Context, resourceID uint64, w Window, excludeID uint64) (bool, error) {
	if !w.End.After(w.Start) {
		return false, ErrInvalidWindow
	}
	conflict := false
	err := c.store.InTx(ctx, func(tx Tx) error {
		res, err := tx.GetResource(ctx, resourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return ErrNotFound
		}
		conflict, err = exceedsCapacity(ctx, tx, res, w, excludeID)
		return err
	})
	if err != nil {
		return false, err
	}
	return conflict, nil
}

// exceedsCapacity is the transactional overlap check shared with the
// allocator.  A capacity limit of zero means the resource places no
// bound on concurrent reservations (unit availability still applies
// for unit-model resources).
func exceedsCapacity(ctx context.Context, tx Tx, res *model.Resource, w Window, excludeID uint64) (bool, error) {
	if res.CapacityLimit <= 0 {
		return false, nil
	}
	overlapping, err := tx.ListOverlapping(ctx, res.ID, w, excludeID)
	if err != nil {
		return false, err
	}
	return len(overlapping) >= res.CapacityLimit, nil
}
