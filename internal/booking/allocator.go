package booking

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// AllocatorConfig controls lazy capacity expansion.  When LazyExpansion
// is enabled and a unit-model resource has no claimable unit of the
// requested classification, the allocator manufactures new units on
// demand until ExpansionCeiling units of that classification exist.
// Expansion is disabled by default; unbounded inventory growth is
// worse than a NoAvailability error.
type AllocatorConfig struct {
	LazyExpansion    bool
	ExpansionCeiling int
}

// AllocationRequest describes a reservation to create.  PartySize
// values below one are treated as one.  Classification selects which
// capacity units may be claimed for unit-model resources and is
// ignored for window-model resources.
type AllocationRequest struct {
	ResourceID     uint64
	RequesterID    uint64
	Window         Window
	PartySize      int
	Classification string
}

// AllocationResult is the outcome of a successful allocation.
// Expanded is true when at least one capacity unit was lazily created,
// so callers can surface the policy to their own clients.
type AllocationResult struct {
	Reservation *model.Reservation
	UnitIDs     []uint64
	Expanded    bool
}

// AvailabilityResult answers a read-only availability probe.
type AvailabilityResult struct {
	Available         bool `json:"available"`
	OverlappingActive int  `json:"overlapping_active"`
	CapacityLimit     int  `json:"capacity_limit"`
	AvailableUnits    int  `json:"available_units"`
	CanExpand         bool `json:"can_expand"`
}

// Allocator creates reservations.  Every allocation runs in one store
// transaction: the conflict check, unit claims, reservation insert and
// assignment inserts all commit together or not at all.
type Allocator struct {
	store  Store
	cfg    AllocatorConfig
	logger *zap.Logger
}

// NewAllocator builds an Allocator.  A nil logger disables logging.
func NewAllocator(store Store, cfg AllocatorConfig, logger *zap.Logger) *Allocator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{store: store, cfg: cfg, logger: logger}
}

// Allocate validates the request, checks conflicts and claims capacity,
// then persists the reservation in PENDING status.  Failure modes:
// ErrInvalidWindow, ErrNotFound (unknown resource), ErrResourceInactive
// and ErrNoAvailability.  Losing a claim race on every candidate unit
// also surfaces as ErrNoAvailability; the claim loop iterating the
// remaining candidates is the only retry this package performs.
func (a *Allocator) Allocate(ctx context.Context, req AllocationRequest) (*AllocationResult, error) {
	if !req.Window.End.After(req.Window.Start) {
		return nil, ErrInvalidWindow
	}
	party := req.PartySize
	if party < 1 {
		party = 1
	}

	var result AllocationResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		res, err := tx.GetResource(ctx, req.ResourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return ErrNotFound
		}
		if !res.Active {
			return ErrResourceInactive
		}

		exceeded, err := exceedsCapacity(ctx, tx, res, req.Window, 0)
		if err != nil {
			return err
		}
		if exceeded {
			return ErrNoAvailability
		}

		var (
			claimed  []claimedUnit
			total    uint32
			expanded bool
		)
		if res.CapacityModel == model.ModelUnits {
			claimed, expanded, err = a.claimUnits(ctx, tx, res, req.Classification, party)
			if err != nil {
				return err
			}
			for _, cu := range claimed {
				total += cu.PriceCents
			}
		} else {
			total = res.BasePriceCents
		}

		resv := &model.Reservation{
			Reference:        uuid.NewString(),
			ResourceID:       res.ID,
			RequesterID:      req.RequesterID,
			StartsAt:         req.Window.Start,
			EndsAt:           req.Window.End,
			PartySize:        party,
			Status:           model.StatusPending,
			PaymentStatus:    model.PaymentUnpaid,
			TotalAmountCents: total,
		}
		if err := tx.CreateReservation(ctx, resv); err != nil {
			return err
		}
		var (
			assignments []model.ReservationAssignment
			unitIDs     []uint64
		)
		for _, cu := range claimed {
			assignments = append(assignments, model.ReservationAssignment{
				ReservationID: resv.ID,
				UnitID:        cu.ID,
				PriceCents:    cu.PriceCents,
			})
			unitIDs = append(unitIDs, cu.ID)
		}
		if err := tx.CreateAssignments(ctx, assignments); err != nil {
			return err
		}
		result = AllocationResult{Reservation: resv, UnitIDs: unitIDs, Expanded: expanded}
		return nil
	})
	if err != nil {
		return nil, err
	}
	a.logger.Info("reservation allocated",
		zap.Uint64("reservation_id", result.Reservation.ID),
		zap.Uint64("resource_id", req.ResourceID),
		zap.Int("units", len(result.UnitIDs)),
		zap.Bool("expanded", result.Expanded),
	)
	return &result, nil
}

// claimedUnit records a successfully claimed unit and the price it was
// claimed at.
type claimedUnit struct {
	ID         uint64
	PriceCents uint32
}

// claimUnits claims `count` available units of the classification in
// ascending ID order.  ClaimUnit is conditional, so a unit grabbed by
// a concurrent transaction is simply skipped.  When candidates run out
// it falls back to lazy expansion if configured, otherwise fails with
// ErrNoAvailability.
func (a *Allocator) claimUnits(ctx context.Context, tx Tx, res *model.Resource, classification string, count int) (claimed []claimedUnit, expanded bool, err error) {
	candidates, err := tx.ListAvailableUnits(ctx, res.ID, classification)
	if err != nil {
		return nil, false, err
	}
	for _, u := range candidates {
		if len(claimed) == count {
			break
		}
		ok, err := tx.ClaimUnit(ctx, u.ID)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			continue // lost the race for this unit, try the next one
		}
		claimed = append(claimed, claimedUnit{ID: u.ID, PriceCents: u.PriceCents})
	}
	for len(claimed) < count {
		unit, err := a.expandInventory(ctx, tx, res, classification)
		if err != nil {
			return nil, false, err
		}
		claimed = append(claimed, claimedUnit{ID: unit.ID, PriceCents: unit.PriceCents})
		expanded = true
	}
	return claimed, expanded, nil
}

// expandInventory creates one extra capacity unit, already claimed,
// provided lazy expansion is enabled and the classification is still
// under the ceiling.
func (a *Allocator) expandInventory(ctx context.Context, tx Tx, res *model.Resource, classification string) (*model.CapacityUnit, error) {
	if !a.cfg.LazyExpansion {
		return nil, ErrNoAvailability
	}
	existing, err := tx.CountUnits(ctx, res.ID, classification)
	if err != nil {
		return nil, err
	}
	if a.cfg.ExpansionCeiling > 0 && existing >= a.cfg.ExpansionCeiling {
		return nil, ErrNoAvailability
	}
	label := fmt.Sprintf("U%d", existing+1)
	if classification != "" {
		label = fmt.Sprintf("%s-%d", classification, existing+1)
	}
	unit := &model.CapacityUnit{
		ResourceID:     res.ID,
		Label:          label,
		Classification: classification,
		PriceCents:     res.BasePriceCents,
		Available:      false,
	}
	if err := tx.CreateUnit(ctx, unit); err != nil {
		return nil, err
	}
	a.logger.Info("capacity expanded",
		zap.Uint64("resource_id", res.ID),
		zap.String("classification", classification),
		zap.Uint64("unit_id", unit.ID),
	)
	return unit, nil
}

// CheckAvailability is the read-only probe behind the availability
// endpoint.  It never mutates state and never creates units; it only
// reports whether Allocate would plausibly succeed right now.
func (a *Allocator) CheckAvailability(ctx context.Context, resourceID uint64, w Window, partySize int, classification string) (*AvailabilityResult, error) {
	if !w.End.After(w.Start) {
		return nil, ErrInvalidWindow
	}
	if partySize < 1 {
		partySize = 1
	}
	var out AvailabilityResult
	err := a.store.InTx(ctx, func(tx Tx) error {
		res, err := tx.GetResource(ctx, resourceID)
		if err != nil {
			return err
		}
		if res == nil {
			return ErrNotFound
		}
		out.CapacityLimit = res.CapacityLimit
		if !res.Active {
			out.Available = false
			return nil
		}
		overlapping, err := tx.ListOverlapping(ctx, res.ID, w, 0)
		if err != nil {
			return err
		}
		out.OverlappingActive = len(overlapping)
		if res.CapacityLimit > 0 && len(overlapping) >= res.CapacityLimit {
			out.Available = false
			return nil
		}
		if res.CapacityModel != model.ModelUnits {
			out.Available = true
			return nil
		}
		units, err := tx.ListAvailableUnits(ctx, res.ID, classification)
		if err != nil {
			return err
		}
		out.AvailableUnits = len(units)
		if len(units) >= partySize {
			out.Available = true
			return nil
		}
		if a.cfg.LazyExpansion {
			existing, err := tx.CountUnits(ctx, res.ID, classification)
			if err != nil {
				return err
			}
			headroom := a.cfg.ExpansionCeiling - existing
			if a.cfg.ExpansionCeiling <= 0 {
				headroom = partySize // no ceiling configured
			}
			if len(units)+headroom >= partySize {
				out.Available = true
				out.CanExpand = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
