package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// MemoryStore is an in-memory Store used by the test suite and for
// local development without MySQL.  A single mutex serializes whole
// transactions, which trivially satisfies the Store contract: each
// transaction sees a consistent snapshot and concurrent allocations
// against the same resource cannot interleave.
//
// Writes are applied to a copy of the state and swapped in only when
// the transaction function returns nil, so a failed transaction leaves
// no partial mutations behind.
type MemoryStore struct {
	mu    sync.Mutex
	state memState
}

type memState struct {
	resources    map[uint64]model.Resource
	units        map[uint64]model.CapacityUnit
	reservations map[uint64]model.Reservation
	assignments  []model.ReservationAssignment
	nextUnitID   uint64
	nextResvID   uint64
	nextAsgID    uint64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{state: memState{
		resources:    map[uint64]model.Resource{},
		units:        map[uint64]model.CapacityUnit{},
		reservations: map[uint64]model.Reservation{},
	}}
}

// AddResource seeds a resource.  The caller chooses the ID.
func (s *MemoryStore) AddResource(res model.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.resources[res.ID] = res
}

// AddUnit seeds a capacity unit and returns its assigned ID.
func (s *MemoryStore) AddUnit(unit model.CapacityUnit) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.nextUnitID++
	unit.ID = s.state.nextUnitID
	s.state.units[unit.ID] = unit
	return unit.ID
}

// UnitByID returns a copy of a unit for assertions in tests.
func (s *MemoryStore) UnitByID(id uint64) (model.CapacityUnit, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.state.units[id]
	return u, ok
}

// ReservationByID returns a copy of a reservation.
func (s *MemoryStore) ReservationByID(id uint64) (model.Reservation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.state.reservations[id]
	return r, ok
}

// InTx implements Store.  fn runs with the store mutex held against a
// cloned state; the clone replaces the live state only on success.
func (s *MemoryStore) InTx(ctx context.Context, fn func(tx Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	clone := s.state.clone()
	tx := &memTx{state: &clone}
	if err := fn(tx); err != nil {
		return err
	}
	s.state = clone
	return nil
}

func (st memState) clone() memState {
	out := memState{
		resources:    make(map[uint64]model.Resource, len(st.resources)),
		units:        make(map[uint64]model.CapacityUnit, len(st.units)),
		reservations: make(map[uint64]model.Reservation, len(st.reservations)),
		assignments:  make([]model.ReservationAssignment, len(st.assignments)),
		nextUnitID:   st.nextUnitID,
		nextResvID:   st.nextResvID,
		nextAsgID:    st.nextAsgID,
	}
	for k, v := range st.resources {
		out.resources[k] = v
	}
	for k, v := range st.units {
		out.units[k] = v
	}
	for k, v := range st.reservations {
		out.reservations[k] = v
	}
	copy(out.assignments, st.assignments)
	return out
}

// memTx implements Tx over a cloned memState.
type memTx struct {
	state *memState
}

func (t *memTx) GetResource(ctx context.Context, id uint64) (*model.Resource, error) {
	res, ok := t.state.resources[id]
	if !ok {
		return nil, nil
	}
	return &res, nil
}

func (t *memTx) ListOverlapping(ctx context.Context, resourceID uint64, w Window, excludeID uint64) ([]model.Reservation, error) {
	var out []model.Reservation
	for _, r := range t.state.reservations {
		if r.ResourceID != resourceID || r.ID == excludeID || !r.Status.Active() {
			continue
		}
		if (Window{Start: r.StartsAt, End: r.EndsAt}).Overlaps(w) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (t *memTx) ListAvailableUnits(ctx context.Context, resourceID uint64, classification string) ([]model.CapacityUnit, error) {
	var out []model.CapacityUnit
	for _, u := range t.state.units {
		if u.ResourceID != resourceID || !u.Available {
			continue
		}
		if classification != "" && u.Classification != classification {
			continue
		}
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (t *memTx) CountUnits(ctx context.Context, resourceID uint64, classification string) (int, error) {
	n := 0
	for _, u := range t.state.units {
		if u.ResourceID != resourceID {
			continue
		}
		if classification != "" && u.Classification != classification {
			continue
		}
		n++
	}
	return n, nil
}

func (t *memTx) CreateUnit(ctx context.Context, unit *model.CapacityUnit) error {
	t.state.nextUnitID++
	unit.ID = t.state.nextUnitID
	unit.CreatedAt = time.Now().UTC()
	unit.UpdatedAt = unit.CreatedAt
	t.state.units[unit.ID] = *unit
	return nil
}

func (t *memTx) ClaimUnit(ctx context.Context, unitID uint64) (bool, error) {
	u, ok := t.state.units[unitID]
	if !ok || !u.Available {
		return false, nil
	}
	u.Available = false
	u.UpdatedAt = time.Now().UTC()
	t.state.units[unitID] = u
	return true, nil
}

func (t *memTx) ReleaseUnits(ctx context.Context, unitIDs []uint64) error {
	for _, id := range unitIDs {
		if u, ok := t.state.units[id]; ok {
			u.Available = true
			u.UpdatedAt = time.Now().UTC()
			t.state.units[id] = u
		}
	}
	return nil
}

func (t *memTx) CreateReservation(ctx context.Context, res *model.Reservation) error {
	t.state.nextResvID++
	res.ID = t.state.nextResvID
	res.CreatedAt = time.Now().UTC()
	res.UpdatedAt = res.CreatedAt
	t.state.reservations[res.ID] = *res
	return nil
}

func (t *memTx) CreateAssignments(ctx context.Context, assignments []model.ReservationAssignment) error {
	for _, a := range assignments {
		t.state.nextAsgID++
		a.ID = t.state.nextAsgID
		a.CreatedAt = time.Now().UTC()
		t.state.assignments = append(t.state.assignments, a)
	}
	return nil
}

func (t *memTx) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	r, ok := t.state.reservations[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (t *memTx) AssignedUnitIDs(ctx context.Context, reservationID uint64) ([]uint64, error) {
	var out []uint64
	for _, a := range t.state.assignments {
		if a.ReservationID == reservationID {
			out = append(out, a.UnitID)
		}
	}
	return out, nil
}

func (t *memTx) UpdateReservationStatus(ctx context.Context, id uint64, status model.ReservationStatus) error {
	if r, ok := t.state.reservations[id]; ok {
		r.Status = status
		r.UpdatedAt = time.Now().UTC()
		t.state.reservations[id] = r
	}
	return nil
}

func (t *memTx) UpdatePaymentStatus(ctx context.Context, id uint64, status model.PaymentStatus) error {
	if r, ok := t.state.reservations[id]; ok {
		r.PaymentStatus = status
		r.UpdatedAt = time.Now().UTC()
		t.state.reservations[id] = r
	}
	return nil
}
