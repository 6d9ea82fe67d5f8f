package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

const (
	ownerID    = uint64(100)
	customerID = uint64(7)
	adminID    = uint64(1)
	strangerID = uint64(55)
)

// newLedgerFixture seeds a flight with one booked seat and returns the
// store, a ledger whose clock is frozen well before the reservation
// start, and the reservation.
func newLedgerFixture(t *testing.T) (*MemoryStore, *Ledger, *AllocationResult) {
	t.Helper()
	store := NewMemoryStore()
	flight, _ := seedFlight(store, 2)
	alloc := NewAllocator(store, AllocatorConfig{}, nil)

	result, err := alloc.Allocate(context.Background(), AllocationRequest{
		ResourceID:     flight.ID,
		RequesterID:    customerID,
		Window:         testWindow(t, 30, 32),
		PartySize:      1,
		Classification: "ECONOMY",
	})
	require.NoError(t, err)

	ledger := NewLedger(store, 24*time.Hour, nil)
	ledger.now = func() time.Time { return testBase }
	return store, ledger, result
}

func TestLedgerTransitions(t *testing.T) {
	ctx := context.Background()

	t.Run("pending to confirmed by owner", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		out, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusConfirmed)
		require.NoError(t, err)
		assert.Equal(t, model.StatusConfirmed, out.Status)
	})

	t.Run("customer may not confirm", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, customerID, model.RoleCustomer, model.StatusConfirmed)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("confirmed to completed", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusConfirmed)
		require.NoError(t, err)
		out, err := ledger.Transition(ctx, r.Reservation.ID, adminID, model.RoleAdmin, model.StatusCompleted)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCompleted, out.Status)
	})

	t.Run("confirmed to no-show", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusConfirmed)
		require.NoError(t, err)
		out, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusNoShow)
		require.NoError(t, err)
		assert.Equal(t, model.StatusNoShow, out.Status)
	})

	t.Run("pending may not skip to completed", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusCompleted)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("pending may not no-show", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusNoShow)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("terminal statuses reject transitions", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusConfirmed)
		require.NoError(t, err)
		_, err = ledger.Transition(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.StatusCompleted)
		require.NoError(t, err)

		for _, to := range []model.ReservationStatus{model.StatusConfirmed, model.StatusCancelled, model.StatusNoShow} {
			_, err = ledger.Transition(ctx, r.Reservation.ID, adminID, model.RoleAdmin, to)
			assert.ErrorIs(t, err, ErrInvalidTransition, "COMPLETED -> %s", to)
		}
	})

	t.Run("unknown target status", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, adminID, model.RoleAdmin, model.ReservationStatus("ARCHIVED"))
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("reservation not found", func(t *testing.T) {
		_, ledger, _ := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, 999, adminID, model.RoleAdmin, model.StatusConfirmed)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("owner of another resource is rejected", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Transition(ctx, r.Reservation.ID, strangerID, model.RoleOwner, model.StatusConfirmed)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestLedgerCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("customer cancel outside lead time releases units", func(t *testing.T) {
		store, ledger, r := newLedgerFixture(t)
		out, err := ledger.Cancel(ctx, r.Reservation.ID, customerID, model.RoleCustomer)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, out.Status)

		for _, id := range r.UnitIDs {
			u, ok := store.UnitByID(id)
			require.True(t, ok)
			assert.True(t, u.Available, "cancel must release the claimed unit")
		}
	})

	t.Run("customer cancel inside lead time is rejected", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		// Reservation starts at +30h; 10h before start is inside 24h.
		ledger.now = func() time.Time { return testBase.Add(20 * time.Hour) }
		_, err := ledger.Cancel(ctx, r.Reservation.ID, customerID, model.RoleCustomer)
		assert.ErrorIs(t, err, ErrCancellationWindowExpired)
	})

	t.Run("owner may cancel inside lead time", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		ledger.now = func() time.Time { return testBase.Add(29 * time.Hour) }
		out, err := ledger.Cancel(ctx, r.Reservation.ID, ownerID, model.RoleOwner)
		require.NoError(t, err)
		assert.Equal(t, model.StatusCancelled, out.Status)
	})

	t.Run("admin may cancel inside lead time", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		ledger.now = func() time.Time { return testBase.Add(29 * time.Hour) }
		_, err := ledger.Cancel(ctx, r.Reservation.ID, adminID, model.RoleAdmin)
		require.NoError(t, err)
	})

	t.Run("cancel of terminal reservation is rejected", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Cancel(ctx, r.Reservation.ID, customerID, model.RoleCustomer)
		require.NoError(t, err)
		_, err = ledger.Cancel(ctx, r.Reservation.ID, customerID, model.RoleCustomer)
		assert.ErrorIs(t, err, ErrInvalidTransition)
	})

	t.Run("customer may not cancel someone else's reservation", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.Cancel(ctx, r.Reservation.ID, strangerID, model.RoleCustomer)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("transition to cancelled applies cancel rules", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		ledger.now = func() time.Time { return testBase.Add(20 * time.Hour) }
		_, err := ledger.Transition(ctx, r.Reservation.ID, customerID, model.RoleCustomer, model.StatusCancelled)
		assert.ErrorIs(t, err, ErrCancellationWindowExpired)
	})
}

func TestLedgerPayment(t *testing.T) {
	ctx := context.Background()

	t.Run("owner marks paid", func(t *testing.T) {
		store, ledger, r := newLedgerFixture(t)
		out, err := ledger.SetPaymentStatus(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.PaymentPaid)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentPaid, out.PaymentStatus)

		stored, ok := store.ReservationByID(r.Reservation.ID)
		require.True(t, ok)
		assert.Equal(t, model.PaymentPaid, stored.PaymentStatus)
	})

	t.Run("customer may not touch payment", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.SetPaymentStatus(ctx, r.Reservation.ID, customerID, model.RoleCustomer, model.PaymentPaid)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("refund allowed after cancellation", func(t *testing.T) {
		_, ledger, r := newLedgerFixture(t)
		_, err := ledger.SetPaymentStatus(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.PaymentPaid)
		require.NoError(t, err)
		_, err = ledger.Cancel(ctx, r.Reservation.ID, adminID, model.RoleAdmin)
		require.NoError(t, err)

		out, err := ledger.SetPaymentStatus(ctx, r.Reservation.ID, ownerID, model.RoleOwner, model.PaymentRefunded)
		require.NoError(t, err)
		assert.Equal(t, model.PaymentRefunded, out.PaymentStatus)
	})
}
