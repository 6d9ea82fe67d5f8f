package booking

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// allowedTransitions is the reservation state machine.  Anything not
// listed here is rejected with ErrInvalidTransition, which also covers
// every transition out of a terminal status.
var allowedTransitions = map[model.ReservationStatus]map[model.ReservationStatus]bool{
	model.StatusPending: {
		model.StatusConfirmed: true,
		model.StatusCancelled: true,
	},
	model.StatusConfirmed: {
		model.StatusCompleted: true,
		model.StatusCancelled: true,
		model.StatusNoShow:    true,
	},
}

// transitionRoles is the permission table for non-cancel transitions:
// only the resource owner or an admin may confirm, complete or mark a
// no-show.  Cancellation has its own rules in Cancel.
var transitionRoles = map[model.ReservationStatus]map[model.Role]bool{
	model.StatusConfirmed: {model.RoleOwner: true, model.RoleAdmin: true},
	model.StatusCompleted: {model.RoleOwner: true, model.RoleAdmin: true},
	model.StatusNoShow:    {model.RoleOwner: true, model.RoleAdmin: true},
}

// Ledger is the authoritative record of reservation status and payment
// transitions.  Every mutation runs in a store transaction; cancelling
// releases the reservation's capacity units in the same transaction.
type Ledger struct {
	store    Store
	leadTime time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewLedger builds a Ledger.  leadTime is the minimum interval between
// a requester-initiated cancellation and the reservation start;
// owners and admins are not subject to it.  A nil logger disables
// logging.
func NewLedger(store Store, leadTime time.Duration, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{store: store, leadTime: leadTime, logger: logger, now: time.Now}
}

// Transition moves a reservation to newStatus on behalf of the actor.
// Cancellations are delegated to Cancel so the lead-time and release
// rules apply regardless of which entry point the caller used.
func (l *Ledger) Transition(ctx context.Context, reservationID, actorID uint64, role model.Role, newStatus model.ReservationStatus) (*model.Reservation, error) {
	if newStatus == model.StatusCancelled {
		return l.Cancel(ctx, reservationID, actorID, role)
	}
	roles, known := transitionRoles[newStatus]
	if !known {
		return nil, ErrInvalidTransition
	}
	if !roles[role] {
		return nil, ErrUnauthorized
	}

	var out *model.Reservation
	err := l.store.InTx(ctx, func(tx Tx) error {
		resv, err := l.loadForActor(ctx, tx, reservationID, actorID, role)
		if err != nil {
			return err
		}
		if !allowedTransitions[resv.Status][newStatus] {
			return ErrInvalidTransition
		}
		if err := tx.UpdateReservationStatus(ctx, resv.ID, newStatus); err != nil {
			return err
		}
		resv.Status = newStatus
		out = resv
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("reservation transitioned",
		zap.Uint64("reservation_id", reservationID),
		zap.String("status", string(newStatus)),
		zap.String("actor_role", string(role)),
	)
	return out, nil
}

// Cancel cancels a reservation and releases its capacity units.
// Requesters may only cancel their own reservations and only while the
// start time is at least the configured lead time away; owners (of the
// reservation's resource) and admins may cancel any time before a
// terminal status is reached.
func (l *Ledger) Cancel(ctx context.Context, reservationID, actorID uint64, role model.Role) (*model.Reservation, error) {
	var out *model.Reservation
	err := l.store.InTx(ctx, func(tx Tx) error {
		resv, err := l.loadForActor(ctx, tx, reservationID, actorID, role)
		if err != nil {
			return err
		}
		if resv.Status.Terminal() {
			return ErrInvalidTransition
		}
		if role == model.RoleCustomer {
			if resv.StartsAt.Sub(l.now().UTC()) < l.leadTime {
				return ErrCancellationWindowExpired
			}
		}
		if err := tx.UpdateReservationStatus(ctx, resv.ID, model.StatusCancelled); err != nil {
			return err
		}
		unitIDs, err := tx.AssignedUnitIDs(ctx, resv.ID)
		if err != nil {
			return err
		}
		if err := tx.ReleaseUnits(ctx, unitIDs); err != nil {
			return err
		}
		resv.Status = model.StatusCancelled
		out = resv
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("reservation cancelled",
		zap.Uint64("reservation_id", reservationID),
		zap.String("actor_role", string(role)),
	)
	return out, nil
}

// SetPaymentStatus updates the payment state of a reservation.  Only
// the resource owner or an admin may do so.  Payment state is
// orthogonal to the lifecycle machine: refunds after cancellation are
// legitimate, so terminal reservations still accept payment updates.
func (l *Ledger) SetPaymentStatus(ctx context.Context, reservationID, actorID uint64, role model.Role, status model.PaymentStatus) (*model.Reservation, error) {
	if role != model.RoleOwner && role != model.RoleAdmin {
		return nil, ErrUnauthorized
	}
	var out *model.Reservation
	err := l.store.InTx(ctx, func(tx Tx) error {
		resv, err := l.loadForActor(ctx, tx, reservationID, actorID, role)
		if err != nil {
			return err
		}
		if err := tx.UpdatePaymentStatus(ctx, resv.ID, status); err != nil {
			return err
		}
		resv.PaymentStatus = status
		out = resv
		return nil
	})
	if err != nil {
		return nil, err
	}
	l.logger.Info("payment status updated",
		zap.Uint64("reservation_id", reservationID),
		zap.String("payment_status", string(status)),
	)
	return out, nil
}

// loadForActor fetches the reservation and enforces who may touch it:
// admins always, owners only for reservations on their own resources,
// customers only for reservations they created.
func (l *Ledger) loadForActor(ctx context.Context, tx Tx, reservationID, actorID uint64, role model.Role) (*model.Reservation, error) {
	resv, err := tx.GetReservation(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if resv == nil {
		return nil, ErrNotFound
	}
	switch role {
	case model.RoleAdmin:
		return resv, nil
	case model.RoleOwner:
		res, err := tx.GetResource(ctx, resv.ResourceID)
		if err != nil {
			return nil, err
		}
		if res == nil || res.OwnerID != actorID {
			return nil, ErrUnauthorized
		}
		return resv, nil
	case model.RoleCustomer:
		if resv.RequesterID != actorID {
			return nil, ErrUnauthorized
		}
		return resv, nil
	default:
		return nil, ErrUnauthorized
	}
}
