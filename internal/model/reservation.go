package model

import "time"

// ReservationStatus tracks the lifecycle of a reservation.  Allowed
// transitions are PENDING → CONFIRMED → COMPLETED, any non-terminal
// status → CANCELLED, and CONFIRMED → NO_SHOW.  COMPLETED, CANCELLED
// and NO_SHOW are terminal.
type ReservationStatus string

const (
	StatusPending   ReservationStatus = "PENDING"
	StatusConfirmed ReservationStatus = "CONFIRMED"
	StatusCompleted ReservationStatus = "COMPLETED"
	StatusCancelled ReservationStatus = "CANCELLED"
	StatusNoShow    ReservationStatus = "NO_SHOW"
)

// Terminal reports whether no further status transitions are permitted.
func (s ReservationStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled || s == StatusNoShow
}

// Active reports whether the reservation still occupies capacity.
// Cancelled reservations release their capacity; every other status
// counts against the resource's concurrent limit.
func (s ReservationStatus) Active() bool {
	return s != StatusCancelled
}

// PaymentStatus tracks how much of the reservation total has been paid.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "UNPAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

// Reservation records a requester's hold on a resource over a time
// window.  Unit-model resources additionally bind one capacity unit
// per party member through ReservationAssignment rows.
//
// Fields:
//  ID               – primary key identifier.
//  Reference        – public opaque reference code (UUID).
//  ResourceID       – resource being reserved.
//  RequesterID      – user who requested the reservation.
//  StartsAt         – start of the reserved window (UTC, inclusive).
//  EndsAt           – end of the reserved window (UTC, exclusive).
//  PartySize        – number of people covered by the reservation.
//  Status           – lifecycle status.
//  PaymentStatus    – payment state.
//  TotalAmountCents – total price in cents.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
	ID               uint64            // reservations.id
	Reference        string            // reservations.reference
	ResourceID       uint64            // reservations.resource_id
	RequesterID      uint64            // reservations.requester_id
	StartsAt         time.Time         // reservations.starts_at
	EndsAt           time.Time         // reservations.ends_at
	PartySize        int               // reservations.party_size
	Status           ReservationStatus // reservations.status
	PaymentStatus    PaymentStatus     // reservations.payment_status
	TotalAmountCents uint32            // reservations.total_amount_cents
	CreatedAt        time.Time         // reservations.created_at
	UpdatedAt        time.Time         // reservations.updated_at
}

// ReservationAssignment binds a reservation to a single capacity unit.
// A unit appears in at most one assignment whose reservation is active.
//
// Fields:
//  ID            – primary key identifier.
//  ReservationID – reservation holding the unit.
//  UnitID        – capacity unit that was claimed.
//  PriceCents    – unit price captured at allocation time.
//  CreatedAt     – creation timestamp.
type ReservationAssignment struct {
	ID            uint64    // reservation_assignments.id
	ReservationID uint64    // reservation_assignments.reservation_id
	UnitID        uint64    // reservation_assignments.unit_id
	PriceCents    uint32    // reservation_assignments.price_cents
	CreatedAt     time.Time // reservation_assignments.created_at
}
