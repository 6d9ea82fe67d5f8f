// Package queue defines message payloads exchanged over the message broker.
package queue

// Event types published to the reservation.events queue.
const (
	EventReservationCreated   = "reservation.created"
	EventReservationCancelled = "reservation.cancelled"
	EventStatusChanged        = "reservation.status_changed"
	EventPaymentUpdated       = "reservation.payment_updated"
)

// ReservationEvent is published whenever a reservation is created or
// changes state. It carries enough information for downstream
// consumers to log, notify, or trigger analytics without querying the
// primary database.
type ReservationEvent struct {
	Type             string   `json:"type"`
	ReservationID    uint64   `json:"reservation_id"`
	Reference        string   `json:"reference"`
	ResourceID       uint64   `json:"resource_id"`
	RequesterID      uint64   `json:"requester_id"`
	StartsAt         string   `json:"starts_at"`
	EndsAt           string   `json:"ends_at"`
	Status           string   `json:"status"`
	PaymentStatus    string   `json:"payment_status,omitempty"`
	UnitIDs          []uint64 `json:"unit_ids,omitempty"`
	TotalAmountCents uint32   `json:"total_amount_cents"`
	OccurredAt       string   `json:"occurred_at"`
}
