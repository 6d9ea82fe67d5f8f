package model

import "time"

// ResourceKind identifies what sort of bookable entity a resource is.
// The platform sells bookings for local businesses (restaurants and
// hotels), licensed guides and domestic flights.
type ResourceKind string

const (
	KindBusiness ResourceKind = "BUSINESS"
	KindGuide    ResourceKind = "GUIDE"
	KindFlight   ResourceKind = "FLIGHT"
)

// CapacityModel describes how a resource's capacity is accounted for.
// UNITS resources are backed by discrete capacity units (seats, tables)
// that get individually assigned to reservations.  WINDOW resources are
// only bounded by how many reservations may overlap in time.
type CapacityModel string

const (
	ModelUnits  CapacityModel = "UNITS"
	ModelWindow CapacityModel = "WINDOW"
)

// Resource is a bookable entity owned by a marketplace vendor.
//
// Fields:
//  ID             – primary key identifier.
//  OwnerID        – user who owns and manages the resource.
//  Name           – display name (e.g. "Riad Yasmine", "Atlas Treks").
//  City           – city the resource operates in.
//  Kind           – BUSINESS, GUIDE or FLIGHT.
//  CapacityModel  – UNITS or WINDOW.
//  CapacityLimit  – maximum concurrent active reservations; 0 means
//                   unbounded (unit availability still applies).
//  BasePriceCents – price per reservation for WINDOW resources.
//  Active         – whether the resource accepts new reservations.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Resource struct {
	ID             uint64        // resources.id
	OwnerID        uint64        // resources.owner_id
	Name           string        // resources.name
	City           string        // resources.city
	Kind           ResourceKind  // resources.kind
	CapacityModel  CapacityModel // resources.capacity_model
	CapacityLimit  int           // resources.capacity_limit
	BasePriceCents uint32        // resources.base_price_cents
	Active         bool          // resources.active
	CreatedAt      time.Time     // resources.created_at
	UpdatedAt      time.Time     // resources.updated_at
}
