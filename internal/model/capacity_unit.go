package model

import "time"

// CapacityUnit is a concrete allocatable unit belonging to a resource:
// a flight seat, a restaurant table or a guide-hour slot.  A unit is
// owned exclusively by its resource and may be assigned to at most one
// active reservation at a time.
//
// Fields:
//  ID             – primary key identifier.
//  ResourceID     – resource this unit belongs to.
//  Label          – human-readable label ("12A", "Table 3").
//  Classification – grouping such as a seating class (ECONOMY, VIP).
//  PriceCents     – price charged when this unit is assigned.
//  Available      – false while bound to an active reservation.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type CapacityUnit struct {
	ID             uint64    // capacity_units.id
	ResourceID     uint64    // capacity_units.resource_id
	Label          string    // capacity_units.label
	Classification string    // capacity_units.classification
	PriceCents     uint32    // capacity_units.price_cents
	Available      bool      // capacity_units.available
	CreatedAt      time.Time // capacity_units.created_at
	UpdatedAt      time.Time // capacity_units.updated_at
}
