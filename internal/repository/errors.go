// Package repository implements MySQL persistence for users, resources,
// capacity units and reservations.  Sentinel errors defined here let
// handlers distinguish failure scenarios without inspecting SQL errors:
// ErrForbidden maps to HTTP 403, the *NotFound values to 404 and
// ErrEmailTaken to 409.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// record owned by someone else.
var ErrForbidden = errors.New("forbidden")

// ErrResourceNotFound is returned when a resource lookup matches no row.
var ErrResourceNotFound = errors.New("resource not found")

// ErrReservationNotFound is returned when a reservation lookup matches
// no row.
var ErrReservationNotFound = errors.New("reservation not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailTaken is returned when registering with an email that already
// has an account.
var ErrEmailTaken = errors.New("email already registered")
