package model

import "time"

// Role determines what a user may do with reservations.  Customers
// create and cancel their own reservations, owners manage reservations
// on resources they own, and admins may act on anything.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleOwner    Role = "OWNER"
	RoleAdmin    Role = "ADMIN"
)

// User is a platform account.  Only the password hash is stored; the
// raw password never leaves the auth handler.
//
// Fields:
//  ID           – primary key identifier.
//  Email        – unique login email.
//  PasswordHash – bcrypt hash of the password.
//  FullName     – display name.
//  Role         – CUSTOMER, OWNER or ADMIN.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	Role         Role      // users.role
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}
