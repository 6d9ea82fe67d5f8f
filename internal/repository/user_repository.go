package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/asmamiga/tourism-website-sub001/internal/model"
)

// UserRepo provides access to platform accounts.  It exists only to
// back the auth boundary; the booking core never sees users, only
// actor IDs and roles carried in the JWT.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo returns a UserRepo bound to the given database.
func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{db: db} }

// Create inserts a new user.  Returns ErrEmailTaken when the email is
// already registered.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	var exists int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE email = ?`, u.Email).Scan(&exists)
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrEmailTaken
	}
	const q = `INSERT INTO users (email, password_hash, full_name, role) VALUES (?, ?, ?, ?)`
	result, err := r.db.ExecContext(ctx, q, u.Email, u.PasswordHash, u.FullName, u.Role)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	u.ID = uint64(id)
	return nil
}

// GetByEmail loads a user by login email.  Returns ErrUserNotFound
// when no account exists.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, email, password_hash, full_name, role, created_at, updated_at
	           FROM users WHERE email = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByID loads a user by primary key.  Returns ErrUserNotFound when
// no account exists.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, email, password_hash, full_name, role, created_at, updated_at
	           FROM users WHERE id = ?`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}
