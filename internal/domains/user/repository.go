package user

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for users.
type Repository interface {
	// Create inserts a new user.
	// Returns ErrUsernameAlreadyExists on a duplicate username.
	Create(ctx context.Context, u *User) error

	// FindByID returns ErrUserNotFound when no row matches.
	FindByID(ctx context.Context, id uuid.UUID) (*User, error)

	// FindByUsername is the login lookup.
	// Returns ErrUserNotFound when no row matches.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// ExistsByUsername checks for a duplicate, optionally excluding one id
	// (used when renaming an existing user).
	ExistsByUsername(ctx context.Context, username string, excludeID *uuid.UUID) (bool, error)

	// Update persists mutable fields. Returns ErrUserNotFound when missing.
	Update(ctx context.Context, u *User) error

	// ToggleStatus flips is_active.
	ToggleStatus(ctx context.Context, id uuid.UUID) error

	// Delete removes the user row. Returns ErrUserNotFound when missing.
	Delete(ctx context.Context, id uuid.UUID) error

	// List returns all users, newest first.
	List(ctx context.Context) ([]User, error)
}
