package user

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the business logic contract for users and authentication.
type Service interface {
	// Authentication
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error

	// User management (manage_users permission)
	CreateUser(ctx context.Context, req CreateUserRequest) (*UserDTO, error)
	GetUser(ctx context.Context, id uuid.UUID) (*UserDTO, error)
	ListUsers(ctx context.Context) ([]UserDTO, error)
	UpdateUser(ctx context.Context, id uuid.UUID, req UpdateUserRequest) (*UserDTO, error)
	ToggleUserStatus(ctx context.Context, id uuid.UUID) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
}
