package user

import "errors"

// Repository-level errors
var (
	ErrUserNotFound          = errors.New("user not found")
	ErrUsernameAlreadyExists = errors.New("username already exists")
)

// Service-level (business logic) errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserInactive       = errors.New("user account is inactive")
	ErrTooManyAttempts    = errors.New("too many login attempts, please try again later")
	ErrCannotDeleteAdmin  = errors.New("cannot delete admin user")
)

// Validation errors
var (
	ErrInvalidRole       = errors.New("invalid user role")
	ErrInvalidPermission = errors.New("invalid permission tag")
)
