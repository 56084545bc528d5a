package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"fishtrade-backend/internal/domains/user"
	"fishtrade-backend/pkg/cache"
	"fishtrade-backend/pkg/jwt"
	"fishtrade-backend/pkg/logger"
)

const (
	// bcrypt cost 12: balance between security and login latency
	bcryptCost = 12

	maxLoginAttempts = 5
	lockoutWindow    = 15 * time.Minute
)

// userService implements user.Service.
type userService struct {
	repo  user.Repository
	cache cache.Cache
	jwt   *jwt.Manager
}

// NewUserService wires the service with its dependencies.
func NewUserService(repo user.Repository, c cache.Cache, jwtManager *jwt.Manager) user.Service {
	return &userService{
		repo:  repo,
		cache: c,
		jwt:   jwtManager,
	}
}

// ========================================
// AUTHENTICATION
// ========================================

// Login verifies credentials and issues a JWT carrying the permission set.
// Repeated failures for a username are counted in Redis and locked out for
// a window; the caller always sees the same invalid-credentials error so
// usernames cannot be probed.
func (s *userService) Login(ctx context.Context, req user.LoginRequest) (*user.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	attemptsKey := fmt.Sprintf("login:attempts:%s", req.Username)
	if s.isLockedOut(ctx, attemptsKey) {
		return nil, user.ErrTooManyAttempts
	}

	u, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		s.recordFailedAttempt(ctx, attemptsKey)
		return nil, user.ErrInvalidCredentials
	}

	// constant-time comparison
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(req.Password)); err != nil {
		s.recordFailedAttempt(ctx, attemptsKey)
		return nil, user.ErrInvalidCredentials
	}

	// checked only after the password matches, so the deactivated
	// state is not an oracle for unauthenticated callers
	if !u.IsActive {
		return nil, user.ErrUserInactive
	}

	if err := s.cache.Delete(ctx, attemptsKey); err != nil {
		logger.Error("failed to reset login attempts", err)
	}

	token, err := s.jwt.GenerateToken(u.ID.String(), u.Username, u.Role.String(), u.PermissionStrings())
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	logger.Info("user logged in", map[string]interface{}{
		"user_id":  u.ID.String(),
		"username": u.Username,
	})

	return &user.LoginResponse{
		Token: token,
		User:  u.ToDTO(),
	}, nil
}

// Logout exists for API symmetry; tokens are stateless and simply expire.
func (s *userService) Logout(ctx context.Context, userID uuid.UUID) error {
	logger.Info("user logged out", map[string]interface{}{
		"user_id": userID.String(),
	})
	return nil
}

func (s *userService) isLockedOut(ctx context.Context, key string) bool {
	var attempts int64
	found, err := s.cache.Get(ctx, key, &attempts)
	if err != nil {
		logger.Error("failed to read login attempts", err)
		return false
	}
	return found && attempts >= maxLoginAttempts
}

func (s *userService) recordFailedAttempt(ctx context.Context, key string) {
	attempts, err := s.cache.Increment(ctx, key)
	if err != nil {
		logger.Error("failed to record login attempt", err)
		return
	}
	if attempts == 1 {
		if err := s.cache.Expire(ctx, key, lockoutWindow); err != nil {
			logger.Error("failed to set lockout window", err)
		}
	}
}

// ========================================
// USER MANAGEMENT
// ========================================

func (s *userService) CreateUser(ctx context.Context, req user.CreateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsername(ctx, req.Username, nil)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if exists {
		return nil, user.ErrUsernameAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &user.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         user.Role(req.Role),
		Permissions:  toPermissions(req.Permissions),
		IsActive:     true,
	}
	if req.Email != "" {
		u.Email = &req.Email
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) GetUser(ctx context.Context, id uuid.UUID) (*user.UserDTO, error) {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]user.UserDTO, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	dtos := make([]user.UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, users[i].ToDTO())
	}
	return dtos, nil
}

func (s *userService) UpdateUser(ctx context.Context, id uuid.UUID, req user.UpdateUserRequest) (*user.UserDTO, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Username != nil && *req.Username != u.Username {
		exists, err := s.repo.ExistsByUsername(ctx, *req.Username, &id)
		if err != nil {
			return nil, fmt.Errorf("check username exists: %w", err)
		}
		if exists {
			return nil, user.ErrUsernameAlreadyExists
		}
		u.Username = *req.Username
	}
	if req.Email != nil {
		u.Email = req.Email
	}
	if req.Role != nil {
		u.Role = user.Role(*req.Role)
	}
	if req.Permissions != nil {
		u.Permissions = toPermissions(req.Permissions)
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		u.PasswordHash = string(hash)
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := u.ToDTO()
	return &dto, nil
}

func (s *userService) ToggleUserStatus(ctx context.Context, id uuid.UUID) error {
	return s.repo.ToggleStatus(ctx, id)
}

// DeleteUser removes an account. The seeded admin account is the recovery
// path into the system and can never be removed.
func (s *userService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if u.IsProtected() {
		return user.ErrCannotDeleteAdmin
	}
	return s.repo.Delete(ctx, id)
}

func toPermissions(strs []string) []user.Permission {
	out := make([]user.Permission, 0, len(strs))
	for _, s := range strs {
		out = append(out, user.Permission(s))
	}
	return out
}
